package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/talent-screener/internal/quiz"
)

func TestStageDerivation(t *testing.T) {
	full := Profile{
		Name: "Ann", Email: "ann@example.com", Phone: "5551234567",
		Experience: "2", Location: "Oslo", Position: "SRE",
	}

	tests := []struct {
		name  string
		state State
		want  Stage
	}{
		{name: "fresh", state: NewState(), want: AwaitingGreeting},
		{name: "greeted", state: State{Greeted: true}, want: CollectingName},
		{name: "name filled", state: State{Greeted: true, Profile: Profile{Name: "Ann"}}, want: CollectingEmail},
		{name: "all but position", state: State{Greeted: true, Profile: Profile{
			Name: "Ann", Email: "a@b.co", Phone: "5551234567", Experience: "2", Location: "Oslo",
		}}, want: CollectingPosition},
		{name: "profile complete", state: State{Greeted: true, Profile: full}, want: AwaitingQuizConsent},
		{name: "declined", state: State{Greeted: true, Profile: full, Declined: true}, want: AwaitingQuizConsent},
		{name: "consented", state: State{Greeted: true, Profile: full, Consented: true}, want: InQuiz},
		{name: "complete", state: State{Greeted: true, Profile: full, Consented: true, Complete: true}, want: Complete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Stage())
		})
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "awaiting_quiz_consent", AwaitingQuizConsent.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}

func TestProfileNext(t *testing.T) {
	slot, ok := Profile{}.Next()
	assert.True(t, ok)
	assert.Equal(t, SlotName, slot)

	slot, ok = Profile{Name: "Ann", Email: "ann@example.com"}.Next()
	assert.True(t, ok)
	assert.Equal(t, SlotPhone, slot)
}

func TestSummary(t *testing.T) {
	questions := []quiz.Question{
		{Text: "Which data structure offers constant time lookup by key on average?", Options: []string{"a", "b", "c", "d"}, Correct: quiz.A},
		{Text: "Short one?", Options: []string{"a", "b", "c", "d"}, Correct: quiz.B},
	}

	inQuiz := State{
		Greeted:   true,
		Profile:   Profile{Name: "Ann", Email: "a@b.co", Phone: "5551234567", Experience: "2", Location: "Oslo", Position: "SRE"},
		Questions: questions,
		Consented: true,
		Attempts:  []quiz.Attempt{{QuestionIndex: 0, Chosen: quiz.A, Correct: true}},
	}
	assert.Equal(t, "Stage: in_quiz\nCandidate: Ann\nPosition: SRE\nQuiz progress: Question 2/2", inQuiz.Summary())

	done := inQuiz
	done.Attempts = append(done.Attempts, quiz.Attempt{QuestionIndex: 1, Chosen: quiz.C})
	result := quiz.Evaluate(done.Attempts, len(questions))
	done.Complete = true
	done.Result = &result

	want := "Stage: complete\n" +
		"Candidate: Ann\n" +
		"Position: SRE\n" +
		"Score: 50.0% (1/2 correct)\n" +
		"Passed: no\n" +
		"Q1: Which data structure offers constant tim... - Your answer: A - Correct\n" +
		"Q2: Short one?... - Your answer: C - Incorrect"
	assert.Equal(t, want, done.Summary())

	assert.Equal(t, "Stage: awaiting_greeting\nCandidate: -\nPosition: -", NewState().Summary())
}
