package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	attempts := func(correct, total int) []Attempt {
		out := make([]Attempt, 0, total)
		for i := 0; i < total; i++ {
			out = append(out, Attempt{QuestionIndex: i, Chosen: A, Correct: i < correct})
		}
		return out
	}

	tests := []struct {
		name    string
		correct int
		total   int
		score   float64
		passed  bool
	}{
		{name: "cutoff is inclusive", correct: 9, total: 15, score: 60.0, passed: true},
		{name: "just below cutoff", correct: 8, total: 15, score: 53.3, passed: false},
		{name: "rounds to one decimal", correct: 2, total: 3, score: 66.7, passed: true},
		{name: "all correct", correct: 5, total: 5, score: 100, passed: true},
		{name: "none correct", correct: 0, total: 5, score: 0, passed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(attempts(tt.correct, tt.total), tt.total)
			assert.Equal(t, tt.correct, result.Correct)
			assert.Equal(t, tt.total, result.Total)
			assert.InDelta(t, tt.score, result.Score, 1e-9)
			assert.Equal(t, tt.passed, result.Passed)
		})
	}

	empty := Evaluate(nil, 0)
	assert.Zero(t, empty.Score)
	assert.False(t, empty.Passed)
}

func TestQuestionRender(t *testing.T) {
	q := Question{Text: "What is Go?", Options: []string{"A language", "A game", "A tool", "A band"}}

	want := "Question 2: What is Go?\n- A) A language\n- B) A game\n- C) A tool\n- D) A band"
	assert.Equal(t, want, q.Render(2))
}

func TestParseLetter(t *testing.T) {
	l, ok := ParseLetter(" c ")
	require.True(t, ok)
	assert.Equal(t, C, l)

	_, ok = ParseLetter("E")
	assert.False(t, ok)
}
