// Package quiz models the screening quiz: questions, attempts and scoring,
// plus the parser and preparation steps that turn generated text into a
// usable question list.
package quiz

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

const (
	// OptionsPerQuestion is the exact number of options every question carries.
	OptionsPerQuestion = 4
	// MaxQuestions caps the length of a quiz.
	MaxQuestions = 15
	// PassCutoff is the minimum score, in percent, needed to pass.
	PassCutoff = 60.0
)

// Letter identifies an option, A through D.
type Letter string

const (
	A Letter = "A"
	B Letter = "B"
	C Letter = "C"
	D Letter = "D"
)

// Letters lists option letters in display order.
var Letters = []Letter{A, B, C, D}

// ParseLetter normalizes s to an option letter.
func ParseLetter(s string) (Letter, bool) {
	l := Letter(strings.ToUpper(strings.TrimSpace(s)))
	return l, lo.Contains(Letters, l)
}

// KeySource tells where a question's correct letter came from.
type KeySource string

const (
	// KeyGenerated marks an answer key parsed from the generator output.
	KeyGenerated KeySource = "generated"
	// KeyRandom marks an answer key drawn at random. Scores over such
	// questions say nothing about the candidate's knowledge.
	KeyRandom KeySource = "random"
)

type Question struct {
	Text      string    `json:"text"`
	Options   []string  `json:"options"`
	Correct   Letter    `json:"correct,omitempty"`
	KeySource KeySource `json:"key_source,omitempty"`
}

// Render formats the question the way it is shown in chat.
func (q Question) Render(number int) string {
	lines := lo.Map(q.Options, func(option string, i int) string {
		return fmt.Sprintf("- %s) %s", Letters[i], option)
	})
	return fmt.Sprintf("Question %d: %s\n%s", number, q.Text, strings.Join(lines, "\n"))
}

// Attempt records the answer given to one question.
type Attempt struct {
	QuestionIndex int    `json:"question_index"`
	Chosen        Letter `json:"chosen"`
	Correct       bool   `json:"correct"`
}

// Result is the outcome of a finished quiz.
type Result struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

// Evaluate scores attempts against a quiz of total questions. The score
// is a percentage rounded to one decimal place.
func Evaluate(attempts []Attempt, total int) Result {
	correct := lo.CountBy(attempts, func(a Attempt) bool { return a.Correct })

	score := 0.0
	if total > 0 {
		score = math.Round(float64(100*correct)/float64(total)*10) / 10
	}

	return Result{
		Correct: correct,
		Total:   total,
		Score:   score,
		Passed:  score >= PassCutoff,
	}
}
