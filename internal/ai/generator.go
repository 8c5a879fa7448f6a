package ai

import "context"

// QuestionGenerator produces raw multiple-choice quiz text for a position.
// The text is expected to follow a numbered-question, lettered-option
// layout, but callers must tolerate anything.
type QuestionGenerator interface {
	Generate(ctx context.Context, position string) (string, error)
}

// FailureText renders a generation error the way it is handed to the quiz
// parser in place of generated text.
func FailureText(err error) string {
	if err == nil {
		return ""
	}
	return "Error generating technical questions: " + err.Error()
}
