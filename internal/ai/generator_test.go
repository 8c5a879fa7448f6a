package ai

import (
	"errors"
	"testing"
)

func TestFailureText(t *testing.T) {
	if got := FailureText(nil); got != "" {
		t.Fatalf("expected empty text for nil error, got %q", got)
	}

	got := FailureText(errors.New("quota exceeded"))
	if got != "Error generating technical questions: quota exceeded" {
		t.Fatalf("unexpected failure text: %q", got)
	}
}
