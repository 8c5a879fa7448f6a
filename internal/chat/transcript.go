package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/talent-screener/internal/quiz"
	"github.com/spigell/talent-screener/internal/session"
)

// Message is one rendered chat line.
type Message struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Transcript is the record of one conversation.
type Transcript struct {
	SessionID string          `json:"session_id"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"`
	Profile   session.Profile `json:"profile"`
	Questions []quiz.Question `json:"questions,omitempty"`
	Attempts  []quiz.Attempt  `json:"attempts,omitempty"`
	Result    *quiz.Result    `json:"result,omitempty"`
	Messages  []Message       `json:"messages"`
}

func NewTranscript() *Transcript {
	return &Transcript{
		SessionID: uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Messages:  make([]Message, 0),
	}
}

func (t *Transcript) Add(role Role, text string) {
	t.Messages = append(t.Messages, Message{Role: role, Text: text, At: time.Now().UTC()})
}

// Capture copies what the state knows about the candidate and the quiz.
func (t *Transcript) Capture(state session.State) {
	t.Profile = state.Profile
	t.Questions = state.Questions
	t.Attempts = state.Attempts
	t.Result = state.Result
}

// Close stamps the end time once.
func (t *Transcript) Close() {
	if t.EndedAt != nil {
		return
	}
	now := time.Now().UTC()
	t.EndedAt = &now
}

func (t *Transcript) Len() int {
	return len(t.Messages)
}

// ToFile writes the transcript as indented JSON, replacing path.
func (t *Transcript) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return err
	}
	return nil
}

// DumpToDir writes the transcript into dir and returns the file name. An
// empty dir means the system temporary directory.
func (t *Transcript) DumpToDir(dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("transcript_%s.json", t.SessionID))
	if err := t.ToFile(path); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

// ReadTranscript loads a transcript written by ToFile.
func ReadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode transcript %q: %w", path, err)
	}
	return &t, nil
}
