package chat

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talent-screener/internal/session"
)

type recordingRenderer struct {
	messages []Message
}

func (r *recordingRenderer) Render(role Role, text string) {
	r.messages = append(r.messages, Message{Role: role, Text: text})
}

func (r *recordingRenderer) last() Message {
	return r.messages[len(r.messages)-1]
}

type fixedGenerator struct {
	text string
}

func (g fixedGenerator) Generate(context.Context, string) (string, error) {
	return g.text, nil
}

const oneQuestion = `1. Which keyword starts a goroutine?
- A) go
- B) async
- C) spawn
- D) thread
Answer: A`

func newTestConversation(t *testing.T, log *zap.Logger) (*Conversation, *recordingRenderer) {
	t.Helper()
	renderer := &recordingRenderer{}
	machine := session.NewMachine(fixedGenerator{text: oneQuestion}, log)
	return NewConversation(machine, renderer, log), renderer
}

func TestConversationStart(t *testing.T) {
	c, renderer := newTestConversation(t, zap.NewNop())
	c.Start()

	require.Len(t, renderer.messages, 1)
	assert.Equal(t, Message{Role: RoleAssistant, Text: OpeningMessage}, renderer.messages[0])
	assert.NotEmpty(t, c.SessionID())
}

func TestConversationRendersInOrder(t *testing.T) {
	c, renderer := newTestConversation(t, zap.NewNop())
	ctx := context.Background()

	c.Start()
	done := c.Handle(ctx, "hi")
	assert.False(t, done)

	require.Len(t, renderer.messages, 3)
	assert.Equal(t, []Role{RoleAssistant, RoleUser, RoleAssistant}, []Role{
		renderer.messages[0].Role, renderer.messages[1].Role, renderer.messages[2].Role,
	})
	assert.Equal(t, "hi", renderer.messages[1].Text)
	assert.Equal(t, "Hello! Welcome to TalentScout. Could you please tell me your full name?", renderer.last().Text)
	assert.Equal(t, session.CollectingName, c.State().Stage())
}

func TestConversationExitOverride(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c, renderer := newTestConversation(t, zap.New(core))
	ctx := context.Background()

	c.Handle(ctx, "hello")
	c.Handle(ctx, "I am Jane Doe")
	before := c.State()

	done := c.Handle(ctx, "ok bye")
	assert.True(t, done)
	assert.Equal(t, FarewellMessage, renderer.last().Text)
	assert.Equal(t, before, c.State())

	entries := logs.FilterMessage("exit requested").All()
	require.Len(t, entries, 1)
	assert.Equal(t, c.SessionID(), entries[0].ContextMap()["session_id"])
	assert.Equal(t, "collecting_email", entries[0].ContextMap()["stage"])
}

func TestConversationExitNeedsWholeWord(t *testing.T) {
	c, renderer := newTestConversation(t, zap.NewNop())
	ctx := context.Background()

	for _, line := range []string{"hi", "I'm Jane Doe", "jane@example.com", "555 123 4567", "2 years", "Oslo"} {
		require.False(t, c.Handle(ctx, line), line)
	}

	done := c.Handle(ctx, "Backend Engineer")
	assert.False(t, done)
	assert.Contains(t, renderer.last().Text, "small screening test for the Backend Engineer position")
}

func TestConversationFullRunAndTranscript(t *testing.T) {
	c, _ := newTestConversation(t, zap.NewNop())
	ctx := context.Background()

	c.Start()
	for _, line := range []string{"hi", "I'm Jane Doe", "jane@example.com", "555 123 4567", "2 years", "Oslo", "SRE", "yes", "a"} {
		require.False(t, c.Handle(ctx, line), line)
	}

	assert.Equal(t, session.Complete, c.State().Stage())
	assert.Contains(t, c.Status(), "Score: 100.0% (1/1 correct)")
	assert.Contains(t, c.Status(), "Q1: Which keyword starts a goroutine?... - Your answer: A - Correct")

	transcript := c.Finish()
	assert.Equal(t, 1+2*9, transcript.Len())
	assert.Equal(t, "Jane Doe", transcript.Profile.Name)
	require.NotNil(t, transcript.Result)
	assert.True(t, transcript.Result.Passed)
	require.NotNil(t, transcript.EndedAt)

	path, err := transcript.DumpToDir(filepath.Join(t.TempDir(), "nested"))
	require.NoError(t, err)
	assert.Equal(t, "transcript_"+transcript.SessionID+".json", filepath.Base(path))

	loaded, err := ReadTranscript(path)
	require.NoError(t, err)
	assert.Equal(t, transcript.SessionID, loaded.SessionID)
	assert.Equal(t, transcript.Profile, loaded.Profile)
	assert.Len(t, loaded.Messages, transcript.Len())
	assert.Equal(t, RoleUser, loaded.Messages[1].Role)
}

func TestConversationReset(t *testing.T) {
	c, renderer := newTestConversation(t, zap.NewNop())
	ctx := context.Background()

	c.Start()
	c.Handle(ctx, "hi")
	c.Handle(ctx, "I'm Jane Doe")
	oldID := c.SessionID()

	previous := c.Reset()
	assert.Equal(t, oldID, previous.SessionID)
	assert.Equal(t, "Jane Doe", previous.Profile.Name)
	assert.NotNil(t, previous.EndedAt)

	assert.NotEqual(t, oldID, c.SessionID())
	assert.Equal(t, session.NewState(), c.State())
	assert.Equal(t, OpeningMessage, renderer.last().Text)

	c.Reset()
	assert.Equal(t, session.NewState(), c.State())
}

func TestConsoleRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleRenderer(&buf)

	r.Render(RoleUser, "hi")
	r.Render(RoleAssistant, " Hello! ")
	assert.Equal(t, "TalentBot: Hello!\n\n", buf.String())

	buf.Reset()
	r.EchoUser = true
	r.Render(RoleUser, "hi")
	assert.Equal(t, "You: hi\n", buf.String())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
		ok   bool
	}{
		{line: "/reset", want: CommandReset, ok: true},
		{line: "  /STATUS ", want: CommandStatus, ok: true},
		{line: "/help", want: CommandHelp, ok: true},
		{line: "/unknown"},
		{line: "reset"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseCommand(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
