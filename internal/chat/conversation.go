package chat

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/talent-screener/internal/extract"
	"github.com/spigell/talent-screener/internal/logger"
	"github.com/spigell/talent-screener/internal/session"
)

const (
	// OpeningMessage is shown when a conversation starts or is reset.
	OpeningMessage = "Hello! Welcome to TalentScout. Please say 'hi' to start the conversation."
	// FarewellMessage answers an exit keyword at any stage.
	FarewellMessage = "Thank you for your time! A recruiter will review your information and get back to you shortly. Have a great day!"
)

// Conversation keeps the session state between turns, renders every
// message and records it in the transcript.
type Conversation struct {
	machine    *session.Machine
	renderer   Renderer
	baseLogger *zap.Logger
	logger     *zap.Logger

	state      session.State
	transcript *Transcript
}

func NewConversation(machine *session.Machine, renderer Renderer, log *zap.Logger) *Conversation {
	c := &Conversation{
		machine:    machine,
		renderer:   renderer,
		baseLogger: logger.WithFields(log),
	}
	c.begin(session.NewState())
	return c
}

func (c *Conversation) begin(state session.State) {
	c.state = state
	c.transcript = NewTranscript()
	c.logger = logger.WithSession(c.baseLogger, c.transcript.SessionID)
}

// Start renders the opening message.
func (c *Conversation) Start() {
	c.logger.Info("conversation started")
	c.say(RoleAssistant, OpeningMessage)
}

// Handle processes one candidate message. It returns true when the
// candidate asked to leave.
func (c *Conversation) Handle(ctx context.Context, utterance string) bool {
	c.say(RoleUser, utterance)

	if extract.IsExit(utterance) {
		c.logger.Info("exit requested", zap.Stringer(logger.FieldStage, c.state.Stage()))
		c.say(RoleAssistant, FarewellMessage)
		return true
	}

	var reply string
	c.state, reply = c.machine.Advance(ctx, c.state, utterance)
	c.transcript.Capture(c.state)
	c.say(RoleAssistant, reply)

	return false
}

// Reset starts the conversation over and returns the transcript of the
// conversation that was discarded.
func (c *Conversation) Reset() *Transcript {
	previous := c.Finish()

	c.begin(c.machine.Reset())
	c.Start()

	return previous
}

// Finish closes and returns the current transcript.
func (c *Conversation) Finish() *Transcript {
	c.transcript.Capture(c.state)
	c.transcript.Close()
	return c.transcript
}

// Status summarizes the conversation without touching the transcript.
func (c *Conversation) Status() string {
	return "Session: " + c.transcript.SessionID + "\n" + c.state.Summary()
}

func (c *Conversation) State() session.State {
	return c.state
}

func (c *Conversation) SessionID() string {
	return c.transcript.SessionID
}

func (c *Conversation) say(role Role, text string) {
	c.transcript.Add(role, text)
	if c.renderer != nil {
		c.renderer.Render(role, text)
	}
}
