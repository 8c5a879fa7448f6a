package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/talent-screener/internal/ai"
	"github.com/spigell/talent-screener/internal/extract"
	"github.com/spigell/talent-screener/internal/logger"
	"github.com/spigell/talent-screener/internal/quiz"
	"github.com/spigell/talent-screener/internal/utils"
)

const inputLogLimit = 40

const (
	msgGreeting      = "Hello! Welcome to TalentScout. Could you please tell me your full name?"
	msgSayHi         = "Hello! Please say 'hi' to start the conversation."
	msgConsent       = "Thank you for providing your information! I'd like to conduct a small screening test for the %s position. Are you okay with that? (Please say 'yes' or 'no')"
	msgQuizStart     = "Great! Let's begin the assessment.\n\n%s\n\nPlease select A, B, C, or D."
	msgQuizDeclined  = "No problem. We can schedule this for later. A recruiter will contact you shortly. Have a great day!"
	msgConsentRetry  = "I didn't understand. Are you okay with taking a small screening test for this position? (Please say 'yes' or 'no')"
	msgNextQuestion  = "Thank you!\n\n%s\n\nPlease select A, B, C, or D."
	msgInvalidOption = "Please select a valid option (A, B, C, or D)."
	msgPassed        = "Congratulations! You've completed the assessment with a score of %.1f%%. This is above our cutoff of 60%%. A recruiter will contact you soon for the next steps. Thank you for your time!"
	msgFailed        = "Thank you for completing the assessment. Your score is %.1f%%. Our cutoff score is 60%%. We appreciate your interest and time."
	msgAlreadyDone   = "Your assessment is already complete. A recruiter will contact you shortly."
	msgNoQuiz        = "I'm sorry, the assessment is not available right now. A recruiter will contact you shortly."
)

// slotRule ties a slot to its extractor and to what the bot says after a
// hit or a miss.
type slotRule struct {
	extract func(string) (string, bool)
	next    func(Profile) string
	retry   string
}

var slotRules = map[Slot]slotRule{
	SlotName: {
		extract: extract.Name,
		next: func(p Profile) string {
			return fmt.Sprintf("Nice to meet you, %s! Could you please share your email address?", p.Name)
		},
		retry: "I didn't catch your name. Could you please tell me your full name?",
	},
	SlotEmail: {
		extract: extract.Email,
		next:    fixed("Thanks! Now, could you please provide your phone number?"),
		retry:   "I need your email address to proceed. Please provide a valid email (example: name@example.com).",
	},
	SlotPhone: {
		extract: extract.Phone,
		next:    fixed("Great! How many years of professional experience do you have? (If you're a fresher, please say 'fresher' or '0')"),
		retry:   "I need your phone number to proceed. Please provide a valid phone number.",
	},
	SlotExperience: {
		extract: extract.ExperienceOrFresher,
		next:    fixed("Thanks! What is your current location?"),
		retry:   "I need to know your years of experience. Please specify a number (e.g., '3 years' or 'fresher').",
	},
	SlotLocation: {
		extract: extract.FreeText,
		next:    fixed("What position are you applying for?"),
		retry:   "I need your current location to proceed. Please provide your city/country.",
	},
	SlotPosition: {
		extract: extract.FreeText,
		next: func(p Profile) string {
			return fmt.Sprintf(msgConsent, p.Position)
		},
		retry: "Please specify the position you're applying for.",
	},
}

func fixed(text string) func(Profile) string {
	return func(Profile) string { return text }
}

// Machine advances a conversation State by one user turn.
type Machine struct {
	generator ai.QuestionGenerator
	steps     []quiz.Step
	rand      *rand.Rand
	logger    *zap.Logger
}

// Option customizes a Machine.
type Option func(*Machine)

// WithSteps replaces the quiz preparation pipeline.
func WithSteps(steps ...quiz.Step) Option {
	return func(m *Machine) { m.steps = steps }
}

// WithRand sets the source used for random answer keys.
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) { m.rand = r }
}

// NewMachine creates a Machine that asks generator for quiz text once the
// candidate names a position. A nil generator always yields the fallback quiz.
func NewMachine(generator ai.QuestionGenerator, log *zap.Logger, opts ...Option) *Machine {
	m := &Machine{
		generator: generator,
		steps:     quiz.DefaultSteps(),
		logger:    logger.WithFields(log),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Reset discards the profile, the quiz and all attempts.
func (m *Machine) Reset() State {
	m.logger.Info("conversation reset")
	return NewState()
}

// Advance applies one user utterance to state and returns the new state
// with the reply. The input state is never modified.
func (m *Machine) Advance(ctx context.Context, state State, utterance string) (State, string) {
	stage := state.Stage()
	log := m.logger.With(zap.Stringer(logger.FieldStage, stage))

	switch stage {
	case AwaitingGreeting:
		if !extract.IsGreeting(utterance) {
			return state, msgSayHi
		}
		state.Greeted = true
		return state, msgGreeting

	case CollectingName, CollectingEmail, CollectingPhone, CollectingExperience, CollectingLocation, CollectingPosition:
		return m.fillSlot(ctx, log, state, utterance)

	case AwaitingQuizConsent:
		return m.consent(log, state, utterance)

	case InQuiz:
		return m.answer(log, state, utterance)

	default:
		return state, msgAlreadyDone
	}
}

func (m *Machine) fillSlot(ctx context.Context, log *zap.Logger, state State, utterance string) (State, string) {
	slot, _ := state.Profile.Next()
	rule := slotRules[slot]

	value, ok := rule.extract(utterance)
	if !ok {
		log.Debug("extraction miss",
			zap.String("slot", string(slot)),
			zap.String("input", utils.TruncateForLog(utterance, inputLogLimit)),
		)
		return state, rule.retry
	}

	state.Profile.set(slot, value)
	log.Info("slot filled", zap.String("slot", string(slot)))

	if slot == SlotPosition {
		state.Questions = m.buildQuiz(ctx, log, value)
	}

	return state, rule.next(state.Profile)
}

// BuildQuiz generates, parses and prepares the quiz for position. Generation
// errors are logged and their text is handed to the parser, so the
// fallback set takes over.
func (m *Machine) BuildQuiz(ctx context.Context, position string) []quiz.Question {
	return m.buildQuiz(ctx, m.logger, position)
}

func (m *Machine) buildQuiz(ctx context.Context, log *zap.Logger, position string) []quiz.Question {
	raw, err := m.generate(ctx, position)
	if err != nil {
		log.Warn("question generation failed", zap.String("position", position), zap.Error(err))
		raw = ai.FailureText(err)
	}

	deps := quiz.Deps{
		Position: position,
		Rand:     m.rand,
		Logger:   log,
	}

	questions, err := quiz.Prepare(ctx, deps, m.steps, quiz.Parse(raw))
	if err != nil {
		log.Error("failed to prepare quiz", zap.Error(err))
		return nil
	}

	log.Info("quiz ready", zap.Int("questions", len(questions)))
	return questions
}

func (m *Machine) generate(ctx context.Context, position string) (string, error) {
	if m.generator == nil {
		return "", errors.New("question generator is not configured")
	}
	return m.generator.Generate(ctx, position)
}

func (m *Machine) consent(log *zap.Logger, state State, utterance string) (State, string) {
	agreed, ok := extract.Confirmation(utterance)
	switch {
	case !ok:
		log.Debug("extraction miss", zap.String("slot", "consent"))
		return state, msgConsentRetry
	case !agreed:
		state.Declined = true
		log.Info("quiz declined")
		return state, msgQuizDeclined
	case len(state.Questions) == 0:
		log.Warn("quiz requested but no questions are available")
		return state, msgNoQuiz
	}

	state.Consented = true
	state.Declined = false
	state.Attempts = nil
	log.Info("quiz started", zap.Int("questions", len(state.Questions)))

	return state, fmt.Sprintf(msgQuizStart, state.Questions[0].Render(1))
}

func (m *Machine) answer(log *zap.Logger, state State, utterance string) (State, string) {
	option, ok := extract.OptionLetter(utterance)
	if !ok {
		log.Debug("extraction miss", zap.String("slot", "option"))
		return state, msgInvalidOption
	}
	chosen, _ := quiz.ParseLetter(option)

	index := state.CurrentQuestion()
	question := state.Questions[index]
	state.Attempts = append(slices.Clip(state.Attempts), quiz.Attempt{
		QuestionIndex: index,
		Chosen:        chosen,
		Correct:       chosen == question.Correct,
	})

	if next := index + 1; next < len(state.Questions) {
		return state, fmt.Sprintf(msgNextQuestion, state.Questions[next].Render(next+1))
	}

	result := quiz.Evaluate(state.Attempts, len(state.Questions))
	state.Complete = true
	state.Result = &result

	log.Info("quiz complete",
		zap.Int("correct", result.Correct),
		zap.Int("total", result.Total),
		zap.Float64("score", result.Score),
		zap.Bool("passed", result.Passed),
	)

	if result.Passed {
		return state, fmt.Sprintf(msgPassed, result.Score)
	}
	return state, fmt.Sprintf(msgFailed, result.Score)
}
