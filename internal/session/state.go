// Package session holds the candidate screening conversation: the slots
// collected from the candidate, the quiz sub-state and the machine that
// moves a state forward one user turn at a time.
package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/spigell/talent-screener/internal/quiz"
)

// Stage is the point a conversation has reached. It is always derived from
// a State and never stored.
type Stage int

const (
	AwaitingGreeting Stage = iota
	CollectingName
	CollectingEmail
	CollectingPhone
	CollectingExperience
	CollectingLocation
	CollectingPosition
	AwaitingQuizConsent
	InQuiz
	Complete
)

var stageNames = map[Stage]string{
	AwaitingGreeting:     "awaiting_greeting",
	CollectingName:       "collecting_name",
	CollectingEmail:      "collecting_email",
	CollectingPhone:      "collecting_phone",
	CollectingExperience: "collecting_experience",
	CollectingLocation:   "collecting_location",
	CollectingPosition:   "collecting_position",
	AwaitingQuizConsent:  "awaiting_quiz_consent",
	InQuiz:               "in_quiz",
	Complete:             "complete",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Slot names one piece of candidate information.
type Slot string

const (
	SlotName       Slot = "name"
	SlotEmail      Slot = "email"
	SlotPhone      Slot = "phone"
	SlotExperience Slot = "experience"
	SlotLocation   Slot = "location"
	SlotPosition   Slot = "position"
)

// Slots lists the slots in the order they are collected.
var Slots = []Slot{SlotName, SlotEmail, SlotPhone, SlotExperience, SlotLocation, SlotPosition}

var slotStages = map[Slot]Stage{
	SlotName:       CollectingName,
	SlotEmail:      CollectingEmail,
	SlotPhone:      CollectingPhone,
	SlotExperience: CollectingExperience,
	SlotLocation:   CollectingLocation,
	SlotPosition:   CollectingPosition,
}

// Profile is the candidate information gathered so far. An empty field is
// unset.
type Profile struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Experience string `json:"experience,omitempty"`
	Location   string `json:"location,omitempty"`
	Position   string `json:"position,omitempty"`
}

// Get returns the value stored for slot.
func (p Profile) Get(slot Slot) string {
	switch slot {
	case SlotName:
		return p.Name
	case SlotEmail:
		return p.Email
	case SlotPhone:
		return p.Phone
	case SlotExperience:
		return p.Experience
	case SlotLocation:
		return p.Location
	case SlotPosition:
		return p.Position
	default:
		return ""
	}
}

func (p *Profile) set(slot Slot, value string) {
	switch slot {
	case SlotName:
		p.Name = value
	case SlotEmail:
		p.Email = value
	case SlotPhone:
		p.Phone = value
	case SlotExperience:
		p.Experience = value
	case SlotLocation:
		p.Location = value
	case SlotPosition:
		p.Position = value
	}
}

// Next returns the first slot that is still unset.
func (p Profile) Next() (Slot, bool) {
	return lo.Find(Slots, func(slot Slot) bool { return p.Get(slot) == "" })
}

// Filled returns the slots that hold a value, in collection order.
func (p Profile) Filled() []Slot {
	return lo.Filter(Slots, func(slot Slot, _ int) bool { return p.Get(slot) != "" })
}

// State is everything one conversation knows. The zero value is a fresh
// conversation.
type State struct {
	Greeted   bool            `json:"greeted"`
	Profile   Profile         `json:"profile"`
	Questions []quiz.Question `json:"questions,omitempty"`
	Consented bool            `json:"consented"`
	// Declined is set when the candidate turned the quiz down. It does not
	// block a later consent.
	Declined bool           `json:"declined"`
	Attempts []quiz.Attempt `json:"attempts,omitempty"`
	Complete bool           `json:"complete"`
	Result   *quiz.Result   `json:"result,omitempty"`
}

// NewState returns the state a conversation starts in.
func NewState() State {
	return State{}
}

// Stage derives the conversation stage.
func (s State) Stage() Stage {
	if !s.Greeted {
		return AwaitingGreeting
	}
	if slot, ok := s.Profile.Next(); ok {
		return slotStages[slot]
	}
	switch {
	case s.Complete:
		return Complete
	case s.Consented:
		return InQuiz
	default:
		return AwaitingQuizConsent
	}
}

// CurrentQuestion returns the index of the question awaiting an answer.
func (s State) CurrentQuestion() int {
	return len(s.Attempts)
}

const reviewTextLimit = 40

// Summary renders the candidate details, quiz progress and, once the quiz
// is finished, the score with a per-answer review.
func (s State) Summary() string {
	lines := []string{
		"Stage: " + s.Stage().String(),
		"Candidate: " + orDash(s.Profile.Name),
		"Position: " + orDash(s.Profile.Position),
	}

	switch s.Stage() {
	case InQuiz:
		lines = append(lines, fmt.Sprintf("Quiz progress: Question %d/%d", s.CurrentQuestion()+1, len(s.Questions)))
	case Complete:
		if s.Result != nil {
			lines = append(lines, fmt.Sprintf("Score: %.1f%% (%d/%d correct)", s.Result.Score, s.Result.Correct, s.Result.Total))
			lines = append(lines, "Passed: "+yesNo(s.Result.Passed))
		}
		lines = append(lines, s.review()...)
	}

	return strings.Join(lines, "\n")
}

func (s State) review() []string {
	return lo.FilterMap(s.Attempts, func(a quiz.Attempt, i int) (string, bool) {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(s.Questions) {
			return "", false
		}
		verdict := "Incorrect"
		if a.Correct {
			verdict = "Correct"
		}
		return fmt.Sprintf("Q%d: %s... - Your answer: %s - %s",
			i+1, firstRunes(s.Questions[a.QuestionIndex].Text, reviewTextLimit), a.Chosen, verdict), true
	})
}

func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
