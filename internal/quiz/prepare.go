package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
)

// Step is a single preparation step applied to a parsed question list.
type Step interface {
	Name() string
	Apply(ctx context.Context, deps Deps, questions []Question) ([]Question, StepInfo, error)
}

// Deps aggregates what the preparation steps need.
type Deps struct {
	// Position is the role the quiz is built for.
	Position string
	// Rand draws random answer keys. A nil Rand uses the global source.
	Rand   *rand.Rand
	Logger *zap.Logger
}

// StepInfo describes the result of executing a step.
type StepInfo struct {
	Initial int
	Dropped int
	Added   int
	Left    int
}

// DefaultSteps returns the standard pipeline: keep well-formed questions,
// fall back when nothing is left, cap the length, assign answer keys.
func DefaultSteps() []Step {
	return []Step{
		NewShape(),
		NewFallback(),
		NewLimit(MaxQuestions),
		NewAnswerKey(),
	}
}

// Prepare runs steps in order over questions.
func Prepare(ctx context.Context, deps Deps, steps []Step, questions []Question) ([]Question, error) {
	for _, step := range steps {
		next, info, err := step.Apply(ctx, deps, questions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("quiz step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("added", info.Added),
				zap.Int("left", info.Left),
			)
		}

		questions = next
	}

	return questions, nil
}

type shapeStep struct{}

// NewShape creates a step that drops questions without exactly four options.
func NewShape() Step {
	return shapeStep{}
}

func (shapeStep) Name() string { return "shape" }

func (shapeStep) Apply(_ context.Context, deps Deps, questions []Question) ([]Question, StepInfo, error) {
	kept := make([]Question, 0, len(questions))
	for i, q := range questions {
		if len(q.Options) != OptionsPerQuestion {
			if deps.Logger != nil {
				deps.Logger.Debug("dropping malformed question",
					zap.Int("index", i),
					zap.Int("options", len(q.Options)),
				)
			}
			continue
		}
		kept = append(kept, q)
	}

	return kept, StepInfo{Initial: len(questions), Dropped: len(questions) - len(kept), Left: len(kept)}, nil
}

type fallbackStep struct{}

// NewFallback creates a step that substitutes the fallback set for an empty list.
func NewFallback() Step {
	return fallbackStep{}
}

func (fallbackStep) Name() string { return "fallback" }

func (fallbackStep) Apply(_ context.Context, deps Deps, questions []Question) ([]Question, StepInfo, error) {
	if len(questions) > 0 {
		return questions, StepInfo{Initial: len(questions), Left: len(questions)}, nil
	}

	set, err := FallbackSet(deps.Position)
	if err != nil {
		return nil, StepInfo{}, err
	}

	if deps.Logger != nil {
		deps.Logger.Info("using fallback questions",
			zap.String("position", deps.Position),
			zap.Int("count", len(set)),
		)
	}

	return set, StepInfo{Added: len(set), Left: len(set)}, nil
}

type limitStep struct {
	max int
}

// NewLimit creates a step that keeps at most max questions.
func NewLimit(max int) Step {
	return limitStep{max: max}
}

func (limitStep) Name() string { return "limit" }

func (s limitStep) Apply(_ context.Context, _ Deps, questions []Question) ([]Question, StepInfo, error) {
	initial := len(questions)
	if s.max > 0 && initial > s.max {
		questions = questions[:s.max]
	}
	return questions, StepInfo{Initial: initial, Dropped: initial - len(questions), Left: len(questions)}, nil
}

type answerKeyStep struct{}

// NewAnswerKey creates a step that draws a random answer key for every
// question whose key was not supplied by the generator.
func NewAnswerKey() Step {
	return answerKeyStep{}
}

func (answerKeyStep) Name() string { return "answer_key" }

func (answerKeyStep) Apply(_ context.Context, deps Deps, questions []Question) ([]Question, StepInfo, error) {
	out := slices.Clone(questions)

	drawn := 0
	for i := range out {
		if out[i].KeySource == KeyGenerated && out[i].Correct != "" {
			continue
		}
		out[i].Correct = Letters[randomIndex(deps.Rand, len(Letters))]
		out[i].KeySource = KeyRandom
		drawn++
	}

	if drawn > 0 && deps.Logger != nil {
		deps.Logger.Warn("answer keys drawn at random",
			zap.Int("questions", drawn),
			zap.String("hint", "the generator did not supply an answer key; scores for these questions are not meaningful"),
		)
	}

	return out, StepInfo{Initial: len(questions), Left: len(out)}, nil
}

func randomIndex(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}
