package gemini

import (
	"context"
	_ "embed"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talent-screener/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Questioner asks Gemini for a screening quiz.
type Questioner struct {
	generator contentGenerator
	count     int
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

// SystemPrompt frames every quiz generation request.
//
//go:embed system.md
var SystemPrompt string

const (
	defaultMaxLogLength  = 200
	defaultQuestionCount = 15
)

func NewQuestioner(generator contentGenerator, count, maxLogLength int, logger *zap.Logger) *Questioner {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if count <= 0 {
		count = defaultQuestionCount
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Questioner{
		generator: generator,
		count:     count,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Generate returns the raw quiz text produced for position.
func (q *Questioner) Generate(ctx context.Context, position string) (string, error) {
	position = strings.TrimSpace(position)
	if position == "" {
		return "", errors.New("position is required to generate relevant technical questions")
	}

	prompt := buildPrompt(position, q.count)

	q.logger.Debug("gemini generate content request",
		zap.String("position", position),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.PreviewForLog(prompt, q.maxLogLen)),
	)

	raw, err := q.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	q.logger.Debug("gemini generate content response",
		zap.String("position", position),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.PreviewForLog(raw, q.maxLogLen)),
	)

	return raw, nil
}

func buildPrompt(position string, count int) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Generate {{COUNT}} multiple-choice questions with options A-D for a '{{POSITION}}' position."
	}
	prompt := strings.ReplaceAll(template, "{{POSITION}}", position)
	prompt = strings.ReplaceAll(prompt, "{{COUNT}}", strconv.Itoa(count))
	return prompt
}
