package quiz

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const positionPlaceholder = "{{POSITION}}"

//go:embed fallback.yaml
var fallbackDocument []byte

type fallbackTemplate struct {
	Questions []struct {
		Text    string   `yaml:"text"`
		Options []string `yaml:"options"`
	} `yaml:"questions"`
}

var loadFallback = sync.OnceValues(func() (*fallbackTemplate, error) {
	var tmpl fallbackTemplate
	if err := yaml.Unmarshal(fallbackDocument, &tmpl); err != nil {
		return nil, fmt.Errorf("parse fallback questions: %w", err)
	}
	if len(tmpl.Questions) == 0 {
		return nil, fmt.Errorf("fallback questions document is empty")
	}
	return &tmpl, nil
})

// FallbackSet renders the fixed question set for position. The result
// depends only on position; answer keys are left unset.
func FallbackSet(position string) ([]Question, error) {
	tmpl, err := loadFallback()
	if err != nil {
		return nil, err
	}

	position = strings.TrimSpace(position)
	fill := func(s string) string { return strings.ReplaceAll(s, positionPlaceholder, position) }

	questions := make([]Question, 0, len(tmpl.Questions))
	for _, q := range tmpl.Questions {
		questions = append(questions, Question{
			Text:    fill(q.Text),
			Options: lo.Map(q.Options, func(option string, _ int) string { return fill(option) }),
		})
	}

	return questions, nil
}
