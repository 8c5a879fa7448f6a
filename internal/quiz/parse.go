package quiz

import (
	"regexp"
	"strings"
)

var (
	questionMarkerRE = regexp.MustCompile(`^(?:\d+\.|Q(?:uestion)?\s*\d+[.:]|\[\d+\])`)
	optionMarkerRE   = regexp.MustCompile(`^(?:-\s*)?[A-D][).]`)
	answerKeyRE      = regexp.MustCompile(`(?i)^(?:-\s*)?(?:correct\s+)?answer\s*[:\-]\s*\(?([A-D])\b`)
)

// Parse reads numbered questions with lettered options out of free-form
// generator output. Questions without options are dropped, as are lines
// that match no marker. Answer keys are taken from "Answer: X" lines when
// the generator provides them.
func Parse(raw string) []Question {
	var (
		questions []Question
		current   *Question
	)

	flush := func() {
		if current != nil && current.Text != "" && len(current.Options) > 0 {
			questions = append(questions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = cleanLine(line)
		if line == "" {
			continue
		}

		switch {
		case questionMarkerRE.MatchString(line):
			flush()
			current = &Question{
				Text: strings.TrimSpace(questionMarkerRE.ReplaceAllString(line, "")),
			}
		case optionMarkerRE.MatchString(line):
			if current == nil {
				continue
			}
			current.Options = append(current.Options, strings.TrimSpace(optionMarkerRE.ReplaceAllString(line, "")))
		default:
			match := answerKeyRE.FindStringSubmatch(line)
			if match == nil || current == nil {
				continue
			}
			current.Correct = Letter(strings.ToUpper(match[1]))
			current.KeySource = KeyGenerated
		}
	}
	flush()

	return questions
}

// cleanLine drops surrounding whitespace, markdown bold markers and
// heading hashes.
func cleanLine(line string) string {
	line = strings.ReplaceAll(strings.TrimSpace(line), "**", "")
	return strings.TrimSpace(strings.TrimLeft(line, "# "))
}
