// Package extract pulls typed values out of a single free-text chat line.
//
// Every extractor returns the value and a flag telling whether anything
// was found. A miss is an ordinary outcome and is never an error.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name patterns run against the lowercased input, first match wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:my name is|i am|i'm) ([a-z\s]+)`),
	regexp.MustCompile(`([a-z\s]+) (?:here|speaking)`),
	regexp.MustCompile(`^([a-z\s]+)$`),
}

// Experience patterns run against the lowercased input, first match wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:years|year|yrs|yr)(?:\s*of\s*experience|\s*experience)?`),
	regexp.MustCompile(`experience(?:\s*of)?\s*(\d+)\s*(?:years|year|yrs|yr)`),
}

var (
	emailRE       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	emailStrictRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	phoneRE       = regexp.MustCompile(`(?:\+\d{1,3})?[\s\-.]?\(?\d{1,4}\)?[\s\-.]*\d{1,4}[\s\-.]*\d{1,9}`)
	phoneStrictRE = regexp.MustCompile(`^\+?[0-9\s\-()]{7,}$`)

	affirmativeRE = regexp.MustCompile(`\b(?:yes|yeah|yep|yup|sure|ok|okay|go ahead|proceed)\b`)
	negativeRE    = regexp.MustCompile(`\b(?:no|nope|nah|not now|later)\b`)

	optionRE   = regexp.MustCompile(`\b([A-Da-d])\b`)
	greetingRE = regexp.MustCompile(`\b(?:hi|hello|hey)\b`)
	exitRE     = regexp.MustCompile(`\b(?:exit|quit|goodbye|bye|stop|end)\b`)
)

const fresherKeyword = "fresher"

// Name extracts a candidate name and returns it title-cased.
func Name(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, re := range namePatterns {
		match := re.FindStringSubmatch(lower)
		if match == nil {
			continue
		}

		name := cases.Title(language.English).String(strings.TrimSpace(match[1]))
		if utf8.RuneCountInString(name) <= 1 {
			return "", false
		}
		return name, true
	}

	return "", false
}

// Email returns the first address in text that survives strict validation.
func Email(text string) (string, bool) {
	email := emailRE.FindString(text)
	if email == "" || !emailStrictRE.MatchString(email) {
		return "", false
	}
	return email, true
}

// Phone returns the first phone-like sequence that both the loose and the
// strict rules accept.
func Phone(text string) (string, bool) {
	phone := phoneRE.FindString(text)
	if phone == "" || !phoneStrictRE.MatchString(phone) {
		return "", false
	}
	return strings.TrimSpace(phone), true
}

// Experience returns the number of years as the digits the candidate typed.
func Experience(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, re := range experiencePatterns {
		if match := re.FindStringSubmatch(lower); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// ExperienceOrFresher is Experience with "fresher" counted as zero years.
func ExperienceOrFresher(text string) (string, bool) {
	if years, ok := Experience(text); ok {
		return years, true
	}
	if strings.Contains(strings.ToLower(text), fresherKeyword) {
		return "0", true
	}
	return "", false
}

// Confirmation reports a yes/no answer. The second value is false when the
// text is neither. Affirmative words are checked first.
func Confirmation(text string) (answer bool, ok bool) {
	lower := strings.ToLower(text)
	switch {
	case affirmativeRE.MatchString(lower):
		return true, true
	case negativeRE.MatchString(lower):
		return false, true
	default:
		return false, false
	}
}

// OptionLetter returns the first standalone A-D letter, uppercased.
func OptionLetter(text string) (string, bool) {
	match := optionRE.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return strings.ToUpper(match[1]), true
}

// FreeText accepts any input longer than one character after trimming.
func FreeText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) <= 1 {
		return "", false
	}
	return trimmed, true
}

// IsGreeting reports whether text contains hi, hello or hey as a word.
func IsGreeting(text string) bool {
	return greetingRE.MatchString(strings.ToLower(text))
}

// IsExit reports whether text contains one of the exit keywords as a word.
func IsExit(text string) bool {
	return exitRE.MatchString(strings.ToLower(text))
}
