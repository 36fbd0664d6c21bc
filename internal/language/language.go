// Package language normalizes language identifiers to the ISO 639-1 codes
// WhisperX expects on its --language flag.
package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Full word forms users commonly put in config files; BCP 47 parsing covers
// the code forms.
var byWord = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"ukrainian":  "uk",
}

// ToISO2 converts a language identifier ("en", "en-US", "eng", "english")
// to its two-letter ISO 639-1 code. Unknown or empty values return "" so
// callers can omit the language flag and let WhisperX auto-detect.
func ToISO2(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ""
	}
	if code, ok := byWord[normalized]; ok {
		return code
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	if code := base.String(); len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName renders a language identifier for log lines and reports,
// falling back to a title-cased echo of the input when it cannot be
// normalized.
func DisplayName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if code := ToISO2(trimmed); code != "" {
		for word, mapped := range byWord {
			if mapped == code {
				return cases.Title(language.English).String(word)
			}
		}
		return code
	}
	return cases.Title(language.English).String(trimmed)
}
