package filter

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageFilter keeps text written in one of a set of languages.
type LanguageFilter struct {
	detector lingua.LanguageDetector
	allowed  map[lingua.Language]struct{}
}

// NewLanguageFilter builds a detector for the given ISO 639-1 codes
// ("en", "de", ...). With a single code the detector considers every
// language lingua knows, since it needs at least two candidates.
func NewLanguageFilter(codes []string) (*LanguageFilter, error) {
	allowed := make(map[lingua.Language]struct{}, len(codes))
	langs := make([]lingua.Language, 0, len(codes))
	for _, code := range codes {
		lang, ok := languageFromCode(code)
		if !ok {
			return nil, fmt.Errorf("unknown language code %q", code)
		}
		if _, dup := allowed[lang]; dup {
			continue
		}
		allowed[lang] = struct{}{}
		langs = append(langs, lang)
	}

	builder := lingua.NewLanguageDetectorBuilder()
	var detector lingua.LanguageDetector
	if len(langs) >= 2 {
		detector = builder.FromLanguages(langs...).Build()
	} else {
		detector = builder.FromAllLanguages().Build()
	}

	return &LanguageFilter{detector: detector, allowed: allowed}, nil
}

func languageFromCode(code string) (lingua.Language, bool) {
	code = strings.TrimSpace(code)
	for _, lang := range lingua.AllLanguages() {
		if strings.EqualFold(lang.IsoCode639_1().String(), code) {
			return lang, true
		}
	}
	return lingua.Unknown, false
}

// Allowed reports whether text is in an allowed language. Text whose
// language cannot be determined is kept.
func (l *LanguageFilter) Allowed(text string) bool {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return true
	}
	_, allowed := l.allowed[lang]
	return allowed
}
