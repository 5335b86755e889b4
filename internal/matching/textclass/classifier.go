// internal/matching/textclass/classifier.go
package textclass

import (
	"strings"
	"unicode"

	"marketplace-workers/internal/models"
)

// Emergency sources reported by ResolveEmergency.
const (
	SourceExplicit = "explicit"
	SourceText     = "text"
	SourceNone     = "none"
)

// Emergency is the resolved urgency of a request.
type Emergency struct {
	Detected bool   `json:"detected"`
	Source   string `json:"source"`
	Keyword  string `json:"keyword,omitempty"`
}

// MatchEmergencyKeyword returns the first emergency keyword contained in text.
func MatchEmergencyKeyword(text string) (string, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return "", false
	}
	for _, kw := range emergencyKeywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// DetectEmergency reports whether text contains any emergency keyword.
func DetectEmergency(text string) bool {
	_, ok := MatchEmergencyKeyword(text)
	return ok
}

// DetectSeverity returns the highest tier with a keyword hit, low otherwise.
func DetectSeverity(text string) models.Severity {
	lower := strings.ToLower(text)
	for _, tier := range severityTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(lower, kw) {
				return tier.level
			}
		}
	}
	return models.SeverityLow
}

// ResolveEmergency applies the caller's explicit flag when present and falls
// back to keyword detection otherwise.
func ResolveEmergency(explicit *bool, text string) Emergency {
	if explicit != nil {
		return Emergency{Detected: *explicit, Source: SourceExplicit}
	}
	if kw, ok := MatchEmergencyKeyword(text); ok {
		return Emergency{Detected: true, Source: SourceText, Keyword: kw}
	}
	return Emergency{Source: SourceNone}
}

// Synonyms returns the literal synonyms of an issue tag, or nil.
func Synonyms(issueTag string) []string {
	list, ok := issueSynonyms[strings.ToLower(strings.TrimSpace(issueTag))]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// SynonymsIn returns the distinct synonyms of issueTag that occur in text, in
// table order.
func SynonymsIn(issueTag, text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, syn := range issueSynonyms[strings.ToLower(strings.TrimSpace(issueTag))] {
		if strings.Contains(lower, syn) {
			found = append(found, syn)
		}
	}
	return found
}

// EmergencyKeywords returns a copy of the keyword list.
func EmergencyKeywords() []string {
	out := make([]string, len(emergencyKeywords))
	copy(out, emergencyKeywords)
	return out
}

// Tokenize lower-cases text and splits it on anything that is not a letter or
// digit. Stop words and tokens shorter than three runes are dropped; the
// result is de-duplicated and keeps first-seen order.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
