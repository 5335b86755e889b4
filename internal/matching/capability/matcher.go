// internal/matching/capability/matcher.go
package capability

import (
	"sort"
	"strings"

	"marketplace-workers/internal/matching/textclass"
	"marketplace-workers/internal/models"
)

// Strategy selects how a request is turned into the tag set professionals are
// matched against.
type Strategy string

const (
	// StrategySynonym expands the detailed category table with the issue tag
	// and its literal synonyms.
	StrategySynonym Strategy = "synonym"
	// StrategyCategory uses the coarse category table only.
	StrategyCategory Strategy = "category"
)

const (
	scoreExactFit    = 100.0
	scoreOverQual    = 80.0
	scoreUnderQual   = 40.0
	semanticDirect   = 40.0
	semanticSynonym  = 10.0
	semanticToken    = 5.0
	semanticTokenCap = 20.0
	semanticCap      = 100.0
)

// TagSet is a lower-cased set of capability tags.
type TagSet map[string]struct{}

func newTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s.add(t)
	}
	return s
}

func (s TagSet) add(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag != "" {
		s[tag] = struct{}{}
	}
}

func (s TagSet) Contains(tag string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ResolveTags builds the tag set for req. An unmapped category yields an
// empty set, whatever the issue tag.
func ResolveTags(req models.ServiceRequest, strategy Strategy) TagSet {
	category := strings.ToLower(strings.TrimSpace(req.Category))

	if strategy == StrategyCategory {
		tags, ok := coarseCategoryTags[category]
		if !ok {
			return TagSet{}
		}
		return newTagSet(tags...)
	}

	tags, ok := categoryTags[category]
	if !ok {
		return TagSet{}
	}
	set := newTagSet(tags...)
	if req.IssueTag != "" {
		set.add(req.IssueTag)
		for _, syn := range textclass.Synonyms(req.IssueTag) {
			set.add(syn)
		}
	}
	return set
}

// IsEligible reports whether any of the professional's tags is in tags.
func IsEligible(p models.Professional, tags TagSet) bool {
	for _, t := range p.CapabilityTags {
		if tags.Contains(t) {
			return true
		}
	}
	return false
}

// DifficultyResult is the accessibility compatibility of one professional.
type DifficultyResult struct {
	Score    float64
	Excluded bool
	Caveat   string
}

// MatchDifficulty compares the job's accessibility with a professional's
// tolerance. A hard job is never offered to an easy-only professional.
func MatchDifficulty(required, tolerance models.Accessibility) DifficultyResult {
	req, tol := required.Ordinal(), tolerance.Ordinal()

	switch {
	case required == models.AccessibilityHard && tol == models.AccessibilityEasy.Ordinal():
		return DifficultyResult{
			Score:    0,
			Excluded: true,
			Caveat:   "cannot handle hard-access jobs",
		}
	case tol == req:
		return DifficultyResult{Score: scoreExactFit}
	case tol > req:
		return DifficultyResult{Score: scoreOverQual}
	default:
		return DifficultyResult{
			Score:  scoreUnderQual,
			Caveat: "usually handles " + tolerance.String() + " access; this job is " + required.String(),
		}
	}
}

// SemanticScore is a keyword-overlap proxy between the request text and the
// professional's declared capabilities, 0-100.
func SemanticScore(req models.ServiceRequest, p models.Professional) float64 {
	score := 0.0

	issue := strings.ToLower(strings.TrimSpace(req.IssueTag))
	if issue != "" && newTagSet(p.CapabilityTags...).Contains(issue) {
		score += semanticDirect
	}

	score += semanticSynonym * float64(len(textclass.SynonymsIn(issue, req.Description)))

	vocab := make(map[string]struct{})
	for _, t := range p.CapabilityTags {
		for _, w := range textclass.Tokenize(t) {
			vocab[w] = struct{}{}
		}
	}
	for _, s := range p.Specializations {
		for _, w := range textclass.Tokenize(s) {
			vocab[w] = struct{}{}
		}
	}
	overlap := 0.0
	for _, tok := range textclass.Tokenize(req.Description) {
		if _, ok := vocab[tok]; ok {
			overlap += semanticToken
		}
	}
	if overlap > semanticTokenCap {
		overlap = semanticTokenCap
	}
	score += overlap

	if score > semanticCap {
		return semanticCap
	}
	return score
}
