// internal/models/enums.go
package models

import (
	"fmt"
	"strings"
)

// Accessibility is how physically demanding the job site is. The same scale
// expresses a professional's difficulty tolerance.
type Accessibility string

const (
	AccessibilityEasy   Accessibility = "easy"
	AccessibilityMedium Accessibility = "medium"
	AccessibilityHard   Accessibility = "hard"
)

// ParseAccessibility normalises s; the empty string maps to easy.
func ParseAccessibility(s string) (Accessibility, error) {
	a := Accessibility(strings.ToLower(strings.TrimSpace(s)))
	if a == "" {
		return AccessibilityEasy, nil
	}
	if !a.Valid() {
		return "", &ValidationError{Field: "accessibility", Reason: fmt.Sprintf("unknown value %q", s)}
	}
	return a, nil
}

func (a Accessibility) Valid() bool {
	switch a {
	case AccessibilityEasy, AccessibilityMedium, AccessibilityHard:
		return true
	default:
		return false
	}
}

// Ordinal returns easy=1, medium=2, hard=3. Unknown values rank as easy.
func (a Accessibility) Ordinal() int {
	switch a {
	case AccessibilityMedium:
		return 2
	case AccessibilityHard:
		return 3
	default:
		return 1
	}
}

func (a Accessibility) String() string { return string(a) }

type Complexity string

const (
	ComplexityStandard Complexity = "standard"
	ComplexityComplex  Complexity = "complex"
	ComplexityCritical Complexity = "critical"
)

func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return ComplexityStandard, nil
	}
	if !c.Valid() {
		return "", &ValidationError{Field: "complexity", Reason: fmt.Sprintf("unknown value %q", s)}
	}
	return c, nil
}

func (c Complexity) Valid() bool {
	switch c {
	case ComplexityStandard, ComplexityComplex, ComplexityCritical:
		return true
	default:
		return false
	}
}

func (c Complexity) String() string { return string(c) }

type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyPlanned   Urgency = "planned"
)

func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if u == "" {
		return UrgencyPlanned, nil
	}
	if !u.Valid() {
		return "", &ValidationError{Field: "urgency", Reason: fmt.Sprintf("unknown value %q", s)}
	}
	return u, nil
}

func (u Urgency) Valid() bool {
	return u == UrgencyImmediate || u == UrgencyPlanned
}

func (u Urgency) String() string { return string(u) }

// Severity is derived from free text, never supplied by the caller.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) String() string { return string(s) }
