// internal/models/professional.go
package models

import (
	"fmt"
	"math"
	"strings"
)

// Professional is a read-only snapshot row. The engine never mutates it.
type Professional struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	CapabilityTags      []string      `json:"capabilityTags"`
	DifficultyTolerance Accessibility `json:"difficultyTolerance,omitempty"`
	Rating              float64       `json:"rating"`
	ReviewCount         int           `json:"reviewCount"`
	Location            *GeoPoint     `json:"location,omitempty"`
	ResponseTimeMinutes int           `json:"responseTimeMinutes"`
	EmergencyMode       bool          `json:"emergencyMode"`
	HourlyRate          float64       `json:"hourlyRate"`
	YearsExperience     int           `json:"yearsExperience"`
	CompletedJobs       int           `json:"completedJobs"`
	Specializations     []string      `json:"specializations,omitempty"`
}

// Validate rejects values that would poison scoring or sorting.
func (p Professional) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	if math.IsNaN(p.Rating) || math.IsInf(p.Rating, 0) || p.Rating < 0 || p.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: fmt.Sprintf("rating %v out of range [0, 5]", p.Rating)}
	}
	if math.IsNaN(p.HourlyRate) || math.IsInf(p.HourlyRate, 0) || p.HourlyRate <= 0 {
		return &ValidationError{Field: "hourlyRate", Reason: fmt.Sprintf("hourly rate %v must be a positive finite number", p.HourlyRate)}
	}
	if p.ReviewCount < 0 || p.CompletedJobs < 0 || p.YearsExperience < 0 || p.ResponseTimeMinutes < 0 {
		return &ValidationError{Field: "counters", Reason: "negative count"}
	}
	if _, err := ParseAccessibility(string(p.DifficultyTolerance)); err != nil {
		return &ValidationError{Field: "difficultyTolerance", Reason: fmt.Sprintf("unknown value %q", p.DifficultyTolerance)}
	}
	if p.Location != nil {
		if err := p.Location.Validate(); err != nil {
			return withPrefix("location", err)
		}
	}
	return nil
}

// Tolerance returns the canonical difficulty tolerance, defaulting to easy.
// Unparseable values also read as easy; Validate rejects them first.
func (p Professional) Tolerance() Accessibility {
	a, err := ParseAccessibility(string(p.DifficultyTolerance))
	if err != nil {
		return AccessibilityEasy
	}
	return a
}

// Normalize returns a copy with the tolerance in canonical form.
func (p Professional) Normalize() Professional {
	p.DifficultyTolerance = p.Tolerance()
	return p
}

func (p Professional) Point() GeoPoint {
	return LocationOrDefault(p.Location)
}

// ValidateProfessionals validates every entry, reporting the first failure
// with its index.
func ValidateProfessionals(pros []Professional) error {
	for i, p := range pros {
		if err := p.Validate(); err != nil {
			return withPrefix(fmt.Sprintf("professionals[%d]", i), err)
		}
	}
	return nil
}
