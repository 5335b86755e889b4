// internal/models/request.go
package models

import "strings"

// ServiceRequest is a client's job as it reaches the matching engine. The
// location is expected to be geocoded upstream; nil falls back to
// DefaultLocation.
type ServiceRequest struct {
	Category      string        `json:"category"`
	Description   string        `json:"description"`
	IssueTag      string        `json:"issueTag,omitempty"`
	Accessibility Accessibility `json:"accessibility,omitempty"`
	Complexity    Complexity    `json:"complexity,omitempty"`
	Urgency       Urgency       `json:"urgency,omitempty"`
	Location      *GeoPoint     `json:"location,omitempty"`
	Emergency     *bool         `json:"emergency,omitempty"`
}

// Normalize returns a copy with lower-cased tags and defaulted enums, or a
// validation error for malformed values. The receiver is not modified.
func (r ServiceRequest) Normalize() (ServiceRequest, error) {
	out := r
	out.Category = strings.ToLower(strings.TrimSpace(r.Category))
	out.IssueTag = strings.ToLower(strings.TrimSpace(r.IssueTag))

	var err error
	if out.Accessibility, err = ParseAccessibility(string(r.Accessibility)); err != nil {
		return ServiceRequest{}, withPrefix("request", err)
	}
	if out.Complexity, err = ParseComplexity(string(r.Complexity)); err != nil {
		return ServiceRequest{}, withPrefix("request", err)
	}
	if out.Urgency, err = ParseUrgency(string(r.Urgency)); err != nil {
		return ServiceRequest{}, withPrefix("request", err)
	}
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return ServiceRequest{}, withPrefix("request.location", err)
		}
		loc := *r.Location
		out.Location = &loc
	}
	return out, nil
}

// Point returns the request location or the fallback.
func (r ServiceRequest) Point() GeoPoint {
	return LocationOrDefault(r.Location)
}

// Text is the combined free text the classifiers run over.
func (r ServiceRequest) Text() string {
	if r.IssueTag == "" {
		return r.Description
	}
	return r.Description + " " + r.IssueTag
}
