// internal/workers/matching/classify-request/models.go
package classifyrequest

import "marketplace-workers/internal/models"

type Input struct {
	Request models.ServiceRequest `json:"request"`
}

type Output struct {
	IsEmergency      bool            `json:"isEmergency"`
	EmergencySource  string          `json:"emergencySource"`
	EmergencyKeyword string          `json:"emergencyKeyword,omitempty"`
	Severity         models.Severity `json:"severity"`
	Category         string          `json:"category"`
	IssueSynonyms    []string        `json:"issueSynonyms"`
	CapabilityTags   []string        `json:"capabilityTags"`
}
