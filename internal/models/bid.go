// internal/models/bid.go
package models

// ScoreBreakdown holds the unweighted sub-scores, each 0-100, plus the
// emergency bonus added on top of the weighted sum.
type ScoreBreakdown struct {
	Proximity       float64 `json:"proximity"`
	DifficultyMatch float64 `json:"difficultyMatch"`
	Reputation      float64 `json:"reputation"`
	SemanticMatch   float64 `json:"semanticMatch"`
	EmergencyBonus  float64 `json:"emergencyBonus"`
}

type PriceBreakdown struct {
	Base    float64 `json:"base"`
	Travel  float64 `json:"travel"`
	Urgency float64 `json:"urgency"`
}

type RankedProfessional struct {
	Professional   Professional   `json:"professional"`
	DistanceKm     float64        `json:"distanceKm"`
	DistanceLabel  string         `json:"distanceLabel"`
	Score          float64        `json:"score"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
	MatchReasons   []string       `json:"matchReasons"`
	Caveats        []string       `json:"caveats,omitempty"`
	EstimatedPrice float64        `json:"estimatedPrice"`
	Price          PriceBreakdown `json:"priceBreakdown"`
	TotalPrice     float64        `json:"totalPrice"`
	Excluded       bool           `json:"excluded,omitempty"`
}

type Availability string

const (
	AvailableNow   Availability = "available_now"
	AvailableLater Availability = "available_later"
)

const (
	BadgeEmergencyReady = "emergency_ready"
	BadgeTopRated       = "top_rated"
	BadgeFastResponse   = "fast_response"
	BadgeVeteran        = "veteran"
)

type Bid struct {
	ID             string         `json:"id"`
	ProfessionalID string         `json:"professionalId"`
	ProviderName   string         `json:"providerName"`
	Rating         float64        `json:"rating"`
	ReviewCount    int            `json:"reviewCount"`
	Price          PriceBreakdown `json:"priceBreakdown"`
	TotalPrice     float64        `json:"totalPrice"`
	DistanceKm     float64        `json:"distanceKm"`
	DistanceLabel  string         `json:"distanceLabel"`
	ETAMinutes     int            `json:"etaMinutes"`
	Availability   Availability   `json:"availability"`
	Score          float64        `json:"score"`
	Badges         []string       `json:"badges"`
	MatchReasons   []string       `json:"matchReasons"`
	EmergencyReady bool           `json:"emergencyReady"`
}

// Exclusion records why a candidate was dropped by a filter.
type Exclusion struct {
	ProfessionalID string `json:"professionalId"`
	Filter         string `json:"filter"`
	Reason         string `json:"reason"`
}

type Diagnostics struct {
	Mode                string      `json:"mode"`
	FiltersApplied      []string    `json:"filtersApplied"`
	TotalFound          int         `json:"totalFound"`
	IsEmergencyDetected bool        `json:"isEmergencyDetected"`
	EmergencySource     string      `json:"emergencySource"`
	Severity            Severity    `json:"severity"`
	Exclusions          []Exclusion `json:"exclusions,omitempty"`
}
