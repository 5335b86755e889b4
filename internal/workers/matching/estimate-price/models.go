// internal/workers/matching/estimate-price/models.go
package estimateprice

import "marketplace-workers/internal/models"

type Input struct {
	Request      models.ServiceRequest `json:"request"`
	Professional models.Professional   `json:"professional"`
	// Preset is "matching" or "bidding"; empty uses the configured default.
	Preset         string   `json:"preset,omitempty"`
	TravelFeePerKm *float64 `json:"travelFeePerKm,omitempty"`
}

type Output struct {
	Price         float64               `json:"price"`
	Breakdown     models.PriceBreakdown `json:"breakdown"`
	TotalPrice    float64               `json:"totalPrice"`
	DistanceKm    float64               `json:"distanceKm"`
	DistanceLabel string                `json:"distanceLabel"`
	IsEmergency   bool                  `json:"isEmergency"`
	Severity      models.Severity       `json:"severity"`
	Preset        string                `json:"preset"`
}
