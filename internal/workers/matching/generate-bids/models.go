// internal/workers/matching/generate-bids/models.go
package generatebids

import (
	"marketplace-workers/internal/models"
	"marketplace-workers/internal/workers/matching/matchjob"
)

type Input struct {
	Request       models.ServiceRequest `json:"request"`
	Professionals []models.Professional `json:"professionals,omitempty"`
	Options       *matchjob.Options     `json:"options,omitempty"`
}

type Output struct {
	Bids           []models.Bid       `json:"bids"`
	BidCount       int                `json:"bidCount"`
	HasBids        bool               `json:"hasBids"`
	Diagnostics    models.Diagnostics `json:"diagnostics"`
	SnapshotSource string             `json:"snapshotSource"`
}
