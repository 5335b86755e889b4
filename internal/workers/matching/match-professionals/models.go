// internal/workers/matching/match-professionals/models.go
package matchprofessionals

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
	RankedProfessionals     []models.RankedProfessional `json:"rankedProfessionals"`
	Bids                    []models.Bid                `json:"bids"`
	Diagnostics             models.Diagnostics          `json:"diagnostics"`
	ProfessionalsConsidered int                         `json:"professionalsConsidered"`
	SnapshotSource          string                      `json:"snapshotSource"`
}
