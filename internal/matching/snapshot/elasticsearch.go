// internal/matching/snapshot/elasticsearch.go
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"marketplace-workers/internal/matching/geo"
	"marketplace-workers/internal/models"
)

const DefaultIndex = "professionals"

// ElasticsearchSource runs a geo_distance search against the professionals
// index.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchSource(client *elasticsearch.Client, index string) *ElasticsearchSource {
	if index == "" {
		index = DefaultIndex
	}
	return &ElasticsearchSource{client: client, index: index}
}

type esGeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type esProfessional struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	CapabilityTags      []string    `json:"capability_tags"`
	DifficultyTolerance string      `json:"difficulty_tolerance"`
	Rating              float64     `json:"rating"`
	ReviewCount         int         `json:"review_count"`
	Location            *esGeoPoint `json:"location"`
	ResponseTimeMinutes int         `json:"response_time_minutes"`
	EmergencyMode       bool        `json:"emergency_mode"`
	HourlyRate          float64     `json:"hourly_rate"`
	YearsExperience     int         `json:"years_experience"`
	CompletedJobs       int         `json:"completed_jobs"`
	Specializations     []string    `json:"specializations"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source esProfessional `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// buildQuery filters on category and distance and sorts nearest first, so
// size keeps the closest professionals. Final ordering is left to the ranker.
func buildQuery(q Query) map[string]interface{} {
	radius := q.RadiusKm
	if radius <= 0 {
		radius = geo.DefaultMaxRadiusKm
	}
	center := map[string]interface{}{"lat": q.Center.Lat, "lon": q.Center.Lng}
	return map[string]interface{}{
		"size": q.limit(),
		"sort": []interface{}{
			map[string]interface{}{
				"_geo_distance": map[string]interface{}{
					"location":      center,
					"order":         "asc",
					"unit":          "km",
					"distance_type": "arc",
				},
			},
			map[string]interface{}{"id": "asc"},
		},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"active": true}},
					map[string]interface{}{"term": map[string]interface{}{"categories": strings.ToLower(q.Category)}},
					map[string]interface{}{
						"geo_distance": map[string]interface{}{
							"distance": fmt.Sprintf("%gkm", radius),
							"location": center,
						},
					},
				},
			},
		},
	}
}

func (s *ElasticsearchSource) Load(ctx context.Context, q Query) ([]models.Professional, error) {
	body, err := json.Marshal(buildQuery(q))
	if err != nil {
		return nil, wrapLoadErr(ctx, "encode query", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, wrapLoadErr(ctx, "search professionals", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, wrapLoadErr(ctx, "search professionals", fmt.Errorf("elasticsearch status %s", res.Status()))
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, wrapLoadErr(ctx, "decode search response", err)
	}

	out := make([]models.Professional, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		src := hit.Source
		p := models.Professional{
			ID:                  src.ID,
			Name:                src.Name,
			CapabilityTags:      src.CapabilityTags,
			DifficultyTolerance: models.Accessibility(src.DifficultyTolerance),
			Rating:              src.Rating,
			ReviewCount:         src.ReviewCount,
			ResponseTimeMinutes: src.ResponseTimeMinutes,
			EmergencyMode:       src.EmergencyMode,
			HourlyRate:          src.HourlyRate,
			YearsExperience:     src.YearsExperience,
			CompletedJobs:       src.CompletedJobs,
			Specializations:     src.Specializations,
		}
		if src.Location != nil {
			p.Location = &models.GeoPoint{Lat: src.Location.Lat, Lng: src.Location.Lon}
		}
		out = append(out, p)
	}
	return out, nil
}
