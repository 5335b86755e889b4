// internal/matching/snapshot/postgres.go
package snapshot

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"github.com/lib/pq"

	"marketplace-workers/internal/matching/geo"
	"marketplace-workers/internal/models"
)

// professionalsQuery keeps the nearest rows when the box holds more than the
// limit. $7/$8 are the centre and $9 scales longitude degrees to latitude
// degrees at the centre's latitude.
const professionalsQuery = `SELECT id, name, capability_tags, difficulty_tolerance, rating, review_count, lat, lng, response_time_minutes, emergency_mode, hourly_rate, years_experience, completed_jobs, specializations FROM professionals WHERE active = TRUE AND $1 = ANY(categories) AND lat BETWEEN $2 AND $3 AND lng BETWEEN $4 AND $5 ORDER BY (lat - $7) * (lat - $7) + ((lng - $8) * $9) * ((lng - $8) * $9), id LIMIT $6`

// PostgresSource reads professionals inside the request's bounding box.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Load(ctx context.Context, q Query) ([]models.Professional, error) {
	radius := q.RadiusKm
	if radius <= 0 {
		radius = geo.DefaultMaxRadiusKm
	}
	box := geo.BoundingBox(q.Center, radius)

	rows, err := s.db.QueryContext(ctx, professionalsQuery,
		strings.ToLower(q.Category), box.MinLat, box.MaxLat, box.MinLng, box.MaxLng, q.limit(),
		q.Center.Lat, q.Center.Lng, lngScale(q.Center.Lat))
	if err != nil {
		return nil, wrapLoadErr(ctx, "query professionals", err)
	}
	defer rows.Close()

	var out []models.Professional
	for rows.Next() {
		var (
			p         models.Professional
			tolerance sql.NullString
			lat, lng  sql.NullFloat64
			tags      pq.StringArray
			specs     pq.StringArray
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &tags, &tolerance, &p.Rating, &p.ReviewCount, &lat, &lng,
			&p.ResponseTimeMinutes, &p.EmergencyMode, &p.HourlyRate, &p.YearsExperience,
			&p.CompletedJobs, &specs,
		); err != nil {
			return nil, wrapLoadErr(ctx, "scan professional", err)
		}
		p.CapabilityTags = []string(tags)
		p.Specializations = []string(specs)
		if tolerance.Valid {
			p.DifficultyTolerance = models.Accessibility(tolerance.String)
		}
		if lat.Valid && lng.Valid {
			p.Location = &models.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapLoadErr(ctx, "iterate professionals", err)
	}
	return out, nil
}

func lngScale(lat float64) float64 {
	return math.Cos(lat * math.Pi / 180)
}
