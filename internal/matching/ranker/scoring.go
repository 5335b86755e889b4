// internal/matching/ranker/scoring.go
package ranker

import (
	"fmt"
	"math"

	"marketplace-workers/internal/models"
)

const (
	maxReasons = 3

	emergencyModeBonus = 15.0
	fastResponseBonus  = 10.0
	rapidResponseBonus = 5.0
	fastResponseMins   = 10
	rapidResponseMins  = 5
)

// Reputation scores rating, review volume, completed jobs and experience,
// each term saturating at its cap. The result is 0-100.
func Reputation(p models.Professional) float64 {
	return 50*(p.Rating/5) +
		20*math.Min(float64(p.ReviewCount)/100, 1) +
		15*math.Min(float64(p.CompletedJobs)/500, 1) +
		15*math.Min(float64(p.YearsExperience)/10, 1)
}

// EmergencyBonus is added on top of the weighted score when the request is an
// emergency. Only emergency-mode professionals earn it; response-time
// bonuses stack on the base bonus.
func EmergencyBonus(p models.Professional, emergency bool) float64 {
	if !emergency || !p.EmergencyMode {
		return 0
	}
	bonus := emergencyModeBonus
	if p.ResponseTimeMinutes <= fastResponseMins {
		bonus += fastResponseBonus
	}
	if p.ResponseTimeMinutes <= rapidResponseMins {
		bonus += rapidResponseBonus
	}
	return bonus
}

// composite combines the sub-scores and the bonus, clamped to [0,100] and
// rounded to one decimal.
func composite(w Weights, b models.ScoreBreakdown) float64 {
	s := w.Proximity*b.Proximity +
		w.Difficulty*b.DifficultyMatch +
		w.Reputation*b.Reputation +
		w.Semantic*b.SemanticMatch +
		b.EmergencyBonus
	s = math.Max(0, math.Min(100, s))
	return math.Round(s*10) / 10
}

// matchReasons explains a ranking in fixed priority order, at most three.
func matchReasons(req models.ServiceRequest, p models.Professional, distanceKm float64, label string, emergency bool) []string {
	reasons := make([]string, 0, maxReasons)
	add := func(r string) {
		if len(reasons) < maxReasons {
			reasons = append(reasons, r)
		}
	}

	switch {
	case distanceKm <= 2:
		add("Very close, " + label + " away")
	case distanceKm <= 5:
		add("Nearby, " + label + " away")
	case distanceKm <= 10:
		add("Within 10 km")
	}

	switch {
	case p.Rating >= 4.8:
		add(fmt.Sprintf("Top rated (%.1f from %d reviews)", p.Rating, p.ReviewCount))
	case p.Rating >= 4.5:
		add(fmt.Sprintf("Highly rated (%.1f)", p.Rating))
	}

	if emergency && p.EmergencyMode {
		add("Available for emergency call-outs")
	}
	if p.ResponseTimeMinutes <= fastResponseMins {
		add(fmt.Sprintf("Responds within %d min", p.ResponseTimeMinutes))
	}
	if req.Complexity != models.ComplexityStandard && p.Tolerance() == models.AccessibilityHard {
		add("Experienced with " + req.Complexity.String() + " jobs")
	}
	if p.YearsExperience >= 10 {
		add(fmt.Sprintf("%d years of experience", p.YearsExperience))
	}
	if p.CompletedJobs >= 500 {
		add(fmt.Sprintf("%d+ jobs completed", p.CompletedJobs))
	}
	return reasons
}
