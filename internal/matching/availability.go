// internal/matching/availability.go
package matching

import (
	"strings"
	"time"

	"worklink-matching/internal/models"
)

// AvailabilityScore converts a worker's weekly schedule and leave dates
// into a [0,1] suitability score for a job's urgency on the given date.
//
// A leave date is a hard exclusion expressed as score 0 so the worker
// stays rankable instead of erroring out. A weekday outside the
// configured working days scores 0.6 rather than 0: the worker is still
// biddable on an off day, just less preferred. Emergency jobs penalize
// schedule friction slightly more; low-urgency jobs tolerate it.
func AvailabilityScore(p *models.WorkerProfile, urgency models.Urgency, ref time.Time) float64 {
	if p.OnLeave(ref) {
		return 0
	}

	weekday := strings.ToLower(ref.Weekday().String()[:3])
	score := 0.6
	for _, d := range p.WorkingDays {
		if d == weekday {
			score = 1.0
			break
		}
	}

	switch urgency {
	case models.UrgencyEmergency:
		score -= 0.05
	case models.UrgencyLow:
		score += 0.05
	}

	return clamp01(score)
}
