// internal/models/worker.go
package models

import "time"

// DefaultRating is assumed for workers with no ratings yet so that new
// profiles are not normalized to the bottom of the pool.
const DefaultRating = 4.0

// WorkerProfile is the worker-directory projection used for scoring.
// Constructed fresh per ranking request and never written back.
type WorkerProfile struct {
	WorkerID        string    `json:"workerId"`
	ProfileID       string    `json:"profileId"`
	Location        *GeoPoint `json:"location,omitempty"`
	HourlyRate      float64   `json:"hourlyRate"`
	Skills          []string  `json:"skills"`
	ExperienceYears float64   `json:"experienceYears"`
	RatingAverage   float64   `json:"ratingAverage"`
	RatingCount     int       `json:"ratingCount"`
	CompletedJobs   int       `json:"completedJobs"`
	IsAvailable     bool      `json:"isAvailable"`

	// Weekly schedule: three-letter lowercase weekdays ("mon".."sun"),
	// a working-hour window, and full-day leave dates.
	WorkingDays []string `json:"workingDays"`
	WorkStart   string   `json:"workStart"`
	WorkEnd     string   `json:"workEnd"`
	LeaveDates  []string `json:"leaveDates"` // YYYY-MM-DD
}

// Rating returns the effective rating average, applying the cold-start
// default when the worker has no ratings.
func (p *WorkerProfile) Rating() float64 {
	if p.RatingCount == 0 {
		return DefaultRating
	}
	return p.RatingAverage
}

// HasSkill reports whether the profile lists the given skill.
func (p *WorkerProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// OnLeave reports whether the given date (time-of-day ignored) matches
// one of the worker's leave dates.
func (p *WorkerProfile) OnLeave(ref time.Time) bool {
	day := ref.Format("2006-01-02")
	for _, d := range p.LeaveDates {
		if d == day {
			return true
		}
	}
	return false
}
