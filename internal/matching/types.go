// internal/matching/types.go
package matching

import "worklink-matching/internal/models"

// ScoreBreakdown carries the six normalized sub-scores plus the
// cold-start adjustment, each in [0,1].
type ScoreBreakdown struct {
	Distance     float64 `json:"distance"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Experience   float64 `json:"experience"`
	Skill        float64 `json:"skill"`
	Availability float64 `json:"availability"`
	ColdStart    float64 `json:"coldStart"`
}

// RankedWorker is one entry of a ranking response: identity, composite
// score, full sub-score breakdown, and the raw signals behind it.
type RankedWorker struct {
	WorkerID        string         `json:"workerId"`
	ProfileID       string         `json:"profileId"`
	Score           float64        `json:"score"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	DistanceKm      float64        `json:"distanceKm"`
	HourlyRate      float64        `json:"hourlyRate"`
	Rating          float64        `json:"rating"`
	ExperienceYears float64        `json:"experienceYears"`
	Skills          []string       `json:"skills"`
	IsAvailable     bool           `json:"isAvailable"`
}

// RankResult is the full output of a ranking call. The weight vector is
// echoed back for UI transparency and debugging.
type RankResult struct {
	Weights Weights        `json:"weights"`
	Ranked  []RankedWorker `json:"ranked"`
}

// Assignment pairs a role label with the worker chosen for it.
type Assignment struct {
	Role   string       `json:"role"`
	Worker RankedWorker `json:"worker"`
}

// TeamResult is the output of a team optimization run. Assignments and
// Tasks are empty (not nil) when the job cannot be staffed yet.
type TeamResult struct {
	Assignments []Assignment  `json:"assignments"`
	Tasks       []models.Task `json:"tasks"`
	Job         *models.Job   `json:"job"`
}
