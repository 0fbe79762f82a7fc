// internal/models/job.go
package models

import "time"

// Urgency tiers understood by the matching engine.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// JobStatus values persisted on a job record.
type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusAssigned  JobStatus = "assigned"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// GeoPoint is a WGS84 coordinate pair, longitude first to match the
// stored column order.
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Job is the read projection of a job record consumed by the matching
// subsystem. The job store owns the persisted schema.
type Job struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	RequiredSkills    []string  `json:"requiredSkills"`
	Location          *GeoPoint `json:"location,omitempty"`
	Urgency           Urgency   `json:"urgency"`
	BudgetMin         float64   `json:"budgetMin"`
	BudgetMax         float64   `json:"budgetMax"`
	Status            JobStatus `json:"status"`
	AssignedWorkerIDs []string  `json:"assignedWorkerIds"`
	CreatedAt         time.Time `json:"createdAt"`
}
