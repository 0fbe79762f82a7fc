// internal/models/task.go
package models

import "time"

// TaskStatus values persisted on a task record.
type TaskStatus string

const (
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// Task binds a worker to a job under a named role. Tasks are the
// persisted artifact of a team optimization run.
type Task struct {
	ID        string     `json:"id"`
	JobID     string     `json:"jobId"`
	WorkerID  string     `json:"workerId"`
	Role      string     `json:"role"`
	Payout    float64    `json:"payout"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Role pairs a human-readable role label with the skill it requires.
// Supplied by the caller of the team optimizer; not persisted itself.
type Role struct {
	Role  string `json:"role" binding:"required"`
	Skill string `json:"skill" binding:"required"`
}
