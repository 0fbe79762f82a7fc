// internal/store/jobs.go
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/models"
)

// JobStore reads job projections from PostgreSQL.
type JobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

const getJobQuery = `
	SELECT id, title, required_skills, longitude, latitude, urgency,
	       budget_min, budget_max, status, assigned_worker_ids, created_at
	FROM jobs WHERE id = $1`

// GetJob returns the job projection or a JOB_NOT_FOUND error.
func (s *JobStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx, getJobQuery, id)

	var job models.Job
	var lon, lat sql.NullFloat64
	var skills, assigned pq.StringArray

	err := row.Scan(&job.ID, &job.Title, &skills, &lon, &lat, &job.Urgency,
		&job.BudgetMin, &job.BudgetMax, &job.Status, &assigned, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewJobNotFoundError(id)
		}
		return nil, errs.NewQueryExecutionFailedError("get_job", err)
	}

	job.RequiredSkills = skills
	job.AssignedWorkerIDs = assigned
	if lon.Valid && lat.Valid {
		job.Location = &models.GeoPoint{Longitude: lon.Float64, Latitude: lat.Float64}
	}

	return &job, nil
}
