// internal/store/tasks.go
package store

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/models"
)

// TaskStore persists the outcome of a team optimization run.
type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const insertTaskQuery = `
	INSERT INTO tasks (id, job_id, worker_id, role, payout, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

const markWorkersAssignedQuery = `
	UPDATE worker_profiles SET is_available = FALSE WHERE worker_id = ANY($1)`

const updateJobAssignmentQuery = `
	UPDATE jobs SET status = $1, assigned_worker_ids = $2 WHERE id = $3`

// CreateAssignments writes all task records, flips the assigned
// workers' availability flags, and transitions the job to assigned, in
// one transaction so a mid-loop failure cannot leave a partial team.
func (s *TaskStore) CreateAssignments(ctx context.Context, job *models.Job, tasks []models.Task) (*models.Job, error) {
	if len(tasks) == 0 {
		return job, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errs.NewTaskCreateFailedError(err)
	}
	defer tx.Rollback()

	workerIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx, insertTaskQuery,
			t.ID, t.JobID, t.WorkerID, t.Role, t.Payout, t.Status, t.CreatedAt); err != nil {
			return nil, errs.NewTaskCreateFailedError(err)
		}
		workerIDs = append(workerIDs, t.WorkerID)
	}

	if _, err := tx.ExecContext(ctx, markWorkersAssignedQuery, pq.Array(workerIDs)); err != nil {
		return nil, errs.NewTaskCreateFailedError(err)
	}

	updated := *job
	updated.Status = models.JobStatusAssigned
	updated.AssignedWorkerIDs = append(append([]string(nil), job.AssignedWorkerIDs...), workerIDs...)

	if _, err := tx.ExecContext(ctx, updateJobAssignmentQuery,
		updated.Status, pq.Array(updated.AssignedWorkerIDs), updated.ID); err != nil {
		return nil, errs.NewTaskCreateFailedError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, errs.NewTaskCreateFailedError(err)
	}

	return &updated, nil
}
