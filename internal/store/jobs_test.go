package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/models"
)

func newJobStoreMock(t *testing.T) (*JobStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewJobStore(db), mock
}

func TestJobStore_GetJob(t *testing.T) {
	store, mock := newJobStoreMock(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "title", "required_skills", "longitude", "latitude", "urgency",
		"budget_min", "budget_max", "status", "assigned_worker_ids", "created_at",
	}).AddRow(
		"job-1", "Bathroom renovation", "{plumbing,tiling}",
		77.5946, 12.9716, "high", 500.0, 1500.0, "open", "{}", created,
	)

	mock.ExpectQuery(`SELECT id, title, required_skills`).
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := store.GetJob(context.Background(), "job-1")
	require.NoError(t, err)

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, []string{"plumbing", "tiling"}, job.RequiredSkills)
	assert.Equal(t, models.UrgencyHigh, job.Urgency)
	assert.Equal(t, models.JobStatusOpen, job.Status)
	require.NotNil(t, job.Location)
	assert.Equal(t, 77.5946, job.Location.Longitude)
	assert.Equal(t, 12.9716, job.Location.Latitude)
	assert.Equal(t, 1500.0, job.BudgetMax)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobStore_GetJob_NullLocation(t *testing.T) {
	store, mock := newJobStoreMock(t)

	rows := sqlmock.NewRows([]string{
		"id", "title", "required_skills", "longitude", "latitude", "urgency",
		"budget_min", "budget_max", "status", "assigned_worker_ids", "created_at",
	}).AddRow(
		"job-2", "Remote consultation", "{plumbing}",
		nil, nil, "low", 100.0, 200.0, "open", "{}", time.Now(),
	)

	mock.ExpectQuery(`SELECT id, title, required_skills`).
		WithArgs("job-2").
		WillReturnRows(rows)

	job, err := store.GetJob(context.Background(), "job-2")
	require.NoError(t, err)
	assert.Nil(t, job.Location)
}

func TestJobStore_GetJob_NotFound(t *testing.T) {
	store, mock := newJobStoreMock(t)

	mock.ExpectQuery(`SELECT id, title, required_skills`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetJob(context.Background(), "missing")
	require.Error(t, err)

	var stdErr *errs.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errs.ErrCodeJobNotFound, stdErr.Code)
	assert.Equal(t, "Job not found", stdErr.Message)
}

func TestJobStore_GetJob_QueryError(t *testing.T) {
	store, mock := newJobStoreMock(t)

	mock.ExpectQuery(`SELECT id, title, required_skills`).
		WithArgs("job-1").
		WillReturnError(assert.AnError)

	_, err := store.GetJob(context.Background(), "job-1")
	require.Error(t, err)

	var stdErr *errs.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errs.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
