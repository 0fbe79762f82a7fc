package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklink-matching/internal/common/config"
	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/matching"
	"worklink-matching/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// In-memory collaborators
// ==========================

type memJobs struct {
	job *models.Job
}

func (m *memJobs) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if m.job == nil || m.job.ID != id {
		return nil, errs.NewJobNotFoundError(id)
	}
	return m.job, nil
}

type memDirectory struct {
	profiles []models.WorkerProfile
}

func (m *memDirectory) FindCandidates(ctx context.Context, skills []string) ([]models.WorkerProfile, error) {
	return m.profiles, nil
}

type memTasks struct{}

func (memTasks) CreateAssignments(ctx context.Context, job *models.Job, tasks []models.Task) (*models.Job, error) {
	updated := *job
	updated.Status = models.JobStatusAssigned
	for _, t := range tasks {
		updated.AssignedWorkerIDs = append(updated.AssignedWorkerIDs, t.WorkerID)
	}
	return &updated, nil
}

type memReservations struct{}

func (memReservations) Reserve(ctx context.Context, workerID, jobID string) (bool, error) {
	return true, nil
}

func (memReservations) Release(ctx context.Context, workerID string) error { return nil }

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func fixtureJob() *models.Job {
	return &models.Job{
		ID:             "job-1",
		Title:          "Bathroom renovation",
		RequiredSkills: []string{"plumbing", "tiling"},
		Location:       &models.GeoPoint{Longitude: 77.5946, Latitude: 12.9716},
		Urgency:        models.UrgencyMedium,
		BudgetMax:      1500,
		Status:         models.JobStatusOpen,
	}
}

func fixtureProfiles() []models.WorkerProfile {
	base := models.WorkerProfile{
		HourlyRate:      40,
		Skills:          []string{"plumbing", "tiling"},
		ExperienceYears: 5,
		RatingAverage:   4.5,
		RatingCount:     10,
		CompletedJobs:   10,
		IsAvailable:     true,
		WorkingDays:     []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"},
	}

	near := base
	near.WorkerID, near.ProfileID = "w-near", "p-near"
	near.Location = &models.GeoPoint{Longitude: 77.60, Latitude: 12.97}

	far := base
	far.WorkerID, far.ProfileID = "w-far", "p-far"
	far.Location = &models.GeoPoint{Longitude: 77.75, Latitude: 13.10}

	return []models.WorkerProfile{near, far}
}

func newTestServer(t *testing.T, pingers map[string]Pinger) *Server {
	log := logger.NewTestLogger(t)
	jobs := &memJobs{job: fixtureJob()}
	scorer := matching.NewScorer(jobs, &memDirectory{profiles: fixtureProfiles()}, log)
	optimizer := matching.NewOptimizer(scorer, jobs, memTasks{}, memReservations{}, nil, log)
	h := NewHandlers(scorer, optimizer, log)
	return New(config.ServerConfig{Port: 8080}, "test", log, nil, h, pingers)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *errs.StandardError {
	var resp errs.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

// ==========================
// Route Tests
// ==========================

func TestRankWorkers_DefaultWeights(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/matching/job-1/rank", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result matching.RankResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "w-near", result.Ranked[0].WorkerID)
	assert.Equal(t, matching.DefaultWeights(), result.Weights)
}

func TestRankWorkers_WeightOverride(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"weights":{"distance":0.5,"price":0.5}}`
	w := doRequest(t, s, http.MethodPost, "/api/matching/job-1/rank", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result matching.RankResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0.5, result.Weights.Distance)
	assert.Equal(t, 0.0, result.Weights.Rating)
}

func TestRankWorkers_ChunkedBodyWeightOverride(t *testing.T) {
	// Chunked transfer encoding reports ContentLength -1; the weight
	// override in the body must still be honored.
	s := newTestServer(t, nil)

	body := `{"weights":{"distance":0.5,"price":0.5}}`
	req := httptest.NewRequest(http.MethodPost, "/api/matching/job-1/rank", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result matching.RankResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0.5, result.Weights.Distance)
	assert.Equal(t, 0.0, result.Weights.Rating)
}

func TestRankWorkers_InvalidWeights(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"weights":{"distance":2.0}}`
	w := doRequest(t, s, http.MethodPost, "/api/matching/job-1/rank", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.ErrCodeInvalidWeights, decodeError(t, w).Code)
}

func TestRankWorkers_MalformedBody(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/matching/job-1/rank", `{"weights":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.ErrCodeInvalidRequest, decodeError(t, w).Code)
}

func TestRankWorkers_JobNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/matching/nope/rank", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	e := decodeError(t, w)
	assert.Equal(t, errs.ErrCodeJobNotFound, e.Code)
	assert.Equal(t, "Job not found", e.Message)
}

func TestOptimizeTeam_AssignsDistinctWorkers(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"roles":[{"role":"plumber","skill":"plumbing"},{"role":"tiler","skill":"tiling"}]}`
	w := doRequest(t, s, http.MethodPost, "/api/jobs/job-1/team/optimize", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result matching.TeamResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Assignments, 2)
	assert.NotEqual(t, result.Assignments[0].Worker.WorkerID, result.Assignments[1].Worker.WorkerID)
	require.NotNil(t, result.Job)
	assert.Equal(t, models.JobStatusAssigned, result.Job.Status)
}

func TestOptimizeTeam_EmptyRoles(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/jobs/job-1/team/optimize", `{"roles":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.ErrCodeNoRolesProvided, decodeError(t, w).Code)
}

func TestOptimizeTeam_RoleMissingSkillField(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/api/jobs/job-1/team/optimize", `{"roles":[{"role":"plumber"}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.ErrCodeInvalidRequest, decodeError(t, w).Code)
}

func TestHealthz(t *testing.T) {
	t.Run("all dependencies healthy", func(t *testing.T) {
		s := newTestServer(t, map[string]Pinger{"postgres": stubPinger{}})
		w := doRequest(t, s, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("failing dependency reported", func(t *testing.T) {
		s := newTestServer(t, map[string]Pinger{"redis": stubPinger{err: assert.AnError}})
		w := doRequest(t, s, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "redis")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
