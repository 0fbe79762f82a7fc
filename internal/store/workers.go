// internal/store/workers.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/models"
)

// WorkerStore is the worker directory: it answers skill-overlap
// candidate queries from PostgreSQL, with a short-lived Redis cache in
// front since the same pool is read by rank and optimize calls back to
// back.
type WorkerStore struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewWorkerStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *WorkerStore {
	return &WorkerStore{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "worker-store"}),
	}
}

const findCandidatesQuery = `
	SELECT worker_id, profile_id, longitude, latitude, hourly_rate, skills,
	       experience_years, rating_average, rating_count, completed_jobs,
	       is_available, working_days, work_start, work_end, leave_dates
	FROM worker_profiles
	WHERE skills && $1
	  AND longitude IS NOT NULL
	  AND latitude IS NOT NULL`

// FindCandidates returns every worker profile whose skill set
// intersects the given skills and which has a location set. Workers
// without a location are excluded at the query level since geospatial
// scoring cannot be computed for them.
func (s *WorkerStore) FindCandidates(ctx context.Context, skills []string) ([]models.WorkerProfile, error) {
	cacheKey := candidateCacheKey(skills)

	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.WorkerProfile
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx, findCandidatesQuery, pq.Array(skills))
	if err != nil {
		return nil, errs.NewQueryExecutionFailedError("find_candidates", err)
	}
	defer rows.Close()

	var profiles []models.WorkerProfile
	for rows.Next() {
		var p models.WorkerProfile
		var lon, lat sql.NullFloat64
		var profileSkills, workingDays, leaveDates pq.StringArray

		err := rows.Scan(&p.WorkerID, &p.ProfileID, &lon, &lat, &p.HourlyRate,
			&profileSkills, &p.ExperienceYears, &p.RatingAverage, &p.RatingCount,
			&p.CompletedJobs, &p.IsAvailable, &workingDays, &p.WorkStart,
			&p.WorkEnd, &leaveDates)
		if err != nil {
			return nil, errs.NewQueryExecutionFailedError("find_candidates", err)
		}

		p.Skills = profileSkills
		p.WorkingDays = workingDays
		p.LeaveDates = leaveDates
		if lon.Valid && lat.Valid {
			p.Location = &models.GeoPoint{Longitude: lon.Float64, Latitude: lat.Float64}
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewQueryExecutionFailedError("find_candidates", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(profiles); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("candidate cache write failed", map[string]interface{}{
					"error": err,
				})
			}
		}
	}

	return profiles, nil
}

// candidateCacheKey is stable under skill ordering so rank and
// optimize calls for the same job hit the same entry.
func candidateCacheKey(skills []string) string {
	sorted := append([]string(nil), skills...)
	sort.Strings(sorted)
	return "workers:candidates:" + strings.Join(sorted, ",")
}
