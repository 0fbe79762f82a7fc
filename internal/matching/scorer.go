// internal/matching/scorer.go
package matching

import (
	"context"
	"sort"
	"time"

	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/common/metrics"
	"worklink-matching/internal/models"
)

// JobStore is the job-lookup collaborator. A missing job surfaces as a
// JOB_NOT_FOUND StandardError from the store.
type JobStore interface {
	GetJob(ctx context.Context, id string) (*models.Job, error)
}

// WorkerDirectory supplies worker profiles whose skill set intersects
// the given skills and which have a location set.
type WorkerDirectory interface {
	FindCandidates(ctx context.Context, skills []string) ([]models.WorkerProfile, error)
}

// Scorer ranks workers for a job by a weighted composite of geospatial,
// economic, and reputation signals.
type Scorer struct {
	jobs     JobStore
	workers  WorkerDirectory
	logger   logger.Logger
	now      func() time.Time
	defaults Weights
}

func NewScorer(jobs JobStore, workers WorkerDirectory, log logger.Logger) *Scorer {
	return &Scorer{
		jobs:     jobs,
		workers:  workers,
		logger:   log.WithFields(map[string]interface{}{"component": "scorer"}),
		now:      time.Now,
		defaults: DefaultWeights(),
	}
}

// SetDefaultWeights overrides the weight vector applied when a ranking
// request carries none. Intended for deploy-time tuning via config.
func (s *Scorer) SetDefaultWeights(w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	s.defaults = w
	return nil
}

// coldStartScore de-ranks workers with little history without excluding
// them, avoiding the deadlock where new workers never get picked.
func coldStartScore(completedJobs int) float64 {
	if completedJobs >= 3 {
		return 1.0
	}
	return 0.65
}

// skillScore is the fraction of the job's required skills the candidate
// covers, or the neutral 0.5 when the job lists none.
func skillScore(candidate *models.WorkerProfile, required []string) float64 {
	if len(required) == 0 {
		return 0.5
	}
	covered := 0
	for _, skill := range required {
		if candidate.HasSkill(skill) {
			covered++
		}
	}
	return float64(covered) / float64(len(required))
}

// poolStats holds per-job normalization ranges computed in one pass
// over the candidate pool.
type poolStats struct {
	distMin, distMax     float64
	rateMin, rateMax     float64
	ratingMin, ratingMax float64
	expMin, expMax       float64
}

type scoredCandidate struct {
	profile  models.WorkerProfile
	distance float64
}

func computePoolStats(pool []scoredCandidate) poolStats {
	st := poolStats{}
	for i, c := range pool {
		rating := c.profile.Rating()
		if i == 0 {
			st.distMin, st.distMax = c.distance, c.distance
			st.rateMin, st.rateMax = c.profile.HourlyRate, c.profile.HourlyRate
			st.ratingMin, st.ratingMax = rating, rating
			st.expMin, st.expMax = c.profile.ExperienceYears, c.profile.ExperienceYears
			continue
		}
		if c.distance < st.distMin {
			st.distMin = c.distance
		}
		if c.distance > st.distMax {
			st.distMax = c.distance
		}
		if c.profile.HourlyRate < st.rateMin {
			st.rateMin = c.profile.HourlyRate
		}
		if c.profile.HourlyRate > st.rateMax {
			st.rateMax = c.profile.HourlyRate
		}
		if rating < st.ratingMin {
			st.ratingMin = rating
		}
		if rating > st.ratingMax {
			st.ratingMax = rating
		}
		if c.profile.ExperienceYears < st.expMin {
			st.expMin = c.profile.ExperienceYears
		}
		if c.profile.ExperienceYears > st.expMax {
			st.expMax = c.profile.ExperienceYears
		}
	}
	return st
}

// RankWorkersForJob loads the job, scores every candidate with at least
// one required skill and a known location, and returns them sorted by
// composite score descending. A nil weights argument applies the
// defaults; an invalid vector is rejected. An empty candidate pool is a
// successful empty result, never an error.
func (s *Scorer) RankWorkersForJob(ctx context.Context, jobID string, weights *Weights) (*RankResult, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.RankWorkers(ctx, job, weights)
}

// RankWorkers scores candidates for an already-loaded job snapshot.
// Callers that need the job record themselves rank through this so one
// read drives the whole computation.
func (s *Scorer) RankWorkers(ctx context.Context, job *models.Job, weights *Weights) (*RankResult, error) {
	w := s.defaults
	if weights != nil {
		if err := weights.Validate(); err != nil {
			return nil, errs.NewInvalidWeightsError(err.Error())
		}
		w = *weights
	}

	candidates, err := s.workers.FindCandidates(ctx, job.RequiredSkills)
	if err != nil {
		return nil, err
	}

	pool := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Location == nil || job.Location == nil {
			// Geospatial scoring is impossible without both points.
			continue
		}
		pool = append(pool, scoredCandidate{
			profile:  c,
			distance: Haversine(*job.Location, *c.Location),
		})
	}

	metrics.RankingPoolSize.Observe(float64(len(pool)))

	if len(pool) == 0 {
		return &RankResult{Weights: w, Ranked: []RankedWorker{}}, nil
	}

	st := computePoolStats(pool)
	today := s.now()

	ranked := make([]RankedWorker, 0, len(pool))
	for i := range pool {
		p := &pool[i].profile

		breakdown := ScoreBreakdown{
			Distance:     clamp01(1 - normalize(pool[i].distance, st.distMin, st.distMax)),
			Price:        clamp01(1 - normalize(p.HourlyRate, st.rateMin, st.rateMax)),
			Rating:       normalize(p.Rating(), st.ratingMin, st.ratingMax),
			Experience:   normalize(p.ExperienceYears, st.expMin, st.expMax),
			Skill:        clamp01(skillScore(p, job.RequiredSkills)),
			Availability: AvailabilityScore(p, job.Urgency, today),
			ColdStart:    coldStartScore(p.CompletedJobs),
		}

		composite := round4(
			breakdown.Distance*w.Distance +
				breakdown.Price*w.Price +
				breakdown.Rating*w.Rating +
				breakdown.Experience*w.Experience +
				breakdown.Skill*w.Skill +
				breakdown.Availability*w.Availability +
				breakdown.ColdStart*w.ColdStart)

		ranked = append(ranked, RankedWorker{
			WorkerID:        p.WorkerID,
			ProfileID:       p.ProfileID,
			Score:           composite,
			Breakdown:       breakdown,
			DistanceKm:      round4(pool[i].distance),
			HourlyRate:      p.HourlyRate,
			Rating:          p.Rating(),
			ExperienceYears: p.ExperienceYears,
			Skills:          p.Skills,
			IsAvailable:     p.IsAvailable,
		})
	}

	// Descending by score; ascending worker ID breaks ties so ranking
	// is reproducible regardless of directory return order.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].WorkerID < ranked[j].WorkerID
	})

	s.logger.Info("ranked candidates", map[string]interface{}{
		"jobId":      job.ID,
		"candidates": len(ranked),
	})

	return &RankResult{Weights: w, Ranked: ranked}, nil
}
