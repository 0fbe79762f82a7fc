// internal/matching/team.go
package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/common/metrics"
	"worklink-matching/internal/models"
)

// highCost is the sentinel projected into the dense matrix for
// infeasible (role, candidate) cells; the solver itself has no notion
// of a forbidden edge.
const highCost = 9999.0

// costCell is the tagged form of a matrix cell. Infeasibility is kept
// explicit here and only flattened to the sentinel at the solver
// boundary.
type costCell struct {
	feasible bool
	cost     float64
}

// TaskWriter persists the outcome of an optimization run: all task
// records, the job's team fields and status transition, and the
// assigned workers' availability flags, in a single transaction.
type TaskWriter interface {
	CreateAssignments(ctx context.Context, job *models.Job, tasks []models.Task) (*models.Job, error)
}

// ReservationStore guards against two concurrent optimize calls
// assigning the same worker. Reserve is check-and-set; a false return
// means another call holds the worker.
type ReservationStore interface {
	Reserve(ctx context.Context, workerID, jobID string) (bool, error)
	Release(ctx context.Context, workerID string) error
}

// Notifier is the post-assignment side-effect hook. Implementations
// must not fail the optimization; delivery errors are their own to log.
type Notifier interface {
	AssignmentsCreated(ctx context.Context, job *models.Job, tasks []models.Task)
}

// Optimizer forms a team for a job by solving the role-to-worker
// assignment problem over the scorer's ranked pool.
type Optimizer struct {
	scorer       *Scorer
	jobs         JobStore
	tasks        TaskWriter
	reservations ReservationStore
	notifier     Notifier
	logger       logger.Logger
}

func NewOptimizer(scorer *Scorer, jobs JobStore, tasks TaskWriter, reservations ReservationStore, notifier Notifier, log logger.Logger) *Optimizer {
	return &Optimizer{
		scorer:       scorer,
		jobs:         jobs,
		tasks:        tasks,
		reservations: reservations,
		notifier:     notifier,
		logger:       log.WithFields(map[string]interface{}{"component": "optimizer"}),
	}
}

// OptimizeTeam assigns at most one worker per role, minimizing total
// cost (1 - composite score) over all feasible pairings. A greedy
// top-ranked pick per role can double-book the same best worker across
// roles; the assignment solve avoids that globally.
//
// Candidates are pre-filtered once per job (any required skill), then
// per-role feasibility is re-checked in the cost matrix. Roles that
// only pair with infeasible candidates are dropped from the result, so
// callers detect understaffing by comparing assignment and role counts.
func (o *Optimizer) OptimizeTeam(ctx context.Context, jobID string, roles []models.Role) (*TeamResult, error) {
	if len(roles) == 0 {
		return nil, errs.NewNoRolesProvidedError()
	}

	job, err := o.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	ranked, err := o.scorer.RankWorkers(ctx, job, nil)
	if err != nil {
		return nil, err
	}

	pool := ranked.Ranked
	if len(pool) == 0 {
		return &TeamResult{Assignments: []Assignment{}, Tasks: []models.Task{}, Job: job}, nil
	}

	cells, reserved, err := o.buildCostCells(ctx, jobID, roles, pool)
	if err != nil {
		o.releaseAll(ctx, reserved)
		return nil, err
	}

	cost := make([][]float64, len(roles))
	for i := range cells {
		cost[i] = make([]float64, len(pool))
		for j, cell := range cells[i] {
			if cell.feasible {
				cost[i][j] = cell.cost
			} else {
				cost[i][j] = highCost
			}
		}
	}

	assignedCols := Hungarian(cost)

	assignments := make([]Assignment, 0, len(roles))
	tasks := make([]models.Task, 0, len(roles))
	assignedWorkers := make(map[string]bool)
	now := time.Now().UTC()

	for i, col := range assignedCols {
		if col < 0 || !cells[i][col].feasible {
			// The solver was forced to complete the matching with an
			// infeasible pairing; that role stays unfilled.
			continue
		}
		worker := pool[col]
		assignments = append(assignments, Assignment{Role: roles[i].Role, Worker: worker})
		tasks = append(tasks, models.Task{
			ID:        uuid.NewString(),
			JobID:     job.ID,
			WorkerID:  worker.WorkerID,
			Role:      roles[i].Role,
			Payout:    job.BudgetMax,
			Status:    models.TaskStatusAssigned,
			CreatedAt: now,
		})
		assignedWorkers[worker.WorkerID] = true
	}

	if len(tasks) > 0 {
		job, err = o.tasks.CreateAssignments(ctx, job, tasks)
		if err != nil {
			o.releaseAll(ctx, reserved)
			return nil, err
		}
		metrics.AssignmentsCreated.Add(float64(len(tasks)))
	}

	// Unassigned workers go straight back to the pool. Assigned workers
	// keep their reservation until the TTL expires: the candidate cache
	// can still serve a pool snapshot taken before the commit, and the
	// live hold is what stops that stale pool from re-booking them.
	unassigned := make([]string, 0, len(reserved))
	for _, id := range reserved {
		if !assignedWorkers[id] {
			unassigned = append(unassigned, id)
		}
	}
	o.releaseAll(ctx, unassigned)

	if o.notifier != nil && len(tasks) > 0 {
		o.notifier.AssignmentsCreated(ctx, job, tasks)
	}

	o.logger.Info("team optimized", map[string]interface{}{
		"jobId":     jobID,
		"roles":     len(roles),
		"assigned":  len(assignments),
		"unstaffed": len(roles) - len(assignments),
	})

	return &TeamResult{Assignments: assignments, Tasks: tasks, Job: job}, nil
}

// buildCostCells computes the tagged cost matrix. A pairing is feasible
// when the candidate lists the role's skill, is flagged available, and
// could be reserved for this call. Each worker is reserved at most
// once, lazily, the first time any role could use them.
func (o *Optimizer) buildCostCells(ctx context.Context, jobID string, roles []models.Role, pool []RankedWorker) ([][]costCell, []string, error) {
	reservedState := make(map[string]bool, len(pool))
	var reserved []string

	reserve := func(workerID string) (bool, error) {
		if ok, seen := reservedState[workerID]; seen {
			return ok, nil
		}
		ok, err := o.reservations.Reserve(ctx, workerID, jobID)
		if err != nil {
			return false, errs.NewReservationFailedError(workerID, err)
		}
		if !ok {
			metrics.ReservationConflicts.Inc()
		} else {
			reserved = append(reserved, workerID)
		}
		reservedState[workerID] = ok
		return ok, nil
	}

	cells := make([][]costCell, len(roles))
	for i, role := range roles {
		cells[i] = make([]costCell, len(pool))
		for j, worker := range pool {
			if !worker.IsAvailable || !hasSkill(worker.Skills, role.Skill) {
				continue
			}
			ok, err := reserve(worker.WorkerID)
			if err != nil {
				return nil, reserved, err
			}
			if !ok {
				continue
			}
			cells[i][j] = costCell{feasible: true, cost: round4(1 - worker.Score)}
		}
	}
	return cells, reserved, nil
}

func (o *Optimizer) releaseAll(ctx context.Context, workerIDs []string) {
	for _, id := range workerIDs {
		if err := o.reservations.Release(ctx, id); err != nil {
			o.logger.Warn("failed to release worker reservation", map[string]interface{}{
				"workerId": id,
				"error":    err,
			})
		}
	}
}

func hasSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if s == skill {
			return true
		}
	}
	return false
}
