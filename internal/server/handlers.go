// internal/server/handlers.go
package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	errs "worklink-matching/internal/common/errors"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/common/metrics"
	"worklink-matching/internal/matching"
	"worklink-matching/internal/models"
)

// Handlers wires the matching subsystem into gin handler funcs.
type Handlers struct {
	scorer    *matching.Scorer
	optimizer *matching.Optimizer
	logger    logger.Logger
}

func NewHandlers(scorer *matching.Scorer, optimizer *matching.Optimizer, log logger.Logger) *Handlers {
	return &Handlers{
		scorer:    scorer,
		optimizer: optimizer,
		logger:    log.WithFields(map[string]interface{}{"component": "handlers"}),
	}
}

type rankRequest struct {
	Weights *matching.Weights `json:"weights"`
}

type optimizeRequest struct {
	// dive so each role's required fields are validated; an empty list
	// itself is legal input and rejected downstream with its own code.
	Roles []models.Role `json:"roles" binding:"dive"`
}

// RankWorkers handles POST /api/matching/:jobId/rank. The body may
// carry a weight override vector; an empty body applies the defaults.
func (h *Handlers) RankWorkers(c *gin.Context) {
	start := time.Now()
	jobID := c.Param("jobId")

	// ContentLength is -1 for chunked requests, so gate only on an
	// explicitly empty body and let an EOF from the decoder stand in for
	// "no body" otherwise.
	var req rankRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.respondError(c, errs.NewInvalidRequestError(err.Error()))
			metrics.RankingRequests.WithLabelValues("invalid").Inc()
			return
		}
	}

	result, err := h.scorer.RankWorkersForJob(c.Request.Context(), jobID, req.Weights)
	if err != nil {
		h.respondError(c, err)
		metrics.RankingRequests.WithLabelValues("error").Inc()
		metrics.RankingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return
	}

	metrics.RankingRequests.WithLabelValues("ok").Inc()
	metrics.RankingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	c.JSON(http.StatusOK, result)
}

// OptimizeTeam handles POST /api/jobs/:jobId/team/optimize.
func (h *Handlers) OptimizeTeam(c *gin.Context) {
	jobID := c.Param("jobId")

	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errs.NewInvalidRequestError(err.Error()))
		metrics.OptimizeRequests.WithLabelValues("invalid").Inc()
		return
	}

	result, err := h.optimizer.OptimizeTeam(c.Request.Context(), jobID, req.Roles)
	if err != nil {
		h.respondError(c, err)
		metrics.OptimizeRequests.WithLabelValues("error").Inc()
		return
	}

	metrics.OptimizeRequests.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	status, resp := errs.ToResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed", map[string]interface{}{
			"route": c.FullPath(),
		})
	}
	c.JSON(status, resp)
}
