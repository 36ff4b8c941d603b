package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/optifab/prodplan/internal/domain/models"
	"github.com/optifab/prodplan/internal/optimizer"
)

// OptimizeHandler exposes the optimizer registry over HTTP.
type OptimizeHandler struct {
	registry *optimizer.Registry
	logger   *zap.Logger
}

// NewOptimizeHandler constructs the HTTP handler adapter.
func NewOptimizeHandler(registry *optimizer.Registry, logger *zap.Logger) *OptimizeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptimizeHandler{registry: registry, logger: logger}
}

// ListOptimizers returns the registered optimizer identifiers.
func (h *OptimizeHandler) ListOptimizers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"optimizers": h.registry.List()})
}

// Optimize solves a problem with the variant named in the path. An unknown
// identifier is a client error; every solver-side failure still answers 200
// with a typed result body.
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	h.solveWith(c, c.Param("type"))
}

// OptimizeBasic is the legacy alias for the basic variant.
func (h *OptimizeHandler) OptimizeBasic(c *gin.Context) {
	h.solveWith(c, "basic")
}

// OptimizeDemandConstrained is the legacy alias for the demand-constrained
// variant.
func (h *OptimizeHandler) OptimizeDemandConstrained(c *gin.Context) {
	h.solveWith(c, "demand-constrained")
}

func (h *OptimizeHandler) solveWith(c *gin.Context, optimizerType string) {
	variant, err := h.registry.Get(optimizerType)
	if err != nil {
		if errors.Is(err, optimizer.ErrUnknownOptimizer) {
			h.logger.Warn("unknown optimizer requested", zap.String("type", optimizerType))
			c.JSON(http.StatusBadRequest, models.OptimizationResult{
				Status:        models.StatusError,
				SolverMessage: err.Error(),
			})
			return
		}
		h.logger.Error("registry lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.OptimizationResult{
			Status:        models.StatusError,
			SolverMessage: err.Error(),
		})
		return
	}

	var problem models.Problem
	if err := c.ShouldBindJSON(&problem); err != nil {
		h.logger.Warn("invalid problem payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.OptimizationResult{
			Status:        models.StatusError,
			SolverMessage: "invalid request body: " + err.Error(),
		})
		return
	}

	result := variant.Solve(c.Request.Context(), &problem)
	c.JSON(http.StatusOK, result)
}
