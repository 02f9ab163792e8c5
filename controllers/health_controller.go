package controllers

import (
	"context"
	"go-marketplace/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether cart storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	Storage Pinger
	Timeout time.Duration
}

func NewHealthController(storage Pinger) *HealthController {
	return &HealthController{Storage: storage, Timeout: 2 * time.Second}
}

// @Summary Liveness
// @Description Report that the process is serving requests
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (ctrl *HealthController) Live(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

// @Summary Readiness
// @Description Report whether cart storage is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /ready [get]
func (ctrl *HealthController) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctrl.Timeout)
	defer cancel()

	if err := ctrl.Storage.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{
			Status: "unavailable",
			Error:  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
