package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusStarted = "started"

	errGetStatus   = "failed to load status"
	errCycleActive = "a cycle is already running"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Runner and device status
// @Tags         system
// @Produce      json
// @Success      200  {object}  service.Status
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/status [get]
// @Security     BearerAuth
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Monitoring.GetStatus(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Start a scan-then-attack cycle
// @Description  Runs in the background; progress is visible via /api/v1/status and /ws.
// @Tags         cycle
// @Produce      json
// @Success      202  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/cycle [post]
// @Security     BearerAuth
func (h *Handler) triggerCycle(c *gin.Context) {
	if h.services.CycleRunner.Status().Busy {
		c.JSON(http.StatusConflict, gin.H{"error": errCycleActive})
		return
	}
	uid, _ := c.Get(ctxUserID)
	h.log.Infow("cycle_triggered", "userId", uid)

	// The cycle outlives the request.
	go h.services.CycleRunner.RunCycle(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"status": statusStarted})
}
