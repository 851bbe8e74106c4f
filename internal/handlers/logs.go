package handlers

import (
	"net/http"
	"strconv"

	"radiorecon/internal/models"
	"radiorecon/internal/service"

	"github.com/gin-gonic/gin"
)

const errLimitInvalid = "invalid 'limit'; use a positive integer"

// @Summary      List log entries
// @Description  Most recent mirrored entries in arrival order.
// @Tags         logs
// @Produce      json
// @Param        stream    query  string  false  "Log stream"  Enums(general,credential)
// @Param        category  query  string  false  "Entry category"  Enums(WLAN_INIT,WIFI_SCAN,WIFI_CRACKED,BLE)
// @Param        limit     query  int     false  "Most recent N entries (default 100, max 1000)"
// @Success      200   {object}  map[string]interface{}  "count, entries"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	ctx := c.Request.Context()
	filter := service.LogFilter{
		Stream:   models.Stream(c.Query("stream")),
		Category: models.Category(c.Query("category")),
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		filter.Limit = n
	}

	entries, err := h.services.EventLog.List(ctx, filter)
	if err != nil {
		if service.IsInvalidFilter(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("logs_list_failed", "err", err, "stream", filter.Stream, "category", filter.Category)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}
