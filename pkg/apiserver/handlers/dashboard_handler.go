package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/metrics"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
	redisclient "github.com/BOYRAHEEM/estate-management-system-sub000/pkg/store/redis"
)

const roomStatsCacheKey = "estate:dashboard:room_stats"

type DashboardHandler struct {
	occupancy *core.OccupancyResolver
	workflow  *core.DamageWorkflow
	redis     *redisclient.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewDashboardHandler(occupancy *core.OccupancyResolver, workflow *core.DamageWorkflow, redis *redisclient.Client, cacheTTL time.Duration, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		occupancy: occupancy,
		workflow:  workflow,
		redis:     redis,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// RoomStats serves the facility-wide room-status distribution, cached in
// redis for a short window since the dashboard polls it.
func (h *DashboardHandler) RoomStats(c *gin.Context) {
	ctx := c.Request.Context()

	if h.redis != nil {
		if cached, err := h.redis.Client().Get(ctx, roomStatsCacheKey).Bytes(); err == nil {
			var stats core.RoomStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		}
	}

	stats, err := h.occupancy.FacilityStats(ctx)
	if err != nil {
		respondError(c, h.logger, err, "failed to compute room stats")
		return
	}

	metrics.RoomsByStatus.WithLabelValues("occupied").Set(float64(stats.Occupied))
	metrics.RoomsByStatus.WithLabelValues("available").Set(float64(stats.Available))
	metrics.RoomsByStatus.WithLabelValues("maintenance").Set(float64(stats.Maintenance))

	if h.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := h.redis.Client().Set(ctx, roomStatsCacheKey, payload, h.cacheTTL).Err(); err != nil {
				h.logger.Warn("failed to cache room stats", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) Badges(c *gin.Context) {
	counts, err := h.workflow.CountByStatus(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "failed to count damage reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_reports": counts[model.ReportPending],
		"open_reports":    counts[model.ReportPending] + counts[model.ReportInProgress],
	})
}
