package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/eventbus"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/metrics"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/store/postgres"
)

type DamageHandler struct {
	db       *postgres.Store
	workflow *core.DamageWorkflow
	bus      *eventbus.Bus
	logger   *zap.Logger
}

func NewDamageHandler(db *postgres.Store, workflow *core.DamageWorkflow, bus *eventbus.Bus, logger *zap.Logger) *DamageHandler {
	return &DamageHandler{db: db, workflow: workflow, bus: bus, logger: logger}
}

type reportCreateRequest struct {
	ItemID        string    `json:"item_id" binding:"required"`
	DamageType    string    `json:"damage_type" binding:"required"`
	Severity      string    `json:"severity" binding:"required"`
	Description   string    `json:"description"`
	ReportedBy    string    `json:"reported_by" binding:"required"`
	DamageDate    time.Time `json:"damage_date" binding:"required"`
	EstimatedCost *float64  `json:"estimated_cost"`
	RepairNotes   string    `json:"repair_notes"`
}

type reportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type reportResponse struct {
	ID               string   `json:"id"`
	ItemID           string   `json:"item_id"`
	DamageType       string   `json:"damage_type"`
	Severity         string   `json:"severity"`
	Description      string   `json:"description"`
	ReportedBy       string   `json:"reported_by"`
	DamageDate       string   `json:"damage_date"`
	EstimatedCost    *float64 `json:"estimated_cost,omitempty"`
	RepairNotes      string   `json:"repair_notes,omitempty"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
	RecentlyRepaired bool     `json:"recently_repaired"`
}

func mapReport(report *model.DamageReport) reportResponse {
	return reportResponse{
		ID:            report.ID.String(),
		ItemID:        report.ItemID.String(),
		DamageType:    string(report.DamageType),
		Severity:      string(report.Severity),
		Description:   report.Description,
		ReportedBy:    report.ReportedBy,
		DamageDate:    report.DamageDate.UTC().Format(timeRFC3339Nano),
		EstimatedCost: report.EstimatedCost,
		RepairNotes:   report.RepairNotes,
		Status:        string(report.Status),
		CreatedAt:     report.CreatedAt.UTC().Format(timeRFC3339Nano),
		UpdatedAt:     report.UpdatedAt.UTC().Format(timeRFC3339Nano),
	}
}

func (h *DamageHandler) mapReportWithFlag(report *model.DamageReport) reportResponse {
	response := mapReport(report)
	response.RecentlyRepaired = h.workflow.RecentlyRepaired(report)
	return response
}

func (h *DamageHandler) File(c *gin.Context) {
	var req reportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
		return
	}

	report, err := h.workflow.FileReport(c.Request.Context(), core.ReportInput{
		ItemID:        itemID,
		DamageType:    model.DamageType(req.DamageType),
		Severity:      model.DamageSeverity(req.Severity),
		Description:   req.Description,
		ReportedBy:    req.ReportedBy,
		DamageDate:    req.DamageDate,
		EstimatedCost: req.EstimatedCost,
		RepairNotes:   req.RepairNotes,
	})
	if err != nil {
		respondError(c, h.logger, err, "failed to file damage report")
		return
	}

	metrics.DamageReportsFiled.WithLabelValues(string(report.Severity), string(report.DamageType)).Inc()
	h.publishReportEvent(c, report, "damage_report_filed")

	c.JSON(http.StatusCreated, h.mapReportWithFlag(report))
}

func (h *DamageHandler) List(c *gin.Context) {
	var itemID *uuid.UUID
	if value := strings.TrimSpace(c.Query("item_id")); value != "" {
		parsed, err := uuid.Parse(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
			return
		}
		itemID = &parsed
	}

	var status *model.ReportStatus
	if value := strings.TrimSpace(c.Query("status")); value != "" {
		parsed := model.ReportStatus(value)
		if !parsed.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	limit := parseLimit(c.Query("limit"), 20)
	offset := parseOffset(c.Query("offset"))

	repo := postgres.NewDamageReportRepository(h.db.DB())
	reports, total, err := repo.List(c.Request.Context(), itemID, status, limit, offset)
	if err != nil {
		respondError(c, h.logger, err, "failed to list damage reports")
		return
	}

	response := make([]reportResponse, 0, len(reports))
	for i := range reports {
		response = append(response, h.mapReportWithFlag(&reports[i]))
	}

	c.JSON(http.StatusOK, gin.H{"reports": response, "total": total})
}

func (h *DamageHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	repo := postgres.NewDamageReportRepository(h.db.DB())
	report, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to get damage report")
		return
	}

	c.JSON(http.StatusOK, h.mapReportWithFlag(report))
}

func (h *DamageHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var req reportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	report, err := h.workflow.AdvanceStatus(c.Request.Context(), id, model.ReportStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "failed to change report status")
		return
	}

	metrics.ReportTransitions.WithLabelValues(string(report.Status)).Inc()
	h.publishReportEvent(c, report, "damage_report_status_changed")

	c.JSON(http.StatusOK, h.mapReportWithFlag(report))
}

// Summary backs the dashboard badges; the pending count drives the visible
// notification badge.
func (h *DamageHandler) Summary(c *gin.Context) {
	counts, err := h.workflow.CountByStatus(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "failed to count damage reports")
		return
	}

	for status, count := range counts {
		if status.Open() {
			metrics.OpenReports.WithLabelValues(string(status)).Set(float64(count))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"pending":     counts[model.ReportPending],
		"in_progress": counts[model.ReportInProgress],
		"resolved":    counts[model.ReportResolved],
	})
}

func (h *DamageHandler) RecentlyRepaired(c *gin.Context) {
	since := time.Now().Add(-core.RecentlyRepairedWindow)
	repo := postgres.NewDamageReportRepository(h.db.DB())
	reports, err := repo.ListResolvedSince(c.Request.Context(), since)
	if err != nil {
		respondError(c, h.logger, err, "failed to list recently repaired items")
		return
	}

	response := make([]reportResponse, 0, len(reports))
	for i := range reports {
		response = append(response, h.mapReportWithFlag(&reports[i]))
	}

	c.JSON(http.StatusOK, gin.H{"reports": response})
}

func (h *DamageHandler) publishReportEvent(c *gin.Context, report *model.DamageReport, eventType string) {
	if h.bus == nil {
		return
	}
	payload := eventbus.ReportEvent{
		ReportID: report.ID.String(),
		ItemID:   report.ItemID.String(),
		Status:   string(report.Status),
		Severity: string(report.Severity),
	}
	if event, err := eventbus.NewEvent(eventType, payload); err == nil {
		_ = h.bus.Publish(c.Request.Context(), eventbus.ChannelReport, event)
	}
}
