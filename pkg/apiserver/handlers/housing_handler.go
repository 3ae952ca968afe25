package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/store/postgres"
)

type HousingHandler struct {
	db        *postgres.Store
	occupancy *core.OccupancyResolver
	logger    *zap.Logger
}

func NewHousingHandler(db *postgres.Store, occupancy *core.OccupancyResolver, logger *zap.Logger) *HousingHandler {
	return &HousingHandler{db: db, occupancy: occupancy, logger: logger}
}

type unitCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	UnitType    string   `json:"unit_type"`
	Address     string   `json:"address"`
	Capacity    int      `json:"capacity" binding:"required,min=1"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	PhotoURLs   []string `json:"photo_urls"`
}

type unitUpdateRequest struct {
	Name        *string   `json:"name"`
	UnitType    *string   `json:"unit_type"`
	Address     *string   `json:"address"`
	Capacity    *int      `json:"capacity"`
	Status      *string   `json:"status"`
	Description *string   `json:"description"`
	PhotoURLs   *[]string `json:"photo_urls"`
}

type unitResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	UnitType    string   `json:"unit_type"`
	Address     string   `json:"address"`
	Capacity    int      `json:"capacity"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	PhotoURLs   []string `json:"photo_urls"`
	CreatedAt   string   `json:"created_at"`
}

func mapUnit(unit *model.HousingUnit) unitResponse {
	return unitResponse{
		ID:          unit.ID.String(),
		Name:        unit.Name,
		UnitType:    unit.UnitType,
		Address:     unit.Address,
		Capacity:    unit.Capacity,
		Status:      string(unit.Status),
		Description: unit.Description,
		PhotoURLs:   unit.PhotoURLs,
		CreatedAt:   unit.CreatedAt.UTC().Format(timeRFC3339Nano),
	}
}

func (h *HousingHandler) Create(c *gin.Context) {
	var req unitCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	status := model.UnitAvailable
	if req.Status != "" {
		status = model.UnitStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
	}

	unit := &model.HousingUnit{
		ID:          uuid.New(),
		Name:        req.Name,
		UnitType:    req.UnitType,
		Address:     req.Address,
		Capacity:    req.Capacity,
		Status:      status,
		Description: req.Description,
		PhotoURLs:   req.PhotoURLs,
	}

	repo := postgres.NewHousingUnitRepository(h.db.DB())
	if err := repo.Create(c.Request.Context(), unit); err != nil {
		respondError(c, h.logger, err, "failed to create housing unit")
		return
	}

	c.JSON(http.StatusCreated, mapUnit(unit))
}

func (h *HousingHandler) List(c *gin.Context) {
	var status *model.UnitStatus
	if value := strings.TrimSpace(c.Query("status")); value != "" {
		parsed := model.UnitStatus(value)
		if !parsed.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	limit := parseLimit(c.Query("limit"), 20)
	offset := parseOffset(c.Query("offset"))

	repo := postgres.NewHousingUnitRepository(h.db.DB())
	units, total, err := repo.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, h.logger, err, "failed to list housing units")
		return
	}

	response := make([]unitResponse, 0, len(units))
	for i := range units {
		response = append(response, mapUnit(&units[i]))
	}

	c.JSON(http.StatusOK, gin.H{"units": response, "total": total})
}

func (h *HousingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	repo := postgres.NewHousingUnitRepository(h.db.DB())
	unit, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to get housing unit")
		return
	}

	rooms := make([]roomResponse, 0, len(unit.Rooms))
	for i := range unit.Rooms {
		rooms = append(rooms, mapRoom(&unit.Rooms[i]))
	}

	c.JSON(http.StatusOK, gin.H{"unit": mapUnit(unit), "rooms": rooms})
}

func (h *HousingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	var req unitUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.UnitType != nil {
		updates["unit_type"] = *req.UnitType
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be at least 1"})
			return
		}
		updates["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		status := model.UnitStatus(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		updates["status"] = status
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PhotoURLs != nil {
		updates["photo_urls"] = *req.PhotoURLs
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	repo := postgres.NewHousingUnitRepository(h.db.DB())
	unit, err := repo.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, h.logger, err, "failed to update housing unit")
		return
	}

	c.JSON(http.StatusOK, mapUnit(unit))
}

func (h *HousingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	repo := postgres.NewHousingUnitRepository(h.db.DB())
	if err := repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "failed to delete housing unit")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *HousingHandler) Occupancy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	summary, err := h.occupancy.UnitOccupancy(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to resolve unit occupancy")
		return
	}

	c.JSON(http.StatusOK, summary)
}
