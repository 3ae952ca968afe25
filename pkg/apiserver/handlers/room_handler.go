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

type RoomHandler struct {
	db        *postgres.Store
	occupancy *core.OccupancyResolver
	logger    *zap.Logger
}

func NewRoomHandler(db *postgres.Store, occupancy *core.OccupancyResolver, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{db: db, occupancy: occupancy, logger: logger}
}

type roomCreateRequest struct {
	HousingUnitID string   `json:"housing_unit_id" binding:"required"`
	RoomNumber    string   `json:"room_number" binding:"required"`
	RoomType      string   `json:"room_type" binding:"required"`
	Capacity      int      `json:"capacity" binding:"required,min=1"`
	Status        string   `json:"status"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
}

type roomUpdateRequest struct {
	RoomNumber  *string   `json:"room_number"`
	RoomType    *string   `json:"room_type"`
	Capacity    *int      `json:"capacity"`
	Status      *string   `json:"status"`
	Amenities   *[]string `json:"amenities"`
	Description *string   `json:"description"`
}

type roomResponse struct {
	ID            string   `json:"id"`
	HousingUnitID string   `json:"housing_unit_id"`
	RoomNumber    string   `json:"room_number"`
	RoomType      string   `json:"room_type"`
	Capacity      int      `json:"capacity"`
	Status        string   `json:"status"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
	CreatedAt     string   `json:"created_at"`
}

func mapRoom(room *model.Room) roomResponse {
	return roomResponse{
		ID:            room.ID.String(),
		HousingUnitID: room.HousingUnitID.String(),
		RoomNumber:    room.RoomNumber,
		RoomType:      string(room.RoomType),
		Capacity:      room.Capacity,
		Status:        string(room.Status),
		Amenities:     room.Amenities,
		Description:   room.Description,
		CreatedAt:     room.CreatedAt.UTC().Format(timeRFC3339Nano),
	}
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req roomCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	unitID, err := uuid.Parse(req.HousingUnitID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid housing_unit_id"})
		return
	}

	roomType := model.RoomType(req.RoomType)
	if !roomType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_type"})
		return
	}

	status := model.RoomAvailable
	if req.Status != "" {
		status = model.RoomStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
	}

	room := &model.Room{
		ID:            uuid.New(),
		HousingUnitID: unitID,
		RoomNumber:    req.RoomNumber,
		RoomType:      roomType,
		Capacity:      req.Capacity,
		Status:        status,
		Amenities:     req.Amenities,
		Description:   req.Description,
	}

	repo := postgres.NewRoomRepository(h.db.DB())
	if err := repo.Create(c.Request.Context(), room); err != nil {
		respondError(c, h.logger, err, "failed to create room")
		return
	}

	c.JSON(http.StatusCreated, mapRoom(room))
}

func (h *RoomHandler) List(c *gin.Context) {
	var unitID *uuid.UUID
	if value := strings.TrimSpace(c.Query("housing_unit_id")); value != "" {
		parsed, err := uuid.Parse(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid housing_unit_id"})
			return
		}
		unitID = &parsed
	}

	var status *model.RoomStatus
	if value := strings.TrimSpace(c.Query("status")); value != "" {
		parsed := model.RoomStatus(value)
		if !parsed.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	limit := parseLimit(c.Query("limit"), 20)
	offset := parseOffset(c.Query("offset"))

	repo := postgres.NewRoomRepository(h.db.DB())
	rooms, total, err := repo.List(c.Request.Context(), unitID, status, limit, offset)
	if err != nil {
		respondError(c, h.logger, err, "failed to list rooms")
		return
	}

	response := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		response = append(response, mapRoom(&rooms[i]))
	}

	c.JSON(http.StatusOK, gin.H{"rooms": response, "total": total})
}

func (h *RoomHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	repo := postgres.NewRoomRepository(h.db.DB())
	room, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to get room")
		return
	}

	items := make([]itemResponse, 0, len(room.Items))
	for i := range room.Items {
		items = append(items, mapItem(&room.Items[i]))
	}

	c.JSON(http.StatusOK, gin.H{"room": mapRoom(room), "items": items})
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req roomUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.RoomNumber != nil {
		updates["room_number"] = *req.RoomNumber
	}
	if req.RoomType != nil {
		roomType := model.RoomType(*req.RoomType)
		if !roomType.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_type"})
			return
		}
		updates["room_type"] = roomType
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be at least 1"})
			return
		}
		updates["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		status := model.RoomStatus(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		updates["status"] = status
	}
	if req.Amenities != nil {
		updates["amenities"] = *req.Amenities
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	repo := postgres.NewRoomRepository(h.db.DB())
	room, err := repo.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, h.logger, err, "failed to update room")
		return
	}

	c.JSON(http.StatusOK, mapRoom(room))
}

func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	repo := postgres.NewRoomRepository(h.db.DB())
	if err := repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "failed to delete room")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *RoomHandler) Occupancy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	result, err := h.occupancy.RoomOccupancy(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to resolve room occupancy")
		return
	}

	occupants := make([]employeeResponse, 0, len(result.Occupants))
	for i := range result.Occupants {
		occupants = append(occupants, mapEmployee(&result.Occupants[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":   result.RoomID.String(),
		"state":     result.State,
		"occupants": occupants,
	})
}
