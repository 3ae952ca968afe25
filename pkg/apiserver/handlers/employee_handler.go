package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/eventbus"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/metrics"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/store/postgres"
)

type EmployeeHandler struct {
	db     *postgres.Store
	guard  *core.AssignmentGuard
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewEmployeeHandler(db *postgres.Store, guard *core.AssignmentGuard, bus *eventbus.Bus, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{db: db, guard: guard, bus: bus, logger: logger}
}

type employeeCreateRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
}

type employeeUpdateRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Status     *string `json:"status"`
}

type assignRoomRequest struct {
	// RoomID null clears the assignment.
	RoomID *string `json:"room_id"`
}

type employeeResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	AssignedRoomID *string `json:"assigned_room_id,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

func mapEmployee(employee *model.Employee) employeeResponse {
	response := employeeResponse{
		ID:         employee.ID.String(),
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Department: employee.Department,
		Position:   employee.Position,
		Email:      employee.Email,
		Phone:      employee.Phone,
		Status:     string(employee.Status),
		CreatedAt:  employee.CreatedAt.UTC().Format(timeRFC3339Nano),
	}
	if employee.AssignedRoomID != nil {
		id := employee.AssignedRoomID.String()
		response.AssignedRoomID = &id
	}
	return response
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employeeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	status := model.EmployeeActive
	if req.Status != "" {
		status = model.EmployeeStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
	}

	employee := &model.Employee{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		Email:      req.Email,
		Phone:      req.Phone,
		Status:     status,
	}

	repo := postgres.NewEmployeeRepository(h.db.DB())
	if err := repo.Create(c.Request.Context(), employee); err != nil {
		respondError(c, h.logger, err, "failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, mapEmployee(employee))
}

func (h *EmployeeHandler) List(c *gin.Context) {
	var status *model.EmployeeStatus
	if value := strings.TrimSpace(c.Query("status")); value != "" {
		parsed := model.EmployeeStatus(value)
		if !parsed.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}
	department := strings.TrimSpace(c.Query("department"))

	limit := parseLimit(c.Query("limit"), 20)
	offset := parseOffset(c.Query("offset"))

	repo := postgres.NewEmployeeRepository(h.db.DB())
	employees, total, err := repo.List(c.Request.Context(), status, department, limit, offset)
	if err != nil {
		respondError(c, h.logger, err, "failed to list employees")
		return
	}

	response := make([]employeeResponse, 0, len(employees))
	for i := range employees {
		response = append(response, mapEmployee(&employees[i]))
	}

	c.JSON(http.StatusOK, gin.H{"employees": response, "total": total})
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	repo := postgres.NewEmployeeRepository(h.db.DB())
	employee, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to get employee")
		return
	}

	c.JSON(http.StatusOK, mapEmployee(employee))
}

// Update covers profile and status fields. Changing status away from active
// deliberately leaves assigned_room_id in place; the room frees up because
// occupancy only counts active employees.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	var req employeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Status != nil {
		status := model.EmployeeStatus(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		updates["status"] = status
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	repo := postgres.NewEmployeeRepository(h.db.DB())
	employee, err := repo.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, h.logger, err, "failed to update employee")
		return
	}

	c.JSON(http.StatusOK, mapEmployee(employee))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	repo := postgres.NewEmployeeRepository(h.db.DB())
	if err := repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "failed to delete employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *EmployeeHandler) AssignRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	var req assignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var roomID *uuid.UUID
	if req.RoomID != nil {
		parsed, err := uuid.Parse(*req.RoomID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		roomID = &parsed
	}

	employee, err := h.guard.Assign(c.Request.Context(), id, roomID)
	if err != nil {
		if core.IsCode(err, core.CodeConflict) {
			metrics.AssignmentAttempts.WithLabelValues("conflict").Inc()
		}
		respondError(c, h.logger, err, "failed to assign room")
		return
	}
	metrics.AssignmentAttempts.WithLabelValues("ok").Inc()

	h.publishAssignmentEvent(c, employee, roomID)

	c.JSON(http.StatusOK, mapEmployee(employee))
}

func (h *EmployeeHandler) publishAssignmentEvent(c *gin.Context, employee *model.Employee, roomID *uuid.UUID) {
	if h.bus == nil {
		return
	}
	payload := eventbus.AssignmentEvent{
		EmployeeID: employee.EmployeeID,
		Action:     "cleared",
	}
	if roomID != nil {
		payload.RoomID = roomID.String()
		payload.Action = "assigned"
	}
	if event, err := eventbus.NewEvent("room_assignment_changed", payload); err == nil {
		_ = h.bus.Publish(c.Request.Context(), eventbus.ChannelAssignment, event)
	}
}
