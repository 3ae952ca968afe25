package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/store/postgres"
)

type InventoryHandler struct {
	db     *postgres.Store
	logger *zap.Logger
}

func NewInventoryHandler(db *postgres.Store, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{db: db, logger: logger}
}

type itemCreateRequest struct {
	RoomID         string     `json:"room_id" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	Category       string     `json:"category" binding:"required"`
	CategoryName   string     `json:"category_name"`
	Quantity       int        `json:"quantity" binding:"required,min=1"`
	Unit           string     `json:"unit"`
	Condition      string     `json:"condition"`
	Description    string     `json:"description"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
}

type itemUpdateRequest struct {
	Name           *string    `json:"name"`
	Category       *string    `json:"category"`
	CategoryName   *string    `json:"category_name"`
	Quantity       *int       `json:"quantity"`
	Unit           *string    `json:"unit"`
	Condition      *string    `json:"condition"`
	Description    *string    `json:"description"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
}

type itemResponse struct {
	ID             string  `json:"id"`
	RoomID         string  `json:"room_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	CategoryName   string  `json:"category_name,omitempty"`
	Quantity       int     `json:"quantity"`
	Unit           string  `json:"unit"`
	Condition      string  `json:"condition"`
	Description    string  `json:"description"`
	PurchaseDate   *string `json:"purchase_date,omitempty"`
	WarrantyExpiry *string `json:"warranty_expiry,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func mapItem(item *model.InventoryItem) itemResponse {
	return itemResponse{
		ID:             item.ID.String(),
		RoomID:         item.RoomID.String(),
		Name:           item.Name,
		Category:       string(item.Category),
		CategoryName:   item.CategoryName,
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		Condition:      string(item.Condition),
		Description:    item.Description,
		PurchaseDate:   formatTime(item.PurchaseDate),
		WarrantyExpiry: formatTime(item.WarrantyExpiry),
		CreatedAt:      item.CreatedAt.UTC().Format(timeRFC3339Nano),
	}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req itemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
		return
	}

	category := model.ItemCategory(req.Category)
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}
	if category == model.CategoryOther && strings.TrimSpace(req.CategoryName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_name is required for category other"})
		return
	}

	condition := model.ConditionGood
	if req.Condition != "" {
		condition = model.ItemCondition(req.Condition)
		if !condition.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid condition"})
			return
		}
		// damaged/repairing are owned by the damage workflow
		if condition.UnderRepair() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "condition damaged/repairing requires a damage report"})
			return
		}
	}

	item := &model.InventoryItem{
		ID:             uuid.New(),
		RoomID:         roomID,
		Name:           req.Name,
		Category:       category,
		CategoryName:   req.CategoryName,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Condition:      condition,
		Description:    req.Description,
		PurchaseDate:   req.PurchaseDate,
		WarrantyExpiry: req.WarrantyExpiry,
	}

	repo := postgres.NewInventoryItemRepository(h.db.DB())
	if err := repo.Create(c.Request.Context(), item); err != nil {
		respondError(c, h.logger, err, "failed to create inventory item")
		return
	}

	c.JSON(http.StatusCreated, mapItem(item))
}

func (h *InventoryHandler) List(c *gin.Context) {
	var roomID *uuid.UUID
	if value := strings.TrimSpace(c.Query("room_id")); value != "" {
		parsed, err := uuid.Parse(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		roomID = &parsed
	}

	var condition *model.ItemCondition
	if value := strings.TrimSpace(c.Query("condition")); value != "" {
		parsed := model.ItemCondition(value)
		if !parsed.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid condition"})
			return
		}
		condition = &parsed
	}

	limit := parseLimit(c.Query("limit"), 20)
	offset := parseOffset(c.Query("offset"))

	repo := postgres.NewInventoryItemRepository(h.db.DB())
	items, total, err := repo.List(c.Request.Context(), roomID, condition, limit, offset)
	if err != nil {
		respondError(c, h.logger, err, "failed to list inventory items")
		return
	}

	response := make([]itemResponse, 0, len(items))
	for i := range items {
		response = append(response, mapItem(&items[i]))
	}

	c.JSON(http.StatusOK, gin.H{"items": response, "total": total})
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	repo := postgres.NewInventoryItemRepository(h.db.DB())
	item, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to get inventory item")
		return
	}

	reports := make([]reportResponse, 0, len(item.Reports))
	for i := range item.Reports {
		reports = append(reports, mapReport(&item.Reports[i]))
	}

	c.JSON(http.StatusOK, gin.H{"item": mapItem(item), "reports": reports})
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req itemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	repo := postgres.NewInventoryItemRepository(h.db.DB())

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		category := model.ItemCategory(*req.Category)
		if !category.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		updates["category"] = category
	}
	if req.CategoryName != nil {
		updates["category_name"] = *req.CategoryName
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
			return
		}
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Condition != nil {
		condition := model.ItemCondition(*req.Condition)
		if !condition.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid condition"})
			return
		}
		if condition.UnderRepair() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "condition damaged/repairing requires a damage report"})
			return
		}
		// While a report is open the workflow owns the condition.
		open, err := repo.HasOpenReport(c.Request.Context(), id)
		if err != nil {
			respondError(c, h.logger, err, "failed to update inventory item")
			return
		}
		if open {
			c.JSON(http.StatusConflict, gin.H{"error": "condition is managed by an open damage report"})
			return
		}
		updates["condition"] = condition
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PurchaseDate != nil {
		updates["purchase_date"] = *req.PurchaseDate
	}
	if req.WarrantyExpiry != nil {
		updates["warranty_expiry"] = *req.WarrantyExpiry
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	item, err := repo.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, h.logger, err, "failed to update inventory item")
		return
	}

	c.JSON(http.StatusOK, mapItem(item))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	repo := postgres.NewInventoryItemRepository(h.db.DB())
	if err := repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "failed to delete inventory item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
