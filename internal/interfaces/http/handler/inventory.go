package handler

import (
	warehouseapp "github.com/fruitscm/backend/internal/application/warehouse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles inventory query and alert endpoints
type InventoryHandler struct {
	BaseHandler
	warehouseService *warehouseapp.WarehouseService
	alertService     *warehouseapp.AlertService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(warehouseService *warehouseapp.WarehouseService, alertService *warehouseapp.AlertService) *InventoryHandler {
	return &InventoryHandler{
		warehouseService: warehouseService,
		alertService:     alertService,
	}
}

// List handles GET /warehouses/:id/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	warehouseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	var filter warehouseapp.InventoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.warehouseService.ListInventory(c.Request.Context(), orgID, warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Search handles GET /inventory, a cross-warehouse stock query scoped to
// the caller's organization
func (h *InventoryHandler) Search(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	var filter warehouseapp.InventorySearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID format")
			return
		}
		filter.WarehouseID = &id
	}
	if raw := c.Query("location_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid location ID format")
			return
		}
		filter.LocationID = &id
	}

	resp, err := h.warehouseService.SearchInventory(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logs handles GET /inventory/:id/logs
func (h *InventoryHandler) Logs(c *gin.Context) {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID format")
		return
	}

	page, pageSize := parsePagination(c)
	resp, err := h.warehouseService.GetInventoryLogs(c.Request.Context(), inventoryID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ScanAlerts handles POST /warehouses/:id/alerts/scan
func (h *InventoryHandler) ScanAlerts(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	warehouseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	result, err := h.alertService.ScanWarehouse(c.Request.Context(), orgID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListAlerts handles GET /inventory-alerts, optionally filtered by
// warehouse_id, alert_level and is_resolved
func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	var filter warehouseapp.AlertListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID format")
			return
		}
		filter.WarehouseID = &id
	}

	resp, err := h.alertService.ListAlerts(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ResolveAlert handles POST /inventory-alerts/:id/resolve
func (h *InventoryHandler) ResolveAlert(c *gin.Context) {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid alert ID format")
		return
	}

	resp, err := h.alertService.ResolveAlert(c.Request.Context(), alertID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
