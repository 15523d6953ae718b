package handler

import (
	warehouseapp "github.com/fruitscm/backend/internal/application/warehouse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OutboundHandler handles outbound order endpoints
type OutboundHandler struct {
	BaseHandler
	outboundService *warehouseapp.OutboundService
}

// NewOutboundHandler creates a new OutboundHandler
func NewOutboundHandler(outboundService *warehouseapp.OutboundService) *OutboundHandler {
	return &OutboundHandler{outboundService: outboundService}
}

// Create handles POST /outbound-orders
func (h *OutboundHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	var req warehouseapp.CreateOutboundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.outboundService.CreateOrder(c.Request.Context(), orgID, getUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /outbound-orders
func (h *OutboundHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	var filter warehouseapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.outboundService.ListOrders(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /outbound-orders/:id
func (h *OutboundHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.outboundService.GetOrder(c.Request.Context(), orgID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm handles POST /outbound-orders/:id/confirm. The body is optional:
// items, when present, replace the stored draft items, and a line's
// actual_quantity overrides requested_quantity as the amount to deduct.
func (h *OutboundHandler) Confirm(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req warehouseapp.ConfirmOutboundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	resp, err := h.outboundService.ConfirmOrder(c.Request.Context(), orgID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
