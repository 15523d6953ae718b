package handler

import (
	warehouseapp "github.com/fruitscm/backend/internal/application/warehouse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InboundHandler handles inbound order endpoints
type InboundHandler struct {
	BaseHandler
	inboundService *warehouseapp.InboundService
}

// NewInboundHandler creates a new InboundHandler
func NewInboundHandler(inboundService *warehouseapp.InboundService) *InboundHandler {
	return &InboundHandler{inboundService: inboundService}
}

// Create handles POST /inbound-orders
func (h *InboundHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization scope is required")
		return
	}

	var req warehouseapp.CreateInboundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.inboundService.CreateOrder(c.Request.Context(), orgID, getUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /inbound-orders
func (h *InboundHandler) List(c *gin.Context) {
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

	resp, err := h.inboundService.ListOrders(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /inbound-orders/:id
func (h *InboundHandler) GetByID(c *gin.Context) {
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

	resp, err := h.inboundService.GetOrder(c.Request.Context(), orgID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm handles POST /inbound-orders/:id/confirm. The body is optional:
// items, when present, replace the stored draft items.
func (h *InboundHandler) Confirm(c *gin.Context) {
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

	var req warehouseapp.ConfirmInboundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	resp, err := h.inboundService.ConfirmOrder(c.Request.Context(), orgID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
