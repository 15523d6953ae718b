package warehouse

import (
	"time"

	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Name                  string `json:"name" binding:"required,min=1,max=255"`
	Location              string `json:"location"`
	Capacity              *int64 `json:"capacity"`
	TemperatureControlled bool   `json:"temperature_controlled"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name                  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Location              *string `json:"location"`
	Capacity              *int64  `json:"capacity"`
	TemperatureControlled *bool   `json:"temperature_controlled"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Location              string    `json:"location"`
	Capacity              *int64    `json:"capacity"`
	TemperatureControlled bool      `json:"temperature_controlled"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CreateLocationRequest represents a request to create a storage location
type CreateLocationRequest struct {
	LocationCode string `json:"location_code" binding:"required,min=1,max=64"`
	RackNumber   *int   `json:"rack_number"`
	ShelfNumber  *int   `json:"shelf_number"`
	Capacity     *int64 `json:"capacity"`
}

// LocationResponse represents a storage location in API responses
type LocationResponse struct {
	ID           uuid.UUID `json:"id"`
	WarehouseID  uuid.UUID `json:"warehouse_id"`
	LocationCode string    `json:"location_code"`
	RackNumber   *int      `json:"rack_number"`
	ShelfNumber  *int      `json:"shelf_number"`
	Capacity     *int64    `json:"capacity"`
	CreatedAt    time.Time `json:"created_at"`
}

// InventoryListFilter represents filter options for the inventory query
type InventoryListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=available reserved damaged"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// InventorySearchFilter represents filter options for the cross-warehouse
// inventory query. Warehouse and location IDs are parsed by the handler.
type InventorySearchFilter struct {
	WarehouseID        *uuid.UUID `form:"-"`
	LocationID         *uuid.UUID `form:"-"`
	ProductName        string     `form:"product_name"`
	BatchID            string     `form:"batch_id"`
	Status             string     `form:"status" binding:"omitempty,oneof=available reserved damaged"`
	ExpirationDateFrom *time.Time `form:"expiration_date_from" time_format:"2006-01-02"`
	ExpirationDateTo   *time.Time `form:"expiration_date_to" time_format:"2006-01-02"`
	Page               int        `form:"page" binding:"omitempty,min=1"`
	PageSize           int        `form:"limit" binding:"omitempty,min=1,max=100"`
}

// AlertListFilter represents filter options for alert listings. A nil
// IsResolved includes both resolved and unresolved alerts.
type AlertListFilter struct {
	WarehouseID *uuid.UUID `form:"-"`
	AlertLevel  string     `form:"alert_level" binding:"omitempty,oneof=critical warning"`
	IsResolved  *bool      `form:"is_resolved"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"limit" binding:"omitempty,min=1,max=100"`
}

// StockRecordResponse represents a stock record in API responses
type StockRecordResponse struct {
	ID             uuid.UUID       `json:"id"`
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	LocationID     *uuid.UUID      `json:"location_id"`
	ProductName    string          `json:"product_name"`
	BatchID        string          `json:"batch_id,omitempty"`
	SourceOrderID  *uuid.UUID      `json:"source_order_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Status         string          `json:"status"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	InboundDate    *time.Time      `json:"inbound_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InventoryLogResponse represents an inventory movement log entry
type InventoryLogResponse struct {
	ID               uuid.UUID       `json:"id"`
	InventoryID      uuid.UUID       `json:"inventory_id"`
	OperationType    string          `json:"operation_type"`
	ChangeQuantity   decimal.Decimal `json:"change_quantity"`
	BeforeQuantity   decimal.Decimal `json:"before_quantity"`
	AfterQuantity    decimal.Decimal `json:"after_quantity"`
	ReferenceOrderID uuid.UUID       `json:"reference_order_id"`
	Remark           string          `json:"remark,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// InventoryAlertResponse represents an inventory alert in API responses
type InventoryAlertResponse struct {
	ID                  uuid.UUID       `json:"id"`
	InventoryID         uuid.UUID       `json:"inventory_id"`
	WarehouseID         uuid.UUID       `json:"warehouse_id"`
	ProductName         string          `json:"product_name"`
	BatchID             string          `json:"batch_id,omitempty"`
	AlertType           string          `json:"alert_type"`
	AlertLevel          string          `json:"alert_level"`
	DaysUntilExpiration int             `json:"days_until_expiration"`
	CurrentQuantity     decimal.Decimal `json:"current_quantity"`
	ExpirationDate      time.Time       `json:"expiration_date"`
	IsResolved          bool            `json:"is_resolved"`
	CreatedAt           time.Time       `json:"created_at"`
}

// InboundOrderItemRequest represents one line of an inbound order
type InboundOrderItemRequest struct {
	ProductName    string          `json:"product_name" binding:"required,min=1,max=255"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Unit           string          `json:"unit" binding:"required"`
	LocationID     *uuid.UUID      `json:"location_id"`
	BatchID        string          `json:"batch_id"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	Remark         string          `json:"remark"`
}

// CreateInboundOrderRequest represents a request to create an inbound order
type CreateInboundOrderRequest struct {
	WarehouseID     uuid.UUID                 `json:"warehouse_id" binding:"required"`
	PurchaseOrderID *uuid.UUID                `json:"purchase_order_id"`
	Items           []InboundOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OutboundOrderItemRequest represents one line of an outbound order
type OutboundOrderItemRequest struct {
	ProductName       string          `json:"product_name" binding:"required,min=1,max=255"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	BatchID           string          `json:"batch_id"`
	Remark            string          `json:"remark"`
}

// CreateOutboundOrderRequest represents a request to create an outbound order
type CreateOutboundOrderRequest struct {
	WarehouseID    uuid.UUID                  `json:"warehouse_id" binding:"required"`
	RelatedOrderID *uuid.UUID                 `json:"related_order_id"`
	Items          []OutboundOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ConfirmInboundRequest optionally restates the goods that actually arrived.
// When items are present they replace the order's draft items before the
// ledger is updated; an empty body confirms the draft as stored.
type ConfirmInboundRequest struct {
	Items []InboundOrderItemRequest `json:"items" binding:"omitempty,dive"`
}

// ConfirmOutboundItemRequest is one line of an outbound confirmation body.
// ActualQuantity, when given, is the amount deducted instead of
// RequestedQuantity.
type ConfirmOutboundItemRequest struct {
	ProductName       string           `json:"product_name" binding:"required,min=1,max=255"`
	RequestedQuantity decimal.Decimal  `json:"requested_quantity" binding:"required"`
	ActualQuantity    *decimal.Decimal `json:"actual_quantity"`
	Unit              string           `json:"unit"`
	BatchID           string           `json:"batch_id"`
	Remark            string           `json:"remark"`
}

// ConfirmOutboundRequest optionally restates the goods to ship. When items
// are present they replace the order's draft items before deduction; an
// empty body confirms the draft as stored.
type ConfirmOutboundRequest struct {
	Items []ConfirmOutboundItemRequest `json:"items" binding:"omitempty,dive"`
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft confirmed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// InboundOrderItemResponse represents an inbound order line in API responses
type InboundOrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	LocationID     *uuid.UUID      `json:"location_id"`
	BatchID        string          `json:"batch_id,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	Remark         string          `json:"remark,omitempty"`
}

// InboundOrderResponse represents an inbound order in API responses
type InboundOrderResponse struct {
	ID              uuid.UUID                  `json:"id"`
	InboundNumber   string                     `json:"inbound_number"`
	WarehouseID     uuid.UUID                  `json:"warehouse_id"`
	PurchaseOrderID *uuid.UUID                 `json:"purchase_order_id"`
	Status          string                     `json:"status"`
	TotalQuantity   decimal.Decimal            `json:"total_quantity"`
	ConfirmedAt     *time.Time                 `json:"confirmed_at"`
	Items           []InboundOrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// OutboundOrderItemResponse represents an outbound order line in API responses
type OutboundOrderItemResponse struct {
	ID                uuid.UUID        `json:"id"`
	ProductName       string           `json:"product_name"`
	RequestedQuantity decimal.Decimal  `json:"requested_quantity"`
	ActualQuantity    *decimal.Decimal `json:"actual_quantity"`
	Unit              string           `json:"unit"`
	BatchID           string           `json:"batch_id,omitempty"`
	Remark            string           `json:"remark,omitempty"`
}

// OutboundOrderResponse represents an outbound order in API responses
type OutboundOrderResponse struct {
	ID             uuid.UUID                   `json:"id"`
	OutboundNumber string                      `json:"outbound_number"`
	WarehouseID    uuid.UUID                   `json:"warehouse_id"`
	RelatedOrderID *uuid.UUID                  `json:"related_order_id"`
	Status         string                      `json:"status"`
	TotalQuantity  decimal.Decimal             `json:"total_quantity"`
	ConfirmedAt    *time.Time                  `json:"confirmed_at"`
	Items          []OutboundOrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// ConfirmInboundResponse summarizes the stock movements of a confirmation
type ConfirmInboundResponse struct {
	Order          InboundOrderResponse  `json:"order"`
	RecordsCreated int                   `json:"records_created"`
	RecordsMerged  int                   `json:"records_merged"`
	Records        []StockRecordResponse `json:"records"`
}

// OutboundDeductionResponse details how one order line was fulfilled
type OutboundDeductionResponse struct {
	ProductName    string          `json:"product_name"`
	Requested      decimal.Decimal `json:"requested"`
	Deducted       decimal.Decimal `json:"deducted"`
	BatchesTouched int             `json:"batches_touched"`
}

// ConfirmOutboundResponse summarizes the stock movements of a confirmation
type ConfirmOutboundResponse struct {
	Order      OutboundOrderResponse       `json:"order"`
	Deductions []OutboundDeductionResponse `json:"deductions"`
}

// ToWarehouseResponse converts a domain warehouse to a response DTO
func ToWarehouseResponse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:                    w.ID,
		Name:                  w.Name,
		Location:              w.Location,
		Capacity:              w.Capacity,
		TemperatureControlled: w.TemperatureControlled,
		CreatedAt:             w.CreatedAt,
		UpdatedAt:             w.UpdatedAt,
	}
}

// ToLocationResponse converts a domain storage location to a response DTO
func ToLocationResponse(loc *warehouse.WarehouseLocation) LocationResponse {
	return LocationResponse{
		ID:           loc.ID,
		WarehouseID:  loc.WarehouseID,
		LocationCode: loc.LocationCode,
		RackNumber:   loc.RackNumber,
		ShelfNumber:  loc.ShelfNumber,
		Capacity:     loc.Capacity,
		CreatedAt:    loc.CreatedAt,
	}
}

// ToStockRecordResponse converts a domain stock record to a response DTO
func ToStockRecordResponse(r *warehouse.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:             r.ID,
		WarehouseID:    r.WarehouseID,
		LocationID:     r.LocationID,
		ProductName:    r.ProductName,
		BatchID:        r.BatchID,
		SourceOrderID:  r.SourceOrderID,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		Status:         string(r.Status),
		ExpirationDate: r.ExpirationDate,
		InboundDate:    r.InboundDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToInventoryLogResponse converts a log entry to a response DTO
func ToInventoryLogResponse(e *warehouse.InventoryLogEntry) InventoryLogResponse {
	return InventoryLogResponse{
		ID:               e.ID,
		InventoryID:      e.InventoryID,
		OperationType:    string(e.OperationType),
		ChangeQuantity:   e.ChangeQuantity,
		BeforeQuantity:   e.BeforeQuantity,
		AfterQuantity:    e.AfterQuantity,
		ReferenceOrderID: e.ReferenceOrderID,
		Remark:           e.Remark,
		CreatedAt:        e.CreatedAt,
	}
}

// ToInventoryAlertResponse converts an alert to a response DTO
func ToInventoryAlertResponse(a *warehouse.InventoryAlert) InventoryAlertResponse {
	return InventoryAlertResponse{
		ID:                  a.ID,
		InventoryID:         a.InventoryID,
		WarehouseID:         a.WarehouseID,
		ProductName:         a.ProductName,
		BatchID:             a.BatchID,
		AlertType:           string(a.AlertType),
		AlertLevel:          string(a.AlertLevel),
		DaysUntilExpiration: a.DaysUntilExpiration,
		CurrentQuantity:     a.CurrentQuantity,
		ExpirationDate:      a.ExpirationDate,
		IsResolved:          a.IsResolved,
		CreatedAt:           a.CreatedAt,
	}
}

// ToInboundOrderResponse converts an inbound order to a response DTO
func ToInboundOrderResponse(o *warehouse.InboundOrder) InboundOrderResponse {
	items := make([]InboundOrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, InboundOrderItemResponse{
			ID:             item.ID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			LocationID:     item.LocationID,
			BatchID:        item.BatchID,
			ExpirationDate: item.ExpirationDate,
			Remark:         item.Remark,
		})
	}
	return InboundOrderResponse{
		ID:              o.ID,
		InboundNumber:   o.InboundNumber,
		WarehouseID:     o.WarehouseID,
		PurchaseOrderID: o.PurchaseOrderID,
		Status:          string(o.Status),
		TotalQuantity:   o.TotalQuantity,
		ConfirmedAt:     o.ConfirmedAt,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOutboundOrderResponse converts an outbound order to a response DTO
func ToOutboundOrderResponse(o *warehouse.OutboundOrder) OutboundOrderResponse {
	items := make([]OutboundOrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OutboundOrderItemResponse{
			ID:                item.ID,
			ProductName:       item.ProductName,
			RequestedQuantity: item.RequestedQuantity,
			ActualQuantity:    item.ActualQuantity,
			Unit:              item.Unit,
			BatchID:           item.BatchID,
			Remark:            item.Remark,
		})
	}
	return OutboundOrderResponse{
		ID:             o.ID,
		OutboundNumber: o.OutboundNumber,
		WarehouseID:    o.WarehouseID,
		RelatedOrderID: o.RelatedOrderID,
		Status:         string(o.Status),
		TotalQuantity:  o.TotalQuantity,
		ConfirmedAt:    o.ConfirmedAt,
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
