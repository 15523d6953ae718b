package warehouse

import (
	"fmt"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an inbound or outbound order
type OrderStatus string

const (
	// OrderStatusDraft means the order has been created but not executed
	OrderStatusDraft OrderStatus = "draft"
	// OrderStatusConfirmed means the order has been executed against the ledger
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// InboundOrder is a draft list of goods to be received into a warehouse.
// Confirmation is the only transition out of draft and the only path that
// increases ledger stock.
type InboundOrder struct {
	shared.OrgEntity
	PurchaseOrderID *uuid.UUID      `gorm:"type:uuid;index"`
	InboundNumber   string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'draft';index"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid"`
	TotalQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ConfirmedAt     *time.Time
	Items           []InboundOrderItem `gorm:"foreignKey:InboundOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (InboundOrder) TableName() string {
	return "inbound_orders"
}

// InboundOrderItem is one line of an inbound order
type InboundOrderItem struct {
	shared.BaseEntity
	InboundOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName    string          `gorm:"type:varchar(120);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit           string          `gorm:"type:varchar(20);not null"`
	LocationID     *uuid.UUID      `gorm:"type:uuid"`
	BatchID        string          `gorm:"type:varchar(64);not null;default:''"`
	ExpirationDate *time.Time      `gorm:"type:date"`
	Remark         string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (InboundOrderItem) TableName() string {
	return "inbound_order_items"
}

// NewInboundOrder creates a draft inbound order with its items
func NewInboundOrder(
	organizationID, warehouseID uuid.UUID,
	purchaseOrderID, createdBy *uuid.UUID,
	inboundNumber string,
	items []InboundOrderItem,
) (*InboundOrder, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if inboundNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Inbound number cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Inbound order requires at least one item")
	}

	order := &InboundOrder{
		OrgEntity:       shared.NewOrgEntity(organizationID),
		PurchaseOrderID: purchaseOrderID,
		InboundNumber:   inboundNumber,
		WarehouseID:     warehouseID,
		Status:          OrderStatusDraft,
		CreatedBy:       createdBy,
	}

	total := decimal.Zero
	for i := range items {
		if items[i].ProductName == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Item product name cannot be empty")
		}
		if items[i].Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}
		items[i].BaseEntity = shared.NewBaseEntity()
		items[i].InboundOrderID = order.ID
		total = total.Add(items[i].Quantity)
	}
	order.TotalQuantity = total
	order.Items = items
	return order, nil
}

// Confirm transitions the order from draft to confirmed
func (o *InboundOrder) Confirm(at time.Time) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &at
	o.UpdatedAt = at
	return nil
}

// ReplaceItems swaps the draft items for the list the caller states at
// confirmation time, recomputing the order total. What actually arrived at
// the dock wins over what was planned. Only draft orders can be changed.
func (o *InboundOrder) ReplaceItems(items []InboundOrderItem) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Inbound order requires at least one item")
	}

	total := decimal.Zero
	for i := range items {
		if items[i].ProductName == "" {
			return shared.NewDomainError("INVALID_PRODUCT", "Item product name cannot be empty")
		}
		if items[i].Quantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}
		items[i].BaseEntity = shared.NewBaseEntity()
		items[i].InboundOrderID = o.ID
		total = total.Add(items[i].Quantity)
	}
	o.TotalQuantity = total
	o.Items = items
	return nil
}

// OutboundOrder is a draft list of goods to be shipped from a warehouse.
// Confirmation deducts stock FIFO and is the only transition out of draft.
type OutboundOrder struct {
	shared.OrgEntity
	OutboundNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	WarehouseID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	RelatedOrderID *uuid.UUID      `gorm:"type:uuid"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'draft';index"`
	CreatedBy      *uuid.UUID      `gorm:"type:uuid"`
	TotalQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ConfirmedAt    *time.Time
	Items          []OutboundOrderItem `gorm:"foreignKey:OutboundOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OutboundOrder) TableName() string {
	return "outbound_orders"
}

// OutboundOrderItem is one line of an outbound order. ActualQuantity is set
// during confirmation and stays nil while the order is a draft.
type OutboundOrderItem struct {
	shared.BaseEntity
	OutboundOrderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductName       string           `gorm:"type:varchar(120);not null"`
	RequestedQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	ActualQuantity    *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Unit              string           `gorm:"type:varchar(20)"`
	BatchID           string           `gorm:"type:varchar(64);not null;default:''"`
	Remark            string           `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (OutboundOrderItem) TableName() string {
	return "outbound_order_items"
}

// NewOutboundOrder creates a draft outbound order with its items
func NewOutboundOrder(
	organizationID, warehouseID uuid.UUID,
	relatedOrderID, createdBy *uuid.UUID,
	outboundNumber string,
	items []OutboundOrderItem,
) (*OutboundOrder, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if outboundNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Outbound number cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Outbound order requires at least one item")
	}

	order := &OutboundOrder{
		OrgEntity:      shared.NewOrgEntity(organizationID),
		OutboundNumber: outboundNumber,
		WarehouseID:    warehouseID,
		RelatedOrderID: relatedOrderID,
		Status:         OrderStatusDraft,
		CreatedBy:      createdBy,
	}

	total := decimal.Zero
	for i := range items {
		if items[i].ProductName == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Item product name cannot be empty")
		}
		if items[i].RequestedQuantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item requested quantity must be positive")
		}
		items[i].BaseEntity = shared.NewBaseEntity()
		items[i].OutboundOrderID = order.ID
		total = total.Add(items[i].RequestedQuantity)
	}
	order.TotalQuantity = total
	order.Items = items
	return order, nil
}

// Confirm transitions the order from draft to confirmed
func (o *OutboundOrder) Confirm(at time.Time) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &at
	o.UpdatedAt = at
	return nil
}

// ReplaceItems swaps the draft items for the list the caller states at
// confirmation time, recomputing the order total. A pre-set ActualQuantity
// carries through and overrides RequestedQuantity as the amount to deduct.
// Only draft orders can be changed.
func (o *OutboundOrder) ReplaceItems(items []OutboundOrderItem) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Outbound order requires at least one item")
	}

	total := decimal.Zero
	for i := range items {
		if items[i].ProductName == "" {
			return shared.NewDomainError("INVALID_PRODUCT", "Item product name cannot be empty")
		}
		if items[i].RequestedQuantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_QUANTITY", "Item requested quantity must be positive")
		}
		if items[i].ActualQuantity != nil && items[i].ActualQuantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_QUANTITY", "Item actual quantity must be positive")
		}
		items[i].BaseEntity = shared.NewBaseEntity()
		items[i].OutboundOrderID = o.ID
		total = total.Add(items[i].RequestedQuantity)
	}
	o.TotalQuantity = total
	o.Items = items
	return nil
}

// FormatInboundNumber builds an inbound order number like IB-20260115-0001
func FormatInboundNumber(date time.Time, sequence int64) string {
	return fmt.Sprintf("IB-%s-%04d", date.Format("20060102"), sequence)
}

// FormatOutboundNumber builds an outbound order number like OB-20260115-0001
func FormatOutboundNumber(date time.Time, sequence int64) string {
	return fmt.Sprintf("OB-%s-%04d", date.Format("20060102"), sequence)
}
