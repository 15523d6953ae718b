package warehouse

import (
	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType classifies a ledger mutation
type OperationType string

const (
	// OperationTypeInbound is a stock increase from an inbound confirmation
	OperationTypeInbound OperationType = "inbound"
	// OperationTypeOutbound is a stock decrease from an outbound confirmation
	OperationTypeOutbound OperationType = "outbound"
)

// String returns the string representation
func (t OperationType) String() string {
	return string(t)
}

// IsValid returns true if the operation type is a known value
func (t OperationType) IsValid() bool {
	return t == OperationTypeInbound || t == OperationTypeOutbound
}

// InventoryLogEntry is an immutable record of a single stock record mutation.
// Entries are written once per mutation within a confirmation and never
// updated or deleted; InventoryID may reference a record that has since been
// deleted (depleted by outbound).
type InventoryLogEntry struct {
	shared.BaseEntity
	InventoryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OperationType    OperationType   `gorm:"type:varchar(20);not null;index"`
	ChangeQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BeforeQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AfterQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReferenceOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Remark           string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (InventoryLogEntry) TableName() string {
	return "inventory_logs"
}

// NewInventoryLogEntry creates a log entry. ChangeQuantity is signed: positive
// for inbound, negative for outbound, and must equal after minus before.
func NewInventoryLogEntry(
	inventoryID uuid.UUID,
	operationType OperationType,
	before, after decimal.Decimal,
	referenceOrderID uuid.UUID,
	remark string,
) (*InventoryLogEntry, error) {
	if inventoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVENTORY", "Inventory ID cannot be empty")
	}
	if !operationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Invalid operation type")
	}
	if referenceOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference order ID cannot be empty")
	}

	change := after.Sub(before)
	if operationType == OperationTypeInbound && change.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_CHANGE", "Inbound change must be positive")
	}
	if operationType == OperationTypeOutbound && change.GreaterThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_CHANGE", "Outbound change must be negative")
	}

	return &InventoryLogEntry{
		BaseEntity:       shared.NewBaseEntity(),
		InventoryID:      inventoryID,
		OperationType:    operationType,
		ChangeQuantity:   change,
		BeforeQuantity:   before,
		AfterQuantity:    after,
		ReferenceOrderID: referenceOrderID,
		Remark:           remark,
	}, nil
}
