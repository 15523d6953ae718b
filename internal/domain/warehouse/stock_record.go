package warehouse

import (
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus represents the availability state of a stock record
type StockStatus string

const (
	// StockStatusAvailable means the stock can be consumed by outbound orders
	StockStatusAvailable StockStatus = "available"
	// StockStatusReserved means the stock is held for a pending order
	StockStatusReserved StockStatus = "reserved"
	// StockStatusDamaged means the stock cannot be shipped
	StockStatusDamaged StockStatus = "damaged"
)

// String returns the string representation
func (s StockStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusAvailable, StockStatusReserved, StockStatusDamaged:
		return true
	}
	return false
}

// StockRecord is one batch of a product held at a warehouse location.
// It is the unit of the inventory ledger: inbound confirmation merges into it,
// outbound confirmation deducts from it, and a record whose quantity reaches
// exactly zero is deleted rather than persisted at zero.
//
// At most one available record may exist per (warehouse, product name, batch)
// tuple; inbound confirmation enforces this by merging instead of inserting.
type StockRecord struct {
	shared.BaseEntity
	WarehouseID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_warehouse_product,priority:1"`
	LocationID     *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName    string          `gorm:"type:varchar(120);not null;index:idx_stock_warehouse_product,priority:2"`
	BatchID        string          `gorm:"type:varchar(64);not null;default:''"`
	SourceOrderID  *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit           string          `gorm:"type:varchar(20);not null"`
	Status         StockStatus     `gorm:"type:varchar(20);not null;default:'available';index"`
	ExpirationDate *time.Time      `gorm:"type:date"`
	InboundDate    *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates an available stock record with today as inbound date
func NewStockRecord(
	warehouseID uuid.UUID,
	locationID *uuid.UUID,
	productName string,
	batchID string,
	sourceOrderID *uuid.UUID,
	quantity decimal.Decimal,
	unit string,
	expirationDate *time.Time,
) (*StockRecord, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	today := DateOnly(time.Now())
	return &StockRecord{
		BaseEntity:     shared.NewBaseEntity(),
		WarehouseID:    warehouseID,
		LocationID:     locationID,
		ProductName:    productName,
		BatchID:        batchID,
		SourceOrderID:  sourceOrderID,
		Quantity:       quantity,
		Unit:           unit,
		Status:         StockStatusAvailable,
		ExpirationDate: expirationDate,
		InboundDate:    &today,
	}, nil
}

// Merge increases the record quantity by the given amount (inbound upsert path)
func (r *StockRecord) Merge(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	r.Quantity = r.Quantity.Add(quantity)
	r.UpdatedAt = time.Now()
	return nil
}

// Deduct reduces the record quantity, capped at what the record holds.
// Returns the amount actually deducted. The quantity never goes negative.
func (r *StockRecord) Deduct(quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	deducted := decimal.Min(quantity, r.Quantity)
	r.Quantity = r.Quantity.Sub(deducted)
	r.UpdatedAt = time.Now()
	return deducted
}

// IsDepleted returns true once the quantity has reached exactly zero
func (r *StockRecord) IsDepleted() bool {
	return r.Quantity.IsZero()
}

// IsAvailable returns true if the record can serve outbound orders
func (r *StockRecord) IsAvailable() bool {
	return r.Status == StockStatusAvailable && r.Quantity.GreaterThan(decimal.Zero)
}

// ExpiresWithin returns true if the record has an expiration date inside
// (today, today+window]. Records without an expiration date never expire.
func (r *StockRecord) ExpiresWithin(today time.Time, window time.Duration) bool {
	if r.ExpirationDate == nil {
		return false
	}
	deadline := today.Add(window)
	return r.ExpirationDate.After(today) && !r.ExpirationDate.After(deadline)
}

// DaysUntilExpiration returns ceil((expiration - today) / 1 day), or -1 when
// the record has no expiration date
func (r *StockRecord) DaysUntilExpiration(today time.Time) int {
	if r.ExpirationDate == nil {
		return -1
	}
	return DaysBetween(today, *r.ExpirationDate)
}

// DateOnly truncates a timestamp to midnight UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b, rounding partial
// days up
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
