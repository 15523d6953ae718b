package warehouse

import (
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpirationWarningWindow is how far ahead expiration alerting looks
const ExpirationWarningWindow = 7 * 24 * time.Hour

// CriticalExpirationDays is the threshold at or below which an expiration
// alert is raised as critical instead of warning
const CriticalExpirationDays = 3

// AlertType classifies an inventory alert
type AlertType string

const (
	// AlertTypeExpirationWarning flags a batch approaching its expiration date
	AlertTypeExpirationWarning AlertType = "expiration_warning"
)

// AlertLevel is the severity of an alert
type AlertLevel string

const (
	// AlertLevelCritical needs immediate operator attention
	AlertLevelCritical AlertLevel = "critical"
	// AlertLevelWarning needs attention soon
	AlertLevelWarning AlertLevel = "warning"
)

// IsValid returns true if the level is a known value
func (l AlertLevel) IsValid() bool {
	return l == AlertLevelCritical || l == AlertLevelWarning
}

// ExpirationAlertLevel maps days-until-expiration to a severity
func ExpirationAlertLevel(daysUntilExpiration int) AlertLevel {
	if daysUntilExpiration <= CriticalExpirationDays {
		return AlertLevelCritical
	}
	return AlertLevelWarning
}

// InventoryAlert flags a stock record needing operator attention. While an
// alert of a given type stays unresolved, no duplicate is raised for the same
// record; the captured quantities and day counts are snapshots from the time
// the alert was created and are not refreshed on later scans.
type InventoryAlert struct {
	shared.BaseEntity
	InventoryID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_alert_inventory_type,priority:1"`
	WarehouseID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName         string          `gorm:"type:varchar(120);not null"`
	BatchID             string          `gorm:"type:varchar(64);not null;default:''"`
	AlertType           AlertType       `gorm:"type:varchar(40);not null;index:idx_alert_inventory_type,priority:2"`
	AlertLevel          AlertLevel      `gorm:"type:varchar(20);not null;index"`
	DaysUntilExpiration int             `gorm:"not null"`
	CurrentQuantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpirationDate      time.Time       `gorm:"type:date;not null"`
	IsResolved          bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (InventoryAlert) TableName() string {
	return "inventory_alerts"
}

// NewExpirationAlert creates an unresolved expiration warning for a stock record
func NewExpirationAlert(record *StockRecord, today time.Time) (*InventoryAlert, error) {
	if record.ExpirationDate == nil {
		return nil, shared.NewDomainError("INVALID_EXPIRATION", "Stock record has no expiration date")
	}

	days := record.DaysUntilExpiration(today)
	return &InventoryAlert{
		BaseEntity:          shared.NewBaseEntity(),
		InventoryID:         record.ID,
		WarehouseID:         record.WarehouseID,
		ProductName:         record.ProductName,
		BatchID:             record.BatchID,
		AlertType:           AlertTypeExpirationWarning,
		AlertLevel:          ExpirationAlertLevel(days),
		DaysUntilExpiration: days,
		CurrentQuantity:     record.Quantity,
		ExpirationDate:      *record.ExpirationDate,
		IsResolved:          false,
	}, nil
}

// Resolve marks the alert as handled
func (a *InventoryAlert) Resolve() {
	a.IsResolved = true
	a.UpdatedAt = time.Now()
}
