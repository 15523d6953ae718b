package persistence

import (
	"context"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryLogRepository implements InventoryLogRepository using GORM.
// The log table is append-only; no update or delete paths exist.
type GormInventoryLogRepository struct {
	db *gorm.DB
}

// NewGormInventoryLogRepository creates a new GormInventoryLogRepository
func NewGormInventoryLogRepository(db *gorm.DB) *GormInventoryLogRepository {
	return &GormInventoryLogRepository{db: db}
}

// Save appends a log entry
func (r *GormInventoryLogRepository) Save(ctx context.Context, entry *warehouse.InventoryLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByInventory finds log entries for a stock record, newest first
func (r *GormInventoryLogRepository) FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]warehouse.InventoryLogEntry, error) {
	var entries []warehouse.InventoryLogEntry
	query := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByReferenceOrder finds log entries written for an order confirmation
func (r *GormInventoryLogRepository) FindByReferenceOrder(ctx context.Context, orderID uuid.UUID) ([]warehouse.InventoryLogEntry, error) {
	var entries []warehouse.InventoryLogEntry
	if err := r.db.WithContext(ctx).
		Where("reference_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormInventoryLogRepository implements InventoryLogRepository
var _ warehouse.InventoryLogRepository = (*GormInventoryLogRepository)(nil)
