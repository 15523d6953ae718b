package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryAlertRepository implements InventoryAlertRepository using GORM
type GormInventoryAlertRepository struct {
	db *gorm.DB
}

// NewGormInventoryAlertRepository creates a new GormInventoryAlertRepository
func NewGormInventoryAlertRepository(db *gorm.DB) *GormInventoryAlertRepository {
	return &GormInventoryAlertRepository{db: db}
}

// FindByID finds an alert by ID
func (r *GormInventoryAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.InventoryAlert, error) {
	var alert warehouse.InventoryAlert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindAll finds alerts, optionally scoped to a warehouse, most urgent first
func (r *GormInventoryAlertRepository) FindAll(ctx context.Context, warehouseID *uuid.UUID, filter shared.Filter) ([]warehouse.InventoryAlert, error) {
	var alerts []warehouse.InventoryAlert
	query := r.applyAlertFilter(r.db.WithContext(ctx), warehouseID, filter).
		Order("days_until_expiration ASC").
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Count counts alerts matching the filter
func (r *GormInventoryAlertRepository) Count(ctx context.Context, warehouseID *uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyAlertFilter(
		r.db.WithContext(ctx).Model(&warehouse.InventoryAlert{}),
		warehouseID, filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryAlertRepository) applyAlertFilter(query *gorm.DB, warehouseID *uuid.UUID, filter shared.Filter) *gorm.DB {
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	for key, value := range filter.Filters {
		switch key {
		case "alert_level":
			query = query.Where("alert_level = ?", value)
		case "is_resolved":
			query = query.Where("is_resolved = ?", value)
		}
	}
	return query
}

// ExistsUnresolved reports whether an unresolved alert of the given type
// already exists for a stock record
func (r *GormInventoryAlertRepository) ExistsUnresolved(ctx context.Context, inventoryID uuid.UUID, alertType string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&warehouse.InventoryAlert{}).
		Where("inventory_id = ? AND alert_type = ? AND is_resolved = ?", inventoryID, alertType, false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an alert
func (r *GormInventoryAlertRepository) Save(ctx context.Context, alert *warehouse.InventoryAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

// ResolveByInventory resolves all unresolved alerts for a stock record
func (r *GormInventoryAlertRepository) ResolveByInventory(ctx context.Context, inventoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&warehouse.InventoryAlert{}).
		Where("inventory_id = ? AND is_resolved = ?", inventoryID, false).
		Updates(map[string]interface{}{"is_resolved": true, "updated_at": time.Now()}).Error
}

// Ensure GormInventoryAlertRepository implements InventoryAlertRepository
var _ warehouse.InventoryAlertRepository = (*GormInventoryAlertRepository)(nil)
