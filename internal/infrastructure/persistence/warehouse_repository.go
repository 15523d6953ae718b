package persistence

import (
	"context"
	"errors"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by ID within an organization
func (r *GormWarehouseRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*warehouse.Warehouse, error) {
	var w warehouse.Warehouse
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// FindAll finds all warehouses for an organization
func (r *GormWarehouseRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]warehouse.Warehouse, error) {
	var warehouses []warehouse.Warehouse
	query := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// Count counts warehouses for an organization
func (r *GormWarehouseRepository) Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&warehouse.Warehouse{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AllIDs lists every warehouse ID across organizations
func (r *GormWarehouseRepository) AllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&warehouse.Warehouse{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, w *warehouse.Warehouse) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete deletes a warehouse within an organization
func (r *GormWarehouseRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Delete(&warehouse.Warehouse{}, "id = ?", id).Error
}

// FindLocations finds all storage locations of a warehouse
func (r *GormWarehouseRepository) FindLocations(ctx context.Context, warehouseID uuid.UUID) ([]warehouse.WarehouseLocation, error) {
	var locations []warehouse.WarehouseLocation
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("location_code ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindLocationByID finds a storage location by ID
func (r *GormWarehouseRepository) FindLocationByID(ctx context.Context, id uuid.UUID) (*warehouse.WarehouseLocation, error) {
	var loc warehouse.WarehouseLocation
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// SaveLocation creates or updates a storage location
func (r *GormWarehouseRepository) SaveLocation(ctx context.Context, loc *warehouse.WarehouseLocation) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

// DeleteLocation deletes a storage location
func (r *GormWarehouseRepository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&warehouse.WarehouseLocation{}, "id = ?", id).Error
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ warehouse.WarehouseRepository = (*GormWarehouseRepository)(nil)
