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

// GormInboundOrderRepository implements InboundOrderRepository using GORM
type GormInboundOrderRepository struct {
	db *gorm.DB
}

// NewGormInboundOrderRepository creates a new GormInboundOrderRepository
func NewGormInboundOrderRepository(db *gorm.DB) *GormInboundOrderRepository {
	return &GormInboundOrderRepository{db: db}
}

// FindByID finds an inbound order with its items within an organization
func (r *GormInboundOrderRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*warehouse.InboundOrder, error) {
	var order warehouse.InboundOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds inbound orders for an organization
func (r *GormInboundOrderRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]warehouse.InboundOrder, error) {
	var orders []warehouse.InboundOrder
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&warehouse.InboundOrder{}).
			Preload("Items").
			Where("organization_id = ?", orgID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts inbound orders matching the filter
func (r *GormInboundOrderRepository) Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&warehouse.InboundOrder{}).
			Where("organization_id = ?", orgID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSequence returns the next daily sequence number for order numbering
func (r *GormInboundOrderRepository) NextSequence(ctx context.Context, orgID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&warehouse.InboundOrder{}).
		Where("organization_id = ? AND created_at >= ? AND created_at < ?", orgID, day, day.Add(24*time.Hour)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

// Save creates or updates an inbound order and its items. Item rows dropped
// by a confirm-time replacement are pruned.
func (r *GormInboundOrderRepository) Save(ctx context.Context, order *warehouse.InboundOrder) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
		return err
	}

	kept := make([]uuid.UUID, 0, len(order.Items))
	for i := range order.Items {
		kept = append(kept, order.Items[i].ID)
	}
	return r.db.WithContext(ctx).
		Where("inbound_order_id = ? AND id NOT IN ?", order.ID, kept).
		Delete(&warehouse.InboundOrderItem{}).Error
}

// applyOrderFilter applies shared order list filters with pagination
func applyOrderFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyOrderFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("created_at DESC")
}

// applyOrderFilterWithoutPagination applies shared order list filters
func applyOrderFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		}
	}
	return query
}

// Ensure GormInboundOrderRepository implements InboundOrderRepository
var _ warehouse.InboundOrderRepository = (*GormInboundOrderRepository)(nil)
