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

// GormOutboundOrderRepository implements OutboundOrderRepository using GORM
type GormOutboundOrderRepository struct {
	db *gorm.DB
}

// NewGormOutboundOrderRepository creates a new GormOutboundOrderRepository
func NewGormOutboundOrderRepository(db *gorm.DB) *GormOutboundOrderRepository {
	return &GormOutboundOrderRepository{db: db}
}

// FindByID finds an outbound order with its items within an organization
func (r *GormOutboundOrderRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*warehouse.OutboundOrder, error) {
	var order warehouse.OutboundOrder
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

// FindAll finds outbound orders for an organization
func (r *GormOutboundOrderRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]warehouse.OutboundOrder, error) {
	var orders []warehouse.OutboundOrder
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&warehouse.OutboundOrder{}).
			Preload("Items").
			Where("organization_id = ?", orgID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts outbound orders matching the filter
func (r *GormOutboundOrderRepository) Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&warehouse.OutboundOrder{}).
			Where("organization_id = ?", orgID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSequence returns the next daily sequence number for order numbering
func (r *GormOutboundOrderRepository) NextSequence(ctx context.Context, orgID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&warehouse.OutboundOrder{}).
		Where("organization_id = ? AND created_at >= ? AND created_at < ?", orgID, day, day.Add(24*time.Hour)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

// Save creates or updates an outbound order and its items. Item rows dropped
// by a confirm-time replacement are pruned.
func (r *GormOutboundOrderRepository) Save(ctx context.Context, order *warehouse.OutboundOrder) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
		return err
	}

	kept := make([]uuid.UUID, 0, len(order.Items))
	for i := range order.Items {
		kept = append(kept, order.Items[i].ID)
	}
	return r.db.WithContext(ctx).
		Where("outbound_order_id = ? AND id NOT IN ?", order.ID, kept).
		Delete(&warehouse.OutboundOrderItem{}).Error
}

// SaveItem updates a single order item
func (r *GormOutboundOrderRepository) SaveItem(ctx context.Context, item *warehouse.OutboundOrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Ensure GormOutboundOrderRepository implements OutboundOrderRepository
var _ warehouse.OutboundOrderRepository = (*GormOutboundOrderRepository)(nil)
