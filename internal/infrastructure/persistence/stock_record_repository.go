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

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record by ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.StockRecord, error) {
	var record warehouse.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByWarehouseProductBatch finds the available record matching warehouse,
// product name and batch
func (r *GormStockRecordRepository) FindByWarehouseProductBatch(ctx context.Context, warehouseID uuid.UUID, productName, batchID string) (*warehouse.StockRecord, error) {
	var record warehouse.StockRecord
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_name = ? AND batch_id = ? AND status = ?",
			warehouseID, productName, batchID, warehouse.StockStatusAvailable).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAvailableByProduct finds all available records for a product in a
// warehouse, ordered oldest inbound date first with creation order as
// tie-break
func (r *GormStockRecordRepository) FindAvailableByProduct(ctx context.Context, warehouseID uuid.UUID, productName string) ([]warehouse.StockRecord, error) {
	var records []warehouse.StockRecord
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_name = ? AND status = ? AND quantity > 0",
			warehouseID, productName, warehouse.StockStatusAvailable).
		Order("inbound_date ASC NULLS LAST").
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByWarehouse finds records in a warehouse matching the filter
func (r *GormStockRecordRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]warehouse.StockRecord, error) {
	var records []warehouse.StockRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&warehouse.StockRecord{}).
			Where("warehouse_id = ?", warehouseID),
		filter,
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountByWarehouse counts records in a warehouse matching the filter
func (r *GormStockRecordRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&warehouse.StockRecord{}).
			Where("warehouse_id = ?", warehouseID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Search finds records across every warehouse of an organization, newest
// inbound date first. Organization scoping goes through the owning warehouse.
func (r *GormStockRecordRepository) Search(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]warehouse.StockRecord, error) {
	var records []warehouse.StockRecord
	query := r.applySearchFilter(r.searchBase(ctx, orgID), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("stock_records.inbound_date DESC NULLS LAST, stock_records.created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountSearch counts records matching the search filter
func (r *GormStockRecordRepository) CountSearch(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearchFilter(r.searchBase(ctx, orgID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockRecordRepository) searchBase(ctx context.Context, orgID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&warehouse.StockRecord{}).
		Joins("JOIN warehouses ON warehouses.id = stock_records.warehouse_id").
		Where("warehouses.organization_id = ?", orgID)
}

func (r *GormStockRecordRepository) applySearchFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("stock_records.warehouse_id = ?", value)
		case "location_id":
			query = query.Where("stock_records.location_id = ?", value)
		case "product_name":
			query = query.Where("stock_records.product_name ILIKE ?", "%"+value.(string)+"%")
		case "batch_id":
			query = query.Where("stock_records.batch_id = ?", value)
		case "status":
			query = query.Where("stock_records.status = ?", value)
		case "expiration_date_from":
			query = query.Where("stock_records.expiration_date >= ?", value)
		case "expiration_date_to":
			query = query.Where("stock_records.expiration_date <= ?", value)
		}
	}
	return query
}

// FindExpiringWithin finds available records expiring after today and no
// later than the window end
func (r *GormStockRecordRepository) FindExpiringWithin(ctx context.Context, warehouseID uuid.UUID, today, windowEnd time.Time) ([]warehouse.StockRecord, error) {
	var records []warehouse.StockRecord
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND status = ? AND quantity > 0", warehouseID, warehouse.StockStatusAvailable).
		Where("expiration_date IS NOT NULL AND expiration_date > ? AND expiration_date <= ?", today, windowEnd).
		Order("expiration_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a stock record
func (r *GormStockRecordRepository) Save(ctx context.Context, record *warehouse.StockRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes a stock record
func (r *GormStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&warehouse.StockRecord{}, "id = ?", id).Error
}

func (r *GormStockRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if filter.OrderDir == "desc" || filter.OrderDir == "DESC" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}
	return query
}

func (r *GormStockRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "search":
			query = query.Where("product_name ILIKE ?", "%"+value.(string)+"%")
		case "status":
			query = query.Where("status = ?", value)
		case "batch_id":
			query = query.Where("batch_id = ?", value)
		}
	}
	return query
}

// Ensure GormStockRecordRepository implements StockRecordRepository
var _ warehouse.StockRecordRepository = (*GormStockRecordRepository)(nil)
