package warehouse

import (
	"context"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by ID within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Warehouse, error)

	// FindAll finds all warehouses for an organization
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Warehouse, error)

	// Count counts warehouses matching the filter
	Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)

	// AllIDs lists every warehouse ID across all organizations.
	// Used by the scheduled expiration scan.
	AllIDs(ctx context.Context) ([]uuid.UUID, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, w *Warehouse) error

	// Delete deletes a warehouse within an organization
	Delete(ctx context.Context, orgID, id uuid.UUID) error

	// FindLocations finds all storage locations of a warehouse
	FindLocations(ctx context.Context, warehouseID uuid.UUID) ([]WarehouseLocation, error)

	// FindLocationByID finds a storage location by ID
	FindLocationByID(ctx context.Context, id uuid.UUID) (*WarehouseLocation, error)

	// SaveLocation creates or updates a storage location
	SaveLocation(ctx context.Context, loc *WarehouseLocation) error

	// DeleteLocation deletes a storage location
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

// StockRecordRepository defines the interface for stock record persistence
type StockRecordRepository interface {
	// FindByID finds a stock record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// FindByWarehouseProductBatch finds the available record matching warehouse,
	// product name and batch. Returns shared.ErrNotFound when no match exists.
	FindByWarehouseProductBatch(ctx context.Context, warehouseID uuid.UUID, productName, batchID string) (*StockRecord, error)

	// FindAvailableByProduct finds all available records for a product in a
	// warehouse, ordered oldest inbound date first
	FindAvailableByProduct(ctx context.Context, warehouseID uuid.UUID, productName string) ([]StockRecord, error)

	// FindByWarehouse finds records in a warehouse matching the filter
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]StockRecord, error)

	// CountByWarehouse counts records in a warehouse matching the filter
	CountByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (int64, error)

	// Search finds records across every warehouse of an organization.
	// Recognized filters: warehouse_id, location_id, product_name, batch_id,
	// status, expiration_date_from, expiration_date_to.
	Search(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]StockRecord, error)

	// CountSearch counts records matching the search filter
	CountSearch(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)

	// FindExpiringWithin finds available records whose expiration date falls
	// after today and no later than the window end (inclusive)
	FindExpiringWithin(ctx context.Context, warehouseID uuid.UUID, today, windowEnd time.Time) ([]StockRecord, error)

	// Save creates or updates a stock record
	Save(ctx context.Context, record *StockRecord) error

	// Delete removes a stock record. Depleted records are deleted rather
	// than kept at zero quantity.
	Delete(ctx context.Context, id uuid.UUID) error
}

// InventoryLogRepository defines the interface for the append-only movement log
type InventoryLogRepository interface {
	// Save appends a log entry. Entries are never updated or deleted.
	Save(ctx context.Context, entry *InventoryLogEntry) error

	// FindByInventory finds log entries for a stock record, newest first
	FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]InventoryLogEntry, error)

	// FindByReferenceOrder finds log entries written for an order confirmation
	FindByReferenceOrder(ctx context.Context, orderID uuid.UUID) ([]InventoryLogEntry, error)
}

// InventoryAlertRepository defines the interface for inventory alert persistence
type InventoryAlertRepository interface {
	// FindByID finds an alert by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryAlert, error)

	// FindAll finds alerts, optionally scoped to a warehouse, most urgent
	// first. Recognized filters: alert_level, is_resolved.
	FindAll(ctx context.Context, warehouseID *uuid.UUID, filter shared.Filter) ([]InventoryAlert, error)

	// Count counts alerts matching the filter
	Count(ctx context.Context, warehouseID *uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsUnresolved reports whether an unresolved alert of the given type
	// already exists for a stock record
	ExistsUnresolved(ctx context.Context, inventoryID uuid.UUID, alertType string) (bool, error)

	// Save creates or updates an alert
	Save(ctx context.Context, alert *InventoryAlert) error

	// ResolveByInventory resolves all unresolved alerts for a stock record
	ResolveByInventory(ctx context.Context, inventoryID uuid.UUID) error
}

// InboundOrderRepository defines the interface for inbound order persistence
type InboundOrderRepository interface {
	// FindByID finds an inbound order with its items within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*InboundOrder, error)

	// FindAll finds inbound orders for an organization
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]InboundOrder, error)

	// Count counts inbound orders matching the filter
	Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)

	// NextSequence returns the next daily sequence number for order numbering
	NextSequence(ctx context.Context, orgID uuid.UUID, day time.Time) (int64, error)

	// Save creates or updates an inbound order and its items
	Save(ctx context.Context, order *InboundOrder) error
}

// OutboundOrderRepository defines the interface for outbound order persistence
type OutboundOrderRepository interface {
	// FindByID finds an outbound order with its items within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*OutboundOrder, error)

	// FindAll finds outbound orders for an organization
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]OutboundOrder, error)

	// Count counts outbound orders matching the filter
	Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)

	// NextSequence returns the next daily sequence number for order numbering
	NextSequence(ctx context.Context, orgID uuid.UUID, day time.Time) (int64, error)

	// Save creates or updates an outbound order and its items
	Save(ctx context.Context, order *OutboundOrder) error

	// SaveItem updates a single order item (used to record actual quantities)
	SaveItem(ctx context.Context, item *OutboundOrderItem) error
}
