package warehouse

import (
	"context"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
)

// WarehouseService handles warehouse and storage location management plus
// read-side inventory queries. Stock mutations live in the inbound and
// outbound services.
type WarehouseService struct {
	warehouseRepo warehouse.WarehouseRepository
	stockRepo     warehouse.StockRecordRepository
	logRepo       warehouse.InventoryLogRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	warehouseRepo warehouse.WarehouseRepository,
	stockRepo warehouse.StockRecordRepository,
	logRepo warehouse.InventoryLogRepository,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		logRepo:       logRepo,
	}
}

// CreateWarehouse creates a warehouse for the organization
func (s *WarehouseService) CreateWarehouse(ctx context.Context, orgID uuid.UUID, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := warehouse.NewWarehouse(orgID, req.Name, req.Location, req.Capacity, req.TemperatureControlled)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, w); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// UpdateWarehouse applies a partial update to a warehouse
func (s *WarehouseService) UpdateWarehouse(ctx context.Context, orgID, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
		}
		w.Name = *req.Name
	}
	if req.Location != nil {
		w.Location = *req.Location
	}
	if req.Capacity != nil {
		w.Capacity = req.Capacity
	}
	if req.TemperatureControlled != nil {
		w.TemperatureControlled = *req.TemperatureControlled
	}
	w.UpdatedAt = time.Now()

	if err := s.warehouseRepo.Save(ctx, w); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// GetWarehouse returns a warehouse by ID
func (s *WarehouseService) GetWarehouse(ctx context.Context, orgID, id uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// ListWarehouses returns a paginated list of the organization's warehouses
func (s *WarehouseService) ListWarehouses(ctx context.Context, orgID uuid.UUID, page, pageSize int) (*shared.Paginated[WarehouseResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	warehouses, err := s.warehouseRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.warehouseRepo.Count(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		items = append(items, ToWarehouseResponse(&warehouses[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// DeleteWarehouse removes a warehouse
func (s *WarehouseService) DeleteWarehouse(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, id); err != nil {
		return err
	}
	return s.warehouseRepo.Delete(ctx, orgID, id)
}

// CreateLocation adds a storage location to a warehouse
func (s *WarehouseService) CreateLocation(ctx context.Context, orgID, warehouseID uuid.UUID, req CreateLocationRequest) (*LocationResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, warehouseID); err != nil {
		return nil, err
	}

	loc, err := warehouse.NewWarehouseLocation(warehouseID, req.LocationCode, req.RackNumber, req.ShelfNumber, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.SaveLocation(ctx, loc); err != nil {
		return nil, err
	}
	resp := ToLocationResponse(loc)
	return &resp, nil
}

// ListLocations returns the storage locations of a warehouse
func (s *WarehouseService) ListLocations(ctx context.Context, orgID, warehouseID uuid.UUID) ([]LocationResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, warehouseID); err != nil {
		return nil, err
	}

	locations, err := s.warehouseRepo.FindLocations(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		items = append(items, ToLocationResponse(&locations[i]))
	}
	return items, nil
}

// DeleteLocation removes a storage location from a warehouse
func (s *WarehouseService) DeleteLocation(ctx context.Context, orgID, warehouseID, locationID uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, warehouseID); err != nil {
		return err
	}
	loc, err := s.warehouseRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return err
	}
	if loc.WarehouseID != warehouseID {
		return shared.ErrNotFound
	}
	return s.warehouseRepo.DeleteLocation(ctx, locationID)
}

// ListInventory returns a paginated view of the stock records in a warehouse.
// Search matches the product name; an empty status includes all records.
func (s *WarehouseService) ListInventory(ctx context.Context, orgID, warehouseID uuid.UUID, req InventoryListFilter) (*shared.Paginated[StockRecordResponse], error) {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, warehouseID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Search != "" {
		filter.Filters["search"] = req.Search
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	records, err := s.stockRepo.FindByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.CountByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StockRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, ToStockRecordResponse(&records[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// SearchInventory returns stock records across every warehouse of the
// organization matching the filter. A stated warehouse must belong to the
// organization.
func (s *WarehouseService) SearchInventory(ctx context.Context, orgID uuid.UUID, req InventorySearchFilter) (*shared.Paginated[StockRecordResponse], error) {
	if req.WarehouseID != nil {
		if _, err := s.warehouseRepo.FindByID(ctx, orgID, *req.WarehouseID); err != nil {
			return nil, err
		}
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.WarehouseID != nil {
		filter.Filters["warehouse_id"] = *req.WarehouseID
	}
	if req.LocationID != nil {
		filter.Filters["location_id"] = *req.LocationID
	}
	if req.ProductName != "" {
		filter.Filters["product_name"] = req.ProductName
	}
	if req.BatchID != "" {
		filter.Filters["batch_id"] = req.BatchID
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.ExpirationDateFrom != nil {
		filter.Filters["expiration_date_from"] = *req.ExpirationDateFrom
	}
	if req.ExpirationDateTo != nil {
		filter.Filters["expiration_date_to"] = *req.ExpirationDateTo
	}

	records, err := s.stockRepo.Search(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.CountSearch(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StockRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, ToStockRecordResponse(&records[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetInventoryLogs returns the movement history of a stock record, newest
// first. The record itself may already be deleted; its log entries remain.
func (s *WarehouseService) GetInventoryLogs(ctx context.Context, inventoryID uuid.UUID, page, pageSize int) ([]InventoryLogResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	entries, err := s.logRepo.FindByInventory(ctx, inventoryID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]InventoryLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, ToInventoryLogResponse(&entries[i]))
	}
	return items, nil
}
