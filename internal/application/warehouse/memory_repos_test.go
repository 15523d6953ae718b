package warehouse

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. They keep the same
// contracts as the GORM implementations (ErrNotFound, FIFO ordering) without
// a database.

type memoryWarehouseRepo struct {
	warehouses map[uuid.UUID]*warehouse.Warehouse
	locations  map[uuid.UUID]*warehouse.WarehouseLocation
}

func newMemoryWarehouseRepo() *memoryWarehouseRepo {
	return &memoryWarehouseRepo{
		warehouses: make(map[uuid.UUID]*warehouse.Warehouse),
		locations:  make(map[uuid.UUID]*warehouse.WarehouseLocation),
	}
}

func (r *memoryWarehouseRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*warehouse.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok || w.OrganizationID != orgID {
		return nil, shared.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *memoryWarehouseRepo) FindAll(_ context.Context, orgID uuid.UUID, _ shared.Filter) ([]warehouse.Warehouse, error) {
	result := make([]warehouse.Warehouse, 0)
	for _, w := range r.warehouses {
		if w.OrganizationID == orgID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memoryWarehouseRepo) Count(_ context.Context, orgID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, w := range r.warehouses {
		if w.OrganizationID == orgID {
			count++
		}
	}
	return count, nil
}

func (r *memoryWarehouseRepo) AllIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.warehouses))
	for id := range r.warehouses {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *memoryWarehouseRepo) Save(_ context.Context, w *warehouse.Warehouse) error {
	copied := *w
	r.warehouses[w.ID] = &copied
	return nil
}

func (r *memoryWarehouseRepo) Delete(_ context.Context, orgID, id uuid.UUID) error {
	w, ok := r.warehouses[id]
	if !ok || w.OrganizationID != orgID {
		return shared.ErrNotFound
	}
	delete(r.warehouses, id)
	return nil
}

func (r *memoryWarehouseRepo) FindLocations(_ context.Context, warehouseID uuid.UUID) ([]warehouse.WarehouseLocation, error) {
	result := make([]warehouse.WarehouseLocation, 0)
	for _, loc := range r.locations {
		if loc.WarehouseID == warehouseID {
			result = append(result, *loc)
		}
	}
	return result, nil
}

func (r *memoryWarehouseRepo) FindLocationByID(_ context.Context, id uuid.UUID) (*warehouse.WarehouseLocation, error) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *loc
	return &copied, nil
}

func (r *memoryWarehouseRepo) SaveLocation(_ context.Context, loc *warehouse.WarehouseLocation) error {
	copied := *loc
	r.locations[loc.ID] = &copied
	return nil
}

func (r *memoryWarehouseRepo) DeleteLocation(_ context.Context, id uuid.UUID) error {
	if _, ok := r.locations[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.locations, id)
	return nil
}

type memoryStockRepo struct {
	records    map[uuid.UUID]*warehouse.StockRecord
	warehouses *memoryWarehouseRepo
}

func newMemoryStockRepo(warehouses *memoryWarehouseRepo) *memoryStockRepo {
	return &memoryStockRepo{
		records:    make(map[uuid.UUID]*warehouse.StockRecord),
		warehouses: warehouses,
	}
}

func (r *memoryStockRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.StockRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *memoryStockRepo) FindByWarehouseProductBatch(_ context.Context, warehouseID uuid.UUID, productName, batchID string) (*warehouse.StockRecord, error) {
	for _, record := range r.records {
		if record.WarehouseID == warehouseID &&
			record.ProductName == productName &&
			record.BatchID == batchID &&
			record.Status == warehouse.StockStatusAvailable {
			copied := *record
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryStockRepo) FindAvailableByProduct(_ context.Context, warehouseID uuid.UUID, productName string) ([]warehouse.StockRecord, error) {
	result := make([]warehouse.StockRecord, 0)
	for _, record := range r.records {
		if record.WarehouseID == warehouseID && record.ProductName == productName && record.IsAvailable() {
			result = append(result, *record)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].InboundDate != nil && result[j].InboundDate != nil {
			if !result[i].InboundDate.Equal(*result[j].InboundDate) {
				return result[i].InboundDate.Before(*result[j].InboundDate)
			}
		} else if result[i].InboundDate != nil {
			return true
		} else if result[j].InboundDate != nil {
			return false
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryStockRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]warehouse.StockRecord, error) {
	result := make([]warehouse.StockRecord, 0)
	for _, record := range r.records {
		if record.WarehouseID == warehouseID && matchesStockFilter(record, filter) {
			result = append(result, *record)
		}
	}
	return result, nil
}

func matchesStockFilter(record *warehouse.StockRecord, filter shared.Filter) bool {
	if search, ok := filter.Filters["search"].(string); ok {
		if !strings.Contains(strings.ToLower(record.ProductName), strings.ToLower(search)) {
			return false
		}
	}
	if status, ok := filter.Filters["status"].(string); ok {
		if string(record.Status) != status {
			return false
		}
	}
	return true
}

func (r *memoryStockRepo) CountByWarehouse(_ context.Context, warehouseID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	for _, record := range r.records {
		if record.WarehouseID == warehouseID && matchesStockFilter(record, filter) {
			count++
		}
	}
	return count, nil
}

func (r *memoryStockRepo) Search(_ context.Context, orgID uuid.UUID, filter shared.Filter) ([]warehouse.StockRecord, error) {
	result := make([]warehouse.StockRecord, 0)
	for _, record := range r.records {
		owner, ok := r.warehouses.warehouses[record.WarehouseID]
		if !ok || owner.OrganizationID != orgID {
			continue
		}
		if matchesSearchFilter(record, filter) {
			result = append(result, *record)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].InboundDate != nil && result[j].InboundDate != nil {
			if !result[i].InboundDate.Equal(*result[j].InboundDate) {
				return result[i].InboundDate.After(*result[j].InboundDate)
			}
		} else if result[i].InboundDate != nil {
			return true
		} else if result[j].InboundDate != nil {
			return false
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryStockRepo) CountSearch(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	records, _ := r.Search(ctx, orgID, filter)
	return int64(len(records)), nil
}

func matchesSearchFilter(record *warehouse.StockRecord, filter shared.Filter) bool {
	if warehouseID, ok := filter.Filters["warehouse_id"].(uuid.UUID); ok && record.WarehouseID != warehouseID {
		return false
	}
	if locationID, ok := filter.Filters["location_id"].(uuid.UUID); ok {
		if record.LocationID == nil || *record.LocationID != locationID {
			return false
		}
	}
	if name, ok := filter.Filters["product_name"].(string); ok {
		if !strings.Contains(strings.ToLower(record.ProductName), strings.ToLower(name)) {
			return false
		}
	}
	if batchID, ok := filter.Filters["batch_id"].(string); ok && record.BatchID != batchID {
		return false
	}
	if status, ok := filter.Filters["status"].(string); ok && string(record.Status) != status {
		return false
	}
	if from, ok := filter.Filters["expiration_date_from"].(time.Time); ok {
		if record.ExpirationDate == nil || record.ExpirationDate.Before(from) {
			return false
		}
	}
	if to, ok := filter.Filters["expiration_date_to"].(time.Time); ok {
		if record.ExpirationDate == nil || record.ExpirationDate.After(to) {
			return false
		}
	}
	return true
}

func (r *memoryStockRepo) FindExpiringWithin(_ context.Context, warehouseID uuid.UUID, today, windowEnd time.Time) ([]warehouse.StockRecord, error) {
	result := make([]warehouse.StockRecord, 0)
	for _, record := range r.records {
		if record.WarehouseID != warehouseID || record.ExpirationDate == nil {
			continue
		}
		if record.ExpirationDate.After(today) && !record.ExpirationDate.After(windowEnd) {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *memoryStockRepo) Save(_ context.Context, record *warehouse.StockRecord) error {
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *memoryStockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

type memoryLogRepo struct {
	entries []warehouse.InventoryLogEntry
}

func newMemoryLogRepo() *memoryLogRepo {
	return &memoryLogRepo{}
}

func (r *memoryLogRepo) Save(_ context.Context, entry *warehouse.InventoryLogEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryLogRepo) FindByInventory(_ context.Context, inventoryID uuid.UUID, _ shared.Filter) ([]warehouse.InventoryLogEntry, error) {
	result := make([]warehouse.InventoryLogEntry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].InventoryID == inventoryID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

func (r *memoryLogRepo) FindByReferenceOrder(_ context.Context, orderID uuid.UUID) ([]warehouse.InventoryLogEntry, error) {
	result := make([]warehouse.InventoryLogEntry, 0)
	for _, entry := range r.entries {
		if entry.ReferenceOrderID == orderID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type memoryAlertRepo struct {
	alerts map[uuid.UUID]*warehouse.InventoryAlert
}

func newMemoryAlertRepo() *memoryAlertRepo {
	return &memoryAlertRepo{alerts: make(map[uuid.UUID]*warehouse.InventoryAlert)}
}

func (r *memoryAlertRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.InventoryAlert, error) {
	alert, ok := r.alerts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *alert
	return &copied, nil
}

func (r *memoryAlertRepo) FindAll(_ context.Context, warehouseID *uuid.UUID, filter shared.Filter) ([]warehouse.InventoryAlert, error) {
	result := make([]warehouse.InventoryAlert, 0)
	for _, alert := range r.alerts {
		if warehouseID != nil && alert.WarehouseID != *warehouseID {
			continue
		}
		if level, ok := filter.Filters["alert_level"].(string); ok && string(alert.AlertLevel) != level {
			continue
		}
		if resolved, ok := filter.Filters["is_resolved"].(bool); ok && alert.IsResolved != resolved {
			continue
		}
		result = append(result, *alert)
	}
	return result, nil
}

func (r *memoryAlertRepo) Count(ctx context.Context, warehouseID *uuid.UUID, filter shared.Filter) (int64, error) {
	alerts, _ := r.FindAll(ctx, warehouseID, filter)
	return int64(len(alerts)), nil
}

func (r *memoryAlertRepo) ExistsUnresolved(_ context.Context, inventoryID uuid.UUID, alertType string) (bool, error) {
	for _, alert := range r.alerts {
		if !alert.IsResolved && alert.InventoryID == inventoryID && string(alert.AlertType) == alertType {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryAlertRepo) Save(_ context.Context, alert *warehouse.InventoryAlert) error {
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *memoryAlertRepo) ResolveByInventory(_ context.Context, inventoryID uuid.UUID) error {
	for _, alert := range r.alerts {
		if alert.InventoryID == inventoryID {
			alert.IsResolved = true
		}
	}
	return nil
}

type memoryInboundRepo struct {
	orders map[uuid.UUID]*warehouse.InboundOrder
}

func newMemoryInboundRepo() *memoryInboundRepo {
	return &memoryInboundRepo{orders: make(map[uuid.UUID]*warehouse.InboundOrder)}
}

func (r *memoryInboundRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*warehouse.InboundOrder, error) {
	order, ok := r.orders[id]
	if !ok || order.OrganizationID != orgID {
		return nil, shared.ErrNotFound
	}
	copied := *order
	copied.Items = append([]warehouse.InboundOrderItem(nil), order.Items...)
	return &copied, nil
}

func (r *memoryInboundRepo) FindAll(_ context.Context, orgID uuid.UUID, filter shared.Filter) ([]warehouse.InboundOrder, error) {
	result := make([]warehouse.InboundOrder, 0)
	for _, order := range r.orders {
		if order.OrganizationID != orgID {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && string(order.Status) != status {
			continue
		}
		result = append(result, *order)
	}
	return result, nil
}

func (r *memoryInboundRepo) Count(_ context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	orders, _ := r.FindAll(context.Background(), orgID, filter)
	return int64(len(orders)), nil
}

func (r *memoryInboundRepo) NextSequence(_ context.Context, orgID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	next := day.AddDate(0, 0, 1)
	for _, order := range r.orders {
		if order.OrganizationID == orgID && !order.CreatedAt.Before(day) && order.CreatedAt.Before(next) {
			count++
		}
	}
	return count + 1, nil
}

func (r *memoryInboundRepo) Save(_ context.Context, order *warehouse.InboundOrder) error {
	copied := *order
	copied.Items = append([]warehouse.InboundOrderItem(nil), order.Items...)
	r.orders[order.ID] = &copied
	return nil
}

type memoryOutboundRepo struct {
	orders map[uuid.UUID]*warehouse.OutboundOrder
}

func newMemoryOutboundRepo() *memoryOutboundRepo {
	return &memoryOutboundRepo{orders: make(map[uuid.UUID]*warehouse.OutboundOrder)}
}

func (r *memoryOutboundRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*warehouse.OutboundOrder, error) {
	order, ok := r.orders[id]
	if !ok || order.OrganizationID != orgID {
		return nil, shared.ErrNotFound
	}
	copied := *order
	copied.Items = append([]warehouse.OutboundOrderItem(nil), order.Items...)
	return &copied, nil
}

func (r *memoryOutboundRepo) FindAll(_ context.Context, orgID uuid.UUID, filter shared.Filter) ([]warehouse.OutboundOrder, error) {
	result := make([]warehouse.OutboundOrder, 0)
	for _, order := range r.orders {
		if order.OrganizationID != orgID {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && string(order.Status) != status {
			continue
		}
		result = append(result, *order)
	}
	return result, nil
}

func (r *memoryOutboundRepo) Count(_ context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	orders, _ := r.FindAll(context.Background(), orgID, filter)
	return int64(len(orders)), nil
}

func (r *memoryOutboundRepo) NextSequence(_ context.Context, orgID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	next := day.AddDate(0, 0, 1)
	for _, order := range r.orders {
		if order.OrganizationID == orgID && !order.CreatedAt.Before(day) && order.CreatedAt.Before(next) {
			count++
		}
	}
	return count + 1, nil
}

func (r *memoryOutboundRepo) Save(_ context.Context, order *warehouse.OutboundOrder) error {
	copied := *order
	copied.Items = append([]warehouse.OutboundOrderItem(nil), order.Items...)
	r.orders[order.ID] = &copied
	return nil
}

func (r *memoryOutboundRepo) SaveItem(_ context.Context, item *warehouse.OutboundOrderItem) error {
	order, ok := r.orders[item.OutboundOrderID]
	if !ok {
		return shared.ErrNotFound
	}
	for i := range order.Items {
		if order.Items[i].ID == item.ID {
			order.Items[i] = *item
			return nil
		}
	}
	return shared.ErrNotFound
}

// testEnv bundles the in-memory repositories and services under test
type testEnv struct {
	warehouseRepo *memoryWarehouseRepo
	stockRepo     *memoryStockRepo
	logRepo       *memoryLogRepo
	alertRepo     *memoryAlertRepo
	inboundRepo   *memoryInboundRepo
	outboundRepo  *memoryOutboundRepo

	warehouseService *WarehouseService
	alertService     *AlertService
	inboundService   *InboundService
	outboundService  *OutboundService
}

func newTestEnv() *testEnv {
	warehouseRepo := newMemoryWarehouseRepo()
	env := &testEnv{
		warehouseRepo: warehouseRepo,
		stockRepo:     newMemoryStockRepo(warehouseRepo),
		logRepo:       newMemoryLogRepo(),
		alertRepo:     newMemoryAlertRepo(),
		inboundRepo:   newMemoryInboundRepo(),
		outboundRepo:  newMemoryOutboundRepo(),
	}

	txScope := &rollbackScope{
		repos: NewNoOpTransactionScope(env.stockRepo, env.logRepo, env.alertRepo, env.inboundRepo, env.outboundRepo),
		env:   env,
	}

	env.warehouseService = NewWarehouseService(env.warehouseRepo, env.stockRepo, env.logRepo)
	env.alertService = NewAlertService(env.warehouseRepo, env.stockRepo, env.alertRepo)
	env.inboundService = NewInboundService(env.warehouseRepo, env.inboundRepo, txScope)
	env.outboundService = NewOutboundService(env.warehouseRepo, env.outboundRepo, txScope)
	return env
}

// rollbackScope gives the in-memory repositories the same contract as the
// database transaction scope: state is snapshotted before the wrapped
// function runs and restored when it fails.
type rollbackScope struct {
	repos *NoOpTransactionScope
	env   *testEnv
}

func (s *rollbackScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	stock := make(map[uuid.UUID]*warehouse.StockRecord, len(s.env.stockRepo.records))
	for id, record := range s.env.stockRepo.records {
		copied := *record
		stock[id] = &copied
	}
	alerts := make(map[uuid.UUID]*warehouse.InventoryAlert, len(s.env.alertRepo.alerts))
	for id, alert := range s.env.alertRepo.alerts {
		copied := *alert
		alerts[id] = &copied
	}
	logs := append([]warehouse.InventoryLogEntry(nil), s.env.logRepo.entries...)
	inbound := make(map[uuid.UUID]*warehouse.InboundOrder, len(s.env.inboundRepo.orders))
	for id, order := range s.env.inboundRepo.orders {
		copied := *order
		copied.Items = append([]warehouse.InboundOrderItem(nil), order.Items...)
		inbound[id] = &copied
	}
	outbound := make(map[uuid.UUID]*warehouse.OutboundOrder, len(s.env.outboundRepo.orders))
	for id, order := range s.env.outboundRepo.orders {
		copied := *order
		copied.Items = append([]warehouse.OutboundOrderItem(nil), order.Items...)
		outbound[id] = &copied
	}

	if err := fn(s.repos); err != nil {
		s.env.stockRepo.records = stock
		s.env.alertRepo.alerts = alerts
		s.env.logRepo.entries = logs
		s.env.inboundRepo.orders = inbound
		s.env.outboundRepo.orders = outbound
		return err
	}
	return nil
}

var _ TransactionScope = (*rollbackScope)(nil)

// unresolvedFilter matches only open alerts
func unresolvedFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Filters["is_resolved"] = false
	return filter
}

func (env *testEnv) mustWarehouse(orgID uuid.UUID) *warehouse.Warehouse {
	w, err := warehouse.NewWarehouse(orgID, "Cold Storage A", "Hangzhou", nil, true)
	if err != nil {
		panic(err)
	}
	if err := env.warehouseRepo.Save(context.Background(), w); err != nil {
		panic(err)
	}
	return w
}

var _ warehouse.WarehouseRepository = (*memoryWarehouseRepo)(nil)
var _ warehouse.StockRecordRepository = (*memoryStockRepo)(nil)
var _ warehouse.InventoryLogRepository = (*memoryLogRepo)(nil)
var _ warehouse.InventoryAlertRepository = (*memoryAlertRepo)(nil)
var _ warehouse.InboundOrderRepository = (*memoryInboundRepo)(nil)
var _ warehouse.OutboundOrderRepository = (*memoryOutboundRepo)(nil)
