package warehouse

import (
	"context"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
)

// AlertService handles expiration scanning and alert queries. Scans can be
// triggered per warehouse over HTTP or run for all stock on a schedule.
type AlertService struct {
	warehouseRepo warehouse.WarehouseRepository
	stockRepo     warehouse.StockRecordRepository
	alertRepo     warehouse.InventoryAlertRepository
}

// NewAlertService creates a new AlertService
func NewAlertService(
	warehouseRepo warehouse.WarehouseRepository,
	stockRepo warehouse.StockRecordRepository,
	alertRepo warehouse.InventoryAlertRepository,
) *AlertService {
	return &AlertService{
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		alertRepo:     alertRepo,
	}
}

// ScanResult summarizes one expiration scan
type ScanResult struct {
	RecordsChecked int `json:"records_checked"`
	AlertsCreated  int `json:"alerts_created"`
	AlertsSkipped  int `json:"alerts_skipped"`
}

// ScanWarehouse checks every available record in a warehouse whose expiration
// date falls inside the warning window and raises an alert for each, unless
// an unresolved alert of the same type already exists for that record.
// Quantities and day counts on existing alerts are not refreshed.
func (s *AlertService) ScanWarehouse(ctx context.Context, orgID, warehouseID uuid.UUID) (*ScanResult, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, warehouseID); err != nil {
		return nil, err
	}
	return s.scanWarehouse(ctx, warehouseID)
}

// ScanAll runs an expiration scan over every warehouse regardless of
// organization. Used by the background scheduler.
func (s *AlertService) ScanAll(ctx context.Context) (*ScanResult, error) {
	ids, err := s.warehouseRepo.AllIDs(ctx)
	if err != nil {
		return nil, err
	}

	total := &ScanResult{}
	for _, id := range ids {
		result, err := s.scanWarehouse(ctx, id)
		if err != nil {
			return nil, err
		}
		total.RecordsChecked += result.RecordsChecked
		total.AlertsCreated += result.AlertsCreated
		total.AlertsSkipped += result.AlertsSkipped
	}
	return total, nil
}

func (s *AlertService) scanWarehouse(ctx context.Context, warehouseID uuid.UUID) (*ScanResult, error) {
	return scanExpirations(ctx, s.stockRepo, s.alertRepo, warehouseID, warehouse.DateOnly(time.Now()))
}

// scanExpirations walks every record in the warehouse expiring inside the
// warning window and raises an alert for each, unless an unresolved alert of
// the same type already exists for that record. Inbound confirmations run the
// same sweep inside their transaction.
func scanExpirations(ctx context.Context, stockRepo warehouse.StockRecordRepository, alertRepo warehouse.InventoryAlertRepository, warehouseID uuid.UUID, today time.Time) (*ScanResult, error) {
	windowEnd := today.Add(warehouse.ExpirationWarningWindow)

	records, err := stockRepo.FindExpiringWithin(ctx, warehouseID, today, windowEnd)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{RecordsChecked: len(records)}
	for i := range records {
		record := &records[i]
		if !record.ExpiresWithin(today, warehouse.ExpirationWarningWindow) {
			continue
		}

		exists, err := alertRepo.ExistsUnresolved(ctx, record.ID, string(warehouse.AlertTypeExpirationWarning))
		if err != nil {
			return nil, err
		}
		if exists {
			result.AlertsSkipped++
			continue
		}

		alert, err := warehouse.NewExpirationAlert(record, today)
		if err != nil {
			return nil, err
		}
		if err := alertRepo.Save(ctx, alert); err != nil {
			return nil, err
		}
		result.AlertsCreated++
	}
	return result, nil
}

// ListAlerts returns alerts matching the filter, optionally scoped to one
// warehouse. Without an is_resolved filter both open and handled alerts are
// included.
func (s *AlertService) ListAlerts(ctx context.Context, orgID uuid.UUID, req AlertListFilter) (*shared.Paginated[InventoryAlertResponse], error) {
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
	if req.AlertLevel != "" {
		filter.Filters["alert_level"] = req.AlertLevel
	}
	if req.IsResolved != nil {
		filter.Filters["is_resolved"] = *req.IsResolved
	}

	alerts, err := s.alertRepo.FindAll(ctx, req.WarehouseID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.alertRepo.Count(ctx, req.WarehouseID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InventoryAlertResponse, 0, len(alerts))
	for i := range alerts {
		items = append(items, ToInventoryAlertResponse(&alerts[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ResolveAlert marks an alert as handled
func (s *AlertService) ResolveAlert(ctx context.Context, alertID uuid.UUID) (*InventoryAlertResponse, error) {
	alert, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert.IsResolved {
		return nil, shared.ErrInvalidState
	}
	alert.Resolve()
	if err := s.alertRepo.Save(ctx, alert); err != nil {
		return nil, err
	}
	resp := ToInventoryAlertResponse(alert)
	return &resp, nil
}
