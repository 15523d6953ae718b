package warehouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InboundService handles inbound order lifecycle: draft creation, listing and
// the confirmation that moves goods onto the ledger.
type InboundService struct {
	warehouseRepo    warehouse.WarehouseRepository
	inboundRepo      warehouse.InboundOrderRepository
	txScope          TransactionScope
	idempotencyStore shared.IdempotencyStore
}

// NewInboundService creates a new InboundService
func NewInboundService(
	warehouseRepo warehouse.WarehouseRepository,
	inboundRepo warehouse.InboundOrderRepository,
	txScope TransactionScope,
) *InboundService {
	return &InboundService{
		warehouseRepo: warehouseRepo,
		inboundRepo:   inboundRepo,
		txScope:       txScope,
	}
}

// SetIdempotencyStore enables replay rejection for confirmations
func (s *InboundService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotencyStore = store
}

// CreateOrder creates a draft inbound order with a generated order number
func (s *InboundService) CreateOrder(ctx context.Context, orgID uuid.UUID, createdBy *uuid.UUID, req CreateInboundOrderRequest) (*InboundOrderResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, req.WarehouseID); err != nil {
		return nil, err
	}

	items := make([]warehouse.InboundOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, warehouse.InboundOrderItem{
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			LocationID:     item.LocationID,
			BatchID:        item.BatchID,
			ExpirationDate: item.ExpirationDate,
			Remark:         item.Remark,
		})
	}

	today := warehouse.DateOnly(time.Now())
	seq, err := s.inboundRepo.NextSequence(ctx, orgID, today)
	if err != nil {
		return nil, err
	}

	order, err := warehouse.NewInboundOrder(orgID, req.WarehouseID, req.PurchaseOrderID, createdBy, warehouse.FormatInboundNumber(today, seq), items)
	if err != nil {
		return nil, err
	}
	if err := s.inboundRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToInboundOrderResponse(order)
	return &resp, nil
}

// GetOrder returns an inbound order with its items
func (s *InboundService) GetOrder(ctx context.Context, orgID, orderID uuid.UUID) (*InboundOrderResponse, error) {
	order, err := s.inboundRepo.FindByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToInboundOrderResponse(order)
	return &resp, nil
}

// ListOrders returns a paginated list of inbound orders
func (s *InboundService) ListOrders(ctx context.Context, orgID uuid.UUID, req OrderListFilter) (*shared.Paginated[InboundOrderResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	orders, err := s.inboundRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.inboundRepo.Count(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InboundOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToInboundOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ConfirmOrder executes a draft inbound order against the ledger. Items in
// the request replace the stored draft items first: the caller's statement of
// what actually arrived wins over the plan. For each item it merges into the
// existing available record matching the warehouse, product and batch, or
// creates a fresh record when none exists. Every quantity change is logged,
// and the confirmation finishes with an expiration sweep of the whole
// warehouse. The whole confirmation runs in one transaction; any failing item
// rolls back all of it.
func (s *InboundService) ConfirmOrder(ctx context.Context, orgID, orderID uuid.UUID, req ConfirmInboundRequest) (*ConfirmInboundResponse, error) {
	if s.idempotencyStore != nil {
		processed, err := s.idempotencyStore.IsProcessed(ctx, inboundConfirmKey(orderID))
		if err == nil && processed {
			return nil, shared.ErrInvalidState
		}
	}

	now := time.Now()
	today := warehouse.DateOnly(now)

	var resp ConfirmInboundResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.InboundRepo().FindByID(ctx, orgID, orderID)
		if err != nil {
			return err
		}
		if len(req.Items) > 0 {
			replacement := make([]warehouse.InboundOrderItem, 0, len(req.Items))
			for _, item := range req.Items {
				replacement = append(replacement, warehouse.InboundOrderItem{
					ProductName:    item.ProductName,
					Quantity:       item.Quantity,
					Unit:           item.Unit,
					LocationID:     item.LocationID,
					BatchID:        item.BatchID,
					ExpirationDate: item.ExpirationDate,
					Remark:         item.Remark,
				})
			}
			if err := order.ReplaceItems(replacement); err != nil {
				return err
			}
		}
		if err := order.Confirm(now); err != nil {
			return err
		}

		records := make([]StockRecordResponse, 0, len(order.Items))
		created, merged := 0, 0

		for i := range order.Items {
			item := &order.Items[i]

			record, err := repos.StockRepo().FindByWarehouseProductBatch(ctx, order.WarehouseID, item.ProductName, item.BatchID)
			switch {
			case err == nil:
				before := record.Quantity
				if err := record.Merge(item.Quantity); err != nil {
					return err
				}
				if err := repos.StockRepo().Save(ctx, record); err != nil {
					return err
				}
				entry, err := warehouse.NewInventoryLogEntry(record.ID, warehouse.OperationTypeInbound, before, record.Quantity, order.ID, item.Remark)
				if err != nil {
					return err
				}
				if err := repos.LogRepo().Save(ctx, entry); err != nil {
					return err
				}
				merged++
				records = append(records, ToStockRecordResponse(record))

			case errors.Is(err, shared.ErrNotFound):
				record, err := warehouse.NewStockRecord(order.WarehouseID, item.LocationID, item.ProductName, item.BatchID, &order.ID, item.Quantity, item.Unit, item.ExpirationDate)
				if err != nil {
					return err
				}
				if err := repos.StockRepo().Save(ctx, record); err != nil {
					return err
				}
				entry, err := warehouse.NewInventoryLogEntry(record.ID, warehouse.OperationTypeInbound, decimal.Zero, record.Quantity, order.ID, item.Remark)
				if err != nil {
					return err
				}
				if err := repos.LogRepo().Save(ctx, entry); err != nil {
					return err
				}
				created++
				records = append(records, ToStockRecordResponse(record))

			default:
				return err
			}
		}

		// The sweep covers the whole warehouse, not just the records this
		// order touched.
		if _, err := scanExpirations(ctx, repos.StockRepo(), repos.AlertRepo(), order.WarehouseID, today); err != nil {
			return err
		}

		if err := repos.InboundRepo().Save(ctx, order); err != nil {
			return err
		}

		resp = ConfirmInboundResponse{
			Order:          ToInboundOrderResponse(order),
			RecordsCreated: created,
			RecordsMerged:  merged,
			Records:        records,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.idempotencyStore != nil {
		// Best effort: the draft status check remains the hard guard
		_, _ = s.idempotencyStore.MarkProcessed(ctx, inboundConfirmKey(orderID), shared.DefaultIdempotencyTTL)
	}
	return &resp, nil
}

func inboundConfirmKey(orderID uuid.UUID) string {
	return fmt.Sprintf("warehouse:inbound:confirm:%s", orderID)
}
