package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
)

// OutboundService handles outbound order lifecycle: draft creation, listing
// and the confirmation that deducts stock oldest-first.
type OutboundService struct {
	warehouseRepo    warehouse.WarehouseRepository
	outboundRepo     warehouse.OutboundOrderRepository
	txScope          TransactionScope
	idempotencyStore shared.IdempotencyStore
}

// NewOutboundService creates a new OutboundService
func NewOutboundService(
	warehouseRepo warehouse.WarehouseRepository,
	outboundRepo warehouse.OutboundOrderRepository,
	txScope TransactionScope,
) *OutboundService {
	return &OutboundService{
		warehouseRepo: warehouseRepo,
		outboundRepo:  outboundRepo,
		txScope:       txScope,
	}
}

// SetIdempotencyStore enables replay rejection for confirmations
func (s *OutboundService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotencyStore = store
}

// CreateOrder creates a draft outbound order with a generated order number
func (s *OutboundService) CreateOrder(ctx context.Context, orgID uuid.UUID, createdBy *uuid.UUID, req CreateOutboundOrderRequest) (*OutboundOrderResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, orgID, req.WarehouseID); err != nil {
		return nil, err
	}

	items := make([]warehouse.OutboundOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, warehouse.OutboundOrderItem{
			ProductName:       item.ProductName,
			RequestedQuantity: item.RequestedQuantity,
			Unit:              item.Unit,
			BatchID:           item.BatchID,
			Remark:            item.Remark,
		})
	}

	today := warehouse.DateOnly(time.Now())
	seq, err := s.outboundRepo.NextSequence(ctx, orgID, today)
	if err != nil {
		return nil, err
	}

	order, err := warehouse.NewOutboundOrder(orgID, req.WarehouseID, req.RelatedOrderID, createdBy, warehouse.FormatOutboundNumber(today, seq), items)
	if err != nil {
		return nil, err
	}
	if err := s.outboundRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOutboundOrderResponse(order)
	return &resp, nil
}

// GetOrder returns an outbound order with its items
func (s *OutboundService) GetOrder(ctx context.Context, orgID, orderID uuid.UUID) (*OutboundOrderResponse, error) {
	order, err := s.outboundRepo.FindByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOutboundOrderResponse(order)
	return &resp, nil
}

// ListOrders returns a paginated list of outbound orders
func (s *OutboundService) ListOrders(ctx context.Context, orgID uuid.UUID, req OrderListFilter) (*shared.Paginated[OutboundOrderResponse], error) {
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

	orders, err := s.outboundRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.outboundRepo.Count(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OutboundOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOutboundOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ConfirmOrder executes a draft outbound order against the ledger. Items in
// the request replace the stored draft items first, and a line's actual
// quantity, when stated, is the amount deducted instead of the requested one.
// Each item is checked against the available stock for its product before
// anything is written: no available record fails the item with NO_INVENTORY,
// a shortfall with INSUFFICIENT_INVENTORY. Deduction then walks records
// oldest inbound date first, deleting any record it empties, logging every
// change, and recording the deducted total on the item as its actual
// quantity. The whole confirmation runs in one transaction; a failing item
// rolls back all of it and leaves the order in draft.
func (s *OutboundService) ConfirmOrder(ctx context.Context, orgID, orderID uuid.UUID, req ConfirmOutboundRequest) (*ConfirmOutboundResponse, error) {
	if s.idempotencyStore != nil {
		processed, err := s.idempotencyStore.IsProcessed(ctx, outboundConfirmKey(orderID))
		if err == nil && processed {
			return nil, shared.ErrInvalidState
		}
	}

	now := time.Now()

	var resp ConfirmOutboundResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OutboundRepo().FindByID(ctx, orgID, orderID)
		if err != nil {
			return err
		}
		if len(req.Items) > 0 {
			replacement := make([]warehouse.OutboundOrderItem, 0, len(req.Items))
			for _, item := range req.Items {
				replacement = append(replacement, warehouse.OutboundOrderItem{
					ProductName:       item.ProductName,
					RequestedQuantity: item.RequestedQuantity,
					ActualQuantity:    item.ActualQuantity,
					Unit:              item.Unit,
					BatchID:           item.BatchID,
					Remark:            item.Remark,
				})
			}
			if err := order.ReplaceItems(replacement); err != nil {
				return err
			}
		}
		if err := order.Confirm(now); err != nil {
			return err
		}

		deductions := make([]OutboundDeductionResponse, 0, len(order.Items))

		for i := range order.Items {
			item := &order.Items[i]

			want := item.RequestedQuantity
			if item.ActualQuantity != nil {
				want = *item.ActualQuantity
			}

			records, err := repos.StockRepo().FindAvailableByProduct(ctx, order.WarehouseID, item.ProductName)
			if err != nil {
				return err
			}
			if item.BatchID != "" {
				filtered := records[:0]
				for _, r := range records {
					if r.BatchID == item.BatchID {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}
			if len(records) == 0 {
				return warehouse.NewNoInventoryError(item.ProductName)
			}
			if warehouse.TotalAvailable(records).LessThan(want) {
				return warehouse.NewInsufficientInventoryError(item.ProductName)
			}

			plan, err := warehouse.PlanFIFODeduction(want, records)
			if err != nil {
				return err
			}

			byID := make(map[uuid.UUID]*warehouse.StockRecord, len(records))
			for j := range records {
				byID[records[j].ID] = &records[j]
			}

			for _, step := range plan.Steps {
				record := byID[step.RecordID]
				record.Deduct(step.Deducted)

				if record.IsDepleted() {
					if err := repos.StockRepo().Delete(ctx, record.ID); err != nil {
						return err
					}
					if err := repos.AlertRepo().ResolveByInventory(ctx, record.ID); err != nil {
						return err
					}
				} else {
					if err := repos.StockRepo().Save(ctx, record); err != nil {
						return err
					}
				}

				entry, err := warehouse.NewInventoryLogEntry(record.ID, warehouse.OperationTypeOutbound, step.BeforeQuantity, step.AfterQuantity, order.ID, item.Remark)
				if err != nil {
					return err
				}
				if err := repos.LogRepo().Save(ctx, entry); err != nil {
					return err
				}
			}

			actual := plan.TotalDeducted
			item.ActualQuantity = &actual

			deductions = append(deductions, OutboundDeductionResponse{
				ProductName:    item.ProductName,
				Requested:      item.RequestedQuantity,
				Deducted:       plan.TotalDeducted,
				BatchesTouched: len(plan.Steps),
			})
		}

		if err := repos.OutboundRepo().Save(ctx, order); err != nil {
			return err
		}

		resp = ConfirmOutboundResponse{
			Order:      ToOutboundOrderResponse(order),
			Deductions: deductions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.idempotencyStore != nil {
		// Best effort: the draft status check remains the hard guard
		_, _ = s.idempotencyStore.MarkProcessed(ctx, outboundConfirmKey(orderID), shared.DefaultIdempotencyTTL)
	}
	return &resp, nil
}

func outboundConfirmKey(orderID uuid.UUID) string {
	return fmt.Sprintf("warehouse:outbound:confirm:%s", orderID)
}
