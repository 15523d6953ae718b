package warehouse

import (
	"sort"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeductionStep is the planned deduction against a single stock record
type DeductionStep struct {
	RecordID       uuid.UUID
	BatchID        string
	BeforeQuantity decimal.Decimal
	Deducted       decimal.Decimal
	AfterQuantity  decimal.Decimal
	Depleted       bool
}

// DeductionPlan is the complete result of planning a FIFO deduction for one
// product. The plan is computed before any write happens so that an
// insufficient request fails without touching the ledger.
type DeductionPlan struct {
	Steps          []DeductionStep
	TotalDeducted  decimal.Decimal
	Remaining      decimal.Decimal
	FullyFulfilled bool
}

// PlanFIFODeduction walks available records oldest-first and plans how much to
// take from each until the requested quantity is covered. Records are ordered
// by inbound date ascending; records sharing an inbound date keep their
// creation order (insertion order tie-break).
func PlanFIFODeduction(requested decimal.Decimal, records []StockRecord) (*DeductionPlan, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	available := make([]StockRecord, 0, len(records))
	for _, r := range records {
		if r.IsAvailable() {
			available = append(available, r)
		}
	}

	sorted := make([]StockRecord, len(available))
	copy(sorted, available)
	sort.SliceStable(sorted, func(i, j int) bool {
		// nil inbound dates sort last
		if sorted[i].InboundDate != nil && sorted[j].InboundDate != nil {
			if !sorted[i].InboundDate.Equal(*sorted[j].InboundDate) {
				return sorted[i].InboundDate.Before(*sorted[j].InboundDate)
			}
		} else if sorted[i].InboundDate != nil {
			return true
		} else if sorted[j].InboundDate != nil {
			return false
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	steps := make([]DeductionStep, 0, len(sorted))
	remaining := requested
	totalDeducted := decimal.Zero

	for _, record := range sorted {
		if remaining.IsZero() {
			break
		}

		deduct := decimal.Min(remaining, record.Quantity)
		after := record.Quantity.Sub(deduct)

		steps = append(steps, DeductionStep{
			RecordID:       record.ID,
			BatchID:        record.BatchID,
			BeforeQuantity: record.Quantity,
			Deducted:       deduct,
			AfterQuantity:  after,
			Depleted:       after.IsZero(),
		})

		totalDeducted = totalDeducted.Add(deduct)
		remaining = remaining.Sub(deduct)
	}

	return &DeductionPlan{
		Steps:          steps,
		TotalDeducted:  totalDeducted,
		Remaining:      remaining,
		FullyFulfilled: remaining.IsZero(),
	}, nil
}

// TotalAvailable sums the quantity across available records
func TotalAvailable(records []StockRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.IsAvailable() {
			total = total.Add(r.Quantity)
		}
	}
	return total
}
