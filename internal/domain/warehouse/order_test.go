package warehouse

import (
	"errors"
	"testing"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInboundOrder(t *testing.T) {
	orgID := uuid.New()
	warehouseID := uuid.New()

	t.Run("creates draft with total quantity", func(t *testing.T) {
		items := []InboundOrderItem{
			{ProductName: "Fuji Apple", Quantity: decimal.NewFromInt(10), Unit: "kg"},
			{ProductName: "Navel Orange", Quantity: decimal.NewFromInt(5), Unit: "kg"},
		}

		order, err := NewInboundOrder(orgID, warehouseID, nil, nil, "IB-20260115-0001", items)

		require.NoError(t, err)
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.Equal(t, orgID, order.OrganizationID)
		assert.True(t, order.TotalQuantity.Equal(decimal.NewFromInt(15)))
		require.Len(t, order.Items, 2)
		assert.Equal(t, order.ID, order.Items[0].InboundOrderID)
		assert.Nil(t, order.ConfirmedAt)
	})

	t.Run("fails without items", func(t *testing.T) {
		order, err := NewInboundOrder(orgID, warehouseID, nil, nil, "IB-20260115-0001", nil)

		require.Error(t, err)
		assert.Nil(t, order)
	})

	t.Run("fails with non-positive item quantity", func(t *testing.T) {
		items := []InboundOrderItem{
			{ProductName: "Fuji Apple", Quantity: decimal.Zero, Unit: "kg"},
		}

		order, err := NewInboundOrder(orgID, warehouseID, nil, nil, "IB-20260115-0001", items)

		require.Error(t, err)
		assert.Nil(t, order)
	})
}

func TestInboundOrder_Confirm(t *testing.T) {
	order, err := NewInboundOrder(uuid.New(), uuid.New(), nil, nil, "IB-20260115-0001", []InboundOrderItem{
		{ProductName: "Fuji Apple", Quantity: decimal.NewFromInt(10), Unit: "kg"},
	})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, order.Confirm(now))
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)
	assert.Equal(t, now, *order.ConfirmedAt)

	// second confirmation is rejected
	err = order.Confirm(time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestNewOutboundOrder(t *testing.T) {
	orgID := uuid.New()
	warehouseID := uuid.New()

	t.Run("creates draft with requested totals", func(t *testing.T) {
		items := []OutboundOrderItem{
			{ProductName: "Fuji Apple", RequestedQuantity: decimal.NewFromInt(8)},
		}

		order, err := NewOutboundOrder(orgID, warehouseID, nil, nil, "OB-20260115-0001", items)

		require.NoError(t, err)
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.True(t, order.TotalQuantity.Equal(decimal.NewFromInt(8)))
		assert.Nil(t, order.Items[0].ActualQuantity)
	})

	t.Run("fails with empty product name", func(t *testing.T) {
		items := []OutboundOrderItem{
			{ProductName: "", RequestedQuantity: decimal.NewFromInt(8)},
		}

		order, err := NewOutboundOrder(orgID, warehouseID, nil, nil, "OB-20260115-0001", items)

		require.Error(t, err)
		assert.Nil(t, order)
	})
}

func TestOutboundOrder_Confirm(t *testing.T) {
	order, err := NewOutboundOrder(uuid.New(), uuid.New(), nil, nil, "OB-20260115-0001", []OutboundOrderItem{
		{ProductName: "Fuji Apple", RequestedQuantity: decimal.NewFromInt(8)},
	})
	require.NoError(t, err)

	require.NoError(t, order.Confirm(time.Now()))

	err = order.Confirm(time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestFormatOrderNumbers(t *testing.T) {
	date := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "IB-20260115-0001", FormatInboundNumber(date, 1))
	assert.Equal(t, "IB-20260115-0042", FormatInboundNumber(date, 42))
	assert.Equal(t, "OB-20260115-0007", FormatOutboundNumber(date, 7))
}
