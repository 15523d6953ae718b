package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedExpiringStock(t *testing.T, env *testEnv, warehouseID uuid.UUID, productName string, daysUntilExpiration int) *warehouse.StockRecord {
	t.Helper()
	record := seedStock(t, env, warehouseID, productName, "", 10, 0)
	exp := warehouse.DateOnly(time.Now()).AddDate(0, 0, daysUntilExpiration)
	record.ExpirationDate = &exp
	require.NoError(t, env.stockRepo.Save(context.Background(), record))
	return record
}

func TestAlertService_ScanWarehouse(t *testing.T) {
	ctx := context.Background()

	t.Run("raises alerts for stock inside the warning window", func(t *testing.T) {
		env := newTestEnv()
		orgID := uuid.New()
		wh := env.mustWarehouse(orgID)

		seedExpiringStock(t, env, wh.ID, "Fuji Apple", 2)
		seedExpiringStock(t, env, wh.ID, "Navel Orange", 6)
		seedExpiringStock(t, env, wh.ID, "Kiwi", 30)
		seedStock(t, env, wh.ID, "Banana", "", 10, 0)

		result, err := env.alertService.ScanWarehouse(ctx, orgID, wh.ID)

		require.NoError(t, err)
		assert.Equal(t, 2, result.AlertsCreated)
		assert.Equal(t, 0, result.AlertsSkipped)

		alerts, err := env.alertRepo.FindAll(ctx, &wh.ID, unresolvedFilter())
		require.NoError(t, err)
		require.Len(t, alerts, 2)

		levels := map[string]warehouse.AlertLevel{}
		for _, a := range alerts {
			levels[a.ProductName] = a.AlertLevel
		}
		assert.Equal(t, warehouse.AlertLevelCritical, levels["Fuji Apple"])
		assert.Equal(t, warehouse.AlertLevelWarning, levels["Navel Orange"])
	})

	t.Run("skips records that already have an unresolved alert", func(t *testing.T) {
		env := newTestEnv()
		orgID := uuid.New()
		wh := env.mustWarehouse(orgID)
		seedExpiringStock(t, env, wh.ID, "Fuji Apple", 2)

		first, err := env.alertService.ScanWarehouse(ctx, orgID, wh.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, first.AlertsCreated)

		second, err := env.alertService.ScanWarehouse(ctx, orgID, wh.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, second.AlertsCreated)
		assert.Equal(t, 1, second.AlertsSkipped)

		alerts, err := env.alertRepo.FindAll(ctx, &wh.ID, unresolvedFilter())
		require.NoError(t, err)
		assert.Len(t, alerts, 1)
	})

	t.Run("alerts again after the previous one was resolved", func(t *testing.T) {
		env := newTestEnv()
		orgID := uuid.New()
		wh := env.mustWarehouse(orgID)
		seedExpiringStock(t, env, wh.ID, "Fuji Apple", 2)

		_, err := env.alertService.ScanWarehouse(ctx, orgID, wh.ID)
		require.NoError(t, err)
		alerts, err := env.alertRepo.FindAll(ctx, &wh.ID, unresolvedFilter())
		require.NoError(t, err)
		require.Len(t, alerts, 1)

		_, err = env.alertService.ResolveAlert(ctx, alerts[0].ID)
		require.NoError(t, err)

		result, err := env.alertService.ScanWarehouse(ctx, orgID, wh.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.AlertsCreated)
	})

	t.Run("rejects warehouse from another organization", func(t *testing.T) {
		env := newTestEnv()
		wh := env.mustWarehouse(uuid.New())

		result, err := env.alertService.ScanWarehouse(ctx, uuid.New(), wh.ID)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestAlertService_ScanAll(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	whA := env.mustWarehouse(uuid.New())
	whB := env.mustWarehouse(uuid.New())

	seedExpiringStock(t, env, whA.ID, "Fuji Apple", 2)
	seedExpiringStock(t, env, whB.ID, "Navel Orange", 5)
	seedExpiringStock(t, env, whB.ID, "Kiwi", 90)

	result, err := env.alertService.ScanAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.AlertsCreated)

	alertsA, err := env.alertRepo.FindAll(ctx, &whA.ID, unresolvedFilter())
	require.NoError(t, err)
	assert.Len(t, alertsA, 1)
	alertsB, err := env.alertRepo.FindAll(ctx, &whB.ID, unresolvedFilter())
	require.NoError(t, err)
	assert.Len(t, alertsB, 1)
}

func TestAlertService_ListAlerts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	orgID := uuid.New()
	whA := env.mustWarehouse(orgID)
	whB := env.mustWarehouse(orgID)

	seedExpiringStock(t, env, whA.ID, "Fuji Apple", 2)
	seedExpiringStock(t, env, whB.ID, "Navel Orange", 5)
	_, err := env.alertService.ScanWarehouse(ctx, orgID, whA.ID)
	require.NoError(t, err)
	_, err = env.alertService.ScanWarehouse(ctx, orgID, whB.ID)
	require.NoError(t, err)

	t.Run("all warehouses", func(t *testing.T) {
		page, err := env.alertService.ListAlerts(ctx, orgID, AlertListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
		assert.Len(t, page.Items, 2)
	})

	t.Run("scoped to one warehouse", func(t *testing.T) {
		page, err := env.alertService.ListAlerts(ctx, orgID, AlertListFilter{WarehouseID: &whA.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Fuji Apple", page.Items[0].ProductName)
		assert.Equal(t, "critical", page.Items[0].AlertLevel)
	})

	t.Run("alert level filter", func(t *testing.T) {
		page, err := env.alertService.ListAlerts(ctx, orgID, AlertListFilter{AlertLevel: "warning"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Navel Orange", page.Items[0].ProductName)
	})

	t.Run("resolved filter", func(t *testing.T) {
		all, err := env.alertService.ListAlerts(ctx, orgID, AlertListFilter{WarehouseID: &whB.ID})
		require.NoError(t, err)
		require.Len(t, all.Items, 1)
		_, err = env.alertService.ResolveAlert(ctx, all.Items[0].ID)
		require.NoError(t, err)

		resolved := true
		page, err := env.alertService.ListAlerts(ctx, orgID, AlertListFilter{IsResolved: &resolved})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Navel Orange", page.Items[0].ProductName)

		open := false
		page, err = env.alertService.ListAlerts(ctx, orgID, AlertListFilter{IsResolved: &open})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Fuji Apple", page.Items[0].ProductName)
	})

	t.Run("scoping validates warehouse ownership", func(t *testing.T) {
		page, err := env.alertService.ListAlerts(ctx, uuid.New(), AlertListFilter{WarehouseID: &whA.ID})
		assert.Nil(t, page)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestAlertService_ResolveAlert(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	orgID := uuid.New()
	wh := env.mustWarehouse(orgID)
	seedExpiringStock(t, env, wh.ID, "Fuji Apple", 2)
	_, err := env.alertService.ScanWarehouse(ctx, orgID, wh.ID)
	require.NoError(t, err)
	alerts, err := env.alertRepo.FindAll(ctx, &wh.ID, unresolvedFilter())
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	resp, err := env.alertService.ResolveAlert(ctx, alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, resp.IsResolved)

	t.Run("resolving twice fails", func(t *testing.T) {
		_, err := env.alertService.ResolveAlert(ctx, alerts[0].ID)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("unknown alert fails", func(t *testing.T) {
		_, err := env.alertService.ResolveAlert(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
