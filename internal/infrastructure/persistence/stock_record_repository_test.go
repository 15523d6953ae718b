package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockRecordRepository creates a GormStockRecordRepository with a mocked SQL connection
func newMockStockRecordRepository(t *testing.T) (*GormStockRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockRecordRepository(gormDB), mock, mockDB
}

func TestNewGormStockRecordRepository(t *testing.T) {
	repo, _, mockDB := newMockStockRecordRepository(t)
	defer mockDB.Close()

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestGormStockRecordRepository_FindByID(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "warehouse_id", "product_name", "batch_id", "quantity", "unit", "status"}).
			AddRow(recordID, warehouseID, "Fuji Apple", "B-001", decimal.NewFromInt(10), "kg", "available")

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(recordID, 1).
			WillReturnRows(rows)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, "Fuji Apple", record.ProductName)
		assert.Equal(t, warehouse.StockStatusAvailable, record.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing record", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(recordID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_FindByWarehouseProductBatch(t *testing.T) {
	t.Run("matches only available records", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "warehouse_id", "product_name", "batch_id", "quantity", "unit", "status"}).
			AddRow(recordID, warehouseID, "Fuji Apple", "B-001", decimal.NewFromInt(10), "kg", "available")

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE warehouse_id = \$1 AND product_name = \$2 AND batch_id = \$3 AND status = \$4 ORDER BY .* LIMIT .*`).
			WithArgs(warehouseID, "Fuji Apple", "B-001", "available", 1).
			WillReturnRows(rows)

		record, err := repo.FindByWarehouseProductBatch(context.Background(), warehouseID, "Fuji Apple", "B-001")

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "B-001", record.BatchID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no available record exists", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE warehouse_id = \$1 AND product_name = \$2 AND batch_id = \$3 AND status = \$4 ORDER BY .* LIMIT .*`).
			WithArgs(warehouseID, "Fuji Apple", "B-001", "available", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByWarehouseProductBatch(context.Background(), warehouseID, "Fuji Apple", "B-001")

		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_FindAvailableByProduct(t *testing.T) {
	repo, mock, mockDB := newMockStockRecordRepository(t)
	defer mockDB.Close()

	warehouseID := uuid.New()
	oldID := uuid.New()
	newID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "warehouse_id", "product_name", "batch_id", "quantity", "unit", "status"}).
		AddRow(oldID, warehouseID, "Fuji Apple", "B-001", decimal.NewFromInt(10), "kg", "available").
		AddRow(newID, warehouseID, "Fuji Apple", "B-002", decimal.NewFromInt(5), "kg", "available")

	// oldest inbound first, nulls last, creation order as tie-break
	mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE warehouse_id = \$1 AND product_name = \$2 AND status = \$3 AND quantity > 0 ORDER BY inbound_date ASC NULLS LAST,created_at ASC`).
		WithArgs(warehouseID, "Fuji Apple", "available").
		WillReturnRows(rows)

	records, err := repo.FindAvailableByProduct(context.Background(), warehouseID, "Fuji Apple")

	assert.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, oldID, records[0].ID)
	assert.Equal(t, newID, records[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockRecordRepository_FindExpiringWithin(t *testing.T) {
	repo, mock, mockDB := newMockStockRecordRepository(t)
	defer mockDB.Close()

	warehouseID := uuid.New()
	recordID := uuid.New()
	today := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	windowEnd := today.AddDate(0, 0, 7)

	rows := sqlmock.NewRows([]string{"id", "warehouse_id", "product_name", "quantity", "unit", "status", "expiration_date"}).
		AddRow(recordID, warehouseID, "Fuji Apple", decimal.NewFromInt(10), "kg", "available", today.AddDate(0, 0, 3))

	mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE \(warehouse_id = \$1 AND status = \$2 AND quantity > 0\) AND \(expiration_date IS NOT NULL AND expiration_date > \$3 AND expiration_date <= \$4\) ORDER BY expiration_date ASC`).
		WithArgs(warehouseID, "available", today, windowEnd).
		WillReturnRows(rows)

	records, err := repo.FindExpiringWithin(context.Background(), warehouseID, today, windowEnd)

	assert.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recordID, records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockRecordRepository_Delete(t *testing.T) {
	repo, mock, mockDB := newMockStockRecordRepository(t)
	defer mockDB.Close()

	recordID := uuid.New()

	mock.ExpectExec(`DELETE FROM "stock_records" WHERE id = \$1`).
		WithArgs(recordID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), recordID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
