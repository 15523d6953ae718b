package persistence

import (
	"context"

	appwh "github.com/fruitscm/backend/internal/application/warehouse"
	"github.com/fruitscm/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Order confirmations run inside it so stock, logs, alerts and order state
// commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appwh.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the stock record repository scoped to the current transaction
func (r *gormTransactionalRepositories) StockRepo() warehouse.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// LogRepo returns the inventory log repository scoped to the current transaction
func (r *gormTransactionalRepositories) LogRepo() warehouse.InventoryLogRepository {
	return NewGormInventoryLogRepository(r.tx)
}

// AlertRepo returns the inventory alert repository scoped to the current transaction
func (r *gormTransactionalRepositories) AlertRepo() warehouse.InventoryAlertRepository {
	return NewGormInventoryAlertRepository(r.tx)
}

// InboundRepo returns the inbound order repository scoped to the current transaction
func (r *gormTransactionalRepositories) InboundRepo() warehouse.InboundOrderRepository {
	return NewGormInboundOrderRepository(r.tx)
}

// OutboundRepo returns the outbound order repository scoped to the current transaction
func (r *gormTransactionalRepositories) OutboundRepo() warehouse.OutboundOrderRepository {
	return NewGormOutboundOrderRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appwh.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appwh.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
