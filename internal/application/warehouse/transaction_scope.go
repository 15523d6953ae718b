package warehouse

import (
	"context"

	"github.com/fruitscm/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to warehouse repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Order confirmations run entirely inside a scope so a
// failing line leaves no partial stock movement behind.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories touched by a
// confirmation within one transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// StockRepo returns the stock record repository scoped to the current transaction
	StockRepo() warehouse.StockRecordRepository
	// LogRepo returns the inventory log repository scoped to the current transaction
	LogRepo() warehouse.InventoryLogRepository
	// AlertRepo returns the inventory alert repository scoped to the current transaction
	AlertRepo() warehouse.InventoryAlertRepository
	// InboundRepo returns the inbound order repository scoped to the current transaction
	InboundRepo() warehouse.InboundOrderRepository
	// OutboundRepo returns the outbound order repository scoped to the current transaction
	OutboundRepo() warehouse.OutboundOrderRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	stockRepo    warehouse.StockRecordRepository
	logRepo      warehouse.InventoryLogRepository
	alertRepo    warehouse.InventoryAlertRepository
	inboundRepo  warehouse.InboundOrderRepository
	outboundRepo warehouse.OutboundOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stockRepo warehouse.StockRecordRepository,
	logRepo warehouse.InventoryLogRepository,
	alertRepo warehouse.InventoryAlertRepository,
	inboundRepo warehouse.InboundOrderRepository,
	outboundRepo warehouse.OutboundOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:    stockRepo,
		logRepo:      logRepo,
		alertRepo:    alertRepo,
		inboundRepo:  inboundRepo,
		outboundRepo: outboundRepo,
	}
}

// Execute runs the function directly without a transaction.
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) StockRepo() warehouse.StockRecordRepository     { return s.stockRepo }
func (s *NoOpTransactionScope) LogRepo() warehouse.InventoryLogRepository      { return s.logRepo }
func (s *NoOpTransactionScope) AlertRepo() warehouse.InventoryAlertRepository  { return s.alertRepo }
func (s *NoOpTransactionScope) InboundRepo() warehouse.InboundOrderRepository  { return s.inboundRepo }
func (s *NoOpTransactionScope) OutboundRepo() warehouse.OutboundOrderRepository {
	return s.outboundRepo
}
