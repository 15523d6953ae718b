package scheduler

import (
	"context"
	"sync"
	"time"

	warehouseapp "github.com/fruitscm/backend/internal/application/warehouse"
	"go.uber.org/zap"
)

// ExpirationScanner runs one expiration scan over every warehouse
type ExpirationScanner interface {
	ScanAll(ctx context.Context) (*warehouseapp.ScanResult, error)
}

// ExpirationScanScheduler runs the expiration scan over all warehouses on a
// fixed interval so alerts are raised even when nobody triggers a scan by hand.
type ExpirationScanScheduler struct {
	service   ExpirationScanner
	logger    *zap.Logger
	config    ExpirationScanSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// ExpirationScanSchedulerConfig holds configuration for the scan scheduler
type ExpirationScanSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval is how often a full scan runs
	Interval time.Duration

	// ScanTimeout is the maximum time for a single scan run
	ScanTimeout time.Duration
}

// DefaultExpirationScanSchedulerConfig returns default configuration
func DefaultExpirationScanSchedulerConfig() ExpirationScanSchedulerConfig {
	return ExpirationScanSchedulerConfig{
		Enabled:     true,
		Interval:    time.Hour,
		ScanTimeout: 5 * time.Minute,
	}
}

// NewExpirationScanScheduler creates a new expiration scan scheduler
func NewExpirationScanScheduler(
	service ExpirationScanner,
	logger *zap.Logger,
	config ExpirationScanSchedulerConfig,
) *ExpirationScanScheduler {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.ScanTimeout <= 0 {
		config.ScanTimeout = 5 * time.Minute
	}
	return &ExpirationScanScheduler{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// Start starts the scheduler
func (s *ExpirationScanScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Expiration scan scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Expiration scan scheduler started",
		zap.Duration("interval", s.config.Interval),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *ExpirationScanScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Expiration scan scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Expiration scan scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *ExpirationScanScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// One scan right away so a restart never leaves stock unchecked
	// for a full interval.
	s.runScan(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runScan(ctx)
		}
	}
}

func (s *ExpirationScanScheduler) runScan(ctx context.Context) {
	scanCtx, cancel := context.WithTimeout(ctx, s.config.ScanTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.ScanAll(scanCtx)
	if err != nil {
		s.logger.Error("Scheduled expiration scan failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled expiration scan completed",
		zap.Int("records_checked", result.RecordsChecked),
		zap.Int("alerts_created", result.AlertsCreated),
		zap.Int("alerts_skipped", result.AlertsSkipped),
		zap.Duration("duration", time.Since(start)),
	)
}
