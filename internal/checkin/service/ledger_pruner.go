package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

// LedgerPruner periodically deletes check-in records older than a
// configurable retention period.  It runs as a background goroutine and
// is safe to stop via its context or the Stop method.
//
// A retention of 0 disables pruning entirely.
type LedgerPruner struct {
	ledger        store.Ledger
	clock         Clock
	retentionDays int
	interval      time.Duration
	logger        *zap.Logger
	cancel        context.CancelFunc
	done          chan struct{}
}

// PrunerConfig holds the parameters for NewLedgerPruner.
type PrunerConfig struct {
	// RetentionDays is how many calendar days of check-ins to keep.
	// 0 means keep everything (pruner will not start).
	RetentionDays int

	// IntervalHours is how often the pruner runs.  Defaults to 24.
	IntervalHours int
}

// NewLedgerPruner creates a pruner but does not start it.
func NewLedgerPruner(l store.Ledger, clock Clock, cfg PrunerConfig, logger *zap.Logger) *LedgerPruner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LedgerPruner{
		ledger:        l,
		clock:         clock,
		retentionDays: cfg.RetentionDays,
		interval:      interval,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

// Start runs an immediate prune, then repeats on the configured interval
// until ctx is cancelled or Stop is called.
func (p *LedgerPruner) Start(ctx context.Context) {
	if p.retentionDays <= 0 {
		p.logger.Info("ledger pruner disabled", zap.Int("retention_days", 0))
		close(p.done)
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)

	go p.loop(ctx)

	p.logger.Info("ledger pruner started",
		zap.Int("retention_days", p.retentionDays),
		zap.Duration("interval", p.interval))
}

// Stop signals the pruner to exit and waits for it to finish. It is a
// no-op when the loop was never started.
func (p *LedgerPruner) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// CutoffDay is the first venue-local day that is kept.
func (p *LedgerPruner) CutoffDay() string {
	return types.DayOf(p.clock.Now().AddDate(0, 0, -p.retentionDays))
}

func (p *LedgerPruner) loop(ctx context.Context) {
	defer close(p.done)

	p.PruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

// PruneOnce deletes everything before CutoffDay and returns the row count.
func (p *LedgerPruner) PruneOnce(ctx context.Context) int64 {
	cutoff := p.CutoffDay()
	deleted, err := p.ledger.PruneOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("ledger prune failed", zap.Error(err))
		return 0
	}
	if deleted > 0 {
		p.logger.Info("ledger pruned", zap.Int64("deleted", deleted), zap.String("before_day", cutoff))
	}
	return deleted
}
