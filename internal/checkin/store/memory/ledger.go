package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

// Ledger is an in-memory append-only check-in log.
type Ledger struct {
	mu      sync.Mutex
	records []store.CheckInRecord
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) ExistsInWindow(_ context.Context, accountID int64, day string, w types.Window) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.AccountID == accountID && r.Day == day && w.Contains(r.Time) {
			return true, nil
		}
	}
	return false, nil
}

func (l *Ledger) Append(_ context.Context, rec store.CheckInRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec.InWindow {
		for _, r := range l.records {
			if r.InWindow && r.AccountID == rec.AccountID && r.Day == rec.Day {
				return store.ErrDuplicateCheckIn
			}
		}
	}
	l.records = append(l.records, rec)
	return nil
}

func (l *Ledger) List(_ context.Context) ([]store.CheckInRecord, error) {
	out := l.Records()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day > out[j].Day
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (l *Ledger) PruneOlderThan(_ context.Context, cutoffDay string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.records[:0]
	var deleted int64
	for _, r := range l.records {
		if r.Day < cutoffDay {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	l.records = kept
	return deleted, nil
}

// Records returns a copy of all records in append order.  Test-only helper.
func (l *Ledger) Records() []store.CheckInRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]store.CheckInRecord, len(l.records))
	copy(out, l.records)
	return out
}
