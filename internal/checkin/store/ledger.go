package store

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

// CheckInRecord is one row of the check-in ledger. Records are immutable
// once appended.
type CheckInRecord struct {
	AccountID  int64
	Name       string
	Day        string          // venue-local, types.DayLayout
	Time       types.TimeOfDay // venue-local
	InWindow   bool            // recorded inside the admission window
	RecordedAt time.Time
}

// Ledger is the append-only check-in record store.
//
// Append must refuse a second in-window record for the same (AccountID,
// Day) with ErrDuplicateCheckIn. Records with InWindow=false never
// conflict.
type Ledger interface {
	ExistsInWindow(ctx context.Context, accountID int64, day string, w types.Window) (bool, error)
	// Append returns nil only once the record is durable. Any error,
	// including a cancelled ctx, means the record was not written.
	Append(ctx context.Context, rec CheckInRecord) error
	// List returns every record, newest day first, newest time first.
	List(ctx context.Context) ([]CheckInRecord, error)
	// PruneOlderThan deletes records whose Day sorts before cutoffDay.
	PruneOlderThan(ctx context.Context, cutoffDay string) (int64, error)
}
