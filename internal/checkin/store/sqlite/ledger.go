package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
	dbpkg "github.com/BrandonDHaskell/checkin-gate/internal/db"
)

type Ledger struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewLedger(db *sql.DB, writer *dbpkg.Worker) *Ledger {
	return &Ledger{db: db, writer: writer}
}

func (l *Ledger) ExistsInWindow(ctx context.Context, accountID int64, day string, w types.Window) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx, `
SELECT 1 FROM checkins
WHERE account_id = ? AND day = ? AND time_of_day_s BETWEEN ? AND ?
LIMIT 1;
`, accountID, day, int(w.Start), int(w.End)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ExistsInWindow query: %w", err)
	}
	return true, nil
}

// Append inserts rec. The partial unique index on (account_id, day) for
// in-window rows turns a concurrent duplicate into ErrDuplicateCheckIn.
func (l *Ledger) Append(ctx context.Context, rec store.CheckInRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	var inWindow int
	if rec.InWindow {
		inWindow = 1
	}

	return l.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO checkins(account_id, name, day, time_of_day_s, in_window, recorded_at_ms)
VALUES (?, ?, ?, ?, ?, ?);
`,
			rec.AccountID, rec.Name, rec.Day, int(rec.Time), inWindow, rec.RecordedAt.UTC().UnixMilli(),
		); err != nil {
			if isUniqueViolation(err) {
				return store.ErrDuplicateCheckIn
			}
			return fmt.Errorf("Append insert: %w", err)
		}
		return nil
	})
}

func (l *Ledger) List(ctx context.Context) ([]store.CheckInRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
SELECT account_id, name, day, time_of_day_s, in_window, recorded_at_ms
FROM checkins
ORDER BY day DESC, time_of_day_s DESC, checkin_id DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("List query: %w", err)
	}
	defer rows.Close()

	var out []store.CheckInRecord
	for rows.Next() {
		var (
			rec        store.CheckInRecord
			tod        int
			inWindow   int
			recordedMs int64
		)
		if err := rows.Scan(&rec.AccountID, &rec.Name, &rec.Day, &tod, &inWindow, &recordedMs); err != nil {
			return nil, fmt.Errorf("List scan: %w", err)
		}
		rec.Time = types.TimeOfDay(tod)
		rec.InWindow = inWindow == 1
		rec.RecordedAt = time.UnixMilli(recordedMs).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List rows: %w", err)
	}
	return out, nil
}

// PruneOlderThan deletes rows whose day sorts before cutoffDay. Days are
// stored as YYYY-MM-DD so the comparison is chronological and uses
// idx_checkins_day.
func (l *Ledger) PruneOlderThan(ctx context.Context, cutoffDay string) (int64, error) {
	var deleted int64
	err := l.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM checkins WHERE day < ?;`, cutoffDay)
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}
