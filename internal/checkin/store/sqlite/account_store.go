package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
	dbpkg "github.com/BrandonDHaskell/checkin-gate/internal/db"
)

type AccountStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAccountStore(db *sql.DB, writer *dbpkg.Worker) *AccountStore {
	return &AccountStore{db: db, writer: writer}
}

func (s *AccountStore) FindByLogin(ctx context.Context, login string) (store.Account, error) {
	var (
		acc       store.Account
		role      int
		createdMs int64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT account_id, name, login, password_hash, role, created_at_ms
FROM accounts
WHERE login_key = ?;
`, types.NormalizeLogin(login)).Scan(&acc.ID, &acc.Name, &acc.Login, &acc.PasswordHash, &role, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Account{}, store.ErrNotFound
	}
	if err != nil {
		return store.Account{}, fmt.Errorf("FindByLogin query: %w", err)
	}
	acc.Role = types.Role(role)
	acc.CreatedAt = time.UnixMilli(createdMs).UTC()
	return acc, nil
}

// InsertAccount relies on the UNIQUE login_key column for the collision
// check, so two concurrent registrations of the same login cannot both win.
func (s *AccountStore) InsertAccount(ctx context.Context, in store.NewAccount) (int64, error) {
	role := in.Role
	if role == 0 {
		role = types.RoleStandard
	}
	login := strings.TrimSpace(in.Login)
	nowMs := time.Now().UTC().UnixMilli()

	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO accounts(name, login, login_key, password_hash, role, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?);
`, strings.TrimSpace(in.Name), login, types.NormalizeLogin(login), in.PasswordHash, int(role), nowMs)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrLoginTaken
			}
			return fmt.Errorf("InsertAccount insert: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("InsertAccount last id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
