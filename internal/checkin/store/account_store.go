package store

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

type Account struct {
	ID           int64
	Name         string
	Login        string // as registered; matching uses types.NormalizeLogin
	PasswordHash string
	Role         types.Role
	CreatedAt    time.Time
}

type NewAccount struct {
	Name         string
	Login        string
	PasswordHash string
	Role         types.Role // zero means types.RoleStandard
}

// AccountStore is the credential store. Lookups are case-insensitive on
// the login; InsertAccount enforces login uniqueness.
type AccountStore interface {
	FindByLogin(ctx context.Context, login string) (Account, error)
	InsertAccount(ctx context.Context, acc NewAccount) (int64, error)
}
