package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

var ErrInvalidRegistration = errors.New("nome, login and senha are required")

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// Registrar creates standard accounts.
type Registrar struct {
	accounts store.AccountStore
	hasher   PasswordHasher
}

func NewRegistrar(accounts store.AccountStore, hasher PasswordHasher) *Registrar {
	return &Registrar{accounts: accounts, hasher: hasher}
}

// Register returns the new account id, ErrInvalidRegistration when a field
// is blank, or store.ErrLoginTaken on a case-insensitive login collision.
func (r *Registrar) Register(ctx context.Context, req types.RegisterRequest) (int64, error) {
	name := strings.TrimSpace(req.Nome)
	login := strings.TrimSpace(req.Login)
	pass := strings.TrimSpace(req.Senha)
	if name == "" || login == "" || pass == "" {
		return 0, ErrInvalidRegistration
	}

	// Cheap early exit before paying for a hash; the insert below is what
	// actually enforces uniqueness.
	_, err := r.accounts.FindByLogin(ctx, login)
	switch {
	case err == nil:
		return 0, store.ErrLoginTaken
	case !errors.Is(err, store.ErrNotFound):
		return 0, fmt.Errorf("lookup login: %w", err)
	}

	hash, err := r.hasher.Hash(pass)
	if err != nil {
		return 0, err
	}

	id, err := r.accounts.InsertAccount(ctx, store.NewAccount{
		Name:         name,
		Login:        login,
		PasswordHash: hash,
		Role:         types.RoleStandard,
	})
	if err != nil {
		if errors.Is(err, store.ErrLoginTaken) {
			return 0, err
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}
