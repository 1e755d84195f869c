package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

// AccountStore keeps accounts keyed by normalized login. It is intended
// for use in tests and dev environments.
type AccountStore struct {
	mu      sync.RWMutex
	byLogin map[string]store.Account
	nextID  int64
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byLogin: make(map[string]store.Account),
		nextID:  1,
	}
}

func (s *AccountStore) FindByLogin(_ context.Context, login string) (store.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byLogin[types.NormalizeLogin(login)]
	if !ok {
		return store.Account{}, store.ErrNotFound
	}
	return acc, nil
}

func (s *AccountStore) InsertAccount(_ context.Context, in store.NewAccount) (int64, error) {
	key := types.NormalizeLogin(in.Login)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byLogin[key]; exists {
		return 0, store.ErrLoginTaken
	}

	role := in.Role
	if role == 0 {
		role = types.RoleStandard
	}

	id := s.nextID
	s.nextID++
	s.byLogin[key] = store.Account{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		Login:        strings.TrimSpace(in.Login),
		PasswordHash: in.PasswordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	return id, nil
}
