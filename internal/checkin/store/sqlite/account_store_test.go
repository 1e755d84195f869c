package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	sqlitestore "github.com/BrandonDHaskell/checkin-gate/internal/checkin/store/sqlite"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

func TestAccountStore_InsertAndFind(t *testing.T) {
	conn := openTestDB(t)
	as := sqlitestore.NewAccountStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	id, err := as.InsertAccount(ctx, store.NewAccount{
		Name:         " Ana ",
		Login:        " Ana.Silva ",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("InsertAccount: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	acc, err := as.FindByLogin(ctx, "ANA.silva")
	if err != nil {
		t.Fatalf("FindByLogin: %v", err)
	}
	if acc.ID != id {
		t.Errorf("expected id=%d, got %d", id, acc.ID)
	}
	if acc.Name != "Ana" || acc.Login != "Ana.Silva" {
		t.Errorf("expected trimmed name/login, got %q/%q", acc.Name, acc.Login)
	}
	if acc.Role != types.RoleStandard {
		t.Errorf("expected standard role, got %v", acc.Role)
	}
	if acc.PasswordHash != "hash" {
		t.Errorf("expected password hash round-trip, got %q", acc.PasswordHash)
	}
	if acc.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestAccountStore_PrivilegedRole(t *testing.T) {
	conn := openTestDB(t)
	as := sqlitestore.NewAccountStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if _, err := as.InsertAccount(ctx, store.NewAccount{
		Name: "Admin", Login: "admin", PasswordHash: "h", Role: types.RolePrivileged,
	}); err != nil {
		t.Fatalf("InsertAccount: %v", err)
	}

	acc, err := as.FindByLogin(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByLogin: %v", err)
	}
	if acc.Role != types.RolePrivileged {
		t.Errorf("expected privileged role, got %v", acc.Role)
	}
}

func TestAccountStore_FindByLogin_NotFound(t *testing.T) {
	conn := openTestDB(t)
	as := sqlitestore.NewAccountStore(conn, newTestWriter(t, conn))

	_, err := as.FindByLogin(context.Background(), "nobody")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountStore_CaseInsensitiveCollisionRejected(t *testing.T) {
	conn := openTestDB(t)
	as := sqlitestore.NewAccountStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if _, err := as.InsertAccount(ctx, store.NewAccount{Name: "Ana", Login: "ana", PasswordHash: "h"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := as.InsertAccount(ctx, store.NewAccount{Name: "Ana 2", Login: "ANA", PasswordHash: "h"})
	if !errors.Is(err, store.ErrLoginTaken) {
		t.Fatalf("expected ErrLoginTaken, got %v", err)
	}
}

func TestAccountStore_ConcurrentRegistrationsOneWins(t *testing.T) {
	conn := openTestDB(t)
	as := sqlitestore.NewAccountStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	const n = 8
	var wins, taken atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := as.InsertAccount(ctx, store.NewAccount{Name: "Ana", Login: "ana", PasswordHash: "h"})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, store.ErrLoginTaken):
				taken.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 || taken.Load() != n-1 {
		t.Errorf("expected 1 win and %d conflicts, got %d / %d", n-1, wins.Load(), taken.Load())
	}
}
