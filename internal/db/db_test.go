package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/checkin-gate/internal/db"
)

func openMemDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", fmt.Sprintf(
		"file:dbtest_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(),
	))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Migrate(context.Background(), conn))
	return conn
}

func TestMigrate_IsIdempotent(t *testing.T) {
	conn := openMemDB(t)

	require.NoError(t, db.Migrate(context.Background(), conn))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSeedDev_InsertsAdminAndProductsOnce(t *testing.T) {
	conn := openMemDB(t)
	ctx := context.Background()

	opt := db.SeedDevOptions{
		AdminName:         "Admin",
		AdminLogin:        "Admin",
		AdminPasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Products:          []string{"Café", "Pão de queijo", " "},
	}
	require.NoError(t, db.SeedDev(ctx, conn, opt))
	require.NoError(t, db.SeedDev(ctx, conn, opt))

	var role int
	var key string
	require.NoError(t, conn.QueryRow(
		`SELECT role, login_key FROM accounts WHERE login = 'Admin'`,
	).Scan(&role, &key))
	assert.Equal(t, 1, role)
	assert.Equal(t, "admin", key)

	var products int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&products))
	assert.Equal(t, 2, products)
}

func TestWorker_RollsBackOnError(t *testing.T) {
	conn := openMemDB(t)
	w := db.NewWorker(conn)
	defer w.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	err := w.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO products(description) VALUES ('x')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n))
	assert.Zero(t, n)
}

func TestWorker_DoAfterClose(t *testing.T) {
	conn := openMemDB(t)
	w := db.NewWorker(conn)
	w.Close()
	w.Close()

	err := w.Do(context.Background(), func(context.Context, *sql.Tx) error { return nil })
	assert.ErrorIs(t, err, db.ErrWorkerClosed)
}

func TestWorker_CancelDuringJobReportsTrueOutcome(t *testing.T) {
	conn := openMemDB(t)
	w := db.NewWorker(conn)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	err := w.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO products(description) VALUES ('x')`); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.Error(t, err)

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n))
	assert.Zero(t, n, "an error from Do means nothing was committed")
}

func TestWorker_CancelWhileQueuedSkipsJob(t *testing.T) {
	conn := openMemDB(t)
	w := db.NewWorker(conn)
	defer w.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = w.Do(context.Background(), func(context.Context, *sql.Tx) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{}, 1)
	result := make(chan error, 1)
	go func() {
		result <- w.Do(ctx, func(context.Context, *sql.Tx) error {
			ran <- struct{}{}
			return nil
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancel while queued")
	}

	close(release)
	require.NoError(t, w.Do(context.Background(), func(context.Context, *sql.Tx) error { return nil }))
	assert.Empty(t, ran, "abandoned job must not run")
}
