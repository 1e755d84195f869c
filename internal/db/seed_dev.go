package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

type SeedDevOptions struct {
	AdminName         string
	AdminLogin        string
	AdminPasswordHash string // bcrypt; the admin is skipped when empty
	Products          []string
}

// SeedDev inserts a privileged admin account and a starter product list.
// Existing rows are left untouched, so it is safe to run on every start.
func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	now := time.Now().UTC().UnixMilli()

	login := strings.TrimSpace(opt.AdminLogin)
	if login != "" && opt.AdminPasswordHash != "" {
		name := strings.TrimSpace(opt.AdminName)
		if name == "" {
			name = login
		}
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO accounts(name, login, login_key, password_hash, role, created_at_ms)
VALUES (?, ?, ?, ?, 1, ?);`,
			name, login, types.NormalizeLogin(login), opt.AdminPasswordHash, now,
		); err != nil {
			return fmt.Errorf("seed admin %s: %w", login, err)
		}
	}

	for _, p := range opt.Products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO products(description) VALUES (?);`, p,
		); err != nil {
			return fmt.Errorf("seed product %q: %w", p, err)
		}
	}

	return nil
}
