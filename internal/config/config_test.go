package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
	"github.com/BrandonDHaskell/checkin-gate/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHECKIN_CONFIG_FILE", "")
	t.Setenv("CHECKIN_ENV", "")
	t.Setenv("CHECKIN_DEV_ADMIN_PASSWORD", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "prod", cfg.Env)
	assert.Empty(t, cfg.DevAdminPassword)
	assert.False(t, cfg.SeedsDevAdmin())

	w, err := cfg.Window()
	require.NoError(t, err)
	assert.Equal(t, types.MustTimeOfDay("07:30"), w.Start)
	assert.Equal(t, types.MustTimeOfDay("18:20"), w.End)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkin.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr = ":8081"
window_start = "08:00"
window_end = "09:00"
venue_tz = "UTC"
cors_origins = ["https://cafe.example"]
ledger_retention_days = 90
`), 0o644))

	t.Setenv("CHECKIN_CONFIG_FILE", path)
	t.Setenv("CHECKIN_WINDOW_END", "10:15")
	t.Setenv("CHECKIN_ENV", "DEV")
	t.Setenv("CHECKIN_GRPC_ADDR", "")
	t.Setenv("CHECKIN_BCRYPT_COST", "nope")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "", cfg.GRPCAddr, "explicitly empty env disables gRPC")
	assert.Equal(t, 10, cfg.BcryptCost, "unparseable int keeps the default")
	assert.Equal(t, []string{"https://cafe.example"}, cfg.CORSOrigins)
	assert.Equal(t, 90, cfg.LedgerRetentionDays)

	w, err := cfg.Window()
	require.NoError(t, err)
	assert.Equal(t, types.MustTimeOfDay("08:00"), w.Start)
	assert.Equal(t, types.MustTimeOfDay("10:15"), w.End)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_RejectsInvertedWindow(t *testing.T) {
	t.Setenv("CHECKIN_CONFIG_FILE", "")
	t.Setenv("CHECKIN_WINDOW_START", "19:00")
	t.Setenv("CHECKIN_WINDOW_END", "07:00")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownZone(t *testing.T) {
	t.Setenv("CHECKIN_CONFIG_FILE", "")
	t.Setenv("CHECKIN_VENUE_TZ", "Mars/Olympus_Mons")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CHECKIN_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownEnv(t *testing.T) {
	t.Setenv("CHECKIN_CONFIG_FILE", "")

	for _, env := range []string{"production", "staging", "devel"} {
		t.Setenv("CHECKIN_ENV", env)
		_, err := config.Load()
		assert.Error(t, err, env)
	}
}

func TestSeedsDevAdmin_NeedsDevAndExplicitPassword(t *testing.T) {
	t.Setenv("CHECKIN_CONFIG_FILE", "")
	t.Setenv("CHECKIN_DEV_ADMIN_PASSWORD", "")

	t.Setenv("CHECKIN_ENV", "dev")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.DevAdminLogin)
	assert.False(t, cfg.SeedsDevAdmin(), "no password configured")

	t.Setenv("CHECKIN_DEV_ADMIN_PASSWORD", "s3nha-forte")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.SeedsDevAdmin())

	t.Setenv("CHECKIN_ENV", "prod")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.SeedsDevAdmin(), "never in prod")
}
