package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

type Config struct {
	HTTPAddr string `toml:"http_addr"`
	GRPCAddr string `toml:"grpc_addr"` // empty disables the gRPC listener

	// DB
	Env    string `toml:"env"`     // "dev" | "prod"; anything else fails Load
	DBPath string `toml:"db_path"` // e.g. "./data/checkin.db"

	// Admission window, venue-local, inclusive on both ends.
	WindowStart string `toml:"window_start"`
	WindowEnd   string `toml:"window_end"`
	VenueTZ     string `toml:"venue_tz"` // IANA zone or "Local"

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // "json" | "console"

	BcryptCost      int      `toml:"bcrypt_cost"`
	LoginRatePerMin int      `toml:"login_rate_per_min"` // 0 = unlimited
	CORSOrigins     []string `toml:"cors_origins"`

	// Ledger retention
	LedgerRetentionDays int `toml:"ledger_retention_days"` // 0 = keep forever
	PruneIntervalHours  int `toml:"prune_interval_hours"`

	// Dev seeding. The admin is only seeded when a password is set.
	DevAdminLogin    string `toml:"dev_admin_login"`
	DevAdminPassword string `toml:"dev_admin_password"`
}

func Defaults() Config {
	return Config{
		HTTPAddr:            ":3000",
		GRPCAddr:            ":9090",
		Env:                 "prod",
		DBPath:              "./data/checkin.db",
		WindowStart:         "07:30",
		WindowEnd:           "18:20",
		VenueTZ:             "Local",
		LogLevel:            "info",
		LogFormat:           "json",
		BcryptCost:          10,
		LoginRatePerMin:     60,
		CORSOrigins:         []string{"*"},
		LedgerRetentionDays: 0,
		PruneIntervalHours:  24,
		DevAdminLogin:       "admin",
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// CHECKIN_CONFIG_FILE (if any), then CHECKIN_* environment variables.
func Load() (Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CHECKIN_CONFIG_FILE")); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPAddr = getenvDefault("CHECKIN_HTTP_ADDR", cfg.HTTPAddr)
	if v, ok := os.LookupEnv("CHECKIN_GRPC_ADDR"); ok {
		cfg.GRPCAddr = strings.TrimSpace(v)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(getenvDefault("CHECKIN_ENV", cfg.Env)))
	cfg.DBPath = getenvDefault("CHECKIN_DB_PATH", cfg.DBPath)

	cfg.WindowStart = getenvDefault("CHECKIN_WINDOW_START", cfg.WindowStart)
	cfg.WindowEnd = getenvDefault("CHECKIN_WINDOW_END", cfg.WindowEnd)
	cfg.VenueTZ = getenvDefault("CHECKIN_VENUE_TZ", cfg.VenueTZ)

	cfg.LogLevel = getenvDefault("CHECKIN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(getenvDefault("CHECKIN_LOG_FORMAT", cfg.LogFormat))

	cfg.BcryptCost = getenvInt("CHECKIN_BCRYPT_COST", cfg.BcryptCost)
	cfg.LoginRatePerMin = getenvInt("CHECKIN_LOGIN_RATE_PER_MIN", cfg.LoginRatePerMin)
	if origins := splitCSV(os.Getenv("CHECKIN_CORS_ORIGINS")); origins != nil {
		cfg.CORSOrigins = origins
	}

	cfg.LedgerRetentionDays = getenvInt("CHECKIN_LEDGER_RETENTION_DAYS", cfg.LedgerRetentionDays)
	cfg.PruneIntervalHours = getenvInt("CHECKIN_PRUNE_INTERVAL_HOURS", cfg.PruneIntervalHours)

	cfg.DevAdminLogin = getenvDefault("CHECKIN_DEV_ADMIN_LOGIN", cfg.DevAdminLogin)
	cfg.DevAdminPassword = getenvDefault("CHECKIN_DEV_ADMIN_PASSWORD", cfg.DevAdminPassword)
}

// SeedsDevAdmin reports whether startup should create the privileged dev
// account. It never does outside dev or without an explicit password.
func (c Config) SeedsDevAdmin() bool {
	return c.Env == "dev" && c.DevAdminLogin != "" && c.DevAdminPassword != ""
}

func (c Config) Validate() error {
	if c.Env != "dev" && c.Env != "prod" {
		return fmt.Errorf("env %q: want dev or prod", c.Env)
	}
	if _, err := c.Window(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Window parses WindowStart/WindowEnd.
func (c Config) Window() (types.Window, error) {
	start, err := types.ParseTimeOfDay(c.WindowStart)
	if err != nil {
		return types.Window{}, fmt.Errorf("window_start: %w", err)
	}
	end, err := types.ParseTimeOfDay(c.WindowEnd)
	if err != nil {
		return types.Window{}, fmt.Errorf("window_end: %w", err)
	}
	w := types.Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return types.Window{}, err
	}
	return w, nil
}

// Location resolves VenueTZ; "" and "Local" mean the process zone.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.VenueTZ)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("venue_tz: %w", err)
	}
	return loc, nil
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
