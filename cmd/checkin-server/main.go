package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/password"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/service"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store/sqlite"
	"github.com/BrandonDHaskell/checkin-gate/internal/config"
	"github.com/BrandonDHaskell/checkin-gate/internal/db"
	"github.com/BrandonDHaskell/checkin-gate/internal/grpcapi"
	"github.com/BrandonDHaskell/checkin-gate/internal/httpapi"
	"github.com/BrandonDHaskell/checkin-gate/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "checkin-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	window, err := cfg.Window()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(ctx, db.Config{Path: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer sqlDB.Close()

	writer := db.NewWorker(sqlDB)
	defer writer.Close()

	hasher := password.Bcrypt{Cost: cfg.BcryptCost}

	if cfg.Env == "dev" {
		opt := db.SeedDevOptions{
			AdminName: "Administrador",
			Products:  []string{"Café", "Pão de queijo", "Suco de laranja"},
		}
		if cfg.SeedsDevAdmin() {
			adminHash, err := hasher.Hash(cfg.DevAdminPassword)
			if err != nil {
				return err
			}
			opt.AdminLogin = cfg.DevAdminLogin
			opt.AdminPasswordHash = adminHash
		}
		if err := db.SeedDev(ctx, sqlDB, opt); err != nil {
			return fmt.Errorf("seed dev: %w", err)
		}
		logger.Info("dev seed applied",
			zap.Bool("admin_seeded", cfg.SeedsDevAdmin()),
			zap.String("admin_login", opt.AdminLogin))
	}

	decoy, err := hasher.Hash("decoy-password-never-matches")
	if err != nil {
		return err
	}

	accounts := sqlite.NewAccountStore(sqlDB, writer)
	ledger := sqlite.NewLedger(sqlDB, writer)
	products := sqlite.NewProductStore(sqlDB)
	clock := service.SystemClock{Location: loc}

	gate := service.NewGate(accounts, hasher, ledger, clock,
		service.AdmissionPolicy{Window: window, DecoyHash: decoy}, logger.Named("gate"))

	pruner := service.NewLedgerPruner(ledger, clock, service.PrunerConfig{
		RetentionDays: cfg.LedgerRetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, logger.Named("pruner"))
	pruner.Start(ctx)
	defer pruner.Stop()

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:          logger.Named("http"),
		Addr:            cfg.HTTPAddr,
		Gate:            gate,
		Registrar:       service.NewRegistrar(accounts, hasher),
		Catalog:         service.NewCatalog(products),
		Reports:         service.NewReports(ledger),
		Health:          sqlDB.PingContext,
		LoginRatePerMin: cfg.LoginRatePerMin,
		CORSOrigins:     cfg.CORSOrigins,
	})

	go func() {
		logger.Info("http listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.Stringer("window", window),
			zap.String("venue_tz", loc.String()))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	var rpc *grpcapi.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		rpc = grpcapi.NewServer(grpcapi.Dependencies{Logger: logger.Named("grpc"), Gate: gate})
		go func() {
			logger.Info("grpc listening", zap.String("addr", cfg.GRPCAddr))
			if err := rpc.Serve(lis); err != nil {
				logger.Error("grpc server error", zap.Error(err))
				stop()
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if rpc != nil {
		rpc.GracefulStop()
	}
	return srv.Shutdown(shutdownCtx)
}
