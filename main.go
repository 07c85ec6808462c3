package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/api"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/auth"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/config"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}

func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg)
	log.Info().Str("environment", cfg.Environment).Msg("Initializing app...")

	log.Info().Str("dsn", cfg.SafeDSN()).Msg("Connecting to database...")
	gormDB, err := database.Open(cfg, log.With().Str("component", "gorm").Logger())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	db := database.New(gormDB)
	defer db.Close()

	ctx := context.Background()

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		return db.LogColumnReport(ctx, log.Logger)
	}

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	if err := seedAdmin(ctx, db, cfg); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	server := api.NewServer(db, cfg, tokens)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)

	// Listen for interrupt signals to gracefully shutdown the server
	g.Go(func() error {
		signalCtx, stop := signal.NotifyContext(gctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-signalCtx.Done()
		log.Info().Msg("Closing server")
		return server.ShutdownGracefully(30 * time.Second)
	})

	return g.Wait()
}

func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// seedAdmin creates the configured admin account on first start.
func seedAdmin(ctx context.Context, db database.Database, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	user, created, err := db.EnsureAdmin(ctx, cfg.AdminEmail, hash)
	if err != nil {
		return err
	}
	log.Info().Str("userID", user.ID).Bool("created", created).Msg("Admin account ready")
	return nil
}
