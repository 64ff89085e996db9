package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/giganoto/fast-beta/internal/auth"
	"github.com/giganoto/fast-beta/internal/config"
	"github.com/giganoto/fast-beta/internal/database"
	"github.com/giganoto/fast-beta/internal/router"

	"github.com/rs/zerolog"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("init database")
	}

	// run migrations and provision the configured admin
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}
	if err := database.SeedAdmin(db, cfg.Admin.Name, cfg.Admin.Email); err != nil {
		logger.Fatal().Err(err).Msg("seed admin")
	}

	// token lifetime is shared between issuance and the sweep window
	ttl := time.Duration(cfg.JWT.ExpireHours) * time.Hour
	issuer, err := auth.NewIssuer(cfg.JWT.Secret, ttl)
	if err != nil {
		logger.Fatal().Err(err).Msg("init token issuer")
	}

	store := auth.NewRevocationStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go auth.StartSweeper(ctx, store,
		time.Duration(cfg.JWT.SweepIntervalMinutes)*time.Minute,
		issuer.TTL(), logger)

	r := router.SetupRouter(cfg, db, issuer, store, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("run server")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
