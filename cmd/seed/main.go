// Package main writes a generated dataset to Postgres so the API can import it.
package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"time"

	"posreport/internal/config"
	"posreport/internal/logger"
	"posreport/internal/repositories"
	"posreport/internal/services/generator"

	"go.uber.org/zap"
)

func main() {
	profilePath := flag.String("profile", "", "YAML generator profile (defaults to the built-in one)")
	seed := flag.Uint64("seed", 1, "random seed")
	days := flag.Int("days", 0, "override day_count from the profile")
	nowFlag := flag.String("now", "", "reference time, RFC3339 (defaults to the current time)")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	log, err := logger.NewForEnvironment(cfg.Env, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	now := time.Now()
	if *nowFlag != "" {
		if now, err = time.Parse(time.RFC3339, *nowFlag); err != nil {
			log.Fatal("invalid -now", zap.Error(err))
		}
	}

	if err := seedDatabase(cfg, log, *profilePath, *seed, *days, now); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}

func seedDatabase(cfg *config.Config, log *zap.Logger, profilePath string, seed uint64, days int, now time.Time) error {
	if cfg.Database.Host == "" {
		return errors.New("DB_HOST must be set")
	}

	profile := generator.DefaultConfig()
	if profilePath != "" {
		loaded, err := generator.LoadProfile(profilePath)
		if err != nil {
			return err
		}
		profile = loaded
	}
	if days > 0 {
		profile.DayCount = days
	}

	gen, err := generator.NewSeeded(profile, seed)
	if err != nil {
		return err
	}
	txns := gen.Generate(now)

	db, err := repositories.InitDB(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := repositories.NewTransactionRepository(db, log).SaveBatch(ctx, txns); err != nil {
		return err
	}
	log.Info("transactions seeded",
		zap.Int("count", len(txns)),
		zap.Uint64("seed", seed),
		zap.Strings("cashiers", gen.Cashiers()))
	return nil
}
