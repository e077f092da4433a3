// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/driftline/diveadmin/internal/config"
	"github.com/driftline/diveadmin/internal/core"
)

type sampleSite struct {
	name             string
	location         string
	depthMin         float64
	depthMax         float64
	description      string
	difficultyLevel  string
	waterTemperature float64
	visibility       string
}

var sampleSites = []sampleSite{
	{
		name:             "Great Barrier Reef",
		location:         "Australia",
		depthMin:         5,
		depthMax:         40,
		description:      "World's largest coral reef system with incredible biodiversity",
		difficultyLevel:  "Intermediate",
		waterTemperature: 26,
		visibility:       "20m+",
	},
	{
		name:             "Blue Hole",
		location:         "Belize",
		depthMin:         20,
		depthMax:         125,
		description:      "Famous underwater sinkhole with dramatic walls and unique formations",
		difficultyLevel:  "Advanced",
		waterTemperature: 28,
		visibility:       "15-25m",
	},
	{
		name:             "Silfra Rift",
		location:         "Iceland",
		depthMin:         2,
		depthMax:         65,
		description:      "Continental rift with crystal clear water and unique geology",
		difficultyLevel:  "Beginner",
		waterTemperature: 2,
		visibility:       "100m+",
	},
	{
		name:             "Palau Peleliu Corner",
		location:         "Palau",
		depthMin:         30,
		depthMax:         80,
		description:      "Drift dive with strong currents and abundant marine life",
		difficultyLevel:  "Advanced",
		waterTemperature: 29,
		visibility:       "30m+",
	},
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if cfg.Seed.AdminPassword == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be set")
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	if err := seedAdmin(ctx, db.DB, cfg.Seed); err != nil {
		return err
	}

	if cfg.Seed.SampleSites {
		if err := seedSites(ctx, db.DB); err != nil {
			return err
		}
	}

	logger.Info("seed complete")
	return nil
}

// seedAdmin creates the bootstrap admin account. Re-running against an
// existing admin is a no-op, so the seed is safe to run on every deploy.
func seedAdmin(ctx context.Context, db *sqlx.DB, cfg config.SeedConfig) error {
	var exists bool
	err := db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1 AND deleted_at IS NULL
		)`,
		cfg.AdminUsername,
	)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}

	if exists {
		slog.Info("admin account already present", "username", cfg.AdminUsername)
		return nil
	}

	hash, err := core.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, 'admin')`,
		uuid.New().String(),
		cfg.AdminUsername,
		cfg.AdminEmail,
		hash,
	)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	slog.Info("admin account created", "username", cfg.AdminUsername)
	return nil
}

func seedSites(ctx context.Context, db *sqlx.DB) error {
	for _, s := range sampleSites {
		result, err := db.ExecContext(ctx,
			`INSERT INTO dive_sites (
				id, name, location, depth_min, depth_max, description,
				difficulty_level, water_temperature, visibility
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (name) DO NOTHING`,
			uuid.New().String(),
			s.name,
			s.location,
			s.depthMin,
			s.depthMax,
			s.description,
			s.difficultyLevel,
			s.waterTemperature,
			s.visibility,
		)
		if err != nil {
			return fmt.Errorf("seed site %q: %w", s.name, err)
		}

		if rows, err := result.RowsAffected(); err == nil && rows > 0 {
			slog.Info("sample site created", "name", s.name)
		}
	}

	return nil
}
