package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	matchmigrations "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/repositories/migrations"
	ratingmigrations "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/repositories/migrations"
	rulesetmigrations "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories/migrations"
)

// runMigrations runs River's migrations and then every module's.
func runMigrations(ctx context.Context, db *bun.DB, pgConnStr string) error {
	migrator := migrate.NewMigrator(db, rulesetmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	if err := runRiverMigrations(ctx, pgConnStr); err != nil {
		return err
	}

	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"ruleset", rulesetmigrations.Migrations},
		{"rating", ratingmigrations.Migrations},
		{"match", matchmigrations.Migrations},
	}
	for _, mod := range orderedModules {
		group, err := migrate.NewMigrator(db, mod.migrations).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
		log.Printf("Ran %s migrations group #%d", mod.name, group.ID)
	}
	return nil
}

func runRiverMigrations(ctx context.Context, pgConnStr string) error {
	pool, err := pgxpool.New(ctx, pgConnStr)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

// appTables lists children before parents.
var appTables = []string{"match_games", "matches", "rating_results", "ratings", "rulesets", "river_job"}

// CleanupDatabase empties every application table.
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, "TRUNCATE TABLE "+strings.Join(appTables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}
