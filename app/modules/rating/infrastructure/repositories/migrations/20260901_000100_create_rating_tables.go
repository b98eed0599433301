package migrations

import (
	"context"
	"fmt"

	ratingdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating ratings and rating_results tables...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.NewCreateTable().Model((*ratingdb.PlayerRating)(nil)).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create ratings table: %w", err)
				}
				if _, err := tx.NewCreateTable().Model((*ratingdb.MatchResult)(nil)).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create rating_results table: %w", err)
				}
				if _, err := tx.ExecContext(ctx, `
					CREATE INDEX IF NOT EXISTS idx_ratings_leaderboard ON ratings (scope, guild_id, mu DESC);
					CREATE INDEX IF NOT EXISTS idx_rating_results_player ON rating_results (scope, guild_id, player_id, recorded_at DESC);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_rating_results_match ON rating_results (match_id, scope, player_id);
				`); err != nil {
					return fmt.Errorf("failed to create rating indexes: %w", err)
				}
				fmt.Println("rating tables created successfully!")
				return nil
			})
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping rating tables...")
			if _, err := db.NewDropTable().Model((*ratingdb.MatchResult)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*ratingdb.PlayerRating)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("rating tables dropped successfully!")
			return nil
		},
	)
}
