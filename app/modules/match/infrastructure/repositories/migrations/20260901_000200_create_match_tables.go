package migrations

import (
	"context"
	"fmt"

	matchdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating matches and match_games tables...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.NewCreateTable().Model((*matchdb.Match)(nil)).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create matches table: %w", err)
				}
				if _, err := tx.NewCreateTable().
					Model((*matchdb.Game)(nil)).
					IfNotExists().
					ForeignKey(`("match_id") REFERENCES "matches" ("id") ON DELETE CASCADE`).
					Exec(ctx); err != nil {
					return fmt.Errorf("failed to create match_games table: %w", err)
				}
				if _, err := tx.ExecContext(ctx, `
					CREATE INDEX IF NOT EXISTS idx_matches_guild_status ON matches (guild_id, status);
					CREATE INDEX IF NOT EXISTS idx_matches_player1 ON matches (player1_id) WHERE status = 'in_progress';
					CREATE INDEX IF NOT EXISTS idx_matches_player2 ON matches (player2_id) WHERE status = 'in_progress';
				`); err != nil {
					return fmt.Errorf("failed to create match indexes: %w", err)
				}
				fmt.Println("match tables created successfully!")
				return nil
			})
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping match tables...")
			if _, err := db.NewDropTable().Model((*matchdb.Game)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*matchdb.Match)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("match tables dropped successfully!")
			return nil
		},
	)
}
