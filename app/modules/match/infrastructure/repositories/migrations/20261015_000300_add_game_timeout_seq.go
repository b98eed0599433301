package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Adding timeout sequence columns to match_games...")
			if _, err := db.ExecContext(ctx, `
				ALTER TABLE match_games ADD COLUMN IF NOT EXISTS suggestion_seq integer NOT NULL DEFAULT 0;
				ALTER TABLE match_games ADD COLUMN IF NOT EXISTS claim_seq integer NOT NULL DEFAULT 0;
			`); err != nil {
				return fmt.Errorf("failed to add timeout sequence columns: %w", err)
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `
				ALTER TABLE match_games DROP COLUMN IF EXISTS claim_seq;
				ALTER TABLE match_games DROP COLUMN IF EXISTS suggestion_seq;
			`)
			return err
		},
	)
}
