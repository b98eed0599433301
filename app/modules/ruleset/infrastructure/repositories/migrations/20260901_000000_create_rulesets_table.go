package migrations

import (
	"context"
	"fmt"

	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating rulesets table...")
			if _, err := db.NewCreateTable().Model((*rulesetdb.Ruleset)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*rulesetdb.Ruleset)(nil)).
				Index("idx_rulesets_guild_name").
				Column("guild_id", "name").
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
			fmt.Println("rulesets table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping rulesets table...")
			if _, err := db.NewDropTable().Model((*rulesetdb.Ruleset)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("rulesets table dropped successfully!")
			return nil
		},
	)
}
