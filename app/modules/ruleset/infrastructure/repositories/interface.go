package rulesetdb

import (
	"context"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for ruleset persistence. Versions are
// append-only: nothing here updates or deletes a stored version.
type Repository interface {
	// Create stores a new version. Returns ErrDuplicate when the
	// (guild, name, version) triple is taken.
	Create(ctx context.Context, db bun.IDB, rs rulesetdomain.Ruleset) error

	// GetByID retrieves a specific version.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error)

	// GetLatest retrieves the highest version of a named ruleset.
	GetLatest(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error)

	// ListLatest returns the latest version of every ruleset in a guild, by name.
	ListLatest(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]rulesetdomain.Ruleset, error)
}
