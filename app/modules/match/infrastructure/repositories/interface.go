package matchdb

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for match persistence.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, m *matchdomain.Match) error
	Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*matchdomain.Match, error)
	// GetForUpdate locks the match row until the transaction ends.
	GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*matchdomain.Match, error)
	// Save writes the match row and upserts every game.
	Save(ctx context.Context, db bun.IDB, m *matchdomain.Match) error
	// ListActive returns the guild's unfinished matches, optionally only those
	// a player takes part in.
	ListActive(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID) ([]*matchdomain.Match, error)
}
