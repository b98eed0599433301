package ratingdb

import (
	"context"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// Key identifies one player on one ladder.
type Key struct {
	Scope    ratingdomain.Scope
	GuildID  sharedtypes.GuildID
	PlayerID sharedtypes.PlayerID
}

// Repository defines the contract for rating persistence.
type Repository interface {
	// GetRating returns ErrNotFound for unrated players.
	GetRating(ctx context.Context, db bun.IDB, key Key) (*PlayerRating, error)
	// GetRatingForUpdate locks the row until the transaction ends.
	GetRatingForUpdate(ctx context.Context, db bun.IDB, key Key) (*PlayerRating, error)
	// InsertRatingIfAbsent stores r unless the player already has a rating.
	InsertRatingIfAbsent(ctx context.Context, db bun.IDB, r *PlayerRating) error
	UpsertRating(ctx context.Context, db bun.IDB, r *PlayerRating) error
	// ListResults returns the newest results first. limit <= 0 returns all.
	ListResults(ctx context.Context, db bun.IDB, key Key, limit int) ([]MatchResult, error)
	InsertResults(ctx context.Context, db bun.IDB, results []MatchResult) error
	// Leaderboard orders by rating, then by lower deviation.
	Leaderboard(ctx context.Context, db bun.IDB, scope ratingdomain.Scope, guildID sharedtypes.GuildID, limit int) ([]PlayerRating, error)
}
