package ratingservice

import (
	"context"
	"time"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type (
	PlayerRatingResult = results.OperationResult[PlayerRating, error]
	LeaderboardResult  = results.OperationResult[[]LeaderboardEntry, error]
	HistoryResult      = results.OperationResult[[]HistoryPoint, error]
	QualityResult      = results.OperationResult[float64, error]
)

// Service defines the rating operations.
type Service interface {
	// Snapshot and ApplyMatchResult run inside the caller's transaction.
	Snapshot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingdomain.Rating, error)
	ApplyMatchResult(ctx context.Context, db bun.IDB, outcome MatchOutcome) ([]RatingUpdate, error)

	GetRating(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (PlayerRatingResult, error)
	GetLeaderboard(ctx context.Context, guildID sharedtypes.GuildID, scope ratingdomain.Scope, limit int) (LeaderboardResult, error)
	GetHistory(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (HistoryResult, error)
	MatchQuality(ctx context.Context, guildID sharedtypes.GuildID, player1, player2 sharedtypes.PlayerID) (QualityResult, error)
	RenderHistoryChart(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) ([]byte, error)
}

// MatchOutcome is a finished ranked match.
type MatchOutcome struct {
	MatchID      uuid.UUID
	GuildID      sharedtypes.GuildID
	Player1      sharedtypes.PlayerID
	Player2      sharedtypes.PlayerID
	Player1Score int
	Player2Score int
	// Global also rates the match on the cross-community ladder.
	Global bool
	At     time.Time
}

// RatingUpdate is one player's rating change on one ladder.
type RatingUpdate struct {
	Scope    ratingdomain.Scope
	GuildID  sharedtypes.GuildID
	PlayerID sharedtypes.PlayerID
	MatchID  uuid.UUID
	Old      ratingdomain.Rating
	New      ratingdomain.Rating
}

// PlayerRating is a player's standing on a ladder. Unrated players carry
// the default rating and zero matches.
type PlayerRating struct {
	Scope        ratingdomain.Scope
	GuildID      sharedtypes.GuildID
	PlayerID     sharedtypes.PlayerID
	Rating       ratingdomain.Rating
	MatchesRated int
	UpdatedAt    time.Time
}

// LeaderboardEntry is one row of a ladder.
type LeaderboardEntry struct {
	Rank         int
	PlayerID     sharedtypes.PlayerID
	Rating       ratingdomain.Rating
	MatchesRated int
}

// HistoryPoint is one rated match from a player's point of view.
type HistoryPoint struct {
	MatchID    uuid.UUID
	OpponentID sharedtypes.PlayerID
	Weight     float64
	Before     ratingdomain.Rating
	After      ratingdomain.Rating
	At         time.Time
}
