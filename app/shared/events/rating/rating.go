// Package ratingevents defines the rating topics and their payloads.
package ratingevents

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

const (
	RatingUpdatedV1 = "rating.updated.v1"

	RatingRetrievalRequestedV1 = "rating.retrieval.requested.v1"
	RatingRetrievedV1          = "rating.retrieved.v1"
	RatingRetrievalFailedV1    = "rating.retrieval.failed.v1"

	LeaderboardRequestedV1       = "rating.leaderboard.requested.v1"
	LeaderboardRetrievedV1       = "rating.leaderboard.retrieved.v1"
	LeaderboardRetrievalFailedV1 = "rating.leaderboard.failed.v1"

	QualityRequestedV1  = "rating.quality.requested.v1"
	QualityCalculatedV1 = "rating.quality.calculated.v1"
	QualityFailedV1     = "rating.quality.failed.v1"
)

type RatingV1 struct {
	Mu    float64 `json:"mu"`
	Phi   float64 `json:"phi"`
	Sigma float64 `json:"sigma"`
}

// RatingUpdatedPayloadV1 reports one player's change after a ranked match.
type RatingUpdatedPayloadV1 struct {
	GuildID  sharedtypes.GuildID  `json:"guild_id"`
	Scope    string               `json:"scope"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	MatchID  uuid.UUID            `json:"match_id"`
	Old      RatingV1             `json:"old"`
	New      RatingV1             `json:"new"`
}

type RatingRetrievalRequestedPayloadV1 struct {
	GuildID  sharedtypes.GuildID  `json:"guild_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Scope    string               `json:"scope,omitempty"`
}

type RatingRetrievedPayloadV1 struct {
	GuildID      sharedtypes.GuildID  `json:"guild_id"`
	PlayerID     sharedtypes.PlayerID `json:"player_id"`
	Scope        string               `json:"scope"`
	Rating       RatingV1             `json:"rating"`
	MatchesRated int                  `json:"matches_rated"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type LeaderboardRequestedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Scope   string              `json:"scope,omitempty"`
	Limit   int                 `json:"limit,omitempty"`
}

type LeaderboardEntryV1 struct {
	Rank         int                  `json:"rank"`
	PlayerID     sharedtypes.PlayerID `json:"player_id"`
	Rating       RatingV1             `json:"rating"`
	MatchesRated int                  `json:"matches_rated"`
}

type LeaderboardRetrievedPayloadV1 struct {
	GuildID sharedtypes.GuildID  `json:"guild_id"`
	Scope   string               `json:"scope"`
	Entries []LeaderboardEntryV1 `json:"entries"`
}

type QualityRequestedPayloadV1 struct {
	GuildID sharedtypes.GuildID  `json:"guild_id"`
	Player1 sharedtypes.PlayerID `json:"player_1"`
	Player2 sharedtypes.PlayerID `json:"player_2"`
}

type QualityCalculatedPayloadV1 struct {
	GuildID sharedtypes.GuildID  `json:"guild_id"`
	Player1 sharedtypes.PlayerID `json:"player_1"`
	Player2 sharedtypes.PlayerID `json:"player_2"`
	Quality float64              `json:"quality"`
}

type RatingFailedPayloadV1 struct {
	GuildID  sharedtypes.GuildID  `json:"guild_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id,omitempty"`
	Reason   string               `json:"reason"`
}
