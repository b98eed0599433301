// Package matchevents defines the match topics and their payloads.
package matchevents

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

// Inbound commands.
const (
	MatchCreateRequestedV1      = "match.create.requested.v1"
	StageStrikeRequestedV1      = "match.stage.strike.requested.v1"
	StagePickRequestedV1        = "match.stage.pick.requested.v1"
	StageSuggestRequestedV1     = "match.stage.suggest.requested.v1"
	SuggestionAcceptRequestedV1 = "match.suggestion.accept.requested.v1"
	SuggestionRejectRequestedV1 = "match.suggestion.reject.requested.v1"
	FighterPickRequestedV1      = "match.fighter.pick.requested.v1"
	ResultReportRequestedV1     = "match.result.report.requested.v1"
	ResultConfirmRequestedV1    = "match.result.confirm.requested.v1"
	ForfeitRequestedV1          = "match.forfeit.requested.v1"
	MatchCloseRequestedV1       = "match.close.requested.v1"
	StageListRequestedV1        = "match.stagelist.requested.v1"

	SuggestionTimeoutV1   = "match.suggestion.timeout.v1"
	ConfirmationTimeoutV1 = "match.confirmation.timeout.v1"
)

// Outbound events.
const (
	MatchCreatedV1          = "match.created.v1"
	MatchCreateFailedV1     = "match.create.failed.v1"
	MatchActionRejectedV1   = "match.action.rejected.v1"
	TurnAdvancedV1          = "match.turn.advanced.v1"
	StageStruckV1           = "match.stage.struck.v1"
	StageSuggestedV1        = "match.stage.suggested.v1"
	SuggestionRejectedV1    = "match.suggestion.rejected.v1"
	GameReadyV1             = "match.game.ready.v1"
	FighterPickedV1         = "match.fighter.picked.v1"
	FightersRevealedV1      = "match.fighters.revealed.v1"
	ConfirmationRequestedV1 = "match.confirmation.requested.v1"
	ResultDisputedV1        = "match.result.disputed.v1"
	GameWonV1               = "match.game.won.v1"
	MatchWonV1              = "match.won.v1"
	MatchClosedV1           = "match.closed.v1"
	StageListRetrievedV1    = "match.stagelist.retrieved.v1"
)

// Rejection codes that do not come from the draft rules.
const (
	CodeRateLimited   = "rate_limited"
	CodeNotFound      = "match_not_found"
	CodeInvalidAction = "invalid_action"
)

type StageV1 struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type FighterV1 struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MatchCreateRequestedPayloadV1 opens a set. An empty ruleset name selects
// the guild's default ruleset.
type MatchCreateRequestedPayloadV1 struct {
	GuildID      sharedtypes.GuildID  `json:"guild_id"`
	RulesetName  string               `json:"ruleset_name,omitempty"`
	Player1      sharedtypes.PlayerID `json:"player_1"`
	Player2      sharedtypes.PlayerID `json:"player_2"`
	WinsRequired int                  `json:"wins_required"`
	Ranked       bool                 `json:"ranked"`
	GlobalRanked bool                 `json:"global_ranked"`
}

// ActionRequestedPayloadV1 is the envelope shared by every in-match command.
// GameNumber zero means the current game.
type ActionRequestedPayloadV1 struct {
	MatchID    uuid.UUID            `json:"match_id"`
	GameNumber int                  `json:"game_number"`
	PlayerID   sharedtypes.PlayerID `json:"player_id"`
}

// StageActionRequestedPayloadV1 carries a stage by name, alias or its
// number in the stage list.
type StageActionRequestedPayloadV1 struct {
	ActionRequestedPayloadV1
	Stage string `json:"stage"`
}

type FighterPickRequestedPayloadV1 struct {
	ActionRequestedPayloadV1
	Fighter string `json:"fighter"`
}

type ResultReportRequestedPayloadV1 struct {
	ActionRequestedPayloadV1
	Won bool `json:"won"`
}

// MatchCloseRequestedPayloadV1 is an administrative close. Resolution is
// "cancelled" or "awarded"; AwardedTo is required for the latter.
type MatchCloseRequestedPayloadV1 struct {
	MatchID    uuid.UUID            `json:"match_id"`
	Resolution string               `json:"resolution"`
	AwardedTo  sharedtypes.PlayerID `json:"awarded_to,omitempty"`
}

type StageListRequestedPayloadV1 struct {
	MatchID uuid.UUID `json:"match_id"`
}

type SuggestionTimeoutPayloadV1 struct {
	MatchID     uuid.UUID            `json:"match_id"`
	GameNumber  int                  `json:"game_number"`
	Seq         int                  `json:"seq"`
	SuggestedBy sharedtypes.PlayerID `json:"suggested_by"`
	StageID     int                  `json:"stage_id"`
}

type ConfirmationTimeoutPayloadV1 struct {
	MatchID             uuid.UUID            `json:"match_id"`
	GameNumber          int                  `json:"game_number"`
	Seq                 int                  `json:"seq"`
	ClaimedWinner       sharedtypes.PlayerID `json:"claimed_winner"`
	NeedsConfirmationBy sharedtypes.PlayerID `json:"needs_confirmation_by"`
}

// MatchV1 is a read model of a match.
type MatchV1 struct {
	ID           uuid.UUID             `json:"id"`
	GuildID      sharedtypes.GuildID   `json:"guild_id"`
	RulesetID    uuid.UUID             `json:"ruleset_id"`
	Player1      sharedtypes.PlayerID  `json:"player_1"`
	Player2      sharedtypes.PlayerID  `json:"player_2"`
	WinsRequired int                   `json:"wins_required"`
	Player1Score int                   `json:"player_1_score"`
	Player2Score int                   `json:"player_2_score"`
	CurrentGame  int                   `json:"current_game"`
	Status       string                `json:"status"`
	Ranked       bool                  `json:"ranked"`
	GlobalRanked bool                  `json:"global_ranked"`
	Winner       *sharedtypes.PlayerID `json:"winner,omitempty"`
	StartedAt    time.Time             `json:"started_at"`
}

type MatchCreatedPayloadV1 struct {
	Match         MatchV1              `json:"match"`
	FirstToStrike sharedtypes.PlayerID `json:"first_to_strike"`
}

type MatchCreateFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID  `json:"guild_id"`
	Player1 sharedtypes.PlayerID `json:"player_1"`
	Player2 sharedtypes.PlayerID `json:"player_2"`
	Reason  string               `json:"reason"`
}

type MatchActionRejectedPayloadV1 struct {
	MatchID  uuid.UUID            `json:"match_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id,omitempty"`
	Code     string               `json:"code"`
	Message  string               `json:"message"`
}

type TurnAdvancedPayloadV1 struct {
	MatchID          uuid.UUID            `json:"match_id"`
	GameNumber       int                  `json:"game_number"`
	NextPlayer       sharedtypes.PlayerID `json:"next_player"`
	Prompt           string               `json:"prompt"`
	StrikesRemaining int                  `json:"strikes_remaining,omitempty"`
}

type StageStruckPayloadV1 struct {
	MatchID    uuid.UUID            `json:"match_id"`
	GameNumber int                  `json:"game_number"`
	By         sharedtypes.PlayerID `json:"by"`
	Stage      StageV1              `json:"stage"`
}

type StageSuggestedPayloadV1 struct {
	MatchID      uuid.UUID            `json:"match_id"`
	GameNumber   int                  `json:"game_number"`
	By           sharedtypes.PlayerID `json:"by"`
	Stage        StageV1              `json:"stage"`
	Reason       string               `json:"reason"`
	DSRForbidden bool                 `json:"dsr_forbidden"`
}

type SuggestionRejectedPayloadV1 struct {
	MatchID    uuid.UUID            `json:"match_id"`
	GameNumber int                  `json:"game_number"`
	By         sharedtypes.PlayerID `json:"by"`
	Stage      StageV1              `json:"stage"`
	TimedOut   bool                 `json:"timed_out"`
}

type GameReadyPayloadV1 struct {
	MatchID        uuid.UUID  `json:"match_id"`
	GameNumber     int        `json:"game_number"`
	Stage          StageV1    `json:"stage"`
	Player1Fighter *FighterV1 `json:"player_1_fighter,omitempty"`
	Player2Fighter *FighterV1 `json:"player_2_fighter,omitempty"`
}

// FighterPickedPayloadV1 omits the fighter for blind picks.
type FighterPickedPayloadV1 struct {
	MatchID    uuid.UUID            `json:"match_id"`
	GameNumber int                  `json:"game_number"`
	PlayerID   sharedtypes.PlayerID `json:"player_id"`
	Fighter    *FighterV1           `json:"fighter,omitempty"`
	Blind      bool                 `json:"blind"`
}

type FightersRevealedPayloadV1 struct {
	MatchID        uuid.UUID `json:"match_id"`
	GameNumber     int       `json:"game_number"`
	Player1Fighter FighterV1 `json:"player_1_fighter"`
	Player2Fighter FighterV1 `json:"player_2_fighter"`
}

type ConfirmationRequestedPayloadV1 struct {
	MatchID       uuid.UUID            `json:"match_id"`
	GameNumber    int                  `json:"game_number"`
	From          sharedtypes.PlayerID `json:"from"`
	ClaimedWinner sharedtypes.PlayerID `json:"claimed_winner"`
}

type ResultDisputedPayloadV1 struct {
	MatchID       uuid.UUID            `json:"match_id"`
	GameNumber    int                  `json:"game_number"`
	By            sharedtypes.PlayerID `json:"by"`
	ClaimedWinner sharedtypes.PlayerID `json:"claimed_winner"`
}

type GameWonPayloadV1 struct {
	MatchID    uuid.UUID            `json:"match_id"`
	GameNumber int                  `json:"game_number"`
	Winner     sharedtypes.PlayerID `json:"winner"`
}

type MatchWonPayloadV1 struct {
	MatchID      uuid.UUID            `json:"match_id"`
	Winner       sharedtypes.PlayerID `json:"winner"`
	Player1Score int                  `json:"player_1_score"`
	Player2Score int                  `json:"player_2_score"`
	Resolution   string               `json:"resolution"`
}

type MatchClosedPayloadV1 struct {
	MatchID    uuid.UUID             `json:"match_id"`
	Resolution string                `json:"resolution"`
	Winner     *sharedtypes.PlayerID `json:"winner,omitempty"`
}

type StageOptionV1 struct {
	Number       int     `json:"number"`
	Stage        StageV1 `json:"stage"`
	Struck       bool    `json:"struck"`
	DSRForbidden bool    `json:"dsr_forbidden"`
	InPool       bool    `json:"in_pool"`
}

type StageListRetrievedPayloadV1 struct {
	MatchID    uuid.UUID       `json:"match_id"`
	GameNumber int             `json:"game_number"`
	Stages     []StageOptionV1 `json:"stages"`
}
