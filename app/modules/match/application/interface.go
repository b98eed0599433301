package matchservice

import (
	"context"
	"time"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

type (
	OutcomeResult   = results.OperationResult[Outcome, error]
	MatchResult     = results.OperationResult[*matchdomain.Match, error]
	MatchListResult = results.OperationResult[[]*matchdomain.Match, error]
	StageListResult = results.OperationResult[StageList, error]
)

// Service defines the match operations. Failures carry a
// *matchdomain.ValidationError.
type Service interface {
	CreateMatch(ctx context.Context, req CreateRequest) (OutcomeResult, error)
	GetMatch(ctx context.Context, id uuid.UUID) (MatchResult, error)
	ListActiveMatches(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID) (MatchListResult, error)
	GetStageList(ctx context.Context, id uuid.UUID) (StageListResult, error)

	Strike(ctx context.Context, action StageAction) (OutcomeResult, error)
	Pick(ctx context.Context, action StageAction) (OutcomeResult, error)
	Suggest(ctx context.Context, action StageAction) (OutcomeResult, error)
	AcceptSuggestion(ctx context.Context, action Action) (OutcomeResult, error)
	RejectSuggestion(ctx context.Context, action Action) (OutcomeResult, error)
	PickFighter(ctx context.Context, action FighterAction) (OutcomeResult, error)
	ReportResult(ctx context.Context, action ReportAction) (OutcomeResult, error)
	ConfirmResult(ctx context.Context, action Action) (OutcomeResult, error)
	Forfeit(ctx context.Context, action Action) (OutcomeResult, error)
	CloseMatch(ctx context.Context, req CloseRequest) (OutcomeResult, error)

	ExpireSuggestion(ctx context.Context, t SuggestionTimeout) (OutcomeResult, error)
	ExpireConfirmation(ctx context.Context, t ConfirmationTimeout) (OutcomeResult, error)
}

// Scheduler arms and disarms the match timeouts.
type Scheduler interface {
	ScheduleSuggestionTimeout(ctx context.Context, t SuggestionTimeout, at time.Time) error
	ScheduleConfirmationTimeout(ctx context.Context, t ConfirmationTimeout, at time.Time) error
	CancelMatchJobs(ctx context.Context, matchID uuid.UUID) error
}

// CreateRequest opens a match. An empty RulesetName selects the guild's
// default ruleset.
type CreateRequest struct {
	GuildID      sharedtypes.GuildID
	RulesetName  string
	Player1      sharedtypes.PlayerID
	Player2      sharedtypes.PlayerID
	WinsRequired int
	Ranked       bool
	GlobalRanked bool
}

// Action is a player command on a match. GameNumber zero means the current
// game.
type Action struct {
	MatchID    uuid.UUID
	GameNumber int
	PlayerID   sharedtypes.PlayerID
}

// StageAction names a stage by name, alias or its number in the stage list.
type StageAction struct {
	Action
	Stage string
}

type FighterAction struct {
	Action
	Fighter string
}

type ReportAction struct {
	Action
	Won bool
}

// CloseRequest ends a match from outside. An empty AwardedTo cancels it.
type CloseRequest struct {
	MatchID   uuid.UUID
	AwardedTo sharedtypes.PlayerID
}

// SuggestionTimeout names the suggestion it expires by its sequence number
// within the game.
type SuggestionTimeout struct {
	MatchID     uuid.UUID
	GameNumber  int
	Seq         int
	SuggestedBy sharedtypes.PlayerID
	Stage       stagedomain.ID
}

type ConfirmationTimeout struct {
	MatchID             uuid.UUID
	GameNumber          int
	Seq                 int
	ClaimedWinner       sharedtypes.PlayerID
	NeedsConfirmationBy sharedtypes.PlayerID
}

// Outcome is the committed state of a match after an operation together with
// the events it produced, in order.
type Outcome struct {
	Match         *matchdomain.Match
	Events        []matchdomain.Event
	RatingUpdates []ratingservice.RatingUpdate
	// Stale is set when a timeout no longer applied and nothing changed.
	Stale bool
}

type StageList struct {
	MatchID    uuid.UUID
	GameNumber int
	Stages     []matchdomain.StageOption
}
