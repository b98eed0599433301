package matchdomain

import (
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// Event is something the messaging layer should render. Operations record
// events on the match; callers drain them with PullEvents after saving.
type Event interface {
	EventName() string
}

// Prompt tells the messaging layer what the next player is expected to do.
type Prompt int

const (
	PromptStrike Prompt = iota
	PromptPick
	PromptAnswerSuggestion
	PromptConfirmResult
	PromptPickFighter
)

func (p Prompt) String() string {
	switch p {
	case PromptStrike:
		return "strike"
	case PromptPick:
		return "pick"
	case PromptAnswerSuggestion:
		return "answer_suggestion"
	case PromptConfirmResult:
		return "confirm_result"
	case PromptPickFighter:
		return "pick_fighter"
	default:
		return "unknown"
	}
}

// SuggestReason explains why a stage ended up as a suggestion.
type SuggestReason int

const (
	ReasonRequested SuggestReason = iota
	ReasonStrikingIncomplete
	ReasonNotPicker
	ReasonDSRForbidden
)

func (r SuggestReason) String() string {
	switch r {
	case ReasonRequested:
		return "requested"
	case ReasonStrikingIncomplete:
		return "striking_incomplete"
	case ReasonNotPicker:
		return "not_picker"
	case ReasonDSRForbidden:
		return "dsr_forbidden"
	default:
		return "unknown"
	}
}

type TurnAdvanced struct {
	GameNumber       int
	NextPlayer       sharedtypes.PlayerID
	Prompt           Prompt
	StrikesRemaining int
}

type StageStruck struct {
	GameNumber int
	By         sharedtypes.PlayerID
	Stage      stagedomain.ID
}

type StageSuggested struct {
	GameNumber   int
	By           sharedtypes.PlayerID
	Stage        stagedomain.ID
	Reason       SuggestReason
	DSRForbidden bool
	Seq          int
}

type SuggestionRejected struct {
	GameNumber int
	By         sharedtypes.PlayerID
	Stage      stagedomain.ID
	TimedOut   bool
}

// GameReady means the stage is settled and the game can be played. Fighters
// hidden by an unfinished blind pick are left nil.
type GameReady struct {
	GameNumber     int
	Stage          stagedomain.ID
	Player1Fighter *stagedomain.FighterID
	Player2Fighter *stagedomain.FighterID
}

// FighterPicked is a locked fighter choice. Blind picks carry no fighter until
// both players have chosen.
type FighterPicked struct {
	GameNumber int
	Player     sharedtypes.PlayerID
	Fighter    *stagedomain.FighterID
	Blind      bool
}

type FightersRevealed struct {
	GameNumber     int
	Player1Fighter stagedomain.FighterID
	Player2Fighter stagedomain.FighterID
}

type ConfirmationRequested struct {
	GameNumber    int
	From          sharedtypes.PlayerID
	ClaimedWinner sharedtypes.PlayerID
	Seq           int
}

type ResultDisputed struct {
	GameNumber    int
	By            sharedtypes.PlayerID
	ClaimedWinner sharedtypes.PlayerID
}

type GameWon struct {
	GameNumber int
	Winner     sharedtypes.PlayerID
}

type MatchWon struct {
	Winner       sharedtypes.PlayerID
	Player1Score int
	Player2Score int
	Resolution   Resolution
}

type MatchClosed struct {
	Resolution Resolution
	Winner     *sharedtypes.PlayerID
}

func (TurnAdvanced) EventName() string          { return "turn_advanced" }
func (StageStruck) EventName() string           { return "stage_struck" }
func (StageSuggested) EventName() string        { return "stage_suggested" }
func (SuggestionRejected) EventName() string    { return "suggestion_rejected" }
func (GameReady) EventName() string             { return "game_ready" }
func (FighterPicked) EventName() string         { return "fighter_picked" }
func (FightersRevealed) EventName() string      { return "fighters_revealed" }
func (ConfirmationRequested) EventName() string { return "confirmation_requested" }
func (ResultDisputed) EventName() string        { return "result_disputed" }
func (GameWon) EventName() string               { return "game_won" }
func (MatchWon) EventName() string              { return "match_won" }
func (MatchClosed) EventName() string           { return "match_closed" }
