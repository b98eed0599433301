package matchdomain

import (
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// Game is one stage draft and its played result within a match.
type Game struct {
	Number        int
	FirstToStrike sharedtypes.PlayerID
	StruckStages  []stagedomain.ID

	SuggestedStage     *stagedomain.ID
	SuggestedBy        *sharedtypes.PlayerID
	LastSuggestedBy    *sharedtypes.PlayerID
	SuggestionAccepted *bool
	// SuggestionSeq and ClaimSeq count the suggestions and result claims
	// made in this game. A timeout applies only to the one it was armed for.
	SuggestionSeq int
	ClaimSeq      int

	PickedStage *stagedomain.ID

	ClaimedWinner       *sharedtypes.PlayerID
	NeedsConfirmationBy *sharedtypes.PlayerID
	Winner              *sharedtypes.PlayerID

	Player1Fighter       *stagedomain.FighterID
	Player2Fighter       *stagedomain.FighterID
	Player1FighterLocked bool
	Player2FighterLocked bool
}

// DraftState is where a game's stage draft stands.
type DraftState int

const (
	StateStriking DraftState = iota
	StateAwaitingPick
	StateSuggested
	StateReady
)

func (s DraftState) String() string {
	switch s {
	case StateStriking:
		return "striking"
	case StateAwaitingPick:
		return "awaiting_pick"
	case StateSuggested:
		return "suggested"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// IsStruck reports whether stage was struck in this game.
func (g *Game) IsStruck(stage stagedomain.ID) bool {
	for _, s := range g.StruckStages {
		if s == stage {
			return true
		}
	}
	return false
}

// HasSuggestion reports whether a suggestion is waiting for an answer.
func (g *Game) HasSuggestion() bool {
	return g.PickedStage == nil && g.SuggestedStage != nil && g.SuggestedBy != nil
}

// AwaitingConfirmation reports whether a result claim is pending.
func (g *Game) AwaitingConfirmation() bool {
	return g.NeedsConfirmationBy != nil
}

func (g *Game) clearSuggestion() {
	g.SuggestedStage = nil
	g.SuggestedBy = nil
}

func ptr[T any](v T) *T { return &v }
