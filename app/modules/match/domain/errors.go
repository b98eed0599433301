package matchdomain

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected player action. The Code is stable and is what
// the messaging layer keys its reply on; state is never mutated when one is
// returned.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is matches any ValidationError with the same code, so detailed copies made
// by reject still satisfy errors.Is against the sentinels below.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

var (
	ErrNotParticipant        = &ValidationError{Code: "not_participant", Message: "you are not playing in this match"}
	ErrNotYourTurn           = &ValidationError{Code: "not_your_turn", Message: "it is not your turn"}
	ErrStageAlreadyStruck    = &ValidationError{Code: "stage_already_struck", Message: "that stage has already been struck"}
	ErrStageNotInStarterPool = &ValidationError{Code: "stage_not_in_starter_pool", Message: "only starter stages can be used in the first game"}
	ErrInvalidStage          = &ValidationError{Code: "invalid_stage", Message: "that stage is not part of this ruleset"}
	ErrPickAlreadyMade       = &ValidationError{Code: "pick_already_made", Message: "the stage for this game is already decided"}
	ErrStrikingComplete      = &ValidationError{Code: "striking_complete", Message: "striking is over, a stage has to be picked"}
	ErrSuggestionPending     = &ValidationError{Code: "suggestion_pending", Message: "a stage suggestion is waiting for an answer"}
	ErrNoSuggestion          = &ValidationError{Code: "no_suggestion", Message: "there is no stage suggestion to answer"}
	ErrOwnSuggestion         = &ValidationError{Code: "own_suggestion", Message: "you cannot answer your own suggestion"}
	ErrRepeatedSuggestion    = &ValidationError{Code: "repeated_suggestion", Message: "your opponent has to suggest a stage before you can suggest again"}
	ErrStaleGame             = &ValidationError{Code: "stale_game", Message: "that game is already over"}
	ErrMatchFinished         = &ValidationError{Code: "match_finished", Message: "the match is over"}
	ErrFighterAlreadyPicked  = &ValidationError{Code: "fighter_already_picked", Message: "you already picked a fighter for this game"}
	ErrInvalidFighter        = &ValidationError{Code: "invalid_fighter", Message: "unknown fighter"}
	ErrNothingToConfirm      = &ValidationError{Code: "nothing_to_confirm", Message: "no result is waiting for confirmation"}
	ErrInvalidMatch          = &ValidationError{Code: "invalid_match", Message: "the match cannot be created"}
)

// ErrCorruptMatch means persisted match state broke an invariant that only
// storage corruption can break. It is not a ValidationError and is never
// recovered from.
var ErrCorruptMatch = errors.New("corrupt match state")

func reject(base *ValidationError, format string, args ...any) error {
	return &ValidationError{Code: base.Code, Message: fmt.Sprintf(format, args...)}
}

// AsValidation extracts the ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
