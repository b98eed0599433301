package matchqueue

import (
	"time"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

const (
	queueName = "match"

	kindSuggestionTimeout   = "match_suggestion_timeout"
	kindConfirmationTimeout = "match_confirmation_timeout"
)

// SuggestionTimeoutJob fires when a stage suggestion was left unanswered.
// Seq tells apart two suggestions of the same stage, both for River's
// uniqueness check and when the job is applied.
type SuggestionTimeoutJob struct {
	MatchID     uuid.UUID            `json:"match_id"`
	GameNumber  int                  `json:"game_number"`
	Seq         int                  `json:"seq"`
	SuggestedBy sharedtypes.PlayerID `json:"suggested_by"`
	StageID     int                  `json:"stage_id"`
}

// Kind returns the job type identifier for River
func (SuggestionTimeoutJob) Kind() string { return kindSuggestionTimeout }

func (j SuggestionTimeoutJob) Timeout() matchservice.SuggestionTimeout {
	return matchservice.SuggestionTimeout{
		MatchID:     j.MatchID,
		GameNumber:  j.GameNumber,
		Seq:         j.Seq,
		SuggestedBy: j.SuggestedBy,
		Stage:       stagedomain.ID(j.StageID),
	}
}

// ConfirmationTimeoutJob fires when a result claim was left unconfirmed.
type ConfirmationTimeoutJob struct {
	MatchID             uuid.UUID            `json:"match_id"`
	GameNumber          int                  `json:"game_number"`
	Seq                 int                  `json:"seq"`
	ClaimedWinner       sharedtypes.PlayerID `json:"claimed_winner"`
	NeedsConfirmationBy sharedtypes.PlayerID `json:"needs_confirmation_by"`
}

// Kind returns the job type identifier for River
func (ConfirmationTimeoutJob) Kind() string { return kindConfirmationTimeout }

func (j ConfirmationTimeoutJob) Timeout() matchservice.ConfirmationTimeout {
	return matchservice.ConfirmationTimeout{
		MatchID:             j.MatchID,
		GameNumber:          j.GameNumber,
		Seq:                 j.Seq,
		ClaimedWinner:       j.ClaimedWinner,
		NeedsConfirmationBy: j.NeedsConfirmationBy,
	}
}

// JobInfo describes a scheduled job (for debugging/monitoring)
type JobInfo struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	MatchID     string    `json:"match_id"`
	State       string    `json:"state"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Attempt     int       `json:"attempt"`
}
