package matchqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
)

// SuggestionTimeoutWorker turns an expired suggestion job into a
// match.suggestion.timeout.v1 message. The match handler decides whether the
// suggestion is still pending.
type SuggestionTimeoutWorker struct {
	river.WorkerDefaults[SuggestionTimeoutJob]
	logger    *slog.Logger
	publisher message.Publisher
}

func NewSuggestionTimeoutWorker(logger *slog.Logger, publisher message.Publisher) *SuggestionTimeoutWorker {
	return &SuggestionTimeoutWorker{logger: logger, publisher: publisher}
}

func (w *SuggestionTimeoutWorker) Work(ctx context.Context, job *river.Job[SuggestionTimeoutJob]) error {
	args := job.Args
	w.logger.InfoContext(ctx, "Suggestion timed out",
		attr.MatchID(args.MatchID.String()),
		attr.Int("game_number", args.GameNumber),
		attr.Int64("job_id", job.ID),
	)
	return publish(w.publisher, matchevents.SuggestionTimeoutV1, matchevents.SuggestionTimeoutPayloadV1{
		MatchID:     args.MatchID,
		GameNumber:  args.GameNumber,
		Seq:         args.Seq,
		SuggestedBy: args.SuggestedBy,
		StageID:     args.StageID,
	})
}

// ConfirmationTimeoutWorker turns an expired claim job into a
// match.confirmation.timeout.v1 message.
type ConfirmationTimeoutWorker struct {
	river.WorkerDefaults[ConfirmationTimeoutJob]
	logger    *slog.Logger
	publisher message.Publisher
}

func NewConfirmationTimeoutWorker(logger *slog.Logger, publisher message.Publisher) *ConfirmationTimeoutWorker {
	return &ConfirmationTimeoutWorker{logger: logger, publisher: publisher}
}

func (w *ConfirmationTimeoutWorker) Work(ctx context.Context, job *river.Job[ConfirmationTimeoutJob]) error {
	args := job.Args
	w.logger.InfoContext(ctx, "Result confirmation timed out",
		attr.MatchID(args.MatchID.String()),
		attr.Int("game_number", args.GameNumber),
		attr.Int64("job_id", job.ID),
	)
	return publish(w.publisher, matchevents.ConfirmationTimeoutV1, matchevents.ConfirmationTimeoutPayloadV1{
		MatchID:             args.MatchID,
		GameNumber:          args.GameNumber,
		Seq:                 args.Seq,
		ClaimedWinner:       args.ClaimedWinner,
		NeedsConfirmationBy: args.NeedsConfirmationBy,
	})
}

func publish(publisher message.Publisher, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("topic", topic)
	if err := publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}
