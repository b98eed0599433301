package matchrouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	matchhandlers "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/handlers"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// forfeitOnlyService answers Forfeit and nothing else.
type forfeitOnlyService struct {
	matchservice.Service
}

func (forfeitOnlyService) Forfeit(_ context.Context, a matchservice.Action) (matchservice.OutcomeResult, error) {
	if a.PlayerID != "amy" && a.PlayerID != "ben" {
		return results.FailureResult[matchservice.Outcome, error](matchdomain.ErrNotParticipant), nil
	}
	winner := a.PlayerID
	if winner == "amy" {
		winner = "ben"
	} else {
		winner = "amy"
	}
	m := &matchdomain.Match{ID: a.MatchID, Player1: "amy", Player2: "ben", WinsRequired: 2, CurrentGame: 1}
	return results.SuccessResult[matchservice.Outcome, error](matchservice.Outcome{
		Match: m,
		Events: []matchdomain.Event{
			matchdomain.MatchClosed{Resolution: matchdomain.ResolutionForfeit, Winner: &winner},
		},
	}), nil
}

func startRouter(t *testing.T, ctx context.Context) eventbus.EventBus {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewInMemory(logger)
	t.Cleanup(func() { _ = bus.Close() })

	wmRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	require.NoError(t, err)

	r := NewMatchRouter(logger, wmRouter, bus, bus, nil, noop.NewTracerProvider().Tracer("test"))
	handlers := matchhandlers.NewMatchHandlers(forfeitOnlyService{}, nil, logger)
	require.NoError(t, r.Configure(ctx, handlers, observability.NoOpMetrics{}))

	go func() { _ = wmRouter.Run(ctx) }()
	<-wmRouter.Running()
	t.Cleanup(func() { _ = r.Close() })
	return bus
}

func publish(t *testing.T, bus eventbus.EventBus, topic string, payload any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(topic, message.NewMessage(watermill.NewUUID(), body)))
}

func TestMatchRouter_Forfeit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	bus := startRouter(t, ctx)

	closed, err := bus.Subscribe(ctx, matchevents.MatchClosedV1)
	require.NoError(t, err)

	matchID := uuid.New()
	publish(t, bus, matchevents.ForfeitRequestedV1, matchevents.ActionRequestedPayloadV1{MatchID: matchID, PlayerID: "amy"})

	select {
	case msg := <-closed:
		var payload matchevents.MatchClosedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		msg.Ack()
		assert.Equal(t, matchID, payload.MatchID)
		assert.Equal(t, "forfeit", payload.Resolution)
		require.NotNil(t, payload.Winner)
		assert.EqualValues(t, "ben", *payload.Winner)
	case <-ctx.Done():
		t.Fatal("no match.closed.v1 message")
	}
}

func TestMatchRouter_Rejection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	bus := startRouter(t, ctx)

	rejected, err := bus.Subscribe(ctx, matchevents.MatchActionRejectedV1)
	require.NoError(t, err)

	publish(t, bus, matchevents.ForfeitRequestedV1, matchevents.ActionRequestedPayloadV1{MatchID: uuid.New(), PlayerID: "cat"})

	select {
	case msg := <-rejected:
		var payload matchevents.MatchActionRejectedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		msg.Ack()
		assert.Equal(t, "not_participant", payload.Code)
	case <-ctx.Done():
		t.Fatal("no match.action.rejected.v1 message")
	}
}
