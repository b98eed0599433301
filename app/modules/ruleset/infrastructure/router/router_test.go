package rulesetrouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// listOnlyService answers ListRulesets and nothing else.
type listOnlyService struct {
	rulesetservice.Service
}

func (listOnlyService) ListRulesets(_ context.Context, guildID sharedtypes.GuildID) (rulesetservice.RulesetListResult, error) {
	rs := rulesetdomain.Default(guildID)
	rs.ID = uuid.New()
	return results.SuccessResult[[]rulesetdomain.Ruleset, error]([]rulesetdomain.Ruleset{rs}), nil
}

func TestRulesetRouter_ListRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewInMemory(logger)
	defer bus.Close()

	wmRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := NewRulesetRouter(logger, wmRouter, bus, bus, nil, noop.NewTracerProvider().Tracer("test"))
	require.NoError(t, r.Configure(ctx, listOnlyService{}, observability.NoOpMetrics{}))

	out, err := bus.Subscribe(ctx, rulesetevents.RulesetListedV1)
	require.NoError(t, err)

	go func() { _ = wmRouter.Run(ctx) }()
	<-wmRouter.Running()
	defer r.Close()

	body, err := json.Marshal(rulesetevents.RulesetListRequestedPayloadV1{GuildID: "guild-1"})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(rulesetevents.RulesetListRequestedV1, message.NewMessage(watermill.NewUUID(), body)))

	select {
	case msg := <-out:
		var listed rulesetevents.RulesetListedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &listed))
		msg.Ack()
		assert.Equal(t, sharedtypes.GuildID("guild-1"), listed.GuildID)
		require.Len(t, listed.Rulesets, 1)
		assert.Equal(t, "on", listed.Rulesets[0].DSRMode)
	case <-ctx.Done():
		t.Fatal("no ruleset.listed.v1 message")
	}
}
