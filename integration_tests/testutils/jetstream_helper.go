package testutils

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	"github.com/nats-io/nats.go/jetstream"
)

// ResetJetStreamState purges the bot's stream. Consumers are kept.
func (env *TestEnvironment) ResetJetStreamState(ctx context.Context) error {
	if env.JetStream == nil {
		return fmt.Errorf("JetStream context is nil")
	}

	stream, err := env.JetStream.Stream(ctx, eventbus.StreamName)
	if err != nil {
		// created on first bus connection
		if errors.Is(err, jetstream.ErrStreamNotFound) {
			return nil
		}
		return fmt.Errorf("failed to access stream %s: %w", eventbus.StreamName, err)
	}
	return stream.Purge(ctx)
}
