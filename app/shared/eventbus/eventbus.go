// Package eventbus connects the watermill routers to NATS JetStream.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// TopicMetadataKey names the metadata entry a handler uses to choose the
// destination of a produced message. Routers are registered with an empty
// publish topic and the bus resolves it per message.
const TopicMetadataKey = "topic"

// StreamName is the JetStream stream backing every topic of the bot.
const StreamName = "SSBU_BOT"

// StreamSubjects are the subject filters captured by StreamName.
var StreamSubjects = []string{"match.>", "ruleset.>", "rating.>"}

// EventBus publishes and subscribes to topics.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	conn       *nats.Conn
	logger     *slog.Logger
	// inMemory buses use one gochannel for both directions.
	inMemory bool
}

// NewEventBus provisions the JetStream stream and returns a bus whose
// subscriptions are durable per appType.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger, appType string) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	conn, err := nats.Connect(natsURL, nats.Name("ssbu-bot-"+appType), nats.Timeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  StreamSubjects,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    72 * time.Hour,
		Storage:   jetstream.FileStorage,
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to provision stream %s: %w", StreamName, err)
	}

	marshaler := &wmnats.NATSMarshaler{}
	jsConfig := wmnats.JetStreamConfig{
		AutoProvision: false,
		TrackMsgId:    true,
		DurablePrefix: appType,
		DurableCalculator: func(prefix, topic string) string {
			return durableName(prefix, topic)
		},
	}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:         natsURL,
		NatsOptions: []nats.Option{nats.Name("ssbu-bot-" + appType + "-pub")},
		Marshaler:   marshaler,
		JetStream:   jsConfig,
	}, wmLogger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:              natsURL,
		NatsOptions:      []nats.Option{nats.Name("ssbu-bot-" + appType + "-sub")},
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     30 * time.Second,
		Unmarshaler:      marshaler,
		JetStream:        jsConfig,
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Event bus connected",
		attr.String("nats_url", natsURL),
		attr.String("stream", StreamName),
	)

	return &bus{publisher: publisher, subscriber: subscriber, conn: conn, logger: logger}, nil
}

// NewInMemory returns a bus backed by watermill's go channel pub/sub.
func NewInMemory(logger *slog.Logger) EventBus {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &bus{publisher: pubSub, subscriber: pubSub, logger: logger, inMemory: true}
}

// Publish sends msgs to topic. With an empty topic each message goes to the
// topic named in its metadata.
func (b *bus) Publish(topic string, msgs ...*message.Message) error {
	if topic != "" {
		return b.publisher.Publish(topic, msgs...)
	}
	for _, msg := range msgs {
		target := msg.Metadata.Get(TopicMetadataKey)
		if target == "" {
			return fmt.Errorf("message %s has no destination topic", msg.UUID)
		}
		if err := b.publisher.Publish(target, msg); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", target, err)
		}
	}
	return nil
}

func (b *bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Close closes the publisher, the subscriber and the provisioning connection.
func (b *bus) Close() error {
	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	if !b.inMemory {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.conn != nil {
		b.conn.Close()
	}
	return errors.Join(errs...)
}

// durableName turns a dotted topic into a valid JetStream consumer name.
func durableName(prefix, topic string) string {
	name := strings.NewReplacer(".", "_", "*", "_", ">", "_").Replace(topic)
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}
