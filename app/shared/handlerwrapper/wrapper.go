// Package handlerwrapper adapts typed, transport-agnostic handlers to
// watermill message handlers.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result is one message a handler wants published.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// FromHandlerResults converts service results into wrapper results.
func FromHandlerResults(in []results.HandlerResult) []Result {
	out := make([]Result, len(in))
	for i, hr := range in {
		out[i] = Result{Topic: hr.Topic, Payload: hr.Payload, Metadata: hr.Metadata}
	}
	return out
}

// WrapTransformingTyped decodes the JSON payload into T, runs handler and
// encodes every returned Result as an outgoing message on its own topic.
// Undecodable payloads are logged and acknowledged.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.OperationMetrics,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))

		var span trace.Span
		if tracer != nil {
			ctx, span = tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("handler", handlerName),
				attribute.String("message_id", msg.UUID),
			))
			defer span.End()
		}

		if metrics != nil {
			metrics.RecordOperationAttempt(ctx, handlerName, "handler")
			start := time.Now()
			defer func() {
				metrics.RecordOperationDuration(ctx, handlerName, "handler", time.Since(start))
			}()
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to decode payload, dropping message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			if metrics != nil {
				metrics.RecordOperationFailure(ctx, handlerName, "handler")
			}
			return nil, nil
		}

		handlerResults, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			if metrics != nil {
				metrics.RecordOperationFailure(ctx, handlerName, "handler")
			}
			if span != nil {
				span.RecordError(err)
			}
			return nil, err
		}

		out := make([]*message.Message, 0, len(handlerResults))
		for _, r := range handlerResults {
			outMsg, err := newResultMessage(msg, r)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", handlerName, err)
			}
			out = append(out, outMsg)
		}

		if metrics != nil {
			metrics.RecordOperationSuccess(ctx, handlerName, "handler")
		}
		logger.DebugContext(ctx, "Handler completed",
			attr.ExtractCorrelationID(ctx),
			attr.String("handler", handlerName),
			attr.Int("produced", len(out)),
		)
		return out, nil
	}
}

func newResultMessage(parent *message.Message, r Result) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", r.Topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	for k, v := range parent.Metadata {
		msg.Metadata.Set(k, v)
	}
	for k, v := range r.Metadata {
		msg.Metadata.Set(k, v)
	}
	msg.Metadata.Set(eventbus.TopicMetadataKey, r.Topic)
	middleware.SetCorrelationID(middleware.MessageCorrelationID(parent), msg)
	return msg, nil
}
