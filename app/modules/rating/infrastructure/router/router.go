package ratingrouter

import (
	"context"
	"fmt"
	"log/slog"

	ratinghandlers "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/handlers"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	ratingevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/rating"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"
)

// RatingRouter handles routing for rating module events.
type RatingRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	tracer     trace.Tracer
}

// NewRatingRouter creates a new RatingRouter.
func NewRatingRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	tracer trace.Tracer,
) *RatingRouter {
	return &RatingRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *RatingRouter) Configure(routerCtx context.Context, handlers *ratinghandlers.RatingHandlers, metrics observability.OperationMetrics) error {
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(routerCtx, handlers, metrics); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    observability.OperationMetrics
}

// registerHandler registers a pure transformation-pattern handler with typed payload.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "rating." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"", // the bus reads the topic from message metadata when empty
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.metrics,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers using the pure transformation pattern.
func (r *RatingRouter) RegisterHandlers(ctx context.Context, handlers ratinghandlers.Handlers, metrics observability.OperationMetrics) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    metrics,
	}

	registerHandler(deps, ratingevents.RatingRetrievalRequestedV1, handlers.HandleRetrieveRating)
	registerHandler(deps, ratingevents.LeaderboardRequestedV1, handlers.HandleRetrieveLeaderboard)
	registerHandler(deps, ratingevents.QualityRequestedV1, handlers.HandleMatchQuality)

	return nil
}

// Close stops the router.
func (r *RatingRouter) Close() error {
	return r.Router.Close()
}
