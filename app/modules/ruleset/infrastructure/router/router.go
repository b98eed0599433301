package rulesetrouter

import (
	"context"
	"fmt"
	"log/slog"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesethandlers "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/handlers"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"
)

// RulesetRouter handles routing for ruleset module events.
type RulesetRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	tracer     trace.Tracer
}

// NewRulesetRouter creates a new RulesetRouter.
func NewRulesetRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	tracer trace.Tracer,
) *RulesetRouter {
	return &RulesetRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *RulesetRouter) Configure(routerCtx context.Context, service rulesetservice.Service, metrics observability.OperationMetrics) error {
	handlers := rulesethandlers.NewRulesetHandlers(service, r.logger)

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
	handlerName := "ruleset." + topic

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
func (r *RulesetRouter) RegisterHandlers(ctx context.Context, handlers rulesethandlers.Handlers, metrics observability.OperationMetrics) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    metrics,
	}

	registerHandler(deps, rulesetevents.RulesetCreateRequestedV1, handlers.HandleCreateRuleset)
	registerHandler(deps, rulesetevents.RulesetUpdateRequestedV1, handlers.HandleUpdateRuleset)
	registerHandler(deps, rulesetevents.RulesetRetrievalRequestedV1, handlers.HandleRetrieveRuleset)
	registerHandler(deps, rulesetevents.RulesetListRequestedV1, handlers.HandleListRulesets)

	return nil
}

// Close stops the router.
func (r *RulesetRouter) Close() error {
	return r.Router.Close()
}
