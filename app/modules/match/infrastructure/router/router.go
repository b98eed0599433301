package matchrouter

import (
	"context"
	"fmt"
	"log/slog"

	matchhandlers "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/handlers"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"
)

// MatchRouter handles routing for match module events.
type MatchRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	tracer     trace.Tracer
}

// NewMatchRouter creates a new MatchRouter.
func NewMatchRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	tracer trace.Tracer,
) *MatchRouter {
	return &MatchRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *MatchRouter) Configure(routerCtx context.Context, handlers *matchhandlers.MatchHandlers, metrics observability.OperationMetrics) error {
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

func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "match." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
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
func (r *MatchRouter) RegisterHandlers(ctx context.Context, handlers matchhandlers.Handlers, metrics observability.OperationMetrics) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    metrics,
	}

	registerHandler(deps, matchevents.MatchCreateRequestedV1, handlers.HandleCreateMatch)
	registerHandler(deps, matchevents.StageStrikeRequestedV1, handlers.HandleStrike)
	registerHandler(deps, matchevents.StagePickRequestedV1, handlers.HandlePick)
	registerHandler(deps, matchevents.StageSuggestRequestedV1, handlers.HandleSuggest)
	registerHandler(deps, matchevents.SuggestionAcceptRequestedV1, handlers.HandleAcceptSuggestion)
	registerHandler(deps, matchevents.SuggestionRejectRequestedV1, handlers.HandleRejectSuggestion)
	registerHandler(deps, matchevents.FighterPickRequestedV1, handlers.HandlePickFighter)
	registerHandler(deps, matchevents.ResultReportRequestedV1, handlers.HandleReportResult)
	registerHandler(deps, matchevents.ResultConfirmRequestedV1, handlers.HandleConfirmResult)
	registerHandler(deps, matchevents.ForfeitRequestedV1, handlers.HandleForfeit)
	registerHandler(deps, matchevents.MatchCloseRequestedV1, handlers.HandleCloseMatch)
	registerHandler(deps, matchevents.StageListRequestedV1, handlers.HandleStageList)

	// published by the timeout workers
	registerHandler(deps, matchevents.SuggestionTimeoutV1, handlers.HandleSuggestionTimeout)
	registerHandler(deps, matchevents.ConfirmationTimeoutV1, handlers.HandleConfirmationTimeout)

	return nil
}

// Close stops the router.
func (r *MatchRouter) Close() error {
	return r.Router.Close()
}
