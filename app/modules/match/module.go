package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	matchhandlers "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/handlers"
	matchqueue "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/queue"
	matchdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/repositories"
	matchrouter "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/router"
	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/ssbu-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// Module represents the match module.
type Module struct {
	EventBus      eventbus.EventBus
	MatchService  *matchservice.MatchService
	QueueService  matchqueue.QueueService
	config        *config.Config
	MatchRouter   *matchrouter.MatchRouter
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewMatchModule creates a new instance of the Match module. Rulesets and
// ratings come from their own modules. A nil queueService disables the
// suggestion and confirmation timeouts.
func NewMatchModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	rulesets rulesetservice.Service,
	ratings ratingservice.Service,
	queueService matchqueue.QueueService,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.Metrics
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "match.NewMatchModule called")

	var scheduler matchservice.Scheduler
	if queueService != nil {
		scheduler = queueService
	}

	service := matchservice.NewMatchService(
		matchdb.NewRepository(db),
		rulesets,
		ratings,
		scheduler,
		matchservice.Options{
			SuggestionTimeout:   cfg.Match.SuggestionTimeout,
			ConfirmationTimeout: cfg.Match.ConfirmationTimeout,
		},
		logger, metrics, tracer, db,
	)

	limiter := matchhandlers.NewPlayerRateLimiter(rate.Limit(cfg.Match.CommandsPerSecond), cfg.Match.CommandBurst)
	handlers := matchhandlers.NewMatchHandlers(service, limiter, logger)

	matchRouter := matchrouter.NewMatchRouter(logger, router, eventBus, eventBus, cfg, tracer)
	if err := matchRouter.Configure(routerCtx, handlers, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure match router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		MatchService:  service,
		QueueService:  queueService,
		config:        cfg,
		MatchRouter:   matchRouter,
		observability: obs,
	}, nil
}

// Run starts the timeout queue and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting match module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start match queue service", attr.Error(err))
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Match module goroutine stopped")
}

// Close stops the match module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping match module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.QueueService.Stop(stopCtx); err != nil {
			logger.Error("Error stopping match queue service", attr.Error(err))
		}
	}

	if m.MatchRouter != nil {
		if err := m.MatchRouter.Close(); err != nil {
			logger.Error("Error closing MatchRouter from module", "error", err)
			return fmt.Errorf("error closing MatchRouter: %w", err)
		}
	}

	logger.Info("Match module stopped")
	return nil
}
