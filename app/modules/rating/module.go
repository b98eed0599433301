package rating

import (
	"context"
	"fmt"
	"sync"

	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	ratinghandlers "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/handlers"
	ratingdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/repositories"
	ratingrouter "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/router"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the rating module.
type Module struct {
	EventBus      eventbus.EventBus
	RatingService *ratingservice.RatingService
	config        *config.Config
	RatingRouter  *ratingrouter.RatingRouter
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// EngineConfig builds the Glicko-2 constants from configuration.
func EngineConfig(cfg config.RatingConfig) ratingdomain.Config {
	c := ratingdomain.DefaultConfig()
	c.Mu, c.Phi, c.Sigma, c.Tau, c.Epsilon = cfg.Mu, cfg.Phi, cfg.Sigma, cfg.Tau, cfg.Epsilon
	return c
}

// NewRatingModule creates a new instance of the Rating module. The read API
// is mounted under /api/ratings when httpRouter is non-nil.
func NewRatingModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	httpRouter chi.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.Metrics
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "rating.NewRatingModule called")

	engine, err := ratingdomain.NewEngine(EngineConfig(cfg.Rating))
	if err != nil {
		return nil, fmt.Errorf("failed to create rating engine: %w", err)
	}

	service := ratingservice.NewRatingService(
		ratingdb.NewRepository(db),
		engine,
		ratingservice.Options{
			HistoryLimit:     cfg.Rating.HistoryLimit,
			LeaderboardLimit: cfg.Rating.LeaderboardLimit,
		},
		logger, metrics, tracer, db,
	)
	handlers := ratinghandlers.NewRatingHandlers(service, logger)

	ratingRouter := ratingrouter.NewRatingRouter(logger, router, eventBus, eventBus, cfg, tracer)
	if err := ratingRouter.Configure(routerCtx, handlers, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure rating router: %w", err)
	}

	if httpRouter != nil {
		httpRouter.Route("/api/ratings", handlers.Routes)
	}

	return &Module{
		EventBus:      eventBus,
		RatingService: service,
		config:        cfg,
		RatingRouter:  ratingRouter,
		observability: obs,
	}, nil
}

// Run starts the rating module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting rating module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Rating module goroutine stopped")
}

// Close stops the rating module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping rating module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.RatingRouter != nil {
		if err := m.RatingRouter.Close(); err != nil {
			logger.Error("Error closing RatingRouter from module", "error", err)
			return fmt.Errorf("error closing RatingRouter: %w", err)
		}
	}

	logger.Info("Rating module stopped")
	return nil
}
