// Package app assembles the modules into the running bot.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/ssbu-bot/app/modules/match"
	matchqueue "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/queue"
	"github.com/Black-And-White-Club/ssbu-bot/app/modules/rating"
	"github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/ssbu-bot/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

// AppType names the durable consumers of this process on the bus.
const AppType = "backend"

// App holds the shared infrastructure and the modules built on it.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	HTTPRouter    chi.Router
	Queue         *matchqueue.Service

	RulesetModule *ruleset.Module
	RatingModule  *rating.Module
	MatchModule   *match.Module

	routerCancel context.CancelFunc
}

// NewApp connects to Postgres and NATS and builds every module. Modules
// register their handlers on one watermill router.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	logger := obs.Provider.Logger
	a := &App{Config: cfg, Observability: obs}

	db, err := NewDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}
	a.DB = db
	logger.InfoContext(ctx, "Database connected")

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger, AppType)
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	a.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	if cfg.Observability.Environment != "test" {
		metrics.NewPrometheusMetricsBuilder(obs.Registry.Prometheus, "", "").AddPrometheusRouterMetrics(router)
	}
	a.Router = router
	a.HTTPRouter = a.newHTTPRouter()

	queue, err := matchqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, obs.Registry.Metrics, bus, cfg.Queue.MaxWorkers)
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("failed to create match queue: %w", err)
	}
	a.Queue = queue

	if err := a.initModules(ctx); err != nil {
		a.closeInfra()
		return nil, err
	}
	return a, nil
}

func (a *App) initModules(ctx context.Context) error {
	routerCtx, cancel := context.WithCancel(context.Background())
	a.routerCancel = cancel
	obs := *a.Observability

	var err error
	if a.RulesetModule, err = ruleset.NewRulesetModule(ctx, a.Config, obs, a.DB, a.EventBus, a.Router, routerCtx); err != nil {
		return fmt.Errorf("failed to initialize ruleset module: %w", err)
	}
	if a.RatingModule, err = rating.NewRatingModule(ctx, a.Config, obs, a.DB, a.EventBus, a.Router, a.HTTPRouter, routerCtx); err != nil {
		return fmt.Errorf("failed to initialize rating module: %w", err)
	}
	if a.MatchModule, err = match.NewMatchModule(
		ctx, a.Config, obs, a.DB, a.EventBus, a.Router,
		a.RulesetModule.RulesetService,
		a.RatingModule.RatingService,
		a.Queue,
		routerCtx,
	); err != nil {
		return fmt.Errorf("failed to initialize match module: %w", err)
	}
	return nil
}

// Run serves until ctx is cancelled or a component fails.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Provider.Logger
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Router.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("router stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error { a.RulesetModule.Run(gctx, nil); return nil })
	g.Go(func() error { a.RatingModule.Run(gctx, nil); return nil })
	g.Go(func() error { a.MatchModule.Run(gctx, nil); return nil })
	g.Go(func() error { return a.serveHTTP(gctx) })

	logger.InfoContext(ctx, "SSBU bot running", attr.String("http", a.Config.HTTP.Address))
	return g.Wait()
}

// Close stops the modules, then the shared infrastructure.
func (a *App) Close() error {
	logger := a.Observability.Provider.Logger
	var errs []error

	if a.routerCancel != nil {
		a.routerCancel()
	}
	closeModule := func(name string, closeFn func() error) {
		if err := closeFn(); err != nil {
			logger.Error("Failed to close module", attr.String("module", name), attr.Error(err))
			errs = append(errs, err)
		}
	}
	if a.MatchModule != nil {
		closeModule("match", a.MatchModule.Close)
	}
	if a.RatingModule != nil {
		closeModule("rating", a.RatingModule.Close)
	}
	if a.RulesetModule != nil {
		closeModule("ruleset", a.RulesetModule.Close)
	}

	errs = append(errs, a.closeInfra())
	return errors.Join(errs...)
}

func (a *App) closeInfra() error {
	var errs []error
	if a.Router != nil {
		errs = append(errs, a.Router.Close())
	}
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
