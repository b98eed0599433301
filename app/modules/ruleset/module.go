package ruleset

import (
	"context"
	"fmt"
	"sync"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	rulesetrouter "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/router"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the ruleset module.
type Module struct {
	EventBus       eventbus.EventBus
	RulesetService *rulesetservice.RulesetService
	config         *config.Config
	RulesetRouter  *rulesetrouter.RulesetRouter
	cancelFunc     context.CancelFunc
	observability  observability.Observability
}

// NewRulesetModule creates a new instance of the Ruleset module.
func NewRulesetModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.Metrics
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "ruleset.NewRulesetModule called")

	service := rulesetservice.NewRulesetService(rulesetdb.NewRepository(db), logger, metrics, tracer, db)

	rulesetRouter := rulesetrouter.NewRulesetRouter(logger, router, eventBus, eventBus, cfg, tracer)
	if err := rulesetRouter.Configure(routerCtx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure ruleset router: %w", err)
	}

	return &Module{
		EventBus:       eventBus,
		RulesetService: service,
		config:         cfg,
		RulesetRouter:  rulesetRouter,
		observability:  obs,
	}, nil
}

// Run starts the ruleset module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting ruleset module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Ruleset module goroutine stopped")
}

// Close stops the ruleset module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping ruleset module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.RulesetRouter != nil {
		if err := m.RulesetRouter.Close(); err != nil {
			logger.Error("Error closing RulesetRouter from module", "error", err)
			return fmt.Errorf("error closing RulesetRouter: %w", err)
		}
	}

	logger.Info("Ruleset module stopped")
	return nil
}
