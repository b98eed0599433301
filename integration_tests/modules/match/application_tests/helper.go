package matchintegrationtests

import (
	"context"
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	matchqueue "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/queue"
	matchdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/ssbu-bot/app/modules/rating"
	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	ratingdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/repositories"
	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/eventbus"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/integration_tests/testutils"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps wires the real services against the containers. The queue
// client is never started, so scheduled jobs stay in river_job where tests
// can inspect them.
type TestDeps struct {
	*testutils.TestEnvironment
	Rulesets *rulesetservice.RulesetService
	Ratings  *ratingservice.RatingService
	Queue    *matchqueue.Service
	Service  *matchservice.MatchService
	Repo     matchdb.Repository
	Gen      *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing match test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("Match test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

func SetupTestMatchService(t *testing.T) TestDeps {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := GetTestEnv(t)

	resetCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	metrics := observability.NoOpMetrics{}

	bus := eventbus.NewInMemory(logger)
	t.Cleanup(func() { _ = bus.Close() })

	queue, err := matchqueue.NewService(env.Ctx, env.DB, logger, env.Config.Postgres.DSN, metrics, bus, 1)
	if err != nil {
		t.Fatalf("Failed to create queue service: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = queue.Stop(stopCtx)
	})

	engine, err := ratingdomain.NewEngine(rating.EngineConfig(env.Config.Rating))
	if err != nil {
		t.Fatalf("Failed to create rating engine: %v", err)
	}

	rulesets := rulesetservice.NewRulesetService(rulesetdb.NewRepository(env.DB), logger, metrics, tracer, env.DB)
	ratings := ratingservice.NewRatingService(
		ratingdb.NewRepository(env.DB),
		engine,
		ratingservice.Options{LeaderboardLimit: env.Config.Rating.LeaderboardLimit},
		logger, metrics, tracer, env.DB,
	)
	repo := matchdb.NewRepository(env.DB)
	service := matchservice.NewMatchService(
		repo,
		rulesets,
		ratings,
		queue,
		matchservice.Options{
			SuggestionTimeout:   env.Config.Match.SuggestionTimeout,
			ConfirmationTimeout: env.Config.Match.ConfirmationTimeout,
		},
		logger, metrics, tracer, env.DB,
	)

	gen := testutils.NewTestDataGenerator()
	t.Logf("data generator seed: %d", gen.Seed())

	return TestDeps{
		TestEnvironment: env,
		Rulesets:        rulesets,
		Ratings:         ratings,
		Queue:           queue,
		Service:         service,
		Repo:            repo,
		Gen:             gen,
	}
}
