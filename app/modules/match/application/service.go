package matchservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/repositories"
	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Options holds the match timeouts.
type Options struct {
	SuggestionTimeout   time.Duration
	ConfirmationTimeout time.Duration
}

// MatchService implements the Service interface.
type MatchService struct {
	repo      matchdb.Repository
	rulesets  rulesetservice.Service
	ratings   ratingservice.Service
	scheduler Scheduler
	opts      Options
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
	locks     *matchLocks
	chooser   matchdomain.Chooser
	now       func() time.Time
}

// NewMatchService creates a new MatchService. A nil scheduler disables the
// timeouts.
func NewMatchService(
	repo matchdb.Repository,
	rulesets rulesetservice.Service,
	ratings ratingservice.Service,
	scheduler Scheduler,
	opts Options,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SuggestionTimeout <= 0 {
		opts.SuggestionTimeout = 5 * time.Minute
	}
	if opts.ConfirmationTimeout <= 0 {
		opts.ConfirmationTimeout = 10 * time.Minute
	}
	return &MatchService{
		repo:      repo,
		rulesets:  rulesets,
		ratings:   ratings,
		scheduler: scheduler,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		locks:     newMatchLocks(),
		chooser:   randomChooser{},
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// randomChooser draws from the shared math/rand/v2 source, which is safe for
// concurrent use.
type randomChooser struct{}

func (randomChooser) IntN(n int) int { return rand.IntN(n) }

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *MatchService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, "MatchService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "MatchService", time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "MatchService")
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "MatchService")
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "MatchService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *MatchService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
