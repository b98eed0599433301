package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

const metricsService = "river"

// QueueService schedules the match timeouts.
type QueueService interface {
	matchservice.Scheduler
	// GetScheduledJobs returns the jobs of a match (for debugging)
	GetScheduledJobs(ctx context.Context, matchID uuid.UUID) ([]JobInfo, error)
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles job scheduling for the match module using River
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics observability.OperationMetrics
}

// NewService creates the River client on its own pgx pool (River requires
// pgx, not database/sql) and registers the timeout workers, which publish on
// publisher.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, metrics observability.OperationMetrics, publisher message.Publisher, maxWorkers int) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_match_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", metricsService)

	ctxLogger.Info("Initializing match queue service")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSuggestionTimeoutWorker(logger, publisher))
	river.AddWorker(workers, NewConfirmationTimeoutWorker(logger, publisher))

	if maxWorkers <= 0 {
		maxWorkers = 25
	}
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
			queueName:          {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  logger,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", metricsService)
	metrics.RecordOperationDuration(ctx, "initialize_service", metricsService, time.Since(start))

	ctxLogger.Info("Match queue service initialized successfully")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  logger.With(attr.String("component", "river_queue")),
		db:      bunDB,
		metrics: metrics,
	}, nil
}

// track records attempt, outcome and duration of one queue operation.
func (s *Service) track(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, operation, metricsService)
	err := fn()
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, operation, metricsService)
	} else {
		s.metrics.RecordOperationSuccess(ctx, operation, metricsService)
	}
	s.metrics.RecordOperationDuration(ctx, operation, metricsService, time.Since(start))
	return err
}

// Start starts processing jobs.
func (s *Service) Start(ctx context.Context) error {
	return s.track(ctx, "start_service", func() error {
		s.logger.Info("Starting match queue service")
		if err := s.client.Start(ctx); err != nil {
			return fmt.Errorf("failed to start River client: %w", err)
		}
		return nil
	})
}

// Stop waits for running jobs and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	return s.track(ctx, "stop_service", func() error {
		s.logger.Info("Stopping match queue service")
		defer s.pool.Close()
		if err := s.client.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop River client: %w", err)
		}
		return nil
	})
}

func (s *Service) insert(ctx context.Context, operation string, args river.JobArgs, matchID uuid.UUID, at time.Time) error {
	return s.track(ctx, operation, func() error {
		res, err := s.client.Insert(ctx, args, &river.InsertOpts{
			Queue:       queueName,
			ScheduledAt: at,
			UniqueOpts:  river.UniqueOpts{ByArgs: true},
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s job: %w", args.Kind(), err)
		}
		s.logger.InfoContext(ctx, "Match timeout scheduled",
			attr.MatchID(matchID.String()),
			attr.String("job_kind", args.Kind()),
			attr.Time("scheduled_at", at),
			attr.Int64("job_id", res.Job.ID),
			attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
		)
		return nil
	})
}

// ScheduleSuggestionTimeout arms the timeout of a stage suggestion.
func (s *Service) ScheduleSuggestionTimeout(ctx context.Context, t matchservice.SuggestionTimeout, at time.Time) error {
	return s.insert(ctx, "schedule_suggestion_timeout", SuggestionTimeoutJob{
		MatchID:     t.MatchID,
		GameNumber:  t.GameNumber,
		Seq:         t.Seq,
		SuggestedBy: t.SuggestedBy,
		StageID:     int(t.Stage),
	}, t.MatchID, at)
}

// ScheduleConfirmationTimeout arms the timeout of a result claim.
func (s *Service) ScheduleConfirmationTimeout(ctx context.Context, t matchservice.ConfirmationTimeout, at time.Time) error {
	return s.insert(ctx, "schedule_confirmation_timeout", ConfirmationTimeoutJob{
		MatchID:             t.MatchID,
		GameNumber:          t.GameNumber,
		Seq:                 t.Seq,
		ClaimedWinner:       t.ClaimedWinner,
		NeedsConfirmationBy: t.NeedsConfirmationBy,
	}, t.MatchID, at)
}

type riverJobRow struct {
	ID          int64      `bun:"id"`
	Kind        string     `bun:"kind"`
	State       string     `bun:"state"`
	ScheduledAt *time.Time `bun:"scheduled_at"`
	Attempt     int16      `bun:"attempt"`
}

func (s *Service) pendingJobs(ctx context.Context, matchID uuid.UUID, states ...string) ([]riverJobRow, error) {
	var jobs []riverJobRow
	q := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "attempt").
		Where("kind IN (?, ?)", kindSuggestionTimeout, kindConfirmationTimeout).
		Where("args->>'match_id' = ?", matchID.String()).
		Order("scheduled_at ASC")
	if len(states) > 0 {
		q = q.Where("state IN (?)", bun.In(states))
	}
	if err := q.Scan(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to query match jobs: %w", err)
	}
	return jobs, nil
}

// CancelMatchJobs cancels every pending timeout of a closed match.
func (s *Service) CancelMatchJobs(ctx context.Context, matchID uuid.UUID) error {
	return s.track(ctx, "cancel_match_jobs", func() error {
		jobs, err := s.pendingJobs(ctx, matchID, "available", "scheduled")
		if err != nil {
			return err
		}

		cancelled := 0
		for _, job := range jobs {
			if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
				s.logger.WarnContext(ctx, "Failed to cancel job",
					attr.Int64("job_id", job.ID),
					attr.String("job_kind", job.Kind),
					attr.Error(err))
				continue
			}
			cancelled++
		}

		s.logger.InfoContext(ctx, "Match jobs cancelled",
			attr.MatchID(matchID.String()),
			attr.Int("total_found", len(jobs)),
			attr.Int("cancelled_count", cancelled))
		if cancelled != len(jobs) {
			return fmt.Errorf("cancelled %d of %d jobs", cancelled, len(jobs))
		}
		return nil
	})
}

// GetScheduledJobs returns every timeout job of a match, in any state.
func (s *Service) GetScheduledJobs(ctx context.Context, matchID uuid.UUID) ([]JobInfo, error) {
	var out []JobInfo
	err := s.track(ctx, "get_scheduled_jobs", func() error {
		jobs, err := s.pendingJobs(ctx, matchID)
		if err != nil {
			return err
		}
		out = make([]JobInfo, 0, len(jobs))
		for _, job := range jobs {
			info := JobInfo{
				ID:      job.ID,
				Kind:    job.Kind,
				MatchID: matchID.String(),
				State:   job.State,
				Attempt: int(job.Attempt),
			}
			if job.ScheduledAt != nil {
				info.ScheduledAt = *job.ScheduledAt
			}
			out = append(out, info)
		}
		return nil
	})
	return out, err
}

// HealthCheck verifies the River tables are reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.track(ctx, "health_check", func() error {
		if s.client == nil {
			return fmt.Errorf("river client is nil")
		}
		var count int
		if err := s.db.NewSelect().Table("river_job").ColumnExpr("COUNT(*)").Scan(ctx, &count); err != nil {
			s.logger.Error("Queue service health check failed", attr.Error(err))
			return fmt.Errorf("queue service health check failed: %w", err)
		}
		return nil
	})
}
