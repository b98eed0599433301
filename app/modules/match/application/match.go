package matchservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/repositories"
	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func failure(err error) OutcomeResult {
	return results.FailureResult[Outcome, error](err)
}

// CreateMatch resolves the ruleset, draws who strikes first and stores the
// new match. Ranked matches snapshot both players' ratings.
func (s *MatchService) CreateMatch(ctx context.Context, req CreateRequest) (OutcomeResult, error) {
	return withTelemetry(s, ctx, "CreateMatch", string(req.GuildID), func(ctx context.Context) (OutcomeResult, error) {
		if req.GuildID == "" {
			return failure(&matchdomain.ValidationError{Code: matchdomain.ErrInvalidMatch.Code, Message: "guild id is required"}), nil
		}
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (OutcomeResult, error) {
			rs, err := s.rulesets.Resolve(ctx, db, req.GuildID, req.RulesetName)
			if err != nil {
				if errors.Is(err, rulesetservice.ErrRulesetNotFound) {
					return failure(&matchdomain.ValidationError{Code: matchdomain.ErrInvalidMatch.Code, Message: err.Error()}), nil
				}
				return OutcomeResult{}, err
			}

			m, err := matchdomain.NewMatch(matchdomain.Params{
				ID:           uuid.New(),
				GuildID:      req.GuildID,
				Ruleset:      rs,
				Player1:      req.Player1,
				Player2:      req.Player2,
				WinsRequired: req.WinsRequired,
				Ranked:       req.Ranked,
				GlobalRanked: req.GlobalRanked,
				StartedAt:    s.now(),
			}, s.chooser)
			if err != nil {
				if ve, ok := matchdomain.AsValidation(err); ok {
					return failure(ve), nil
				}
				return OutcomeResult{}, err
			}

			if m.Ranked {
				if m.CommunityRatings, err = s.snapshot(ctx, db, m, ratingdomain.ScopeCommunity); err != nil {
					return OutcomeResult{}, err
				}
			}
			if m.GlobalRanked {
				if m.GlobalRatings, err = s.snapshot(ctx, db, m, ratingdomain.ScopeGlobal); err != nil {
					return OutcomeResult{}, err
				}
			}

			if err := s.repo.Create(ctx, db, m); err != nil {
				return OutcomeResult{}, fmt.Errorf("failed to create match: %w", err)
			}

			s.logger.InfoContext(ctx, "Match created",
				attr.MatchID(m.ID.String()),
				attr.GuildID(string(m.GuildID)),
				attr.String("ruleset", rs.Name),
				attr.Int("ruleset_version", rs.Version),
				attr.Bool("ranked", m.Ranked),
			)
			return results.SuccessResult[Outcome, error](Outcome{Match: m, Events: m.PullEvents()}), nil
		})
	})
}

func (s *MatchService) snapshot(ctx context.Context, db bun.IDB, m *matchdomain.Match, scope ratingdomain.Scope) (*matchdomain.RatingSnapshot, error) {
	r1, err := s.ratings.Snapshot(ctx, db, m.GuildID, m.Player1, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s rating: %w", scope, err)
	}
	r2, err := s.ratings.Snapshot(ctx, db, m.GuildID, m.Player2, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s rating: %w", scope, err)
	}
	return &matchdomain.RatingSnapshot{Player1: r1, Player2: r2}, nil
}

// GetMatch returns a match without locking it.
func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (MatchResult, error) {
	return withTelemetry(s, ctx, "GetMatch", id.String(), func(ctx context.Context) (MatchResult, error) {
		m, err := s.repo.Get(ctx, nil, id)
		if err != nil {
			if errors.Is(err, matchdb.ErrNotFound) {
				return results.FailureResult[*matchdomain.Match, error](ErrMatchNotFound), nil
			}
			return MatchResult{}, err
		}
		return results.SuccessResult[*matchdomain.Match, error](m), nil
	})
}

// ListActiveMatches returns a guild's unfinished matches. A non-empty
// playerID keeps only that player's matches.
func (s *MatchService) ListActiveMatches(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID) (MatchListResult, error) {
	return withTelemetry(s, ctx, "ListActiveMatches", string(guildID), func(ctx context.Context) (MatchListResult, error) {
		matches, err := s.repo.ListActive(ctx, nil, guildID, playerID)
		if err != nil {
			return MatchListResult{}, err
		}
		return results.SuccessResult[[]*matchdomain.Match, error](matches), nil
	})
}

// GetStageList numbers the match's stages for the current game.
func (s *MatchService) GetStageList(ctx context.Context, id uuid.UUID) (StageListResult, error) {
	return withTelemetry(s, ctx, "GetStageList", id.String(), func(ctx context.Context) (StageListResult, error) {
		m, err := s.repo.Get(ctx, nil, id)
		if err != nil {
			if errors.Is(err, matchdb.ErrNotFound) {
				return results.FailureResult[StageList, error](ErrMatchNotFound), nil
			}
			return StageListResult{}, err
		}
		rs, err := s.loadRuleset(ctx, nil, m)
		if err != nil {
			return StageListResult{}, err
		}
		options, err := m.StageList(rs)
		if err != nil {
			return StageListResult{}, err
		}
		return results.SuccessResult[StageList, error](StageList{
			MatchID:    m.ID,
			GameNumber: m.CurrentGame,
			Stages:     options,
		}), nil
	})
}

func (s *MatchService) loadRuleset(ctx context.Context, db bun.IDB, m *matchdomain.Match) (rulesetdomain.Ruleset, error) {
	rs, err := s.rulesets.Load(ctx, db, m.RulesetID)
	if err != nil {
		if errors.Is(err, rulesetservice.ErrRulesetNotFound) {
			return rulesetdomain.Ruleset{}, fmt.Errorf("%w: match %s: %v", matchdomain.ErrCorruptMatch, m.ID, err)
		}
		return rulesetdomain.Ruleset{}, err
	}
	return rs, nil
}

// mutation changes a locked match. A ValidationError leaves it untouched.
type mutation func(m *matchdomain.Match, rs rulesetdomain.Ruleset, at time.Time) error

// mutate runs one action as a single unit: the match is locked in process and
// in the database, changed, rated when it just finished, and saved. Timeouts
// are armed once the transaction has committed.
func (s *MatchService) mutate(ctx context.Context, operationName string, matchID uuid.UUID, fn mutation) (OutcomeResult, error) {
	return withTelemetry(s, ctx, operationName, matchID.String(), func(ctx context.Context) (OutcomeResult, error) {
		unlock := s.locks.Lock(matchID)
		defer unlock()

		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (OutcomeResult, error) {
			m, err := s.repo.GetForUpdate(ctx, db, matchID)
			if err != nil {
				if errors.Is(err, matchdb.ErrNotFound) {
					return failure(ErrMatchNotFound), nil
				}
				return OutcomeResult{}, err
			}
			rs, err := s.loadRuleset(ctx, db, m)
			if err != nil {
				return OutcomeResult{}, err
			}

			wasLive := !m.Status.Terminal()
			if err := fn(m, rs, s.now()); err != nil {
				if errors.Is(err, errStaleTimeout) {
					return results.SuccessResult[Outcome, error](Outcome{Match: m, Stale: true}), nil
				}
				if ve, ok := matchdomain.AsValidation(err); ok {
					return failure(ve), nil
				}
				return OutcomeResult{}, err
			}

			outcome := Outcome{Match: m, Events: m.PullEvents()}
			if wasLive && m.RatingsDue() {
				updates, err := s.ratings.ApplyMatchResult(ctx, db, ratingservice.MatchOutcome{
					MatchID:      m.ID,
					GuildID:      m.GuildID,
					Player1:      m.Player1,
					Player2:      m.Player2,
					Player1Score: m.Player1Score,
					Player2Score: m.Player2Score,
					Global:       m.GlobalRanked,
					At:           *m.EndedAt,
				})
				if err != nil {
					return OutcomeResult{}, fmt.Errorf("failed to rate match: %w", err)
				}
				outcome.RatingUpdates = updates
			}

			if err := s.repo.Save(ctx, db, m); err != nil {
				return OutcomeResult{}, fmt.Errorf("failed to save match: %w", err)
			}
			return results.SuccessResult[Outcome, error](outcome), nil
		})
		if err == nil && result.IsSuccess() {
			s.armTimeouts(ctx, *result.Success)
		}
		return result, err
	})
}

// armTimeouts schedules the jobs the committed events call for. A scheduling
// error only loses the timeout, so it is logged and not returned.
func (s *MatchService) armTimeouts(ctx context.Context, o Outcome) {
	if s.scheduler == nil || o.Match == nil {
		return
	}
	now := s.now()
	for _, e := range o.Events {
		var err error
		switch e := e.(type) {
		case matchdomain.StageSuggested:
			err = s.scheduler.ScheduleSuggestionTimeout(ctx, SuggestionTimeout{
				MatchID:     o.Match.ID,
				GameNumber:  e.GameNumber,
				Seq:         e.Seq,
				SuggestedBy: e.By,
				Stage:       e.Stage,
			}, now.Add(s.opts.SuggestionTimeout))
		case matchdomain.ConfirmationRequested:
			err = s.scheduler.ScheduleConfirmationTimeout(ctx, ConfirmationTimeout{
				MatchID:             o.Match.ID,
				GameNumber:          e.GameNumber,
				Seq:                 e.Seq,
				ClaimedWinner:       e.ClaimedWinner,
				NeedsConfirmationBy: e.From,
			}, now.Add(s.opts.ConfirmationTimeout))
		case matchdomain.MatchClosed:
			err = s.scheduler.CancelMatchJobs(ctx, o.Match.ID)
		default:
			continue
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to update match timeout",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID(o.Match.ID.String()),
				attr.String("event", e.EventName()),
				attr.Error(err),
			)
		}
	}
}

// parseStage accepts a stage name, an alias, or a 1-based position in the
// ruleset's stage list.
func parseStage(rs rulesetdomain.Ruleset, text string) (stagedomain.ID, error) {
	text = strings.TrimSpace(text)
	if n, err := strconv.Atoi(text); err == nil {
		if id, ok := rs.StageByNumber(n); ok {
			return id, nil
		}
		return 0, &matchdomain.ValidationError{
			Code:    matchdomain.ErrInvalidStage.Code,
			Message: fmt.Sprintf("there is no stage %d in the stage list", n),
		}
	}
	id, err := stagedomain.Parse(text)
	if err != nil {
		return 0, &matchdomain.ValidationError{Code: matchdomain.ErrInvalidStage.Code, Message: err.Error()}
	}
	return id, nil
}

// Strike removes a stage from the current game's pool.
func (s *MatchService) Strike(ctx context.Context, a StageAction) (OutcomeResult, error) {
	return s.mutate(ctx, "Strike", a.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, _ time.Time) error {
		stage, err := parseStage(rs, a.Stage)
		if err != nil {
			return err
		}
		return m.Strike(rs, a.GameNumber, a.PlayerID, stage)
	})
}

// Pick chooses the stage of the current game. A pick DSR forbids becomes a
// suggestion for the opponent to answer.
func (s *MatchService) Pick(ctx context.Context, a StageAction) (OutcomeResult, error) {
	return s.mutate(ctx, "Pick", a.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, _ time.Time) error {
		stage, err := parseStage(rs, a.Stage)
		if err != nil {
			return err
		}
		_, err = m.Pick(rs, a.GameNumber, a.PlayerID, stage)
		return err
	})
}

func (s *MatchService) Suggest(ctx context.Context, a StageAction) (OutcomeResult, error) {
	return s.mutate(ctx, "Suggest", a.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, _ time.Time) error {
		stage, err := parseStage(rs, a.Stage)
		if err != nil {
			return err
		}
		return m.Suggest(rs, a.GameNumber, a.PlayerID, stage)
	})
}

func (s *MatchService) AcceptSuggestion(ctx context.Context, a Action) (OutcomeResult, error) {
	return s.mutate(ctx, "AcceptSuggestion", a.MatchID, func(m *matchdomain.Match, _ rulesetdomain.Ruleset, _ time.Time) error {
		return m.AcceptSuggestion(a.GameNumber, a.PlayerID)
	})
}

func (s *MatchService) RejectSuggestion(ctx context.Context, a Action) (OutcomeResult, error) {
	return s.mutate(ctx, "RejectSuggestion", a.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, _ time.Time) error {
		return m.RejectSuggestion(rs, a.GameNumber, a.PlayerID)
	})
}

func (s *MatchService) PickFighter(ctx context.Context, a FighterAction) (OutcomeResult, error) {
	return s.mutate(ctx, "PickFighter", a.MatchID, func(m *matchdomain.Match, _ rulesetdomain.Ruleset, _ time.Time) error {
		fighter, err := stagedomain.ParseFighter(a.Fighter)
		if err != nil {
			return &matchdomain.ValidationError{Code: matchdomain.ErrInvalidFighter.Code, Message: err.Error()}
		}
		return m.PickFighter(a.GameNumber, a.PlayerID, fighter)
	})
}

// ReportResult records a player's claim about the current game.
func (s *MatchService) ReportResult(ctx context.Context, a ReportAction) (OutcomeResult, error) {
	return s.mutate(ctx, "ReportResult", a.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, at time.Time) error {
		_, err := m.ReportResult(rs, a.GameNumber, a.PlayerID, a.Won, at)
		return err
	})
}

func (s *MatchService) ConfirmResult(ctx context.Context, a Action) (OutcomeResult, error) {
	return s.mutate(ctx, "ConfirmResult", a.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, at time.Time) error {
		return m.Confirm(rs, a.GameNumber, a.PlayerID, at)
	})
}

func (s *MatchService) Forfeit(ctx context.Context, a Action) (OutcomeResult, error) {
	return s.mutate(ctx, "Forfeit", a.MatchID, func(m *matchdomain.Match, _ rulesetdomain.Ruleset, at time.Time) error {
		return m.Forfeit(a.PlayerID, at)
	})
}

// CloseMatch cancels the match, or awards it when AwardedTo is set.
func (s *MatchService) CloseMatch(ctx context.Context, req CloseRequest) (OutcomeResult, error) {
	var closure matchdomain.Closure = matchdomain.Cancel{}
	if req.AwardedTo != "" {
		closure = matchdomain.Award{Winner: req.AwardedTo}
	}
	return s.mutate(ctx, "CloseMatch", req.MatchID, func(m *matchdomain.Match, _ rulesetdomain.Ruleset, at time.Time) error {
		return m.ForceClose(closure, at)
	})
}

// ExpireSuggestion rejects a suggestion that was not answered in time.
func (s *MatchService) ExpireSuggestion(ctx context.Context, t SuggestionTimeout) (OutcomeResult, error) {
	return s.mutate(ctx, "ExpireSuggestion", t.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, _ time.Time) error {
		expired, err := m.ExpireSuggestion(rs, t.GameNumber, t.Seq, t.SuggestedBy, t.Stage)
		if err != nil {
			return err
		}
		if !expired {
			return errStaleTimeout
		}
		return nil
	})
}

// ExpireConfirmation accepts a result claim that was not answered in time.
func (s *MatchService) ExpireConfirmation(ctx context.Context, t ConfirmationTimeout) (OutcomeResult, error) {
	return s.mutate(ctx, "ExpireConfirmation", t.MatchID, func(m *matchdomain.Match, rs rulesetdomain.Ruleset, at time.Time) error {
		expired, err := m.ExpireConfirmation(rs, t.GameNumber, t.Seq, t.ClaimedWinner, t.NeedsConfirmationBy, at)
		if err != nil {
			return err
		}
		if !expired {
			return errStaleTimeout
		}
		return nil
	})
}
