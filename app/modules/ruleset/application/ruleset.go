package rulesetservice

import (
	"context"
	"errors"
	"fmt"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateRuleset stores version 1 of a new named ruleset.
func (s *RulesetService) CreateRuleset(ctx context.Context, def Definition) (RulesetResult, error) {
	createTx := func(ctx context.Context, db bun.IDB) (RulesetResult, error) {
		return s.createRulesetLogic(ctx, db, def)
	}
	return withTelemetry(s, ctx, "CreateRuleset", string(def.GuildID)+"/"+def.Name, func(ctx context.Context) (RulesetResult, error) {
		return runInTx(s, ctx, createTx)
	})
}

func (s *RulesetService) createRulesetLogic(ctx context.Context, db bun.IDB, def Definition) (RulesetResult, error) {
	rs := rulesetdomain.Ruleset{
		ID:              uuid.New(),
		GuildID:         def.GuildID,
		Name:            def.Name,
		Version:         1,
		Starters:        def.Starters,
		Counterpicks:    def.Counterpicks,
		CounterpickBans: def.CounterpickBans,
		DSR:             def.DSR,
		CreatedAt:       s.now(),
	}
	if rs.Counterpicks == nil {
		rs.Counterpicks = []stagedomain.ID{}
	}
	if err := rs.Validate(); err != nil {
		return results.FailureResult[rulesetdomain.Ruleset, error](err), nil
	}

	_, err := s.repo.GetLatest(ctx, db, def.GuildID, def.Name)
	switch {
	case err == nil:
		return results.FailureResult[rulesetdomain.Ruleset, error](fmt.Errorf("%w: %s", ErrRulesetExists, def.Name)), nil
	case !errors.Is(err, rulesetdb.ErrNotFound):
		return RulesetResult{}, fmt.Errorf("failed to check existing ruleset: %w", err)
	}

	if err := s.repo.Create(ctx, db, rs); err != nil {
		if errors.Is(err, rulesetdb.ErrDuplicate) {
			return results.FailureResult[rulesetdomain.Ruleset, error](fmt.Errorf("%w: %s", ErrRulesetExists, def.Name)), nil
		}
		return RulesetResult{}, fmt.Errorf("failed to create ruleset: %w", err)
	}
	return results.SuccessResult[rulesetdomain.Ruleset, error](rs), nil
}

// UpdateRuleset writes a new version of a named ruleset. Matches created
// with earlier versions keep them.
func (s *RulesetService) UpdateRuleset(ctx context.Context, guildID sharedtypes.GuildID, name string, changes Changes) (RulesetResult, error) {
	updateTx := func(ctx context.Context, db bun.IDB) (RulesetResult, error) {
		return s.updateRulesetLogic(ctx, db, guildID, name, changes)
	}
	return withTelemetry(s, ctx, "UpdateRuleset", string(guildID)+"/"+name, func(ctx context.Context) (RulesetResult, error) {
		return runInTx(s, ctx, updateTx)
	})
}

func (s *RulesetService) updateRulesetLogic(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string, changes Changes) (RulesetResult, error) {
	latest, err := s.repo.GetLatest(ctx, db, guildID, name)
	if err != nil {
		if errors.Is(err, rulesetdb.ErrNotFound) {
			return results.FailureResult[rulesetdomain.Ruleset, error](fmt.Errorf("%w: %s", ErrRulesetNotFound, name)), nil
		}
		return RulesetResult{}, fmt.Errorf("failed to get latest ruleset: %w", err)
	}

	next := latest.NextVersion(uuid.New(), s.now())
	if changes.Starters != nil {
		next.Starters = changes.Starters
	}
	if changes.Counterpicks != nil {
		next.Counterpicks = changes.Counterpicks
	}
	if changes.CounterpickBans != nil {
		next.CounterpickBans = *changes.CounterpickBans
	}
	if changes.DSR != nil {
		next.DSR = *changes.DSR
	}
	if err := next.Validate(); err != nil {
		return results.FailureResult[rulesetdomain.Ruleset, error](err), nil
	}

	if err := s.repo.Create(ctx, db, next); err != nil {
		if errors.Is(err, rulesetdb.ErrDuplicate) {
			return results.FailureResult[rulesetdomain.Ruleset, error](fmt.Errorf("%w: %s version %d", ErrRulesetExists, name, next.Version)), nil
		}
		return RulesetResult{}, fmt.Errorf("failed to store ruleset version: %w", err)
	}
	return results.SuccessResult[rulesetdomain.Ruleset, error](next), nil
}

// GetRuleset retrieves a specific version by id.
func (s *RulesetService) GetRuleset(ctx context.Context, id uuid.UUID) (RulesetResult, error) {
	getTx := func(ctx context.Context, db bun.IDB) (RulesetResult, error) {
		rs, err := s.Load(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrRulesetNotFound) {
				return results.FailureResult[rulesetdomain.Ruleset, error](err), nil
			}
			return RulesetResult{}, err
		}
		return results.SuccessResult[rulesetdomain.Ruleset, error](rs), nil
	}
	return withTelemetry(s, ctx, "GetRuleset", id.String(), func(ctx context.Context) (RulesetResult, error) {
		return runInTx(s, ctx, getTx)
	})
}

// GetLatestRuleset retrieves the newest version of a named ruleset.
func (s *RulesetService) GetLatestRuleset(ctx context.Context, guildID sharedtypes.GuildID, name string) (RulesetResult, error) {
	getTx := func(ctx context.Context, db bun.IDB) (RulesetResult, error) {
		rs, err := s.repo.GetLatest(ctx, db, guildID, name)
		if err != nil {
			if errors.Is(err, rulesetdb.ErrNotFound) {
				return results.FailureResult[rulesetdomain.Ruleset, error](fmt.Errorf("%w: %s", ErrRulesetNotFound, name)), nil
			}
			return RulesetResult{}, fmt.Errorf("failed to get latest ruleset: %w", err)
		}
		return results.SuccessResult[rulesetdomain.Ruleset, error](rs), nil
	}
	return withTelemetry(s, ctx, "GetLatestRuleset", string(guildID)+"/"+name, func(ctx context.Context) (RulesetResult, error) {
		return runInTx(s, ctx, getTx)
	})
}

// ListRulesets returns the latest version of every ruleset of a guild.
func (s *RulesetService) ListRulesets(ctx context.Context, guildID sharedtypes.GuildID) (RulesetListResult, error) {
	listTx := func(ctx context.Context, db bun.IDB) (RulesetListResult, error) {
		list, err := s.repo.ListLatest(ctx, db, guildID)
		if err != nil {
			return RulesetListResult{}, fmt.Errorf("failed to list rulesets: %w", err)
		}
		return results.SuccessResult[[]rulesetdomain.Ruleset, error](list), nil
	}
	return withTelemetry(s, ctx, "ListRulesets", string(guildID), func(ctx context.Context) (RulesetListResult, error) {
		return runInTx(s, ctx, listTx)
	})
}

// EnsureDefaultRuleset returns the guild's default ruleset, creating it on
// first use.
func (s *RulesetService) EnsureDefaultRuleset(ctx context.Context, guildID sharedtypes.GuildID) (RulesetResult, error) {
	ensureTx := func(ctx context.Context, db bun.IDB) (RulesetResult, error) {
		rs, err := s.Resolve(ctx, db, guildID, rulesetdomain.DefaultName)
		if err != nil {
			return RulesetResult{}, err
		}
		return results.SuccessResult[rulesetdomain.Ruleset, error](rs), nil
	}
	return withTelemetry(s, ctx, "EnsureDefaultRuleset", string(guildID), func(ctx context.Context) (RulesetResult, error) {
		return runInTx(s, ctx, ensureTx)
	})
}

// Load returns a specific ruleset version. A missing version is
// ErrRulesetNotFound.
func (s *RulesetService) Load(ctx context.Context, db bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error) {
	rs, err := s.repo.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, rulesetdb.ErrNotFound) {
			return rulesetdomain.Ruleset{}, fmt.Errorf("%w: %s", ErrRulesetNotFound, id)
		}
		return rulesetdomain.Ruleset{}, fmt.Errorf("failed to load ruleset: %w", err)
	}
	return rs, nil
}

// Resolve returns the latest version of the named ruleset. An empty name
// means the default ruleset, which is created when the guild has none yet.
func (s *RulesetService) Resolve(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error) {
	if name == "" {
		name = rulesetdomain.DefaultName
	}

	rs, err := s.repo.GetLatest(ctx, db, guildID, name)
	if err == nil {
		return rs, nil
	}
	if !errors.Is(err, rulesetdb.ErrNotFound) {
		return rulesetdomain.Ruleset{}, fmt.Errorf("failed to resolve ruleset: %w", err)
	}
	if name != rulesetdomain.DefaultName {
		return rulesetdomain.Ruleset{}, fmt.Errorf("%w: %s", ErrRulesetNotFound, name)
	}

	def := rulesetdomain.Default(guildID)
	def.ID = uuid.New()
	def.CreatedAt = s.now()
	if err := s.repo.Create(ctx, db, def); err != nil {
		if errors.Is(err, rulesetdb.ErrDuplicate) {
			return s.repo.GetLatest(ctx, db, guildID, name)
		}
		return rulesetdomain.Ruleset{}, fmt.Errorf("failed to create default ruleset: %w", err)
	}
	s.logger.InfoContext(ctx, "Created default ruleset", attr.GuildID(string(guildID)))
	return def, nil
}
