package rulesethandlers

import (
	"context"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Ruleset Service
// ------------------------

// FakeRulesetService provides a programmable stub for rulesetservice.Service.
type FakeRulesetService struct {
	trace []string

	CreateRulesetFunc        func(ctx context.Context, def rulesetservice.Definition) (rulesetservice.RulesetResult, error)
	UpdateRulesetFunc        func(ctx context.Context, guildID sharedtypes.GuildID, name string, changes rulesetservice.Changes) (rulesetservice.RulesetResult, error)
	GetRulesetFunc           func(ctx context.Context, id uuid.UUID) (rulesetservice.RulesetResult, error)
	GetLatestRulesetFunc     func(ctx context.Context, guildID sharedtypes.GuildID, name string) (rulesetservice.RulesetResult, error)
	ListRulesetsFunc         func(ctx context.Context, guildID sharedtypes.GuildID) (rulesetservice.RulesetListResult, error)
	EnsureDefaultRulesetFunc func(ctx context.Context, guildID sharedtypes.GuildID) (rulesetservice.RulesetResult, error)
}

func NewFakeRulesetService() *FakeRulesetService {
	return &FakeRulesetService{trace: []string{}}
}

func (f *FakeRulesetService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeRulesetService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRulesetService) CreateRuleset(ctx context.Context, def rulesetservice.Definition) (rulesetservice.RulesetResult, error) {
	f.record("CreateRuleset")
	if f.CreateRulesetFunc != nil {
		return f.CreateRulesetFunc(ctx, def)
	}
	return rulesetservice.RulesetResult{}, nil
}

func (f *FakeRulesetService) UpdateRuleset(ctx context.Context, guildID sharedtypes.GuildID, name string, changes rulesetservice.Changes) (rulesetservice.RulesetResult, error) {
	f.record("UpdateRuleset")
	if f.UpdateRulesetFunc != nil {
		return f.UpdateRulesetFunc(ctx, guildID, name, changes)
	}
	return rulesetservice.RulesetResult{}, nil
}

func (f *FakeRulesetService) GetRuleset(ctx context.Context, id uuid.UUID) (rulesetservice.RulesetResult, error) {
	f.record("GetRuleset")
	if f.GetRulesetFunc != nil {
		return f.GetRulesetFunc(ctx, id)
	}
	return rulesetservice.RulesetResult{}, nil
}

func (f *FakeRulesetService) GetLatestRuleset(ctx context.Context, guildID sharedtypes.GuildID, name string) (rulesetservice.RulesetResult, error) {
	f.record("GetLatestRuleset")
	if f.GetLatestRulesetFunc != nil {
		return f.GetLatestRulesetFunc(ctx, guildID, name)
	}
	return rulesetservice.RulesetResult{}, nil
}

func (f *FakeRulesetService) ListRulesets(ctx context.Context, guildID sharedtypes.GuildID) (rulesetservice.RulesetListResult, error) {
	f.record("ListRulesets")
	if f.ListRulesetsFunc != nil {
		return f.ListRulesetsFunc(ctx, guildID)
	}
	return rulesetservice.RulesetListResult{}, nil
}

func (f *FakeRulesetService) EnsureDefaultRuleset(ctx context.Context, guildID sharedtypes.GuildID) (rulesetservice.RulesetResult, error) {
	f.record("EnsureDefaultRuleset")
	if f.EnsureDefaultRulesetFunc != nil {
		return f.EnsureDefaultRulesetFunc(ctx, guildID)
	}
	return rulesetservice.RulesetResult{}, nil
}

func (f *FakeRulesetService) Load(ctx context.Context, db bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error) {
	f.record("Load")
	return rulesetdomain.Ruleset{}, rulesetservice.ErrRulesetNotFound
}

func (f *FakeRulesetService) Resolve(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error) {
	f.record("Resolve")
	return rulesetdomain.Ruleset{}, rulesetservice.ErrRulesetNotFound
}

var _ rulesetservice.Service = (*FakeRulesetService)(nil)
