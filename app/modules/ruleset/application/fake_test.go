package rulesetservice

import (
	"context"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Ruleset Repo
// ------------------------

type FakeRulesetRepo struct {
	trace   []string
	created []rulesetdomain.Ruleset

	CreateFunc     func(ctx context.Context, db bun.IDB, rs rulesetdomain.Ruleset) error
	GetByIDFunc    func(ctx context.Context, db bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error)
	GetLatestFunc  func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error)
	ListLatestFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]rulesetdomain.Ruleset, error)
}

func NewFakeRulesetRepo() *FakeRulesetRepo {
	return &FakeRulesetRepo{trace: []string{}}
}

func (f *FakeRulesetRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRulesetRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRulesetRepo) Create(ctx context.Context, db bun.IDB, rs rulesetdomain.Ruleset) error {
	f.record("Create")
	if f.CreateFunc != nil {
		if err := f.CreateFunc(ctx, db, rs); err != nil {
			return err
		}
	}
	f.created = append(f.created, rs)
	return nil
}

func (f *FakeRulesetRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return rulesetdomain.Ruleset{}, rulesetdb.ErrNotFound
}

func (f *FakeRulesetRepo) GetLatest(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error) {
	f.record("GetLatest")
	if f.GetLatestFunc != nil {
		return f.GetLatestFunc(ctx, db, guildID, name)
	}
	return rulesetdomain.Ruleset{}, rulesetdb.ErrNotFound
}

func (f *FakeRulesetRepo) ListLatest(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]rulesetdomain.Ruleset, error) {
	f.record("ListLatest")
	if f.ListLatestFunc != nil {
		return f.ListLatestFunc(ctx, db, guildID)
	}
	return nil, nil
}
