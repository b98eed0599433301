package matchservice

import (
	"context"
	"slices"
	"sync"
	"time"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/infrastructure/repositories"
	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Match Repo
// ------------------------

// FakeMatchRepo keeps copies of saved matches so an action that fails
// leaves the stored state untouched, like a rolled back transaction.
type FakeMatchRepo struct {
	mu      sync.Mutex
	trace   []string
	matches map[uuid.UUID]*matchdomain.Match

	GetForUpdateErr error
	SaveErr         error
}

func NewFakeMatchRepo() *FakeMatchRepo {
	return &FakeMatchRepo{trace: []string{}, matches: map[uuid.UUID]*matchdomain.Match{}}
}

func cloneMatch(m *matchdomain.Match) *matchdomain.Match {
	c := *m
	c.Games = slices.Clone(m.Games)
	for i := range c.Games {
		c.Games[i].StruckStages = slices.Clone(m.Games[i].StruckStages)
	}
	return &c
}

func (f *FakeMatchRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMatchRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMatchRepo) Stored(id uuid.UUID) *matchdomain.Match {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.matches[id]; ok {
		return cloneMatch(m)
	}
	return nil
}

func (f *FakeMatchRepo) Put(m *matchdomain.Match) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[m.ID] = cloneMatch(m)
}

func (f *FakeMatchRepo) Create(_ context.Context, _ bun.IDB, m *matchdomain.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Create")
	f.matches[m.ID] = cloneMatch(m)
	return nil
}

func (f *FakeMatchRepo) Get(_ context.Context, _ bun.IDB, id uuid.UUID) (*matchdomain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Get")
	m, ok := f.matches[id]
	if !ok {
		return nil, matchdb.ErrNotFound
	}
	return cloneMatch(m), nil
}

func (f *FakeMatchRepo) GetForUpdate(_ context.Context, _ bun.IDB, id uuid.UUID) (*matchdomain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetForUpdate")
	if f.GetForUpdateErr != nil {
		return nil, f.GetForUpdateErr
	}
	m, ok := f.matches[id]
	if !ok {
		return nil, matchdb.ErrNotFound
	}
	return cloneMatch(m), nil
}

func (f *FakeMatchRepo) Save(_ context.Context, _ bun.IDB, m *matchdomain.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Save")
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.matches[m.ID] = cloneMatch(m)
	return nil
}

func (f *FakeMatchRepo) ListActive(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID) ([]*matchdomain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListActive")
	var out []*matchdomain.Match
	for _, m := range f.matches {
		if m.GuildID != guildID || m.Status.Terminal() {
			continue
		}
		if playerID != "" && !m.IsParticipant(playerID) {
			continue
		}
		out = append(out, cloneMatch(m))
	}
	return out, nil
}

// ------------------------
// Fake Ruleset Service
// ------------------------

type FakeRulesetService struct {
	rulesetservice.Service

	rulesets map[uuid.UUID]rulesetdomain.Ruleset
	byName   map[string]rulesetdomain.Ruleset
}

func NewFakeRulesetService(rs ...rulesetdomain.Ruleset) *FakeRulesetService {
	f := &FakeRulesetService{
		rulesets: map[uuid.UUID]rulesetdomain.Ruleset{},
		byName:   map[string]rulesetdomain.Ruleset{},
	}
	for _, r := range rs {
		f.rulesets[r.ID] = r
		f.byName[r.Name] = r
	}
	return f
}

func (f *FakeRulesetService) Load(_ context.Context, _ bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error) {
	if rs, ok := f.rulesets[id]; ok {
		return rs, nil
	}
	return rulesetdomain.Ruleset{}, rulesetservice.ErrRulesetNotFound
}

func (f *FakeRulesetService) Resolve(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error) {
	if name == "" {
		name = rulesetdomain.DefaultName
	}
	if rs, ok := f.byName[name]; ok {
		return rs, nil
	}
	return rulesetdomain.Ruleset{}, rulesetservice.ErrRulesetNotFound
}

// ------------------------
// Fake Rating Service
// ------------------------

type FakeRatingService struct {
	ratingservice.Service

	trace    []string
	outcomes []ratingservice.MatchOutcome
}

func (f *FakeRatingService) Snapshot(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingdomain.Rating, error) {
	f.trace = append(f.trace, "Snapshot:"+string(scope)+":"+string(playerID))
	return ratingdomain.Rating{Mu: 1500, Phi: 350, Sigma: 0.06}, nil
}

func (f *FakeRatingService) ApplyMatchResult(_ context.Context, _ bun.IDB, outcome ratingservice.MatchOutcome) ([]ratingservice.RatingUpdate, error) {
	f.trace = append(f.trace, "ApplyMatchResult")
	f.outcomes = append(f.outcomes, outcome)
	return []ratingservice.RatingUpdate{
		{Scope: ratingdomain.ScopeCommunity, GuildID: outcome.GuildID, PlayerID: outcome.Player1, MatchID: outcome.MatchID},
		{Scope: ratingdomain.ScopeCommunity, GuildID: outcome.GuildID, PlayerID: outcome.Player2, MatchID: outcome.MatchID},
	}, nil
}

// ------------------------
// Fake Scheduler
// ------------------------

type FakeScheduler struct {
	mu            sync.Mutex
	suggestions   []SuggestionTimeout
	confirmations []ConfirmationTimeout
	runAt         []time.Time
	cancelled     []uuid.UUID
	Err           error
}

func (f *FakeScheduler) ScheduleSuggestionTimeout(_ context.Context, t SuggestionTimeout, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggestions = append(f.suggestions, t)
	f.runAt = append(f.runAt, at)
	return f.Err
}

func (f *FakeScheduler) ScheduleConfirmationTimeout(_ context.Context, t ConfirmationTimeout, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, t)
	f.runAt = append(f.runAt, at)
	return f.Err
}

func (f *FakeScheduler) CancelMatchJobs(_ context.Context, matchID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, matchID)
	return f.Err
}

var (
	_ matchdb.Repository = (*FakeMatchRepo)(nil)
	_ Scheduler          = (*FakeScheduler)(nil)
)
