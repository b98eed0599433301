package ratingservice

import (
	"context"
	"sort"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	ratingdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Rating Repo
// ------------------------

// FakeRatingRepo keeps ratings and results in memory and records the order
// of calls.
type FakeRatingRepo struct {
	trace   []string
	ratings map[ratingdb.Key]ratingdb.PlayerRating
	results []ratingdb.MatchResult

	GetRatingErr   error
	UpsertErr      error
	ListResultsErr error
	LeaderboardErr error
}

func NewFakeRatingRepo() *FakeRatingRepo {
	return &FakeRatingRepo{
		trace:   []string{},
		ratings: map[ratingdb.Key]ratingdb.PlayerRating{},
	}
}

func (f *FakeRatingRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRatingRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRatingRepo) seed(key ratingdb.Key, r ratingdomain.Rating, matches int) {
	row := ratingdb.PlayerRating{Scope: key.Scope, GuildID: key.GuildID, PlayerID: key.PlayerID, MatchesRated: matches}
	row.SetRating(r)
	f.ratings[key] = row
}

func (f *FakeRatingRepo) get(key ratingdb.Key) (*ratingdb.PlayerRating, error) {
	if f.GetRatingErr != nil {
		return nil, f.GetRatingErr
	}
	row, ok := f.ratings[key]
	if !ok {
		return nil, ratingdb.ErrNotFound
	}
	return &row, nil
}

func (f *FakeRatingRepo) GetRating(ctx context.Context, db bun.IDB, key ratingdb.Key) (*ratingdb.PlayerRating, error) {
	f.record("GetRating:" + string(key.PlayerID))
	return f.get(key)
}

func (f *FakeRatingRepo) GetRatingForUpdate(ctx context.Context, db bun.IDB, key ratingdb.Key) (*ratingdb.PlayerRating, error) {
	f.record("GetRatingForUpdate:" + string(key.PlayerID))
	return f.get(key)
}

func (f *FakeRatingRepo) InsertRatingIfAbsent(ctx context.Context, db bun.IDB, r *ratingdb.PlayerRating) error {
	f.record("InsertRatingIfAbsent:" + string(r.PlayerID))
	key := ratingdb.Key{Scope: r.Scope, GuildID: r.GuildID, PlayerID: r.PlayerID}
	if _, ok := f.ratings[key]; !ok {
		f.ratings[key] = *r
	}
	return nil
}

func (f *FakeRatingRepo) UpsertRating(ctx context.Context, db bun.IDB, r *ratingdb.PlayerRating) error {
	f.record("UpsertRating:" + string(r.PlayerID))
	if f.UpsertErr != nil {
		return f.UpsertErr
	}
	f.ratings[ratingdb.Key{Scope: r.Scope, GuildID: r.GuildID, PlayerID: r.PlayerID}] = *r
	return nil
}

func (f *FakeRatingRepo) ListResults(ctx context.Context, db bun.IDB, key ratingdb.Key, limit int) ([]ratingdb.MatchResult, error) {
	f.record("ListResults:" + string(key.PlayerID))
	if f.ListResultsErr != nil {
		return nil, f.ListResultsErr
	}
	var out []ratingdb.MatchResult
	for i := len(f.results) - 1; i >= 0; i-- {
		r := f.results[i]
		if r.Scope == key.Scope && r.GuildID == key.GuildID && r.PlayerID == key.PlayerID {
			out = append(out, r)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *FakeRatingRepo) InsertResults(ctx context.Context, db bun.IDB, results []ratingdb.MatchResult) error {
	f.record("InsertResults")
	f.results = append(f.results, results...)
	return nil
}

func (f *FakeRatingRepo) Leaderboard(ctx context.Context, db bun.IDB, scope ratingdomain.Scope, guildID sharedtypes.GuildID, limit int) ([]ratingdb.PlayerRating, error) {
	f.record("Leaderboard")
	if f.LeaderboardErr != nil {
		return nil, f.LeaderboardErr
	}
	var out []ratingdb.PlayerRating
	for k, r := range f.ratings {
		if k.Scope == scope && k.GuildID == guildID && r.MatchesRated > 0 {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mu != out[j].Mu {
			return out[i].Mu > out[j].Mu
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ ratingdb.Repository = (*FakeRatingRepo)(nil)
