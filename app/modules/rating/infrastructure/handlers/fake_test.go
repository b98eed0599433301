package ratinghandlers

import (
	"context"

	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Rating Service
// ------------------------

// FakeRatingService provides a programmable stub for ratingservice.Service.
type FakeRatingService struct {
	trace []string

	GetRatingFunc          func(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingservice.PlayerRatingResult, error)
	GetLeaderboardFunc     func(ctx context.Context, guildID sharedtypes.GuildID, scope ratingdomain.Scope, limit int) (ratingservice.LeaderboardResult, error)
	GetHistoryFunc         func(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingservice.HistoryResult, error)
	MatchQualityFunc       func(ctx context.Context, guildID sharedtypes.GuildID, p1, p2 sharedtypes.PlayerID) (ratingservice.QualityResult, error)
	RenderHistoryChartFunc func(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) ([]byte, error)
}

func NewFakeRatingService() *FakeRatingService {
	return &FakeRatingService{trace: []string{}}
}

func (f *FakeRatingService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeRatingService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRatingService) Snapshot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingdomain.Rating, error) {
	f.record("Snapshot")
	return ratingdomain.Rating{}, nil
}

func (f *FakeRatingService) ApplyMatchResult(ctx context.Context, db bun.IDB, outcome ratingservice.MatchOutcome) ([]ratingservice.RatingUpdate, error) {
	f.record("ApplyMatchResult")
	return nil, nil
}

func (f *FakeRatingService) GetRating(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingservice.PlayerRatingResult, error) {
	f.record("GetRating")
	if f.GetRatingFunc != nil {
		return f.GetRatingFunc(ctx, guildID, playerID, scope)
	}
	return ratingservice.PlayerRatingResult{}, nil
}

func (f *FakeRatingService) GetLeaderboard(ctx context.Context, guildID sharedtypes.GuildID, scope ratingdomain.Scope, limit int) (ratingservice.LeaderboardResult, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, guildID, scope, limit)
	}
	return ratingservice.LeaderboardResult{}, nil
}

func (f *FakeRatingService) GetHistory(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingservice.HistoryResult, error) {
	f.record("GetHistory")
	if f.GetHistoryFunc != nil {
		return f.GetHistoryFunc(ctx, guildID, playerID, scope)
	}
	return ratingservice.HistoryResult{}, nil
}

func (f *FakeRatingService) MatchQuality(ctx context.Context, guildID sharedtypes.GuildID, p1, p2 sharedtypes.PlayerID) (ratingservice.QualityResult, error) {
	f.record("MatchQuality")
	if f.MatchQualityFunc != nil {
		return f.MatchQualityFunc(ctx, guildID, p1, p2)
	}
	return ratingservice.QualityResult{}, nil
}

func (f *FakeRatingService) RenderHistoryChart(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) ([]byte, error) {
	f.record("RenderHistoryChart")
	if f.RenderHistoryChartFunc != nil {
		return f.RenderHistoryChartFunc(ctx, guildID, playerID, scope)
	}
	return nil, nil
}

var _ ratingservice.Service = (*FakeRatingService)(nil)
