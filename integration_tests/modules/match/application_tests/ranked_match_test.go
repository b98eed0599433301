package matchintegrationtests

import (
	"context"
	"testing"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMatch(t *testing.T, deps TestDeps, req matchservice.CreateRequest) *matchdomain.Match {
	t.Helper()
	result, err := deps.Service.CreateMatch(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.IsSuccess(), "create failed: %v", result.Failure)
	return result.Success.Match
}

// firstStriker returns the player who strikes first in game 1 and their
// opponent. The choice is random.
func firstStriker(t *testing.T, m *matchdomain.Match) (sharedtypes.PlayerID, sharedtypes.PlayerID) {
	t.Helper()
	g, err := m.Current()
	require.NoError(t, err)
	if g.FirstToStrike == m.Player1 {
		return m.Player1, m.Player2
	}
	return m.Player2, m.Player1
}

func act(id uuid.UUID, by sharedtypes.PlayerID) matchservice.Action {
	return matchservice.Action{MatchID: id, PlayerID: by}
}

func TestRankedBestOfOne(t *testing.T) {
	deps := SetupTestMatchService(t)
	ctx := context.Background()

	guild := deps.Gen.GuildID()
	players := deps.Gen.PlayerIDs(2)

	m := createMatch(t, deps, matchservice.CreateRequest{
		GuildID:      guild,
		Player1:      players[0],
		Player2:      players[1],
		WinsRequired: 1,
		Ranked:       true,
		GlobalRanked: true,
	})
	require.NotNil(t, m.CommunityRatings)
	require.NotNil(t, m.GlobalRatings)

	first, second := firstStriker(t, m)

	result, err := deps.Service.Suggest(ctx, matchservice.StageAction{Action: act(m.ID, first), Stage: "Smashville"})
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	result, err = deps.Service.AcceptSuggestion(ctx, act(m.ID, second))
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	result, err = deps.Service.ReportResult(ctx, matchservice.ReportAction{Action: act(m.ID, second), Won: true})
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	result, err = deps.Service.ConfirmResult(ctx, act(m.ID, first))
	require.NoError(t, err)
	require.True(t, result.IsSuccess(), "confirm failed: %v", result.Failure)
	assert.Equal(t, matchdomain.StatusFinished, result.Success.Match.Status)
	// two players on two ladders
	assert.Len(t, result.Success.RatingUpdates, 4)

	stored, err := deps.Repo.Get(ctx, deps.DB, m.ID)
	require.NoError(t, err)
	assert.Equal(t, matchdomain.StatusFinished, stored.Status)
	require.NotNil(t, stored.Winner)
	assert.Equal(t, second, *stored.Winner)
	require.NotNil(t, stored.EndedAt)

	for _, scope := range []ratingdomain.Scope{ratingdomain.ScopeCommunity, ratingdomain.ScopeGlobal} {
		winner, err := deps.Ratings.GetRating(ctx, guild, second, scope)
		require.NoError(t, err)
		require.True(t, winner.IsSuccess())
		loser, err := deps.Ratings.GetRating(ctx, guild, first, scope)
		require.NoError(t, err)
		require.True(t, loser.IsSuccess())

		assert.Greater(t, winner.Success.Rating.Mu, 1500.0, scope)
		assert.Less(t, loser.Success.Rating.Mu, 1500.0, scope)
		assert.Less(t, winner.Success.Rating.Phi, 350.0, scope)
		assert.Equal(t, 1, winner.Success.MatchesRated, scope)
	}

	board, err := deps.Ratings.GetLeaderboard(ctx, guild, ratingdomain.ScopeCommunity, 10)
	require.NoError(t, err)
	require.True(t, board.IsSuccess())
	require.Len(t, *board.Success, 2)
	assert.Equal(t, second, (*board.Success)[0].PlayerID)
	assert.Equal(t, 1, (*board.Success)[0].Rank)

	history, err := deps.Ratings.GetHistory(ctx, guild, first, ratingdomain.ScopeCommunity)
	require.NoError(t, err)
	require.True(t, history.IsSuccess())
	require.Len(t, *history.Success, 1)
	assert.Equal(t, m.ID, (*history.Success)[0].MatchID)
	assert.Equal(t, second, (*history.Success)[0].OpponentID)

	// nothing is left to time out
	jobs, err := deps.Queue.GetScheduledJobs(ctx, m.ID)
	require.NoError(t, err)
	for _, job := range jobs {
		assert.NotEqual(t, "scheduled", job.State, job.Kind)
	}
}

func TestUnrankedMatchLeavesRatingsAlone(t *testing.T) {
	deps := SetupTestMatchService(t)
	ctx := context.Background()

	guild := deps.Gen.GuildID()
	players := deps.Gen.PlayerIDs(2)

	m := createMatch(t, deps, matchservice.CreateRequest{
		GuildID:      guild,
		Player1:      players[0],
		Player2:      players[1],
		WinsRequired: 1,
	})
	assert.Nil(t, m.CommunityRatings)

	result, err := deps.Service.Forfeit(ctx, act(m.ID, players[0]))
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.Empty(t, result.Success.RatingUpdates)

	board, err := deps.Ratings.GetLeaderboard(ctx, guild, ratingdomain.ScopeCommunity, 10)
	require.NoError(t, err)
	require.True(t, board.IsSuccess())
	assert.Empty(t, *board.Success)
}

func TestCreateMatchUsesNamedRuleset(t *testing.T) {
	deps := SetupTestMatchService(t)
	ctx := context.Background()

	guild := deps.Gen.GuildID()
	players := deps.Gen.PlayerIDs(2)

	// the default ruleset is created on first use
	m := createMatch(t, deps, matchservice.CreateRequest{GuildID: guild, Player1: players[0], Player2: players[1], WinsRequired: 2})
	defaults, err := deps.Rulesets.GetLatestRuleset(ctx, guild, "default")
	require.NoError(t, err)
	require.True(t, defaults.IsSuccess())
	assert.Equal(t, defaults.Success.ID, m.RulesetID)

	result, err := deps.Service.CreateMatch(ctx, matchservice.CreateRequest{
		GuildID:      guild,
		RulesetName:  "does-not-exist",
		Player1:      players[0],
		Player2:      players[1],
		WinsRequired: 2,
	})
	require.NoError(t, err)
	require.True(t, result.IsFailure())
	ve, ok := matchdomain.AsValidation(*result.Failure)
	require.True(t, ok)
	assert.Equal(t, "invalid_match", ve.Code)
}
