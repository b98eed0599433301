package ratingservice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	ratingdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/repositories"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	defaultLeaderboardLimit = 25
	maxLeaderboardLimit     = 100
)

func ladderKey(guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) ratingdb.Key {
	return ratingdb.Key{Scope: scope, GuildID: scope.LadderGuild(guildID), PlayerID: playerID}
}

func validatePlayer(guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID) error {
	if guildID == "" {
		return ErrMissingGuild
	}
	if playerID == "" {
		return ErrMissingPlayer
	}
	return nil
}

// Snapshot returns the player's current rating, storing the default rating
// for players that have none yet.
func (s *RatingService) Snapshot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (ratingdomain.Rating, error) {
	if err := validatePlayer(guildID, playerID); err != nil {
		return ratingdomain.Rating{}, err
	}
	key := ladderKey(guildID, playerID, scope)

	row, err := s.repo.GetRating(ctx, db, key)
	if err == nil {
		return row.Rating(), nil
	}
	if !errors.Is(err, ratingdb.ErrNotFound) {
		return ratingdomain.Rating{}, err
	}

	fresh := s.newRow(key)
	if err := s.repo.InsertRatingIfAbsent(ctx, db, fresh); err != nil {
		return ratingdomain.Rating{}, err
	}
	return fresh.Rating(), nil
}

func (s *RatingService) newRow(key ratingdb.Key) *ratingdb.PlayerRating {
	row := &ratingdb.PlayerRating{
		Scope:     key.Scope,
		GuildID:   key.GuildID,
		PlayerID:  key.PlayerID,
		UpdatedAt: s.now(),
	}
	row.SetRating(s.engine.NewRating())
	return row
}

// ApplyMatchResult rates a finished match on the community ladder and, for
// global matches, on the global ladder.
func (s *RatingService) ApplyMatchResult(ctx context.Context, db bun.IDB, outcome MatchOutcome) ([]RatingUpdate, error) {
	if err := validatePlayer(outcome.GuildID, outcome.Player1); err != nil {
		return nil, err
	}
	if outcome.Player2 == "" {
		return nil, ErrMissingPlayer
	}
	if outcome.Player1 == outcome.Player2 {
		return nil, ErrSamePlayer
	}
	if outcome.Player1Score < 0 || outcome.Player2Score < 0 {
		return nil, ErrNegativeScore
	}
	if outcome.Player1Score+outcome.Player2Score == 0 {
		s.logger.InfoContext(ctx, "Match has no games; ratings unchanged", attr.MatchID(outcome.MatchID.String()))
		return nil, nil
	}
	if outcome.At.IsZero() {
		outcome.At = s.now()
	}

	scopes := []ratingdomain.Scope{ratingdomain.ScopeCommunity}
	if outcome.Global {
		scopes = append(scopes, ratingdomain.ScopeGlobal)
	}

	var updates []RatingUpdate
	for _, scope := range scopes {
		u, err := s.rateOnLadder(ctx, db, outcome, scope)
		if err != nil {
			return nil, fmt.Errorf("failed to rate %s ladder: %w", scope, err)
		}
		updates = append(updates, u...)
	}

	for _, u := range updates {
		s.logger.InfoContext(ctx, "Rating updated",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID(u.MatchID.String()),
			attr.PlayerID(string(u.PlayerID)),
			attr.String("scope", string(u.Scope)),
			attr.Float64("old_mu", u.Old.Mu),
			attr.Float64("new_mu", u.New.Mu),
		)
	}
	return updates, nil
}

func (s *RatingService) rateOnLadder(ctx context.Context, db bun.IDB, o MatchOutcome, scope ratingdomain.Scope) ([]RatingUpdate, error) {
	k1 := ladderKey(o.GuildID, o.Player1, scope)
	k2 := ladderKey(o.GuildID, o.Player2, scope)

	// Rows are locked in player order so two matches sharing a player
	// cannot deadlock.
	lockOrder := []ratingdb.Key{k1, k2}
	if k2.PlayerID < k1.PlayerID {
		lockOrder = []ratingdb.Key{k2, k1}
	}
	rows := make(map[sharedtypes.PlayerID]*ratingdb.PlayerRating, 2)
	for _, k := range lockOrder {
		row, err := s.repo.GetRatingForUpdate(ctx, db, k)
		if errors.Is(err, ratingdb.ErrNotFound) {
			row, err = s.newRow(k), nil
		}
		if err != nil {
			return nil, err
		}
		rows[k.PlayerID] = row
	}
	p1, p2 := rows[o.Player1], rows[o.Player2]

	h1, err := s.series(ctx, db, k1)
	if err != nil {
		return nil, err
	}
	h2, err := s.series(ctx, db, k2)
	if err != nil {
		return nil, err
	}

	old1, old2 := p1.Rating(), p2.Rating()
	new1, new2 := s.engine.RateMatch(old1, old2, o.Player1Score, o.Player2Score, h1, h2)
	new1, new2 = ratingdomain.Round(new1), ratingdomain.Round(new2)

	resultRows := []ratingdb.MatchResult{
		resultRow(o, k1, o.Player2, ratingdomain.Weight(o.Player1Score, o.Player2Score), old2, old1, new1),
		resultRow(o, k2, o.Player1, ratingdomain.Weight(o.Player2Score, o.Player1Score), old1, old2, new2),
	}

	for _, side := range []struct {
		row *ratingdb.PlayerRating
		r   ratingdomain.Rating
	}{{p1, new1}, {p2, new2}} {
		side.row.SetRating(side.r)
		side.row.MatchesRated++
		side.row.UpdatedAt = o.At
		if err := s.repo.UpsertRating(ctx, db, side.row); err != nil {
			return nil, err
		}
	}
	if err := s.repo.InsertResults(ctx, db, resultRows); err != nil {
		return nil, err
	}

	return []RatingUpdate{
		{Scope: scope, GuildID: k1.GuildID, PlayerID: o.Player1, MatchID: o.MatchID, Old: old1, New: new1},
		{Scope: scope, GuildID: k2.GuildID, PlayerID: o.Player2, MatchID: o.MatchID, Old: old2, New: new2},
	}, nil
}

// series is the player's prior results as rating period inputs.
func (s *RatingService) series(ctx context.Context, db bun.IDB, key ratingdb.Key) ([]ratingdomain.Result, error) {
	rows, err := s.repo.ListResults(ctx, db, key, s.opts.HistoryLimit)
	if err != nil {
		return nil, err
	}
	out := make([]ratingdomain.Result, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i].SeriesEntry())
	}
	return out, nil
}

func resultRow(o MatchOutcome, key ratingdb.Key, opponent sharedtypes.PlayerID, weight float64, opp, before, after ratingdomain.Rating) ratingdb.MatchResult {
	return ratingdb.MatchResult{
		ID:            uuid.New(),
		MatchID:       o.MatchID,
		Scope:         key.Scope,
		GuildID:       key.GuildID,
		PlayerID:      key.PlayerID,
		OpponentID:    opponent,
		Weight:        weight,
		OpponentMu:    opp.Mu,
		OpponentPhi:   opp.Phi,
		OpponentSigma: opp.Sigma,
		MuBefore:      before.Mu,
		PhiBefore:     before.Phi,
		SigmaBefore:   before.Sigma,
		MuAfter:       after.Mu,
		PhiAfter:      after.Phi,
		SigmaAfter:    after.Sigma,
		RecordedAt:    o.At,
	}
}

// GetRating returns a player's standing. Unrated players get the default
// rating.
func (s *RatingService) GetRating(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (PlayerRatingResult, error) {
	return withTelemetry(s, ctx, "GetRating", string(guildID)+"/"+string(playerID), func(ctx context.Context) (PlayerRatingResult, error) {
		if err := validatePlayer(guildID, playerID); err != nil {
			return results.FailureResult[PlayerRating, error](err), nil
		}
		pr, err := s.loadRating(ctx, ladderKey(guildID, playerID, scope))
		if err != nil {
			return PlayerRatingResult{}, err
		}
		return results.SuccessResult[PlayerRating, error](pr), nil
	})
}

func (s *RatingService) loadRating(ctx context.Context, key ratingdb.Key) (PlayerRating, error) {
	row, err := s.repo.GetRating(ctx, nil, key)
	switch {
	case errors.Is(err, ratingdb.ErrNotFound):
		return PlayerRating{Scope: key.Scope, GuildID: key.GuildID, PlayerID: key.PlayerID, Rating: s.engine.NewRating()}, nil
	case err != nil:
		return PlayerRating{}, fmt.Errorf("failed to load rating: %w", err)
	}
	return PlayerRating{
		Scope:        row.Scope,
		GuildID:      row.GuildID,
		PlayerID:     row.PlayerID,
		Rating:       row.Rating(),
		MatchesRated: row.MatchesRated,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// GetLeaderboard ranks the players of a ladder. Equal ratings share a rank.
func (s *RatingService) GetLeaderboard(ctx context.Context, guildID sharedtypes.GuildID, scope ratingdomain.Scope, limit int) (LeaderboardResult, error) {
	return withTelemetry(s, ctx, "GetLeaderboard", string(guildID)+"/"+string(scope), func(ctx context.Context) (LeaderboardResult, error) {
		if guildID == "" {
			return results.FailureResult[[]LeaderboardEntry, error](ErrMissingGuild), nil
		}
		if limit <= 0 {
			limit = s.opts.LeaderboardLimit
		}
		limit = min(limit, maxLeaderboardLimit)

		rows, err := s.repo.Leaderboard(ctx, nil, scope, scope.LadderGuild(guildID), limit)
		if err != nil {
			return LeaderboardResult{}, err
		}

		entries := make([]LeaderboardEntry, len(rows))
		for i, row := range rows {
			rank := i + 1
			if i > 0 && row.Mu == rows[i-1].Mu {
				rank = entries[i-1].Rank
			}
			entries[i] = LeaderboardEntry{
				Rank:         rank,
				PlayerID:     row.PlayerID,
				Rating:       row.Rating(),
				MatchesRated: row.MatchesRated,
			}
		}
		return results.SuccessResult[[]LeaderboardEntry, error](entries), nil
	})
}

// GetHistory returns the player's rated matches, oldest first.
func (s *RatingService) GetHistory(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) (HistoryResult, error) {
	return withTelemetry(s, ctx, "GetHistory", string(guildID)+"/"+string(playerID), func(ctx context.Context) (HistoryResult, error) {
		if err := validatePlayer(guildID, playerID); err != nil {
			return results.FailureResult[[]HistoryPoint, error](err), nil
		}
		points, err := s.loadHistory(ctx, ladderKey(guildID, playerID, scope))
		if err != nil {
			return HistoryResult{}, err
		}
		return results.SuccessResult[[]HistoryPoint, error](points), nil
	})
}

func (s *RatingService) loadHistory(ctx context.Context, key ratingdb.Key) ([]HistoryPoint, error) {
	rows, err := s.repo.ListResults(ctx, nil, key, 0)
	if err != nil {
		return nil, err
	}
	points := make([]HistoryPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, HistoryPoint{
			MatchID:    row.MatchID,
			OpponentID: row.OpponentID,
			Weight:     row.Weight,
			Before:     ratingdomain.Rating{Mu: row.MuBefore, Phi: row.PhiBefore, Sigma: row.SigmaBefore},
			After:      ratingdomain.Rating{Mu: row.MuAfter, Phi: row.PhiAfter, Sigma: row.SigmaAfter},
			At:         row.RecordedAt,
		})
	}
	slices.Reverse(points)
	return points, nil
}

// MatchQuality is the draw probability between two players on the
// community ladder.
func (s *RatingService) MatchQuality(ctx context.Context, guildID sharedtypes.GuildID, player1, player2 sharedtypes.PlayerID) (QualityResult, error) {
	return withTelemetry(s, ctx, "MatchQuality", string(player1)+"/"+string(player2), func(ctx context.Context) (QualityResult, error) {
		if err := validatePlayer(guildID, player1); err != nil {
			return results.FailureResult[float64, error](err), nil
		}
		if player2 == "" {
			return results.FailureResult[float64, error](ErrMissingPlayer), nil
		}
		if player1 == player2 {
			return results.FailureResult[float64, error](ErrSamePlayer), nil
		}

		r1, err := s.loadRating(ctx, ladderKey(guildID, player1, ratingdomain.ScopeCommunity))
		if err != nil {
			return QualityResult{}, err
		}
		r2, err := s.loadRating(ctx, ladderKey(guildID, player2, ratingdomain.ScopeCommunity))
		if err != nil {
			return QualityResult{}, err
		}
		return results.SuccessResult[float64, error](s.engine.Quality(r1.Rating, r2.Rating)), nil
	})
}
