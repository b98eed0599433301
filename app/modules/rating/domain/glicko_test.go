package ratingdomain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tau = 0
	_, err := NewEngine(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRateReferenceExample(t *testing.T) {
	e := newTestEngine(t)

	got := e.Rate(Rating{Mu: 1500, Phi: 200, Sigma: 0.06}, []Result{
		{Weight: 1, Opponent: Rating{Mu: 1400, Phi: 30, Sigma: 0.06}},
		{Weight: 0, Opponent: Rating{Mu: 1550, Phi: 100, Sigma: 0.06}},
		{Weight: 0, Opponent: Rating{Mu: 1700, Phi: 300, Sigma: 0.06}},
	})

	assert.InDelta(t, 1464.05, got.Mu, 0.01)
	assert.InDelta(t, 151.52, got.Phi, 0.01)
	assert.InDelta(t, 0.059996, got.Sigma, 1e-5)
}

func TestRateWithoutHistoryOnlyInflatesDeviation(t *testing.T) {
	e := newTestEngine(t)
	start := e.NewRating()

	got := e.Rate(start, nil)

	assert.Equal(t, start.Mu, got.Mu)
	assert.Equal(t, start.Sigma, got.Sigma)
	assert.InDelta(t, 350.155, got.Phi, 0.001)
}

func TestWeight(t *testing.T) {
	tests := []struct {
		name        string
		mine, other int
		want        float64
	}{
		{name: "clean sweep", mine: 3, other: 0, want: 1},
		{name: "close win is pulled towards the middle", mine: 2, other: 1, want: 1 - (1-2.0/3)/4},
		{name: "losses are not adjusted", mine: 1, other: 2, want: 1.0 / 3},
		{name: "even split", mine: 1, other: 1, want: 0.5},
		{name: "shut out", mine: 0, other: 2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Weight(tt.mine, tt.other), 1e-12)
		})
	}
}

func TestRateMatchIsSymmetric(t *testing.T) {
	e := newTestEngine(t)
	r1 := Rating{Mu: 1620, Phi: 120, Sigma: 0.059}
	r2 := Rating{Mu: 1480, Phi: 210, Sigma: 0.061}
	h1 := []Result{{Weight: 0.25, Opponent: Rating{Mu: 1700, Phi: 90, Sigma: 0.06}}}
	h2 := []Result{{Weight: 1, Opponent: Rating{Mu: 1300, Phi: 150, Sigma: 0.06}}}

	a1, a2 := e.RateMatch(r1, r2, 2, 1, h1, h2)
	b2, b1 := e.RateMatch(r2, r1, 1, 2, h2, h1)

	if a1 != b1 || a2 != b2 {
		t.Fatalf("swapped arguments changed the outcome: (%v, %v) vs (%v, %v)", a1, a2, b1, b2)
	}
}

func TestRateMatchRatesLoserFromItsOwnScore(t *testing.T) {
	e := newTestEngine(t)
	r1 := Rating{Mu: 1550, Phi: 150, Sigma: 0.06}
	r2 := Rating{Mu: 1500, Phi: 180, Sigma: 0.06}

	_, got2 := e.RateMatch(r1, r2, 2, 1, nil, nil)

	assert.Equal(t, e.Rate(r2, []Result{{Weight: 1.0 / 3, Opponent: r1}}), got2)
	assert.NotEqual(t, e.Rate(r2, []Result{{Weight: 1 - Weight(2, 1), Opponent: r1}}), got2)
}

func TestRateMatchWithoutGamesKeepsRatings(t *testing.T) {
	e := newTestEngine(t)
	r1 := Rating{Mu: 1700, Phi: 80, Sigma: 0.05}
	r2 := e.NewRating()

	got1, got2 := e.RateMatch(r1, r2, 0, 0, nil, nil)

	assert.Equal(t, r1, got1)
	assert.Equal(t, r2, got2)
}

func TestRateMatchMovesWinnerUp(t *testing.T) {
	e := newTestEngine(t)
	start := e.NewRating()

	winner, loser := e.RateMatch(start, start, 2, 1, nil, nil)

	assert.InDelta(t, 1635.26, winner.Mu, 0.01)
	assert.InDelta(t, 1445.90, loser.Mu, 0.01)
	assert.Less(t, winner.Phi, start.Phi)
	assert.Less(t, loser.Phi, start.Phi)
}

func TestQuality(t *testing.T) {
	e := newTestEngine(t)
	even := e.Quality(e.NewRating(), e.NewRating())
	assert.InDelta(t, 1, even, 1e-12)

	lopsided := e.Quality(Rating{Mu: 2200, Phi: 60, Sigma: 0.06}, Rating{Mu: 1300, Phi: 60, Sigma: 0.06})
	assert.Less(t, lopsided, 0.1)
	assert.InDelta(t, lopsided, e.Quality(Rating{Mu: 1300, Phi: 60, Sigma: 0.06}, Rating{Mu: 2200, Phi: 60, Sigma: 0.06}), 1e-12)
}

func TestRound(t *testing.T) {
	got := Round(Rating{Mu: 1635.2590, Phi: 290.519, Sigma: 0.0599994})
	assert.Equal(t, Rating{Mu: 1635, Phi: 291, Sigma: 0.06}, got)
	assert.False(t, math.IsNaN(got.Sigma))
}
