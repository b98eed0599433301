// Package ratingdomain implements the Glicko-2 rating system used to rank
// players after ranked matches.
package ratingdomain

import (
	"errors"
	"math"
)

// Rating is a player's skill estimate on the public scale.
type Rating struct {
	Mu    float64 `json:"mu"`
	Phi   float64 `json:"phi"`
	Sigma float64 `json:"sigma"`
}

// Result is one weighted outcome against an opponent. Weight is the share of
// the contest the player won, after winsorizing.
type Result struct {
	Weight   float64 `json:"weight"`
	Opponent Rating  `json:"opponent"`
}

// Config holds the system constants. Engines never read package state.
type Config struct {
	Mu      float64
	Phi     float64
	Sigma   float64
	Tau     float64
	Epsilon float64
	Scale   float64
}

// DefaultConfig returns the constants of the reference Glicko-2 paper.
func DefaultConfig() Config {
	return Config{
		Mu:      1500,
		Phi:     350,
		Sigma:   0.06,
		Tau:     0.5,
		Epsilon: 1e-6,
		Scale:   173.7178,
	}
}

var ErrInvalidConfig = errors.New("invalid glicko-2 configuration")

// Engine computes rating updates. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns an engine using it.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Phi <= 0 || cfg.Sigma <= 0 || cfg.Tau <= 0 || cfg.Epsilon <= 0 || cfg.Scale <= 0 {
		return nil, ErrInvalidConfig
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the constants the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// NewRating returns the rating of a player that has never played.
func (e *Engine) NewRating() Rating {
	return Rating{Mu: e.cfg.Mu, Phi: e.cfg.Phi, Sigma: e.cfg.Sigma}
}

// Weight is the winsorized share of games won. Shares above one half are
// pulled towards the middle so a sweep counts less than a perfect record.
func Weight(myScore, otherScore int) float64 {
	total := myScore + otherScore
	if total <= 0 {
		return 0.5
	}
	w := float64(myScore) / float64(total)
	if w > 0.5 {
		w = 1 - (1-w)/4
	}
	return w
}

// RateMatch updates both players from the match score plus their prior
// results. A match without any games leaves both ratings unchanged.
func (e *Engine) RateMatch(r1, r2 Rating, s1, s2 int, history1, history2 []Result) (Rating, Rating) {
	if s1+s2 <= 0 {
		return r1, r2
	}
	series1 := append(append(make([]Result, 0, len(history1)+1), history1...), Result{Weight: Weight(s1, s2), Opponent: r2})
	series2 := append(append(make([]Result, 0, len(history2)+1), history2...), Result{Weight: Weight(s2, s1), Opponent: r1})
	return e.Rate(r1, series1), e.Rate(r2, series2)
}

// Rate applies one rating period made of series to r.
func (e *Engine) Rate(r Rating, series []Result) Rating {
	s := e.scaleDown(r)

	if len(series) == 0 {
		s.Phi = math.Sqrt(s.Phi*s.Phi + s.Sigma*s.Sigma)
		return e.scaleUp(s)
	}

	var varianceInv, improvement float64
	for _, res := range series {
		opp := e.scaleDown(res.Opponent)
		g := impact(opp.Phi)
		expected := expectedScore(s.Mu, opp.Mu, g)
		varianceInv += g * g * expected * (1 - expected)
		improvement += g * (res.Weight - expected)
	}
	if varianceInv == 0 || math.IsNaN(varianceInv) {
		return r
	}
	variance := 1 / varianceInv
	delta := variance * improvement

	sigma := e.volatility(s, delta, variance)
	phiStar := math.Sqrt(s.Phi*s.Phi + sigma*sigma)
	phi := 1 / math.Sqrt(1/(phiStar*phiStar)+varianceInv)
	mu := s.Mu + phi*phi*improvement

	return e.scaleUp(Rating{Mu: mu, Phi: phi, Sigma: sigma})
}

// volatility solves for the new sigma with the Illinois variant of regula
// falsi.
func (e *Engine) volatility(s Rating, delta, variance float64) float64 {
	tau := e.cfg.Tau
	phi2 := s.Phi * s.Phi
	delta2 := delta * delta
	alpha := math.Log(s.Sigma * s.Sigma)

	f := func(x float64) float64 {
		ex := math.Exp(x)
		tmp := phi2 + variance + ex
		return ex*(delta2-tmp)/(2*tmp*tmp) - (x-alpha)/(tau*tau)
	}

	a := alpha
	var b float64
	if delta2 > phi2+variance {
		b = math.Log(delta2 - phi2 - variance)
	} else {
		k := 1.0
		for f(alpha-k*tau) < 0 {
			k++
		}
		b = alpha - k*tau
	}

	fa, fb := f(a), f(b)
	for math.Abs(b-a) > e.cfg.Epsilon {
		c := a + (a-b)*fa/(fb-fa)
		fc := f(c)
		if fc*fb < 0 {
			a, fa = b, fb
		} else {
			fa /= 2
		}
		b, fb = c, fc
	}
	return math.Exp(a / 2)
}

// Quality is the chance of a draw between the two players, from 0 to 1.
func (e *Engine) Quality(r1, r2 Rating) float64 {
	s1, s2 := e.scaleDown(r1), e.scaleDown(r2)
	e1 := expectedScore(s1.Mu, s2.Mu, impact(s2.Phi))
	e2 := expectedScore(s2.Mu, s1.Mu, impact(s1.Phi))
	expected := (e1 + (1 - e2)) / 2
	return 2 * (0.5 - math.Abs(0.5-expected))
}

// Round rounds mu and phi to integers and sigma to three decimals, the
// precision ratings are stored with.
func Round(r Rating) Rating {
	return Rating{
		Mu:    math.Round(r.Mu),
		Phi:   math.Round(r.Phi),
		Sigma: math.Round(r.Sigma*1000) / 1000,
	}
}

func (e *Engine) scaleDown(r Rating) Rating {
	return Rating{Mu: (r.Mu - e.cfg.Mu) / e.cfg.Scale, Phi: r.Phi / e.cfg.Scale, Sigma: r.Sigma}
}

func (e *Engine) scaleUp(r Rating) Rating {
	return Rating{Mu: r.Mu*e.cfg.Scale + e.cfg.Mu, Phi: r.Phi * e.cfg.Scale, Sigma: r.Sigma}
}

func impact(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

func expectedScore(mu, otherMu, g float64) float64 {
	return 1 / (1 + math.Exp(-g*(mu-otherMu)))
}
