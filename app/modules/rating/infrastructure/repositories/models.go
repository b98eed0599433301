package ratingdb

import (
	"time"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PlayerRating is a player's current rating on one ladder. Global ratings
// are stored with an empty guild id.
type PlayerRating struct {
	bun.BaseModel `bun:"table:ratings,alias:r"`
	Scope         ratingdomain.Scope   `bun:"scope,pk,type:varchar(16)"`
	GuildID       sharedtypes.GuildID  `bun:"guild_id,pk,type:varchar(20)"`
	PlayerID      sharedtypes.PlayerID `bun:"player_id,pk,type:varchar(20)"`
	Mu            float64              `bun:"mu,notnull"`
	Phi           float64              `bun:"phi,notnull"`
	Sigma         float64              `bun:"sigma,notnull"`
	MatchesRated  int                  `bun:"matches_rated,notnull,default:0"`
	UpdatedAt     time.Time            `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Rating returns the Glicko-2 triple.
func (p *PlayerRating) Rating() ratingdomain.Rating {
	return ratingdomain.Rating{Mu: p.Mu, Phi: p.Phi, Sigma: p.Sigma}
}

// SetRating stores the Glicko-2 triple.
func (p *PlayerRating) SetRating(r ratingdomain.Rating) {
	p.Mu, p.Phi, p.Sigma = r.Mu, r.Phi, r.Sigma
}

// MatchResult is one player's side of a rated match. The opponent columns
// hold the opponent's rating before the match; together with Weight they
// form one entry of the player's rating series.
type MatchResult struct {
	bun.BaseModel `bun:"table:rating_results,alias:rr"`
	ID            uuid.UUID            `bun:"id,pk,type:uuid"`
	MatchID       uuid.UUID            `bun:"match_id,notnull,type:uuid"`
	Scope         ratingdomain.Scope   `bun:"scope,notnull,type:varchar(16)"`
	GuildID       sharedtypes.GuildID  `bun:"guild_id,notnull,type:varchar(20)"`
	PlayerID      sharedtypes.PlayerID `bun:"player_id,notnull,type:varchar(20)"`
	OpponentID    sharedtypes.PlayerID `bun:"opponent_id,notnull,type:varchar(20)"`
	Weight        float64              `bun:"weight,notnull"`
	OpponentMu    float64              `bun:"opponent_mu,notnull"`
	OpponentPhi   float64              `bun:"opponent_phi,notnull"`
	OpponentSigma float64              `bun:"opponent_sigma,notnull"`
	MuBefore      float64              `bun:"mu_before,notnull"`
	PhiBefore     float64              `bun:"phi_before,notnull"`
	SigmaBefore   float64              `bun:"sigma_before,notnull"`
	MuAfter       float64              `bun:"mu_after,notnull"`
	PhiAfter      float64              `bun:"phi_after,notnull"`
	SigmaAfter    float64              `bun:"sigma_after,notnull"`
	RecordedAt    time.Time            `bun:"recorded_at,notnull"`
}

// SeriesEntry converts the row into a rating period input.
func (m *MatchResult) SeriesEntry() ratingdomain.Result {
	return ratingdomain.Result{
		Weight:   m.Weight,
		Opponent: ratingdomain.Rating{Mu: m.OpponentMu, Phi: m.OpponentPhi, Sigma: m.OpponentSigma},
	}
}
