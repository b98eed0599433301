package matchdb

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Match is the stored form of a match. Games live in match_games.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID               uuid.UUID                   `bun:"id,pk,type:uuid"`
	GuildID          sharedtypes.GuildID         `bun:"guild_id,notnull,type:varchar(20)"`
	RulesetID        uuid.UUID                   `bun:"ruleset_id,notnull,type:uuid"`
	Player1          sharedtypes.PlayerID        `bun:"player1_id,notnull,type:varchar(20)"`
	Player2          sharedtypes.PlayerID        `bun:"player2_id,notnull,type:varchar(20)"`
	WinsRequired     int                         `bun:"wins_required,notnull"`
	Player1Score     int                         `bun:"player1_score,notnull,default:0"`
	Player2Score     int                         `bun:"player2_score,notnull,default:0"`
	CurrentGame      int                         `bun:"current_game,notnull"`
	Winner           *sharedtypes.PlayerID       `bun:"winner_id,type:varchar(20)"`
	Ranked           bool                        `bun:"ranked,notnull,default:false"`
	GlobalRanked     bool                        `bun:"global_ranked,notnull,default:false"`
	Status           string                      `bun:"status,notnull,type:varchar(16)"`
	Resolution       string                      `bun:"resolution,notnull,type:varchar(16)"`
	CommunityRatings *matchdomain.RatingSnapshot `bun:"community_ratings,type:jsonb"`
	GlobalRatings    *matchdomain.RatingSnapshot `bun:"global_ratings,type:jsonb"`
	StartedAt        time.Time                   `bun:"started_at,notnull"`
	EndedAt          *time.Time                  `bun:"ended_at"`
	UpdatedAt        time.Time                   `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Games []*Game `bun:"rel:has-many,join:id=match_id"`
}

// Game is one game of a match.
type Game struct {
	bun.BaseModel `bun:"table:match_games,alias:g"`

	MatchID       uuid.UUID            `bun:"match_id,pk,type:uuid"`
	Number        int                  `bun:"number,pk"`
	FirstToStrike sharedtypes.PlayerID `bun:"first_to_strike,notnull,type:varchar(20)"`
	StruckStages  []int                `bun:"struck_stages,array,notnull"`

	SuggestedStage     *int                  `bun:"suggested_stage"`
	SuggestedBy        *sharedtypes.PlayerID `bun:"suggested_by,type:varchar(20)"`
	LastSuggestedBy    *sharedtypes.PlayerID `bun:"last_suggested_by,type:varchar(20)"`
	SuggestionAccepted *bool                 `bun:"suggestion_accepted"`
	SuggestionSeq      int                   `bun:"suggestion_seq,notnull,default:0"`
	PickedStage        *int                  `bun:"picked_stage"`

	ClaimedWinner       *sharedtypes.PlayerID `bun:"claimed_winner,type:varchar(20)"`
	NeedsConfirmationBy *sharedtypes.PlayerID `bun:"needs_confirmation_by,type:varchar(20)"`
	ClaimSeq            int                   `bun:"claim_seq,notnull,default:0"`
	Winner              *sharedtypes.PlayerID `bun:"winner_id,type:varchar(20)"`

	Player1Fighter       *int `bun:"player1_fighter"`
	Player2Fighter       *int `bun:"player2_fighter"`
	Player1FighterLocked bool `bun:"player1_fighter_locked,notnull,default:false"`
	Player2FighterLocked bool `bun:"player2_fighter_locked,notnull,default:false"`
}
