package rulesetdb

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Ruleset is one immutable version of a guild's named ruleset.
type Ruleset struct {
	bun.BaseModel   `bun:"table:rulesets,alias:rs"`
	ID              uuid.UUID           `bun:"id,pk,type:uuid"`
	GuildID         sharedtypes.GuildID `bun:"guild_id,notnull,type:varchar(20),unique:rulesets_guild_name_version"`
	Name            string              `bun:"name,notnull,type:varchar(64),unique:rulesets_guild_name_version"`
	Version         int                 `bun:"version,notnull,unique:rulesets_guild_name_version"`
	Starters        []int               `bun:"starters,array,notnull"`
	Counterpicks    []int               `bun:"counterpicks,array,notnull"`
	CounterpickBans int                 `bun:"counterpick_bans,notnull"`
	DSRMode         string              `bun:"dsr_mode,notnull,type:varchar(16)"`
	CreatedAt       time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
