package sharedtypes

// GuildID is the Discord snowflake of a community.
type GuildID string

// PlayerID is the Discord snowflake of a user taking part in matches.
type PlayerID string

func (g GuildID) String() string { return string(g) }

func (p PlayerID) String() string { return string(p) }

// RatingScope selects which rating pool a rating belongs to.
type RatingScope int

const (
	// ScopeCommunity ratings are kept per guild.
	ScopeCommunity RatingScope = iota
	// ScopeGlobal ratings are shared across verified guilds.
	ScopeGlobal
)

func (s RatingScope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "community"
}
