package ratingdomain

import (
	"fmt"

	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// Scope separates a community's ladder from the cross-community one.
type Scope string

const (
	ScopeCommunity Scope = "community"
	ScopeGlobal    Scope = "global"
)

// ParseScope maps the wire form to a Scope. Empty means community.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeCommunity:
		return ScopeCommunity, nil
	case ScopeGlobal:
		return ScopeGlobal, nil
	default:
		return "", fmt.Errorf("unknown rating scope %q", s)
	}
}

// LadderGuild is the guild key a scope stores ratings under. Global ratings
// are shared by every community.
func (s Scope) LadderGuild(guildID sharedtypes.GuildID) sharedtypes.GuildID {
	if s == ScopeGlobal {
		return ""
	}
	return guildID
}
