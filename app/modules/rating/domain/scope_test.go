package ratingdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScope(t *testing.T) {
	for in, want := range map[string]Scope{"": ScopeCommunity, "community": ScopeCommunity, "global": ScopeGlobal} {
		got, err := ParseScope(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseScope("regional")
	assert.Error(t, err)
}

func TestScope_LadderGuild(t *testing.T) {
	assert.Equal(t, "guild-1", string(ScopeCommunity.LadderGuild("guild-1")))
	assert.Empty(t, ScopeGlobal.LadderGuild("guild-1"))
}
