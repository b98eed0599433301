package matchdomain

import (
	"testing"

	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mario stagedomain.FighterID = 1
	marth stagedomain.FighterID = 23
)

func TestBlindPick(t *testing.T) {
	rs := testRuleset()
	m := newTestMatch(t, rs, 2, p1)

	require.NoError(t, m.PickFighter(1, p2, marth))
	picked := eventsOfType[FighterPicked](m.PullEvents())
	require.Len(t, picked, 1)
	assert.True(t, picked[0].Blind)
	assert.Nil(t, picked[0].Fighter, "blind picks stay hidden")

	assert.ErrorIs(t, m.PickFighter(1, p2, mario), ErrFighterAlreadyPicked)

	require.NoError(t, m.PickFighter(1, p1, mario))
	revealed := eventsOfType[FightersRevealed](m.PullEvents())
	require.Len(t, revealed, 1)
	assert.Equal(t, FightersRevealed{GameNumber: 1, Player1Fighter: mario, Player2Fighter: marth}, revealed[0])
}

func TestGameReadyHidesUnfinishedBlindPick(t *testing.T) {
	rs := testRuleset()
	m := newTestMatch(t, rs, 2, p1)
	require.NoError(t, m.PickFighter(1, p1, mario))

	settleBySuggestion(t, m, rs, p1, stagedomain.Battlefield)
	ready := eventsOfType[GameReady](m.PullEvents())
	require.Len(t, ready, 1)
	assert.Nil(t, ready[0].Player1Fighter)
	assert.Nil(t, ready[0].Player2Fighter)
}

func TestCounterpickFighterOrder(t *testing.T) {
	rs := testRuleset()
	m := newTestMatch(t, rs, 2, p1)
	require.NoError(t, m.PickFighter(1, p1, mario))
	require.NoError(t, m.PickFighter(1, p2, marth))
	winGame(t, m, rs, p2)
	m.PullEvents()

	assert.ErrorIs(t, m.PickFighter(2, p1, marth), ErrNotYourTurn)

	// the winner keeps their fighter
	require.NoError(t, m.PickFighter(2, p2, marth))
	events := m.PullEvents()
	picked := eventsOfType[FighterPicked](events)
	require.Len(t, picked, 1)
	assert.False(t, picked[0].Blind)
	assert.Equal(t, marth, *picked[0].Fighter)
	turns := eventsOfType[TurnAdvanced](events)
	require.Len(t, turns, 1)
	assert.Equal(t, TurnAdvanced{GameNumber: 2, NextPlayer: p1, Prompt: PromptPickFighter}, turns[0])

	require.NoError(t, m.PickFighter(2, p1, marth))
	g, _ := m.Current()
	assert.Equal(t, marth, *g.Player1Fighter)
}

func TestPickUnknownFighter(t *testing.T) {
	rs := testRuleset()
	m := newTestMatch(t, rs, 2, p1)
	assert.ErrorIs(t, m.PickFighter(1, p1, 999), ErrInvalidFighter)
	g, _ := m.Current()
	assert.Nil(t, g.Player1Fighter)
}
