package matchdomain

import (
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// PickFighter locks by's fighter for the current game. Game 1 is a blind pick
// in any order. In later games the winner of the previous game locks first;
// both start out on the fighter they used last game and keep it by picking it
// again.
func (m *Match) PickFighter(gameNumber int, by sharedtypes.PlayerID, fighter stagedomain.FighterID) error {
	g, err := m.checkAction(gameNumber, by)
	if err != nil {
		return err
	}
	if !stagedomain.FighterExists(fighter) {
		return reject(ErrInvalidFighter, "fighter %d does not exist", int(fighter))
	}
	slot, locked := g.fighterSlot(m, by)
	if *locked {
		return ErrFighterAlreadyPicked
	}
	if g.Number > 1 && by != g.FirstToStrike {
		if _, winnerLocked := g.fighterSlot(m, g.FirstToStrike); !*winnerLocked {
			return reject(ErrNotYourTurn, "the winner of the last game picks a fighter first")
		}
	}

	*slot = ptr(fighter)
	*locked = true

	blind := g.Number == 1
	bothLocked := g.Player1FighterLocked && g.Player2FighterLocked

	event := FighterPicked{GameNumber: g.Number, Player: by, Blind: blind}
	if !blind {
		event.Fighter = ptr(fighter)
	}
	m.record(event)

	switch {
	case blind && bothLocked:
		m.record(FightersRevealed{
			GameNumber:     g.Number,
			Player1Fighter: *g.Player1Fighter,
			Player2Fighter: *g.Player2Fighter,
		})
	case !blind && !bothLocked:
		m.record(TurnAdvanced{GameNumber: g.Number, NextPlayer: m.Opponent(by), Prompt: PromptPickFighter})
	}
	return nil
}

func (g *Game) fighterSlot(m *Match, p sharedtypes.PlayerID) (**stagedomain.FighterID, *bool) {
	if p == m.Player1 {
		return &g.Player1Fighter, &g.Player1FighterLocked
	}
	return &g.Player2Fighter, &g.Player2FighterLocked
}

// revealedFighters hides game 1 fighters until both blind picks are in.
func (g *Game) revealedFighters() (*stagedomain.FighterID, *stagedomain.FighterID) {
	if g.Number == 1 && !(g.Player1FighterLocked && g.Player2FighterLocked) {
		return nil, nil
	}
	return g.Player1Fighter, g.Player2Fighter
}
