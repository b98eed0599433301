package matchdomain

import (
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// ForbiddenStages returns the stages the picker of the current game may not
// pick under Dave's Stage Rule. It only reads the match.
func ForbiddenStages(m *Match, mode rulesetdomain.DSRMode) stagedomain.Set {
	forbidden := stagedomain.NewSet()
	if mode == rulesetdomain.DSROff || m.CurrentGame < 3 {
		return forbidden
	}
	current, ok := m.Game(m.CurrentGame)
	if !ok {
		return forbidden
	}
	picker := m.Opponent(current.FirstToStrike)

	latest := 0
	var latestStage stagedomain.ID
	for _, g := range m.Games {
		if g.Number >= m.CurrentGame || !wonBy(g, picker) || g.PickedStage == nil {
			continue
		}
		switch mode {
		case rulesetdomain.DSROn:
			forbidden.Add(*g.PickedStage)
		case rulesetdomain.DSRModified:
			if g.Number > latest {
				latest, latestStage = g.Number, *g.PickedStage
			}
		}
	}
	if latest > 0 {
		forbidden.Add(latestStage)
	}
	return forbidden
}

func wonBy(g Game, p sharedtypes.PlayerID) bool {
	return g.Winner != nil && *g.Winner == p
}
