package matchdomain

import (
	"testing"
	"time"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

const (
	p1 sharedtypes.PlayerID = "player-1"
	p2 sharedtypes.PlayerID = "player-2"
)

var testNow = time.Date(2024, 5, 4, 18, 30, 0, 0, time.UTC)

// fixedChooser always returns the same index.
type fixedChooser int

func (c fixedChooser) IntN(int) int { return int(c) }

func testRuleset() rulesetdomain.Ruleset {
	rs := rulesetdomain.Default("guild-1")
	rs.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	return rs
}

// newTestMatch creates a match where first strikes first in game 1.
func newTestMatch(t *testing.T, rs rulesetdomain.Ruleset, winsRequired int, first sharedtypes.PlayerID) *Match {
	t.Helper()
	chooser := fixedChooser(0)
	if first == p2 {
		chooser = 1
	}
	m, err := NewMatch(Params{
		ID:           uuid.New(),
		GuildID:      "guild-1",
		Ruleset:      rs,
		Player1:      p1,
		Player2:      p2,
		WinsRequired: winsRequired,
		Ranked:       true,
		StartedAt:    testNow,
	}, chooser)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	m.PullEvents()
	return m
}

// settleBySuggestion decides the current stage through the suggestion fast
// path.
func settleBySuggestion(t *testing.T, m *Match, rs rulesetdomain.Ruleset, by sharedtypes.PlayerID, stage stagedomain.ID) {
	t.Helper()
	if err := m.Suggest(rs, m.CurrentGame, by, stage); err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if err := m.AcceptSuggestion(m.CurrentGame, m.Opponent(by)); err != nil {
		t.Fatalf("AcceptSuggestion: %v", err)
	}
}

// winGame reports and confirms the current game for winner.
func winGame(t *testing.T, m *Match, rs rulesetdomain.Ruleset, winner sharedtypes.PlayerID) {
	t.Helper()
	if _, err := m.ReportResult(rs, m.CurrentGame, winner, true, testNow); err != nil {
		t.Fatalf("ReportResult: %v", err)
	}
	outcome, err := m.ReportResult(rs, m.CurrentGame, m.Opponent(winner), false, testNow)
	if err != nil {
		t.Fatalf("ReportResult: %v", err)
	}
	if outcome != GameFinalized {
		t.Fatalf("expected game to be finalized, got %v", outcome)
	}
}

func eventsOfType[T Event](events []Event) []T {
	var out []T
	for _, e := range events {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
