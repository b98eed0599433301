package matchdomain

import (
	"time"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// ReportOutcome is what a result report did to the current game.
type ReportOutcome int

const (
	// AwaitingConfirmation: the claim is recorded and the opponent has to
	// confirm it.
	AwaitingConfirmation ReportOutcome = iota
	// ConfirmationMismatch: the confirming player reported the opposite
	// result. Their claim replaces the old one and now needs confirming.
	ConfirmationMismatch
	// GameFinalized: both players agree and the game is decided.
	GameFinalized
)

func (o ReportOutcome) String() string {
	switch o {
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case ConfirmationMismatch:
		return "confirmation_mismatch"
	case GameFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// ReportResult records by's report of the current game. A game is decided only
// once the player asked for confirmation reports the same winner; reporting
// twice never counts twice.
func (m *Match) ReportResult(rs rulesetdomain.Ruleset, gameNumber int, by sharedtypes.PlayerID, claimsWon bool, at time.Time) (ReportOutcome, error) {
	g, err := m.checkAction(gameNumber, by)
	if err != nil {
		return 0, err
	}

	claimed := by
	if !claimsWon {
		claimed = m.Opponent(by)
	}

	switch {
	case !g.AwaitingConfirmation():
		m.requestConfirmation(g, by, claimed)
		return AwaitingConfirmation, nil

	case *g.NeedsConfirmationBy == by && *g.ClaimedWinner == claimed:
		m.finishGame(rs, g, claimed, at)
		return GameFinalized, nil

	case *g.NeedsConfirmationBy == by:
		m.record(ResultDisputed{GameNumber: g.Number, By: by, ClaimedWinner: claimed})
		m.requestConfirmation(g, by, claimed)
		return ConfirmationMismatch, nil

	default:
		// The reporter reports again: remind the opponent, taking the newest
		// claim in case it was corrected.
		m.requestConfirmation(g, by, claimed)
		return AwaitingConfirmation, nil
	}
}

func (m *Match) requestConfirmation(g *Game, by, claimed sharedtypes.PlayerID) {
	from := m.Opponent(by)
	g.ClaimedWinner = ptr(claimed)
	g.NeedsConfirmationBy = ptr(from)
	g.ClaimSeq++
	m.record(ConfirmationRequested{GameNumber: g.Number, From: from, ClaimedWinner: claimed, Seq: g.ClaimSeq})
}

// Confirm accepts the pending claim. Only the player asked to confirm may.
func (m *Match) Confirm(rs rulesetdomain.Ruleset, gameNumber int, by sharedtypes.PlayerID, at time.Time) error {
	g, err := m.checkAction(gameNumber, by)
	if err != nil {
		return err
	}
	if !g.AwaitingConfirmation() {
		return ErrNothingToConfirm
	}
	if *g.NeedsConfirmationBy != by {
		return reject(ErrNotYourTurn, "your opponent has to confirm this result")
	}
	m.finishGame(rs, g, *g.ClaimedWinner, at)
	return nil
}

// ExpireConfirmation accepts a claim the opponent did not answer in time. It
// reports false, without error, when the claim numbered seq is no longer the
// pending one.
func (m *Match) ExpireConfirmation(rs rulesetdomain.Ruleset, gameNumber, seq int, claimedWinner, needsConfirmationBy sharedtypes.PlayerID, at time.Time) (bool, error) {
	if m.Status.Terminal() || gameNumber != m.CurrentGame {
		return false, nil
	}
	g, err := m.Current()
	if err != nil {
		return false, err
	}
	if !g.AwaitingConfirmation() || g.ClaimSeq != seq || *g.ClaimedWinner != claimedWinner || *g.NeedsConfirmationBy != needsConfirmationBy {
		return false, nil
	}
	m.finishGame(rs, g, claimedWinner, at)
	return true, nil
}

// finishGame decides g, then either ends the match or opens the next game
// with the winner striking first.
func (m *Match) finishGame(rs rulesetdomain.Ruleset, g *Game, winner sharedtypes.PlayerID, at time.Time) {
	g.Winner = ptr(winner)
	g.NeedsConfirmationBy = nil
	m.addWin(winner)
	m.record(GameWon{GameNumber: g.Number, Winner: winner})

	if m.Score(winner) >= m.WinsRequired {
		m.finish(winner, ResolutionPlayed, at)
		return
	}

	next := Game{
		Number:         g.Number + 1,
		FirstToStrike:  winner,
		Player1Fighter: g.Player1Fighter,
		Player2Fighter: g.Player2Fighter,
	}
	m.Games = append(m.Games, next)
	m.CurrentGame = next.Number
	m.openGame(rs, &m.Games[len(m.Games)-1])
}

func (m *Match) addWin(p sharedtypes.PlayerID) {
	if p == m.Player1 {
		m.Player1Score = min(m.Player1Score+1, m.WinsRequired)
		return
	}
	m.Player2Score = min(m.Player2Score+1, m.WinsRequired)
}

// Forfeit gives the match to by's opponent without confirmation.
func (m *Match) Forfeit(by sharedtypes.PlayerID, at time.Time) error {
	if m.Status.Terminal() {
		return ErrMatchFinished
	}
	if !m.IsParticipant(by) {
		return ErrNotParticipant
	}
	return m.award(m.Opponent(by), ResolutionForfeit, at)
}

// Closure is how a match is closed from outside: Cancel or Award.
type Closure interface {
	isClosure()
}

// Cancel ends the match without a winner. Ratings are not touched.
type Cancel struct{}

// Award ends the match in Winner's favour.
type Award struct {
	Winner sharedtypes.PlayerID
}

func (Cancel) isClosure() {}
func (Award) isClosure()  {}

// ForceClose ends a match from any non-terminal state.
func (m *Match) ForceClose(c Closure, at time.Time) error {
	if m.Status.Terminal() {
		return ErrMatchFinished
	}
	switch c := c.(type) {
	case Award:
		if !m.IsParticipant(c.Winner) {
			return ErrNotParticipant
		}
		return m.award(c.Winner, ResolutionAwarded, at)
	default:
		if g, ok := m.Game(m.CurrentGame); ok {
			g.NeedsConfirmationBy = nil
			g.clearSuggestion()
		}
		m.Status = StatusCancelled
		m.Resolution = ResolutionCancelled
		m.EndedAt = ptr(at)
		m.record(MatchClosed{Resolution: ResolutionCancelled})
		return nil
	}
}

func (m *Match) award(winner sharedtypes.PlayerID, res Resolution, at time.Time) error {
	g, err := m.Current()
	if err != nil {
		return err
	}
	g.Winner = ptr(winner)
	g.NeedsConfirmationBy = nil
	g.clearSuggestion()
	if winner == m.Player1 {
		m.Player1Score = m.WinsRequired
	} else {
		m.Player2Score = m.WinsRequired
	}
	m.finish(winner, res, at)
	return nil
}

func (m *Match) finish(winner sharedtypes.PlayerID, res Resolution, at time.Time) {
	m.Winner = ptr(winner)
	m.Status = StatusFinished
	m.Resolution = res
	m.EndedAt = ptr(at)
	m.record(MatchWon{Winner: winner, Player1Score: m.Player1Score, Player2Score: m.Player2Score, Resolution: res})
	m.record(MatchClosed{Resolution: res, Winner: ptr(winner)})
}
