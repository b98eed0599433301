// Package matchdomain implements the stage draft and the game/match lifecycle
// of a best-of-N set. Everything here is pure: callers load a Match, apply one
// operation under the match lock, persist it and publish the recorded events.
package matchdomain

import (
	"fmt"
	"time"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

type Status int

const (
	StatusInProgress Status = iota
	StatusFinished
	StatusCancelled
)

func (s Status) Terminal() bool { return s != StatusInProgress }

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Resolution records how a match ended.
type Resolution int

const (
	ResolutionNone Resolution = iota
	ResolutionPlayed
	ResolutionForfeit
	ResolutionAwarded
	ResolutionCancelled
)

func (r Resolution) String() string {
	switch r {
	case ResolutionNone:
		return "none"
	case ResolutionPlayed:
		return "played"
	case ResolutionForfeit:
		return "forfeit"
	case ResolutionAwarded:
		return "awarded"
	case ResolutionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// RatingSnapshot holds both players' ratings as they were when the match was
// created.
type RatingSnapshot struct {
	Player1 ratingdomain.Rating
	Player2 ratingdomain.Rating
}

// Match is one best-of-N contest between two players.
type Match struct {
	ID           uuid.UUID
	GuildID      sharedtypes.GuildID
	RulesetID    uuid.UUID
	Player1      sharedtypes.PlayerID
	Player2      sharedtypes.PlayerID
	WinsRequired int
	Player1Score int
	Player2Score int
	CurrentGame  int
	Winner       *sharedtypes.PlayerID
	Ranked       bool
	GlobalRanked bool
	Status       Status
	Resolution   Resolution

	CommunityRatings *RatingSnapshot
	GlobalRatings    *RatingSnapshot

	StartedAt time.Time
	EndedAt   *time.Time

	Games []Game

	events []Event
}

// Chooser picks a random index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	IntN(n int) int
}

// Params describes a match to create.
type Params struct {
	ID           uuid.UUID
	GuildID      sharedtypes.GuildID
	Ruleset      rulesetdomain.Ruleset
	Player1      sharedtypes.PlayerID
	Player2      sharedtypes.PlayerID
	WinsRequired int
	Ranked       bool
	GlobalRanked bool
	StartedAt    time.Time
}

// NewMatch creates the match and its first game. The player who strikes first
// in game 1 is drawn with chooser.
func NewMatch(p Params, chooser Chooser) (*Match, error) {
	switch {
	case p.Player1 == "" || p.Player2 == "":
		return nil, reject(ErrInvalidMatch, "a match needs two players")
	case p.Player1 == p.Player2:
		return nil, reject(ErrInvalidMatch, "a player cannot play against themselves")
	case p.WinsRequired < 1:
		return nil, reject(ErrInvalidMatch, "wins required must be at least 1, got %d", p.WinsRequired)
	}
	if err := p.Ruleset.Validate(); err != nil {
		return nil, reject(ErrInvalidMatch, "invalid ruleset: %v", err)
	}

	first := p.Player1
	if chooser.IntN(2) == 1 {
		first = p.Player2
	}

	m := &Match{
		ID:           p.ID,
		GuildID:      p.GuildID,
		RulesetID:    p.Ruleset.ID,
		Player1:      p.Player1,
		Player2:      p.Player2,
		WinsRequired: p.WinsRequired,
		CurrentGame:  1,
		Ranked:       p.Ranked,
		GlobalRanked: p.Ranked && p.GlobalRanked,
		Status:       StatusInProgress,
		StartedAt:    p.StartedAt,
		Games:        []Game{{Number: 1, FirstToStrike: first}},
	}
	m.openGame(p.Ruleset, &m.Games[0])
	return m, nil
}

// IsParticipant reports whether p plays in the match.
func (m *Match) IsParticipant(p sharedtypes.PlayerID) bool {
	return p == m.Player1 || p == m.Player2
}

// Opponent returns the other player. p must be a participant.
func (m *Match) Opponent(p sharedtypes.PlayerID) sharedtypes.PlayerID {
	if p == m.Player1 {
		return m.Player2
	}
	return m.Player1
}

// Score returns the number of games p has won.
func (m *Match) Score(p sharedtypes.PlayerID) int {
	if p == m.Player1 {
		return m.Player1Score
	}
	return m.Player2Score
}

// Game returns the game with the given number.
func (m *Match) Game(number int) (*Game, bool) {
	for i := range m.Games {
		if m.Games[i].Number == number {
			return &m.Games[i], true
		}
	}
	return nil, false
}

// Current returns the game being played. A live match without its current
// game is corrupt.
func (m *Match) Current() (*Game, error) {
	g, ok := m.Game(m.CurrentGame)
	if !ok {
		return nil, fmt.Errorf("%w: match %s has no game %d", ErrCorruptMatch, m.ID, m.CurrentGame)
	}
	return g, nil
}

// RatingsDue reports whether finishing this match should update ratings.
func (m *Match) RatingsDue() bool {
	return m.Ranked && m.Status == StatusFinished && m.Winner != nil
}

// PullEvents returns the events recorded since the last call and clears them.
func (m *Match) PullEvents() []Event {
	events := m.events
	m.events = nil
	return events
}

func (m *Match) record(e Event) {
	m.events = append(m.events, e)
}

// checkAction runs the checks shared by every player action and returns the
// current game.
func (m *Match) checkAction(gameNumber int, by sharedtypes.PlayerID) (*Game, error) {
	if m.Status.Terminal() {
		return nil, ErrMatchFinished
	}
	if !m.IsParticipant(by) {
		return nil, ErrNotParticipant
	}
	if gameNumber != 0 && gameNumber != m.CurrentGame {
		return nil, reject(ErrStaleGame, "game %d is over, the match is on game %d", gameNumber, m.CurrentGame)
	}
	return m.Current()
}

// openGame announces a fresh game, settling the stage at once when the
// ruleset leaves nothing to strike.
func (m *Match) openGame(rs rulesetdomain.Ruleset, g *Game) {
	if g.Number == 1 && rs.StrikesRequired(1) == 0 {
		m.settleStage(g, rs.Starters[0])
		return
	}
	m.announceTurn(rs, g)
}

func (m *Match) announceTurn(rs rulesetdomain.Ruleset, g *Game) {
	next, prompt, ok := m.turn(rs, g)
	if !ok {
		return
	}
	m.record(TurnAdvanced{
		GameNumber:       g.Number,
		NextPlayer:       next,
		Prompt:           prompt,
		StrikesRemaining: max(rs.StrikesRequired(g.Number)-len(g.StruckStages), 0),
	})
}

func (m *Match) settleStage(g *Game, stage stagedomain.ID) {
	g.PickedStage = &stage
	p1, p2 := g.revealedFighters()
	m.record(GameReady{
		GameNumber:     g.Number,
		Stage:          stage,
		Player1Fighter: p1,
		Player2Fighter: p2,
	})
}
