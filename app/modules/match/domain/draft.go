package matchdomain

import (
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// PickOutcome is either Finalized or Suggested.
type PickOutcome interface {
	isPickOutcome()
}

// Finalized means the pick settled the stage.
type Finalized struct {
	Stage stagedomain.ID
}

// Suggested means the pick was turned into a suggestion for the opponent.
type Suggested struct {
	Stage        stagedomain.ID
	Reason       SuggestReason
	DSRForbidden bool
}

func (Finalized) isPickOutcome() {}
func (Suggested) isPickOutcome() {}

// State reports where the current game's draft stands.
func (m *Match) State(rs rulesetdomain.Ruleset) (DraftState, error) {
	g, err := m.Current()
	if err != nil {
		return 0, err
	}
	return draftState(rs, g), nil
}

func draftState(rs rulesetdomain.Ruleset, g *Game) DraftState {
	switch {
	case g.PickedStage != nil:
		return StateReady
	case g.HasSuggestion():
		return StateSuggested
	case len(g.StruckStages) < rs.StrikesRequired(g.Number):
		return StateStriking
	default:
		return StateAwaitingPick
	}
}

// TurnHolder returns who has to act next on the current game and how. ok is
// false when nobody is waited on.
func (m *Match) TurnHolder(rs rulesetdomain.Ruleset) (player sharedtypes.PlayerID, prompt Prompt, ok bool) {
	if m.Status.Terminal() {
		return "", 0, false
	}
	g, err := m.Current()
	if err != nil {
		return "", 0, false
	}
	return m.turn(rs, g)
}

func (m *Match) turn(rs rulesetdomain.Ruleset, g *Game) (sharedtypes.PlayerID, Prompt, bool) {
	if g.AwaitingConfirmation() {
		return *g.NeedsConfirmationBy, PromptConfirmResult, true
	}
	switch draftState(rs, g) {
	case StateSuggested:
		return m.Opponent(*g.SuggestedBy), PromptAnswerSuggestion, true
	case StateStriking:
		return m.strikerAt(rs, g, len(g.StruckStages)), PromptStrike, true
	case StateAwaitingPick:
		return m.Opponent(g.FirstToStrike), PromptPick, true
	default:
		return "", 0, false
	}
}

// strikerAt returns who makes strike number k (0-based). Game 1 follows the
// A, B, B, A, A, B, ... pattern; counterpick games let the first striker ban
// all but the last stage, which the picker bans.
func (m *Match) strikerAt(rs rulesetdomain.Ruleset, g *Game, k int) sharedtypes.PlayerID {
	a := g.FirstToStrike
	b := m.Opponent(a)
	if g.Number == 1 {
		if k == 0 || ((k-1)/2)%2 == 1 {
			return a
		}
		return b
	}
	if k < rs.CounterpickBans-1 {
		return a
	}
	return b
}

// checkStage validates that stage is in play for the game.
func checkStage(rs rulesetdomain.Ruleset, g *Game, stage stagedomain.ID) error {
	if !stagedomain.Exists(stage) {
		return reject(ErrInvalidStage, "stage %d does not exist", int(stage))
	}
	if !rs.InPool(g.Number, stage) {
		if g.Number == 1 {
			return reject(ErrStageNotInStarterPool, "%s is not a starter stage", stage.Name())
		}
		return reject(ErrInvalidStage, "%s is not part of this ruleset", stage.Name())
	}
	if g.IsStruck(stage) {
		return reject(ErrStageAlreadyStruck, "%s has already been struck", stage.Name())
	}
	return nil
}

// Strike bans stage from the current game. DSR does not restrict strikes.
func (m *Match) Strike(rs rulesetdomain.Ruleset, gameNumber int, by sharedtypes.PlayerID, stage stagedomain.ID) error {
	g, err := m.checkAction(gameNumber, by)
	if err != nil {
		return err
	}
	if g.PickedStage != nil {
		return ErrPickAlreadyMade
	}
	if g.HasSuggestion() {
		return ErrSuggestionPending
	}
	if err := checkStage(rs, g, stage); err != nil {
		return err
	}
	required := rs.StrikesRequired(g.Number)
	struck := len(g.StruckStages)
	if struck >= required {
		return ErrStrikingComplete
	}
	if m.strikerAt(rs, g, struck) != by {
		return ErrNotYourTurn
	}

	g.StruckStages = append(g.StruckStages, stage)
	m.record(StageStruck{GameNumber: g.Number, By: by, Stage: stage})

	if g.Number == 1 && len(g.StruckStages) == required {
		if last, ok := lastStarter(rs, g); ok {
			m.settleStage(g, last)
			return nil
		}
	}
	m.announceTurn(rs, g)
	return nil
}

func lastStarter(rs rulesetdomain.Ruleset, g *Game) (stagedomain.ID, bool) {
	for _, s := range rs.Starters {
		if !g.IsStruck(s) {
			return s, true
		}
	}
	return 0, false
}

// Pick settles the stage when the picker is entitled to it, dropping any
// suggestion still waiting for an answer. Any other valid pick is offered to
// the opponent as a suggestion instead.
func (m *Match) Pick(rs rulesetdomain.Ruleset, gameNumber int, by sharedtypes.PlayerID, stage stagedomain.ID) (PickOutcome, error) {
	g, err := m.checkAction(gameNumber, by)
	if err != nil {
		return nil, err
	}
	if g.PickedStage != nil {
		return nil, ErrPickAlreadyMade
	}
	if err := checkStage(rs, g, stage); err != nil {
		return nil, err
	}

	dsr := m.forbiddenFor(rs, g, by).Contains(stage)
	required := rs.StrikesRequired(g.Number)
	struck := len(g.StruckStages)

	if g.Number == 1 {
		// With one strike left, picking one of the two remaining starters is
		// the same as striking the other.
		if struck == required-1 && m.strikerAt(rs, g, struck) == by {
			return m.finalizePick(g, stage), nil
		}
		return m.suggest(g, by, stage, ReasonStrikingIncomplete, false)
	}

	switch {
	case struck < required:
		return m.suggest(g, by, stage, ReasonStrikingIncomplete, dsr)
	case by == g.FirstToStrike:
		return m.suggest(g, by, stage, ReasonNotPicker, false)
	case dsr:
		return m.suggest(g, by, stage, ReasonDSRForbidden, true)
	}
	return m.finalizePick(g, stage), nil
}

func (m *Match) finalizePick(g *Game, stage stagedomain.ID) PickOutcome {
	g.clearSuggestion()
	m.settleStage(g, stage)
	return Finalized{Stage: stage}
}

// Suggest proposes stage to the opponent, skipping the rest of the draft if
// they accept.
func (m *Match) Suggest(rs rulesetdomain.Ruleset, gameNumber int, by sharedtypes.PlayerID, stage stagedomain.ID) error {
	g, err := m.checkAction(gameNumber, by)
	if err != nil {
		return err
	}
	if g.PickedStage != nil {
		return ErrPickAlreadyMade
	}
	if err := checkStage(rs, g, stage); err != nil {
		return err
	}
	_, err = m.suggest(g, by, stage, ReasonRequested, m.forbiddenFor(rs, g, by).Contains(stage))
	return err
}

// forbiddenFor returns the DSR set when by is the picker of g, and an empty
// set otherwise.
func (m *Match) forbiddenFor(rs rulesetdomain.Ruleset, g *Game, by sharedtypes.PlayerID) stagedomain.Set {
	if g.Number == 1 || by == g.FirstToStrike {
		return stagedomain.NewSet()
	}
	return ForbiddenStages(m, rs.DSR)
}

func (m *Match) suggest(g *Game, by sharedtypes.PlayerID, stage stagedomain.ID, reason SuggestReason, dsr bool) (PickOutcome, error) {
	if g.LastSuggestedBy != nil && *g.LastSuggestedBy == by {
		return nil, ErrRepeatedSuggestion
	}
	if g.HasSuggestion() {
		return nil, ErrSuggestionPending
	}
	g.SuggestedStage = ptr(stage)
	g.SuggestedBy = ptr(by)
	g.LastSuggestedBy = ptr(by)
	g.SuggestionAccepted = nil
	g.SuggestionSeq++

	m.record(StageSuggested{GameNumber: g.Number, By: by, Stage: stage, Reason: reason, DSRForbidden: dsr, Seq: g.SuggestionSeq})
	return Suggested{Stage: stage, Reason: reason, DSRForbidden: dsr}, nil
}

func (m *Match) checkAnswer(gameNumber int, by sharedtypes.PlayerID) (*Game, error) {
	g, err := m.checkAction(gameNumber, by)
	if err != nil {
		return nil, err
	}
	if g.PickedStage != nil {
		return nil, ErrPickAlreadyMade
	}
	if !g.HasSuggestion() {
		return nil, ErrNoSuggestion
	}
	if *g.SuggestedBy == by {
		return nil, ErrOwnSuggestion
	}
	return g, nil
}

// AcceptSuggestion settles the suggested stage regardless of strike progress.
func (m *Match) AcceptSuggestion(gameNumber int, by sharedtypes.PlayerID) error {
	g, err := m.checkAnswer(gameNumber, by)
	if err != nil {
		return err
	}
	g.SuggestionAccepted = ptr(true)
	m.settleStage(g, *g.SuggestedStage)
	return nil
}

// RejectSuggestion drops the suggestion; the draft resumes where it was.
func (m *Match) RejectSuggestion(rs rulesetdomain.Ruleset, gameNumber int, by sharedtypes.PlayerID) error {
	g, err := m.checkAnswer(gameNumber, by)
	if err != nil {
		return err
	}
	m.rejectSuggestion(rs, g, by, false)
	return nil
}

// ExpireSuggestion rejects the pending suggestion on behalf of the player who
// did not answer in time. It reports false, without error, when the
// suggestion numbered seq is no longer the pending one.
func (m *Match) ExpireSuggestion(rs rulesetdomain.Ruleset, gameNumber, seq int, suggestedBy sharedtypes.PlayerID, stage stagedomain.ID) (bool, error) {
	if m.Status.Terminal() || gameNumber != m.CurrentGame {
		return false, nil
	}
	g, err := m.Current()
	if err != nil {
		return false, err
	}
	if !g.HasSuggestion() || g.SuggestionSeq != seq || *g.SuggestedBy != suggestedBy || *g.SuggestedStage != stage {
		return false, nil
	}
	m.rejectSuggestion(rs, g, m.Opponent(suggestedBy), true)
	return true, nil
}

func (m *Match) rejectSuggestion(rs rulesetdomain.Ruleset, g *Game, by sharedtypes.PlayerID, timedOut bool) {
	stage := *g.SuggestedStage
	g.clearSuggestion()
	g.SuggestionAccepted = ptr(false)
	m.record(SuggestionRejected{GameNumber: g.Number, By: by, Stage: stage, TimedOut: timedOut})
	m.announceTurn(rs, g)
}

// StageOption is one numbered entry of the stage list shown to players.
type StageOption struct {
	Number       int
	Stage        stagedomain.ID
	Struck       bool
	DSRForbidden bool
	InPool       bool
}

// StageList numbers the ruleset's stages and marks their state for the
// current game.
func (m *Match) StageList(rs rulesetdomain.Ruleset) ([]StageOption, error) {
	g, err := m.Current()
	if err != nil {
		return nil, err
	}
	forbidden := ForbiddenStages(m, rs.DSR)
	list := rs.StageList()
	out := make([]StageOption, 0, len(list))
	for i, s := range list {
		out = append(out, StageOption{
			Number:       i + 1,
			Stage:        s,
			Struck:       g.IsStruck(s),
			DSRForbidden: forbidden.Contains(s),
			InPool:       rs.InPool(g.Number, s),
		})
	}
	return out, nil
}

// AvailableStages returns the stages of the current game's pool that are
// neither struck nor forbidden to the picker.
func (m *Match) AvailableStages(rs rulesetdomain.Ruleset) ([]stagedomain.ID, error) {
	options, err := m.StageList(rs)
	if err != nil {
		return nil, err
	}
	var out []stagedomain.ID
	for _, o := range options {
		if o.InPool && !o.Struck && !o.DSRForbidden {
			out = append(out, o.Stage)
		}
	}
	return out, nil
}
