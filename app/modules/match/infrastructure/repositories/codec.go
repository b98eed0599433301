package matchdb

import (
	"fmt"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
)

// ParseStatus is the inverse of matchdomain.Status.String.
func ParseStatus(s string) (matchdomain.Status, error) {
	for _, st := range []matchdomain.Status{matchdomain.StatusInProgress, matchdomain.StatusFinished, matchdomain.StatusCancelled} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown match status %q", s)
}

// ParseResolution is the inverse of matchdomain.Resolution.String.
func ParseResolution(s string) (matchdomain.Resolution, error) {
	for _, r := range []matchdomain.Resolution{
		matchdomain.ResolutionNone,
		matchdomain.ResolutionPlayed,
		matchdomain.ResolutionForfeit,
		matchdomain.ResolutionAwarded,
		matchdomain.ResolutionCancelled,
	} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown match resolution %q", s)
}

func toModel(m *matchdomain.Match) (*Match, []*Game) {
	row := &Match{
		ID:               m.ID,
		GuildID:          m.GuildID,
		RulesetID:        m.RulesetID,
		Player1:          m.Player1,
		Player2:          m.Player2,
		WinsRequired:     m.WinsRequired,
		Player1Score:     m.Player1Score,
		Player2Score:     m.Player2Score,
		CurrentGame:      m.CurrentGame,
		Winner:           m.Winner,
		Ranked:           m.Ranked,
		GlobalRanked:     m.GlobalRanked,
		Status:           m.Status.String(),
		Resolution:       m.Resolution.String(),
		CommunityRatings: m.CommunityRatings,
		GlobalRatings:    m.GlobalRatings,
		StartedAt:        m.StartedAt,
		EndedAt:          m.EndedAt,
	}

	games := make([]*Game, len(m.Games))
	for i, g := range m.Games {
		struck := make([]int, len(g.StruckStages))
		for j, s := range g.StruckStages {
			struck[j] = int(s)
		}
		games[i] = &Game{
			MatchID:              m.ID,
			Number:               g.Number,
			FirstToStrike:        g.FirstToStrike,
			StruckStages:         struck,
			SuggestedStage:       intPtr(g.SuggestedStage),
			SuggestedBy:          g.SuggestedBy,
			LastSuggestedBy:      g.LastSuggestedBy,
			SuggestionAccepted:   g.SuggestionAccepted,
			SuggestionSeq:        g.SuggestionSeq,
			PickedStage:          intPtr(g.PickedStage),
			ClaimedWinner:        g.ClaimedWinner,
			NeedsConfirmationBy:  g.NeedsConfirmationBy,
			ClaimSeq:             g.ClaimSeq,
			Winner:               g.Winner,
			Player1Fighter:       intPtr(g.Player1Fighter),
			Player2Fighter:       intPtr(g.Player2Fighter),
			Player1FighterLocked: g.Player1FighterLocked,
			Player2FighterLocked: g.Player2FighterLocked,
		}
	}
	return row, games
}

func toDomain(row *Match, games []*Game) (*matchdomain.Match, error) {
	status, err := ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matchdomain.ErrCorruptMatch, err)
	}
	resolution, err := ParseResolution(row.Resolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matchdomain.ErrCorruptMatch, err)
	}

	m := &matchdomain.Match{
		ID:               row.ID,
		GuildID:          row.GuildID,
		RulesetID:        row.RulesetID,
		Player1:          row.Player1,
		Player2:          row.Player2,
		WinsRequired:     row.WinsRequired,
		Player1Score:     row.Player1Score,
		Player2Score:     row.Player2Score,
		CurrentGame:      row.CurrentGame,
		Winner:           row.Winner,
		Ranked:           row.Ranked,
		GlobalRanked:     row.GlobalRanked,
		Status:           status,
		Resolution:       resolution,
		CommunityRatings: row.CommunityRatings,
		GlobalRatings:    row.GlobalRatings,
		StartedAt:        row.StartedAt,
		EndedAt:          row.EndedAt,
		Games:            make([]matchdomain.Game, 0, len(games)),
	}
	for _, g := range games {
		struck := make([]stagedomain.ID, len(g.StruckStages))
		for j, s := range g.StruckStages {
			struck[j] = stagedomain.ID(s)
		}
		m.Games = append(m.Games, matchdomain.Game{
			Number:               g.Number,
			FirstToStrike:        g.FirstToStrike,
			StruckStages:         struck,
			SuggestedStage:       idPtr[stagedomain.ID](g.SuggestedStage),
			SuggestedBy:          g.SuggestedBy,
			LastSuggestedBy:      g.LastSuggestedBy,
			SuggestionAccepted:   g.SuggestionAccepted,
			SuggestionSeq:        g.SuggestionSeq,
			PickedStage:          idPtr[stagedomain.ID](g.PickedStage),
			ClaimedWinner:        g.ClaimedWinner,
			NeedsConfirmationBy:  g.NeedsConfirmationBy,
			ClaimSeq:             g.ClaimSeq,
			Winner:               g.Winner,
			Player1Fighter:       idPtr[stagedomain.FighterID](g.Player1Fighter),
			Player2Fighter:       idPtr[stagedomain.FighterID](g.Player2Fighter),
			Player1FighterLocked: g.Player1FighterLocked,
			Player2FighterLocked: g.Player2FighterLocked,
		})
	}
	return m, nil
}

func intPtr[T ~int](v *T) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func idPtr[T ~int](v *int) *T {
	if v == nil {
		return nil
	}
	id := T(*v)
	return &id
}
