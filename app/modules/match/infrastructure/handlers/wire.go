package matchhandlers

import (
	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	ratinghandlers "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/infrastructure/handlers"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	ratingevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/rating"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	"github.com/google/uuid"
)

func stageV1(id stagedomain.ID) matchevents.StageV1 {
	return matchevents.StageV1{ID: int(id), Name: id.Name()}
}

func fighterV1(id stagedomain.FighterID) matchevents.FighterV1 {
	return matchevents.FighterV1{ID: int(id), Name: id.Name()}
}

func fighterPtr(id *stagedomain.FighterID) *matchevents.FighterV1 {
	if id == nil {
		return nil
	}
	f := fighterV1(*id)
	return &f
}

// MatchToWire converts a match to its read model.
func MatchToWire(m *matchdomain.Match) matchevents.MatchV1 {
	return matchevents.MatchV1{
		ID:           m.ID,
		GuildID:      m.GuildID,
		RulesetID:    m.RulesetID,
		Player1:      m.Player1,
		Player2:      m.Player2,
		WinsRequired: m.WinsRequired,
		Player1Score: m.Player1Score,
		Player2Score: m.Player2Score,
		CurrentGame:  m.CurrentGame,
		Status:       m.Status.String(),
		Ranked:       m.Ranked,
		GlobalRanked: m.GlobalRanked,
		Winner:       m.Winner,
		StartedAt:    m.StartedAt,
	}
}

// eventResult maps one domain event to its outbound topic. ok is false for
// events that have no topic.
func eventResult(matchID uuid.UUID, e matchdomain.Event) (handlerwrapper.Result, bool) {
	var topic string
	var payload any

	switch e := e.(type) {
	case matchdomain.TurnAdvanced:
		topic, payload = matchevents.TurnAdvancedV1, matchevents.TurnAdvancedPayloadV1{
			MatchID:          matchID,
			GameNumber:       e.GameNumber,
			NextPlayer:       e.NextPlayer,
			Prompt:           e.Prompt.String(),
			StrikesRemaining: e.StrikesRemaining,
		}
	case matchdomain.StageStruck:
		topic, payload = matchevents.StageStruckV1, matchevents.StageStruckPayloadV1{
			MatchID:    matchID,
			GameNumber: e.GameNumber,
			By:         e.By,
			Stage:      stageV1(e.Stage),
		}
	case matchdomain.StageSuggested:
		topic, payload = matchevents.StageSuggestedV1, matchevents.StageSuggestedPayloadV1{
			MatchID:      matchID,
			GameNumber:   e.GameNumber,
			By:           e.By,
			Stage:        stageV1(e.Stage),
			Reason:       e.Reason.String(),
			DSRForbidden: e.DSRForbidden,
		}
	case matchdomain.SuggestionRejected:
		topic, payload = matchevents.SuggestionRejectedV1, matchevents.SuggestionRejectedPayloadV1{
			MatchID:    matchID,
			GameNumber: e.GameNumber,
			By:         e.By,
			Stage:      stageV1(e.Stage),
			TimedOut:   e.TimedOut,
		}
	case matchdomain.GameReady:
		topic, payload = matchevents.GameReadyV1, matchevents.GameReadyPayloadV1{
			MatchID:        matchID,
			GameNumber:     e.GameNumber,
			Stage:          stageV1(e.Stage),
			Player1Fighter: fighterPtr(e.Player1Fighter),
			Player2Fighter: fighterPtr(e.Player2Fighter),
		}
	case matchdomain.FighterPicked:
		topic, payload = matchevents.FighterPickedV1, matchevents.FighterPickedPayloadV1{
			MatchID:    matchID,
			GameNumber: e.GameNumber,
			PlayerID:   e.Player,
			Fighter:    fighterPtr(e.Fighter),
			Blind:      e.Blind,
		}
	case matchdomain.FightersRevealed:
		topic, payload = matchevents.FightersRevealedV1, matchevents.FightersRevealedPayloadV1{
			MatchID:        matchID,
			GameNumber:     e.GameNumber,
			Player1Fighter: fighterV1(e.Player1Fighter),
			Player2Fighter: fighterV1(e.Player2Fighter),
		}
	case matchdomain.ConfirmationRequested:
		topic, payload = matchevents.ConfirmationRequestedV1, matchevents.ConfirmationRequestedPayloadV1{
			MatchID:       matchID,
			GameNumber:    e.GameNumber,
			From:          e.From,
			ClaimedWinner: e.ClaimedWinner,
		}
	case matchdomain.ResultDisputed:
		topic, payload = matchevents.ResultDisputedV1, matchevents.ResultDisputedPayloadV1{
			MatchID:       matchID,
			GameNumber:    e.GameNumber,
			By:            e.By,
			ClaimedWinner: e.ClaimedWinner,
		}
	case matchdomain.GameWon:
		topic, payload = matchevents.GameWonV1, matchevents.GameWonPayloadV1{
			MatchID:    matchID,
			GameNumber: e.GameNumber,
			Winner:     e.Winner,
		}
	case matchdomain.MatchWon:
		topic, payload = matchevents.MatchWonV1, matchevents.MatchWonPayloadV1{
			MatchID:      matchID,
			Winner:       e.Winner,
			Player1Score: e.Player1Score,
			Player2Score: e.Player2Score,
			Resolution:   e.Resolution.String(),
		}
	case matchdomain.MatchClosed:
		topic, payload = matchevents.MatchClosedV1, matchevents.MatchClosedPayloadV1{
			MatchID:    matchID,
			Resolution: e.Resolution.String(),
			Winner:     e.Winner,
		}
	default:
		return handlerwrapper.Result{}, false
	}
	return handlerwrapper.Result{Topic: topic, Payload: payload}, true
}

// outcomeResults lists the messages of a committed outcome: the match events
// in order, then the rating changes.
func outcomeResults(o matchservice.Outcome) []handlerwrapper.Result {
	if o.Match == nil {
		return nil
	}
	out := make([]handlerwrapper.Result, 0, len(o.Events)+len(o.RatingUpdates))
	for _, e := range o.Events {
		if r, ok := eventResult(o.Match.ID, e); ok {
			out = append(out, r)
		}
	}
	for _, u := range o.RatingUpdates {
		out = append(out, handlerwrapper.Result{
			Topic: ratingevents.RatingUpdatedV1,
			Payload: ratingevents.RatingUpdatedPayloadV1{
				GuildID:  u.GuildID,
				Scope:    string(u.Scope),
				PlayerID: u.PlayerID,
				MatchID:  u.MatchID,
				Old:      ratinghandlers.ToWire(u.Old),
				New:      ratinghandlers.ToWire(u.New),
			},
		})
	}
	return out
}
