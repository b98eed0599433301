package matchhandlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

var _ Handlers = (*MatchHandlers)(nil)

// MatchHandlers implements the Handlers interface for match events.
type MatchHandlers struct {
	service matchservice.Service
	limiter *PlayerRateLimiter
	logger  *slog.Logger
}

// NewMatchHandlers creates a new MatchHandlers instance. A nil limiter lets
// every command through.
func NewMatchHandlers(service matchservice.Service, limiter *PlayerRateLimiter, logger *slog.Logger) *MatchHandlers {
	return &MatchHandlers{
		service: service,
		limiter: limiter,
		logger:  logger,
	}
}

func rejected(matchID uuid.UUID, playerID sharedtypes.PlayerID, code, msg string) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: matchevents.MatchActionRejectedV1,
		Payload: matchevents.MatchActionRejectedPayloadV1{
			MatchID:  matchID,
			PlayerID: playerID,
			Code:     code,
			Message:  msg,
		},
	}}
}

// failureCode returns the stable code of a failure result.
func failureCode(err error) (string, string) {
	if ve, ok := matchdomain.AsValidation(err); ok {
		return ve.Code, ve.Message
	}
	return matchevents.CodeInvalidAction, err.Error()
}

// reply turns an action result into the messages to publish.
func (h *MatchHandlers) reply(matchID uuid.UUID, playerID sharedtypes.PlayerID, result matchservice.OutcomeResult) []handlerwrapper.Result {
	if result.IsFailure() {
		code, msg := failureCode(*result.Failure)
		return rejected(matchID, playerID, code, msg)
	}
	if result.IsSuccess() {
		return outcomeResults(*result.Success)
	}
	return nil
}

// runAction applies the rate limit and the action shared by every player
// command.
func (h *MatchHandlers) runAction(
	ctx context.Context,
	a matchevents.ActionRequestedPayloadV1,
	call func(context.Context, matchservice.Action) (matchservice.OutcomeResult, error),
) ([]handlerwrapper.Result, error) {
	if !h.limiter.Allow(a.PlayerID) {
		h.logger.WarnContext(ctx, "Player is sending commands too fast",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID(a.MatchID.String()),
			attr.PlayerID(string(a.PlayerID)),
		)
		return rejected(a.MatchID, a.PlayerID, matchevents.CodeRateLimited, "slow down, you are sending commands too fast"), nil
	}

	result, err := call(ctx, matchservice.Action{
		MatchID:    a.MatchID,
		GameNumber: a.GameNumber,
		PlayerID:   a.PlayerID,
	})
	if err != nil {
		return nil, err
	}
	return h.reply(a.MatchID, a.PlayerID, result), nil
}

// HandleCreateMatch handles the MatchCreateRequested event.
func (h *MatchHandlers) HandleCreateMatch(ctx context.Context, payload *matchevents.MatchCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CreateMatch(ctx, matchservice.CreateRequest{
		GuildID:      payload.GuildID,
		RulesetName:  payload.RulesetName,
		Player1:      payload.Player1,
		Player2:      payload.Player2,
		WinsRequired: payload.WinsRequired,
		Ranked:       payload.Ranked,
		GlobalRanked: payload.GlobalRanked,
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		_, msg := failureCode(*result.Failure)
		return []handlerwrapper.Result{{
			Topic: matchevents.MatchCreateFailedV1,
			Payload: matchevents.MatchCreateFailedPayloadV1{
				GuildID: payload.GuildID,
				Player1: payload.Player1,
				Player2: payload.Player2,
				Reason:  msg,
			},
		}}, nil
	}

	o := *result.Success
	g, err := o.Match.Current()
	if err != nil {
		return nil, err
	}
	out := []handlerwrapper.Result{{
		Topic: matchevents.MatchCreatedV1,
		Payload: matchevents.MatchCreatedPayloadV1{
			Match:         MatchToWire(o.Match),
			FirstToStrike: g.FirstToStrike,
		},
	}}
	return append(out, outcomeResults(o)...), nil
}

func (h *MatchHandlers) HandleStrike(ctx context.Context, payload *matchevents.StageActionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, payload.ActionRequestedPayloadV1, func(ctx context.Context, a matchservice.Action) (matchservice.OutcomeResult, error) {
		return h.service.Strike(ctx, matchservice.StageAction{Action: a, Stage: payload.Stage})
	})
}

func (h *MatchHandlers) HandlePick(ctx context.Context, payload *matchevents.StageActionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, payload.ActionRequestedPayloadV1, func(ctx context.Context, a matchservice.Action) (matchservice.OutcomeResult, error) {
		return h.service.Pick(ctx, matchservice.StageAction{Action: a, Stage: payload.Stage})
	})
}

func (h *MatchHandlers) HandleSuggest(ctx context.Context, payload *matchevents.StageActionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, payload.ActionRequestedPayloadV1, func(ctx context.Context, a matchservice.Action) (matchservice.OutcomeResult, error) {
		return h.service.Suggest(ctx, matchservice.StageAction{Action: a, Stage: payload.Stage})
	})
}

func (h *MatchHandlers) HandleAcceptSuggestion(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, *payload, h.service.AcceptSuggestion)
}

func (h *MatchHandlers) HandleRejectSuggestion(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, *payload, h.service.RejectSuggestion)
}

func (h *MatchHandlers) HandlePickFighter(ctx context.Context, payload *matchevents.FighterPickRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, payload.ActionRequestedPayloadV1, func(ctx context.Context, a matchservice.Action) (matchservice.OutcomeResult, error) {
		return h.service.PickFighter(ctx, matchservice.FighterAction{Action: a, Fighter: payload.Fighter})
	})
}

func (h *MatchHandlers) HandleReportResult(ctx context.Context, payload *matchevents.ResultReportRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, payload.ActionRequestedPayloadV1, func(ctx context.Context, a matchservice.Action) (matchservice.OutcomeResult, error) {
		return h.service.ReportResult(ctx, matchservice.ReportAction{Action: a, Won: payload.Won})
	})
}

func (h *MatchHandlers) HandleConfirmResult(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, *payload, h.service.ConfirmResult)
}

func (h *MatchHandlers) HandleForfeit(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.runAction(ctx, *payload, h.service.Forfeit)
}

// HandleCloseMatch handles an administrative close. It is not rate limited.
func (h *MatchHandlers) HandleCloseMatch(ctx context.Context, payload *matchevents.MatchCloseRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	req := matchservice.CloseRequest{MatchID: payload.MatchID}
	switch payload.Resolution {
	case matchdomain.ResolutionCancelled.String():
	case matchdomain.ResolutionAwarded.String():
		if payload.AwardedTo == "" {
			return rejected(payload.MatchID, "", matchevents.CodeInvalidAction, "an awarded match needs a winner"), nil
		}
		req.AwardedTo = payload.AwardedTo
	default:
		return rejected(payload.MatchID, "", matchevents.CodeInvalidAction,
			fmt.Sprintf("unknown resolution %q, expected cancelled or awarded", payload.Resolution)), nil
	}

	result, err := h.service.CloseMatch(ctx, req)
	if err != nil {
		return nil, err
	}
	return h.reply(payload.MatchID, "", result), nil
}

// HandleStageList handles the StageListRequested event.
func (h *MatchHandlers) HandleStageList(ctx context.Context, payload *matchevents.StageListRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetStageList(ctx, payload.MatchID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		code, msg := failureCode(*result.Failure)
		return rejected(payload.MatchID, "", code, msg), nil
	}

	list := *result.Success
	stages := make([]matchevents.StageOptionV1, 0, len(list.Stages))
	for _, s := range list.Stages {
		stages = append(stages, matchevents.StageOptionV1{
			Number:       s.Number,
			Stage:        stageV1(s.Stage),
			Struck:       s.Struck,
			DSRForbidden: s.DSRForbidden,
			InPool:       s.InPool,
		})
	}
	return []handlerwrapper.Result{{
		Topic: matchevents.StageListRetrievedV1,
		Payload: matchevents.StageListRetrievedPayloadV1{
			MatchID:    list.MatchID,
			GameNumber: list.GameNumber,
			Stages:     stages,
		},
	}}, nil
}

// timeoutReply publishes what a timeout changed. Stale timeouts and failures
// are logged and produce nothing: nobody is waiting for an answer.
func (h *MatchHandlers) timeoutReply(ctx context.Context, matchID uuid.UUID, result matchservice.OutcomeResult) []handlerwrapper.Result {
	switch {
	case result.IsFailure():
		h.logger.WarnContext(ctx, "Timeout could not be applied",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID(matchID.String()),
			attr.Error(*result.Failure),
		)
		return nil
	case result.IsSuccess() && result.Success.Stale:
		h.logger.InfoContext(ctx, "Ignoring stale timeout",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID(matchID.String()),
		)
		return nil
	}
	return h.reply(matchID, "", result)
}

func (h *MatchHandlers) HandleSuggestionTimeout(ctx context.Context, payload *matchevents.SuggestionTimeoutPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	result, err := h.service.ExpireSuggestion(ctx, matchservice.SuggestionTimeout{
		MatchID:     payload.MatchID,
		GameNumber:  payload.GameNumber,
		Seq:         payload.Seq,
		SuggestedBy: payload.SuggestedBy,
		Stage:       stagedomain.ID(payload.StageID),
	})
	if err != nil {
		return nil, err
	}
	return h.timeoutReply(ctx, payload.MatchID, result), nil
}

func (h *MatchHandlers) HandleConfirmationTimeout(ctx context.Context, payload *matchevents.ConfirmationTimeoutPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	result, err := h.service.ExpireConfirmation(ctx, matchservice.ConfirmationTimeout{
		MatchID:             payload.MatchID,
		GameNumber:          payload.GameNumber,
		Seq:                 payload.Seq,
		ClaimedWinner:       payload.ClaimedWinner,
		NeedsConfirmationBy: payload.NeedsConfirmationBy,
	})
	if err != nil {
		return nil, err
	}
	return h.timeoutReply(ctx, payload.MatchID, result), nil
}
