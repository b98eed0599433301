package rulesethandlers

import (
	"context"
	"errors"

	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
)

// HandleListRulesets handles the RulesetListRequested event.
func (h *RulesetHandlers) HandleListRulesets(ctx context.Context, payload *rulesetevents.RulesetListRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ListRulesets(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return failed(rulesetevents.RulesetListFailedV1, payload.GuildID, "", *result.Failure), nil
	}

	listed := rulesetevents.RulesetListedPayloadV1{
		GuildID:  payload.GuildID,
		Rulesets: make([]rulesetevents.RulesetV1, 0, len(*result.Success)),
	}
	for _, rs := range *result.Success {
		listed.Rulesets = append(listed.Rulesets, toWire(rs))
	}
	return []handlerwrapper.Result{{Topic: rulesetevents.RulesetListedV1, Payload: listed}}, nil
}
