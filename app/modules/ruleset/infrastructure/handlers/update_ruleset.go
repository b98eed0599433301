package rulesethandlers

import (
	"context"
	"errors"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
)

// HandleUpdateRuleset handles the RulesetUpdateRequested event.
func (h *RulesetHandlers) HandleUpdateRuleset(ctx context.Context, payload *rulesetevents.RulesetUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	changes, err := changesFromPayload(payload)
	if err != nil {
		return failed(rulesetevents.RulesetUpdateFailedV1, payload.GuildID, payload.Name, err), nil
	}

	result, err := h.service.UpdateRuleset(ctx, payload.GuildID, payload.Name, changes)
	if err != nil {
		return nil, err
	}

	return mapRulesetResult(result, payload.GuildID, payload.Name,
		rulesetevents.RulesetUpdatedV1,
		rulesetevents.RulesetUpdateFailedV1,
	), nil
}

func changesFromPayload(p *rulesetevents.RulesetUpdateRequestedPayloadV1) (rulesetservice.Changes, error) {
	var (
		changes rulesetservice.Changes
		err     error
	)
	if changes.Starters, err = parseStages(p.Starters); err != nil {
		return changes, err
	}
	if changes.Counterpicks, err = parseStages(p.Counterpicks); err != nil {
		return changes, err
	}
	changes.CounterpickBans = p.CounterpickBans
	if p.DSRMode != nil {
		mode, err := rulesetdb.ParseDSRMode(*p.DSRMode)
		if err != nil {
			return changes, err
		}
		changes.DSR = &mode
	}
	return changes, nil
}
