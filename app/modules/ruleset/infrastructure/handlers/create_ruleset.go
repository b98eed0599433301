package rulesethandlers

import (
	"context"
	"errors"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
)

// HandleCreateRuleset handles the RulesetCreateRequested event.
func (h *RulesetHandlers) HandleCreateRuleset(ctx context.Context, payload *rulesetevents.RulesetCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	def, err := definitionFromPayload(payload)
	if err != nil {
		return failed(rulesetevents.RulesetCreateFailedV1, payload.GuildID, payload.Name, err), nil
	}

	result, err := h.service.CreateRuleset(ctx, def)
	if err != nil {
		return nil, err
	}

	return mapRulesetResult(result, payload.GuildID, payload.Name,
		rulesetevents.RulesetCreatedV1,
		rulesetevents.RulesetCreateFailedV1,
	), nil
}

func definitionFromPayload(p *rulesetevents.RulesetCreateRequestedPayloadV1) (rulesetservice.Definition, error) {
	starters, err := parseStages(p.Starters)
	if err != nil {
		return rulesetservice.Definition{}, err
	}
	counterpicks, err := parseStages(p.Counterpicks)
	if err != nil {
		return rulesetservice.Definition{}, err
	}
	mode := rulesetdomain.DSROn
	if p.DSRMode != "" {
		if mode, err = rulesetdb.ParseDSRMode(p.DSRMode); err != nil {
			return rulesetservice.Definition{}, err
		}
	}
	return rulesetservice.Definition{
		GuildID:         p.GuildID,
		Name:            p.Name,
		Starters:        starters,
		Counterpicks:    counterpicks,
		CounterpickBans: p.CounterpickBans,
		DSR:             mode,
	}, nil
}
