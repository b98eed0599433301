package rulesethandlers

import (
	"context"
	"errors"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
)

// HandleRetrieveRuleset handles the RulesetRetrievalRequested event. An id
// selects an exact version; otherwise the latest version of the name (or of
// the default ruleset) is returned.
func (h *RulesetHandlers) HandleRetrieveRuleset(ctx context.Context, payload *rulesetevents.RulesetRetrievalRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	var (
		result rulesetservice.RulesetResult
		err    error
	)
	switch {
	case payload.RulesetID != nil:
		result, err = h.service.GetRuleset(ctx, *payload.RulesetID)
	case payload.Name == "" || payload.Name == rulesetdomain.DefaultName:
		result, err = h.service.EnsureDefaultRuleset(ctx, payload.GuildID)
	default:
		result, err = h.service.GetLatestRuleset(ctx, payload.GuildID, payload.Name)
	}
	if err != nil {
		return nil, err
	}

	return mapRulesetResult(result, payload.GuildID, payload.Name,
		rulesetevents.RulesetRetrievedV1,
		rulesetevents.RulesetRetrievalFailedV1,
	), nil
}
