package rulesethandlers

import (
	"context"

	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
)

// Handlers defines the contract for ruleset event handlers.
type Handlers interface {
	HandleCreateRuleset(ctx context.Context, payload *rulesetevents.RulesetCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleUpdateRuleset(ctx context.Context, payload *rulesetevents.RulesetUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRetrieveRuleset(ctx context.Context, payload *rulesetevents.RulesetRetrievalRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleListRulesets(ctx context.Context, payload *rulesetevents.RulesetListRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
