package rulesethandlers

import (
	"log/slog"

	rulesetservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/application"
	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	rulesetdb "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/infrastructure/repositories"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	rulesetevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/ruleset"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// RulesetHandlers implements the Handlers interface for ruleset events.
type RulesetHandlers struct {
	service rulesetservice.Service
	logger  *slog.Logger
}

// NewRulesetHandlers creates a new RulesetHandlers instance.
func NewRulesetHandlers(service rulesetservice.Service, logger *slog.Logger) *RulesetHandlers {
	return &RulesetHandlers{
		service: service,
		logger:  logger,
	}
}

// mapRulesetResult publishes the ruleset on successTopic or the failure
// reason on failureTopic.
func mapRulesetResult(
	result rulesetservice.RulesetResult,
	guildID sharedtypes.GuildID,
	name string,
	successTopic, failureTopic string,
) []handlerwrapper.Result {
	switch {
	case result.IsSuccess():
		return []handlerwrapper.Result{{
			Topic:   successTopic,
			Payload: rulesetevents.RulesetPayloadV1{Ruleset: toWire(*result.Success)},
		}}
	case result.IsFailure():
		return failed(failureTopic, guildID, name, *result.Failure)
	default:
		return nil
	}
}

func failed(topic string, guildID sharedtypes.GuildID, name string, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: topic,
		Payload: rulesetevents.RulesetFailedPayloadV1{
			GuildID: guildID,
			Name:    name,
			Reason:  err.Error(),
		},
	}}
}

func toWire(rs rulesetdomain.Ruleset) rulesetevents.RulesetV1 {
	return rulesetevents.RulesetV1{
		ID:              rs.ID,
		GuildID:         rs.GuildID,
		Name:            rs.Name,
		Version:         rs.Version,
		Starters:        stagesToWire(rs.Starters),
		Counterpicks:    stagesToWire(rs.Counterpicks),
		CounterpickBans: rs.CounterpickBans,
		DSRMode:         rulesetdb.FormatDSRMode(rs.DSR),
		CreatedAt:       rs.CreatedAt,
	}
}

func stagesToWire(ids []stagedomain.ID) []rulesetevents.StageV1 {
	out := make([]rulesetevents.StageV1, len(ids))
	for i, id := range ids {
		out[i] = rulesetevents.StageV1{ID: int(id), Name: id.Name()}
	}
	return out
}

// parseStages resolves stage names. A nil input stays nil so that updates
// can tell "unchanged" from "cleared".
func parseStages(names []string) ([]stagedomain.ID, error) {
	if names == nil {
		return nil, nil
	}
	out := make([]stagedomain.ID, 0, len(names))
	for _, n := range names {
		id, err := stagedomain.Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
