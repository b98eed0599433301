package rulesetservice

import (
	"context"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type (
	RulesetResult     = results.OperationResult[rulesetdomain.Ruleset, error]
	RulesetListResult = results.OperationResult[[]rulesetdomain.Ruleset, error]
)

// Service defines the ruleset operations.
type Service interface {
	CreateRuleset(ctx context.Context, def Definition) (RulesetResult, error)
	UpdateRuleset(ctx context.Context, guildID sharedtypes.GuildID, name string, changes Changes) (RulesetResult, error)
	GetRuleset(ctx context.Context, id uuid.UUID) (RulesetResult, error)
	GetLatestRuleset(ctx context.Context, guildID sharedtypes.GuildID, name string) (RulesetResult, error)
	ListRulesets(ctx context.Context, guildID sharedtypes.GuildID) (RulesetListResult, error)
	EnsureDefaultRuleset(ctx context.Context, guildID sharedtypes.GuildID) (RulesetResult, error)

	// Load and Resolve run inside the caller's transaction.
	Load(ctx context.Context, db bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error)
	Resolve(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error)
}

// Definition describes the first version of a ruleset.
type Definition struct {
	GuildID         sharedtypes.GuildID
	Name            string
	Starters        []stagedomain.ID
	Counterpicks    []stagedomain.ID
	CounterpickBans int
	DSR             rulesetdomain.DSRMode
}

// Changes are applied on top of the latest version. A nil field keeps the
// current value; an empty non-nil slice clears it.
type Changes struct {
	Starters        []stagedomain.ID
	Counterpicks    []stagedomain.ID
	CounterpickBans *int
	DSR             *rulesetdomain.DSRMode
}
