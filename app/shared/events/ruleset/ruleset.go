// Package rulesetevents defines the ruleset topics and their payloads.
package rulesetevents

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

const (
	RulesetCreateRequestedV1 = "ruleset.create.requested.v1"
	RulesetCreatedV1         = "ruleset.created.v1"
	RulesetCreateFailedV1    = "ruleset.create.failed.v1"

	RulesetUpdateRequestedV1 = "ruleset.update.requested.v1"
	RulesetUpdatedV1         = "ruleset.updated.v1"
	RulesetUpdateFailedV1    = "ruleset.update.failed.v1"

	RulesetRetrievalRequestedV1 = "ruleset.retrieval.requested.v1"
	RulesetRetrievedV1          = "ruleset.retrieved.v1"
	RulesetRetrievalFailedV1    = "ruleset.retrieval.failed.v1"

	RulesetListRequestedV1 = "ruleset.list.requested.v1"
	RulesetListedV1        = "ruleset.listed.v1"
	RulesetListFailedV1    = "ruleset.list.failed.v1"
)

// RulesetV1 is the wire form of one ruleset version.
type RulesetV1 struct {
	ID              uuid.UUID           `json:"id"`
	GuildID         sharedtypes.GuildID `json:"guild_id"`
	Name            string              `json:"name"`
	Version         int                 `json:"version"`
	Starters        []StageV1           `json:"starters"`
	Counterpicks    []StageV1           `json:"counterpicks"`
	CounterpickBans int                 `json:"counterpick_bans"`
	DSRMode         string              `json:"dsr_mode"`
	CreatedAt       time.Time           `json:"created_at"`
}

type StageV1 struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RulesetCreateRequestedPayloadV1 creates the first version of a named
// ruleset. Stages are given by name or alias.
type RulesetCreateRequestedPayloadV1 struct {
	GuildID         sharedtypes.GuildID `json:"guild_id"`
	Name            string              `json:"name"`
	Starters        []string            `json:"starters"`
	Counterpicks    []string            `json:"counterpicks"`
	CounterpickBans int                 `json:"counterpick_bans"`
	DSRMode         string              `json:"dsr_mode"`
}

// RulesetUpdateRequestedPayloadV1 writes a new version. Omitted fields keep
// the value of the latest version.
type RulesetUpdateRequestedPayloadV1 struct {
	GuildID         sharedtypes.GuildID `json:"guild_id"`
	Name            string              `json:"name"`
	Starters        []string            `json:"starters,omitempty"`
	Counterpicks    []string            `json:"counterpicks,omitempty"`
	CounterpickBans *int                `json:"counterpick_bans,omitempty"`
	DSRMode         *string             `json:"dsr_mode,omitempty"`
}

// RulesetRetrievalRequestedPayloadV1 looks a ruleset up by id, or by name for
// its latest version.
type RulesetRetrievalRequestedPayloadV1 struct {
	GuildID   sharedtypes.GuildID `json:"guild_id"`
	RulesetID *uuid.UUID          `json:"ruleset_id,omitempty"`
	Name      string              `json:"name,omitempty"`
}

type RulesetListRequestedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

type RulesetPayloadV1 struct {
	Ruleset RulesetV1 `json:"ruleset"`
}

type RulesetListedPayloadV1 struct {
	GuildID  sharedtypes.GuildID `json:"guild_id"`
	Rulesets []RulesetV1         `json:"rulesets"`
}

type RulesetFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Name    string              `json:"name,omitempty"`
	Reason  string              `json:"reason"`
}
