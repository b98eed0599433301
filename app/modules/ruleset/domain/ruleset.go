// Package rulesetdomain holds the per-community match configuration.
package rulesetdomain

import (
	"errors"
	"fmt"
	"slices"
	"time"

	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
)

// DSRMode selects how Dave's Stage Rule restricts counterpicks.
type DSRMode int

const (
	// DSROff disables the rule.
	DSROff DSRMode = iota
	// DSROn forbids every stage the picker has won on in this match.
	DSROn
	// DSRModified forbids only the stage the picker most recently won on.
	DSRModified
)

// Valid reports whether m is one of the declared modes.
func (m DSRMode) Valid() bool {
	return m >= DSROff && m <= DSRModified
}

// DefaultName is the name of the ruleset created for a new community.
const DefaultName = "default"

// DefaultCounterpickBans is the ban count of the default ruleset.
const DefaultCounterpickBans = 2

// Ruleset is one immutable version of a community's match rules.
// Editing a ruleset produces a new version; matches keep referencing the
// version they were created with.
type Ruleset struct {
	ID              uuid.UUID
	GuildID         sharedtypes.GuildID
	Name            string
	Version         int
	Starters        []stagedomain.ID
	Counterpicks    []stagedomain.ID
	CounterpickBans int
	DSR             DSRMode
	CreatedAt       time.Time
}

var (
	ErrNoStarters       = errors.New("ruleset needs at least one starter stage")
	ErrUnknownStage     = errors.New("ruleset references an unknown stage")
	ErrDuplicateStage   = errors.New("ruleset lists a stage twice")
	ErrOverlappingPools = errors.New("starter and counterpick stages must be disjoint")
	ErrTooManyBans      = errors.New("counterpick bans must leave at least two stages to pick from")
	ErrNegativeBans     = errors.New("counterpick bans cannot be negative")
	ErrInvalidDSRMode   = errors.New("invalid DSR mode")
	ErrMissingName      = errors.New("ruleset name is required")
	ErrMissingGuild     = errors.New("guild id is required")
)

// Default returns the ruleset a community starts with.
func Default(guildID sharedtypes.GuildID) Ruleset {
	return Ruleset{
		GuildID:         guildID,
		Name:            DefaultName,
		Version:         1,
		Starters:        stagedomain.DefaultStarters(),
		Counterpicks:    stagedomain.DefaultCounterpicks(),
		CounterpickBans: DefaultCounterpickBans,
		DSR:             DSROn,
	}
}

// Validate checks the structural invariants of the ruleset.
func (r Ruleset) Validate() error {
	if r.GuildID == "" {
		return ErrMissingGuild
	}
	if r.Name == "" {
		return ErrMissingName
	}
	if len(r.Starters) == 0 {
		return ErrNoStarters
	}
	if !r.DSR.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDSRMode, int(r.DSR))
	}
	if r.CounterpickBans < 0 {
		return ErrNegativeBans
	}

	seen := stagedomain.NewSet()
	for _, id := range r.Starters {
		if err := checkStage(seen, id); err != nil {
			return err
		}
	}
	for _, id := range r.Counterpicks {
		if slices.Contains(r.Starters, id) {
			return fmt.Errorf("%w: %s", ErrOverlappingPools, id.Name())
		}
		if err := checkStage(seen, id); err != nil {
			return err
		}
	}

	if r.CounterpickBans >= len(r.Starters)+len(r.Counterpicks)-1 {
		return fmt.Errorf("%w: %d bans for %d stages", ErrTooManyBans, r.CounterpickBans, seen.Len())
	}
	return nil
}

func checkStage(seen stagedomain.Set, id stagedomain.ID) error {
	if !stagedomain.Exists(id) {
		return fmt.Errorf("%w: %d", ErrUnknownStage, int(id))
	}
	if seen.Contains(id) {
		return fmt.Errorf("%w: %s", ErrDuplicateStage, id.Name())
	}
	seen.Add(id)
	return nil
}

// StageList is the numbered list players refer to: starters followed by
// counterpicks.
func (r Ruleset) StageList() []stagedomain.ID {
	out := make([]stagedomain.ID, 0, len(r.Starters)+len(r.Counterpicks))
	out = append(out, r.Starters...)
	return append(out, r.Counterpicks...)
}

// StagePool returns the stages in play for the given game number.
func (r Ruleset) StagePool(gameNumber int) []stagedomain.ID {
	if gameNumber <= 1 {
		return slices.Clone(r.Starters)
	}
	return r.StageList()
}

// InPool reports whether id may be struck or picked in the given game.
func (r Ruleset) InPool(gameNumber int, id stagedomain.ID) bool {
	return slices.Contains(r.StagePool(gameNumber), id)
}

// StrikesRequired is the number of strikes before the stage is settled.
func (r Ruleset) StrikesRequired(gameNumber int) int {
	if gameNumber <= 1 {
		return len(r.Starters) - 1
	}
	return r.CounterpickBans
}

// StageByNumber resolves a 1-based position in StageList.
func (r Ruleset) StageByNumber(n int) (stagedomain.ID, bool) {
	list := r.StageList()
	if n < 1 || n > len(list) {
		return 0, false
	}
	return list[n-1], true
}

// NextVersion copies r as the following version with a fresh id.
func (r Ruleset) NextVersion(id uuid.UUID, now time.Time) Ruleset {
	next := r
	next.ID = id
	next.Version = r.Version + 1
	next.Starters = slices.Clone(r.Starters)
	next.Counterpicks = slices.Clone(r.Counterpicks)
	next.CreatedAt = now
	return next
}
