// Package stagedomain is the static stage and fighter reference data.
package stagedomain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ID identifies a stage in the roster.
type ID int

// Stage is an immutable roster entry.
type Stage struct {
	ID    ID
	Name  string
	Legal bool
}

func (s Stage) String() string { return s.Name }

// Well-known stage IDs.
const (
	Battlefield        ID = 1
	SmallBattlefield   ID = 2
	FinalDestination   ID = 4
	YoshisStory        ID = 20
	PokemonStadium     ID = 25
	WarioWare          ID = 34
	YoshisIsland       ID = 38
	LylatCruise        ID = 40
	PokemonStadium2    ID = 41
	Smashville         ID = 45
	UnovaPokemonLeague ID = 63
	Skyloft            ID = 78
	KalosPokemonLeague ID = 80
	TownAndCity        ID = 86
	YggdrasilsAltar    ID = 106
	NorthernCave       ID = 112
)

// Stages at tier 3 or better on the competitive legality list.
var legalStages = []ID{
	Battlefield, SmallBattlefield, FinalDestination, YoshisStory, PokemonStadium,
	WarioWare, YoshisIsland, LylatCruise, PokemonStadium2, Smashville,
	UnovaPokemonLeague, Skyloft, KalosPokemonLeague, TownAndCity,
	YggdrasilsAltar, NorthernCave,
}

var defaultStarters = []ID{Battlefield, FinalDestination, PokemonStadium2, Smashville, TownAndCity}

var defaultCounterpicks = []ID{SmallBattlefield, YoshisStory, KalosPokemonLeague}

// BannedForms lists stage forms that are never played, with the reason.
var BannedForms = map[ID]string{
	21:  "Framerate issues",
	55:  "2D",
	62:  "2D",
	65:  "2D",
	82:  "2D",
	84:  "Camera Issues",
	90:  "2D",
	92:  "Camera Issues",
	94:  "Grass covers objects",
	96:  "2D",
	97:  "2D",
	109: "Slightly lowered ceiling",
}

// ErrUnknownStage is returned when an id or name does not match the roster.
var ErrUnknownStage = errors.New("unknown stage")

// Lookup returns the stage with the given id.
func Lookup(id ID) (Stage, bool) {
	name, ok := stageNames[id]
	if !ok {
		return Stage{}, false
	}
	return Stage{ID: id, Name: name, Legal: IsLegal(id)}, true
}

// MustStage is Lookup for ids known at compile time.
func MustStage(id ID) Stage {
	s, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("stage %d not in roster", id))
	}
	return s
}

// Exists reports whether id is part of the roster.
func Exists(id ID) bool {
	_, ok := stageNames[id]
	return ok
}

// Name returns the display name of id, or a placeholder for unknown ids.
func (id ID) Name() string {
	if name, ok := stageNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Stage #%d", int(id))
}

func (id ID) String() string { return id.Name() }

// IsLegal reports whether id is on the competitive legality list.
func IsLegal(id ID) bool {
	return slices.Contains(legalStages, id)
}

// LegalStages returns the legal stages in roster order.
func LegalStages() []ID { return slices.Clone(legalStages) }

// DefaultStarters returns the default starter stage list.
func DefaultStarters() []ID { return slices.Clone(defaultStarters) }

// DefaultCounterpicks returns the default counterpick stage list.
func DefaultCounterpicks() []ID { return slices.Clone(defaultCounterpicks) }

var stageLookup = buildLookup(stageNames, stageAliases)

// Parse resolves a stage from its name or an alias, ignoring case.
// Numbers are not accepted: a number refers to a position in a match's stage
// list and is resolved by the caller.
func Parse(text string) (ID, error) {
	key := normalize(text)
	if id, ok := stageLookup[key]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStage, text)
}

func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "’", "'")
	s = strings.ReplaceAll(s, "pokemon", "pokémon")
	return s
}

func buildLookup[K ~int](names map[K]string, aliases map[string]K) map[string]K {
	out := make(map[string]K, len(names)+len(aliases))
	for id, name := range names {
		out[normalize(name)] = id
	}
	for alias, id := range aliases {
		out[normalize(alias)] = id
	}
	return out
}
