package stagedomain

import (
	"errors"
	"fmt"
)

// FighterID identifies a playable fighter.
type FighterID int

// ErrUnknownFighter is returned when a name does not match the roster.
var ErrUnknownFighter = errors.New("unknown fighter")

// Name returns the display name of the fighter.
func (f FighterID) Name() string {
	if name, ok := fighterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Fighter #%d", int(f))
}

func (f FighterID) String() string { return f.Name() }

// FighterExists reports whether f is part of the roster.
func FighterExists(f FighterID) bool {
	_, ok := fighterNames[f]
	return ok
}

var fighterLookup = buildLookup(fighterNames, fighterAliases)

// ParseFighter resolves a fighter from its name or a nickname, ignoring case.
func ParseFighter(text string) (FighterID, error) {
	if id, ok := fighterLookup[normalize(text)]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFighter, text)
}
