package rulesetdb

import (
	"fmt"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
)

// FormatDSRMode returns the stored and wire form of a DSR mode.
func FormatDSRMode(m rulesetdomain.DSRMode) string {
	switch m {
	case rulesetdomain.DSROn:
		return "on"
	case rulesetdomain.DSRModified:
		return "modified"
	default:
		return "off"
	}
}

// ParseDSRMode is the inverse of FormatDSRMode.
func ParseDSRMode(s string) (rulesetdomain.DSRMode, error) {
	switch s {
	case "off":
		return rulesetdomain.DSROff, nil
	case "on":
		return rulesetdomain.DSROn, nil
	case "modified":
		return rulesetdomain.DSRModified, nil
	default:
		return rulesetdomain.DSROff, fmt.Errorf("%w: %q", rulesetdomain.ErrInvalidDSRMode, s)
	}
}
