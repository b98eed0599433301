package rulesetservice

import "errors"

var (
	// ErrRulesetNotFound is a domain failure; handlers publish it instead of retrying.
	ErrRulesetNotFound = errors.New("ruleset not found")
	// ErrRulesetExists is returned when creating a name that is already taken.
	ErrRulesetExists = errors.New("ruleset already exists")
)
