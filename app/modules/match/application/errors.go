package matchservice

import (
	"errors"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
)

// ErrMatchNotFound is a failure result; the action cannot be retried.
var ErrMatchNotFound = &matchdomain.ValidationError{Code: "match_not_found", Message: "no match with that id"}

// errStaleTimeout marks a timeout that fired for a suggestion or claim that
// was already answered. Nothing is saved.
var errStaleTimeout = errors.New("stale timeout")
