package ratingservice

import "errors"

var (
	ErrMissingGuild  = errors.New("guild id is required")
	ErrMissingPlayer = errors.New("player id is required")
	ErrSamePlayer    = errors.New("a player cannot be rated against themselves")
	ErrNegativeScore = errors.New("scores cannot be negative")
)
