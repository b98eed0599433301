package ratinghandlers

import (
	"context"

	ratingevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/rating"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
)

// Handlers defines the contract for rating event handlers.
type Handlers interface {
	HandleRetrieveRating(ctx context.Context, payload *ratingevents.RatingRetrievalRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRetrieveLeaderboard(ctx context.Context, payload *ratingevents.LeaderboardRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleMatchQuality(ctx context.Context, payload *ratingevents.QualityRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
