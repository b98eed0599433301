package ratinghandlers

import (
	"context"
	"errors"
	"log/slog"

	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	ratingevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/rating"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
)

// RatingHandlers implements the Handlers interface for rating events.
type RatingHandlers struct {
	service ratingservice.Service
	logger  *slog.Logger
}

// NewRatingHandlers creates a new RatingHandlers instance.
func NewRatingHandlers(service ratingservice.Service, logger *slog.Logger) *RatingHandlers {
	return &RatingHandlers{
		service: service,
		logger:  logger,
	}
}

// ToWire converts a rating to its payload form.
func ToWire(r ratingdomain.Rating) ratingevents.RatingV1 {
	return ratingevents.RatingV1{Mu: r.Mu, Phi: r.Phi, Sigma: r.Sigma}
}

func failed(topic string, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: topic,
		Payload: ratingevents.RatingFailedPayloadV1{
			GuildID:  guildID,
			PlayerID: playerID,
			Reason:   err.Error(),
		},
	}}
}

// HandleRetrieveRating handles the RatingRetrievalRequested event.
func (h *RatingHandlers) HandleRetrieveRating(ctx context.Context, payload *ratingevents.RatingRetrievalRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	scope, err := ratingdomain.ParseScope(payload.Scope)
	if err != nil {
		return failed(ratingevents.RatingRetrievalFailedV1, payload.GuildID, payload.PlayerID, err), nil
	}

	result, err := h.service.GetRating(ctx, payload.GuildID, payload.PlayerID, scope)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return failed(ratingevents.RatingRetrievalFailedV1, payload.GuildID, payload.PlayerID, *result.Failure), nil
	}

	pr := *result.Success
	return []handlerwrapper.Result{{
		Topic: ratingevents.RatingRetrievedV1,
		Payload: ratingevents.RatingRetrievedPayloadV1{
			GuildID:      payload.GuildID,
			PlayerID:     pr.PlayerID,
			Scope:        string(pr.Scope),
			Rating:       ToWire(pr.Rating),
			MatchesRated: pr.MatchesRated,
			UpdatedAt:    pr.UpdatedAt,
		},
	}}, nil
}

// HandleRetrieveLeaderboard handles the LeaderboardRequested event.
func (h *RatingHandlers) HandleRetrieveLeaderboard(ctx context.Context, payload *ratingevents.LeaderboardRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	scope, err := ratingdomain.ParseScope(payload.Scope)
	if err != nil {
		return failed(ratingevents.LeaderboardRetrievalFailedV1, payload.GuildID, "", err), nil
	}

	result, err := h.service.GetLeaderboard(ctx, payload.GuildID, scope, payload.Limit)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return failed(ratingevents.LeaderboardRetrievalFailedV1, payload.GuildID, "", *result.Failure), nil
	}

	out := ratingevents.LeaderboardRetrievedPayloadV1{
		GuildID: payload.GuildID,
		Scope:   string(scope),
		Entries: make([]ratingevents.LeaderboardEntryV1, 0, len(*result.Success)),
	}
	for _, e := range *result.Success {
		out.Entries = append(out.Entries, ratingevents.LeaderboardEntryV1{
			Rank:         e.Rank,
			PlayerID:     e.PlayerID,
			Rating:       ToWire(e.Rating),
			MatchesRated: e.MatchesRated,
		})
	}
	return []handlerwrapper.Result{{Topic: ratingevents.LeaderboardRetrievedV1, Payload: out}}, nil
}

// HandleMatchQuality handles the QualityRequested event.
func (h *RatingHandlers) HandleMatchQuality(ctx context.Context, payload *ratingevents.QualityRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.MatchQuality(ctx, payload.GuildID, payload.Player1, payload.Player2)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return failed(ratingevents.QualityFailedV1, payload.GuildID, payload.Player1, *result.Failure), nil
	}

	return []handlerwrapper.Result{{
		Topic: ratingevents.QualityCalculatedV1,
		Payload: ratingevents.QualityCalculatedPayloadV1{
			GuildID: payload.GuildID,
			Player1: payload.Player1,
			Player2: payload.Player2,
			Quality: *result.Success,
		},
	}}, nil
}
