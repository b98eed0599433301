package ratinghandlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the read-only rating API.
func (h *RatingHandlers) Routes(r chi.Router) {
	r.Get("/{guildID}/leaderboard", h.HandleHTTPLeaderboard)
	r.Get("/{guildID}/{playerID}", h.HandleHTTPRating)
	r.Get("/{guildID}/{playerID}/chart.png", h.HandleHTTPChart)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func scopeParam(r *http.Request) (ratingdomain.Scope, error) {
	return ratingdomain.ParseScope(r.URL.Query().Get("scope"))
}

// HandleHTTPLeaderboard serves GET /{guildID}/leaderboard?scope=&limit=.
func (h *RatingHandlers) HandleHTTPLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID := sharedtypes.GuildID(chi.URLParam(r, "guildID"))

	scope, err := scopeParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.GetLeaderboard(ctx, guildID, scope, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "Leaderboard request failed", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		http.Error(w, (*result.Failure).Error(), http.StatusBadRequest)
		return
	}

	entries := make([]map[string]any, 0, len(*result.Success))
	for _, e := range *result.Success {
		entries = append(entries, map[string]any{
			"rank":          e.Rank,
			"player_id":     e.PlayerID,
			"rating":        ToWire(e.Rating),
			"matches_rated": e.MatchesRated,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"guild_id": guildID,
		"scope":    scope,
		"entries":  entries,
	})
}

// HandleHTTPRating serves GET /{guildID}/{playerID}?scope=.
func (h *RatingHandlers) HandleHTTPRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID := sharedtypes.GuildID(chi.URLParam(r, "guildID"))
	playerID := sharedtypes.PlayerID(chi.URLParam(r, "playerID"))

	scope, err := scopeParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.GetRating(ctx, guildID, playerID, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "Rating request failed", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		http.Error(w, (*result.Failure).Error(), http.StatusBadRequest)
		return
	}

	pr := *result.Success
	writeJSON(w, http.StatusOK, map[string]any{
		"guild_id":      guildID,
		"player_id":     pr.PlayerID,
		"scope":         pr.Scope,
		"rating":        ToWire(pr.Rating),
		"matches_rated": pr.MatchesRated,
	})
}

// HandleHTTPChart serves GET /{guildID}/{playerID}/chart.png?scope=.
func (h *RatingHandlers) HandleHTTPChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID := sharedtypes.GuildID(chi.URLParam(r, "guildID"))
	playerID := sharedtypes.PlayerID(chi.URLParam(r, "playerID"))

	scope, err := scopeParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	png, err := h.service.RenderHistoryChart(ctx, guildID, playerID, scope)
	if err != nil {
		if errors.Is(err, ratingservice.ErrMissingGuild) || errors.Is(err, ratingservice.ErrMissingPlayer) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "Chart request failed", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}
