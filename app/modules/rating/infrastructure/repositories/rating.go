package ratingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a player has no rating on a ladder.
var ErrNotFound = errors.New("rating not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new rating repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) selectRating(db bun.IDB, key Key, model *PlayerRating) *bun.SelectQuery {
	return db.NewSelect().
		Model(model).
		Where("scope = ?", key.Scope).
		Where("guild_id = ?", key.GuildID).
		Where("player_id = ?", key.PlayerID)
}

// GetRating retrieves a player's rating.
func (r *Impl) GetRating(ctx context.Context, db bun.IDB, key Key) (*PlayerRating, error) {
	model := new(PlayerRating)
	if err := r.selectRating(r.resolveDB(db), key, model).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return model, nil
}

// GetRatingForUpdate retrieves a player's rating and locks the row.
func (r *Impl) GetRatingForUpdate(ctx context.Context, db bun.IDB, key Key) (*PlayerRating, error) {
	model := new(PlayerRating)
	if err := r.selectRating(r.resolveDB(db), key, model).For("UPDATE").Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock rating: %w", err)
	}
	return model, nil
}

// InsertRatingIfAbsent creates the rating row unless it exists.
func (r *Impl) InsertRatingIfAbsent(ctx context.Context, db bun.IDB, rating *PlayerRating) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(rating).
		On("CONFLICT (scope, guild_id, player_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}
	return nil
}

// UpsertRating creates or replaces a player's rating.
func (r *Impl) UpsertRating(ctx context.Context, db bun.IDB, rating *PlayerRating) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(rating).
		On("CONFLICT (scope, guild_id, player_id) DO UPDATE").
		Set("mu = EXCLUDED.mu").
		Set("phi = EXCLUDED.phi").
		Set("sigma = EXCLUDED.sigma").
		Set("matches_rated = EXCLUDED.matches_rated").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

// ListResults returns a player's recorded results, newest first.
func (r *Impl) ListResults(ctx context.Context, db bun.IDB, key Key, limit int) ([]MatchResult, error) {
	db = r.resolveDB(db)
	var rows []MatchResult
	q := db.NewSelect().
		Model(&rows).
		Where("scope = ?", key.Scope).
		Where("guild_id = ?", key.GuildID).
		Where("player_id = ?", key.PlayerID).
		OrderExpr("recorded_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list rating results: %w", err)
	}
	return rows, nil
}

// InsertResults appends result rows.
func (r *Impl) InsertResults(ctx context.Context, db bun.IDB, results []MatchResult) error {
	if len(results) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(&results).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert rating results: %w", err)
	}
	return nil
}

// Leaderboard returns the top rated players of a ladder.
func (r *Impl) Leaderboard(ctx context.Context, db bun.IDB, scope ratingdomain.Scope, guildID sharedtypes.GuildID, limit int) ([]PlayerRating, error) {
	db = r.resolveDB(db)
	var rows []PlayerRating
	err := db.NewSelect().
		Model(&rows).
		Where("scope = ?", scope).
		Where("guild_id = ?", guildID).
		Where("matches_rated > 0").
		OrderExpr("mu DESC, phi ASC, player_id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return rows, nil
}
