package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a match does not exist.
var ErrNotFound = errors.New("match not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new match repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts a new match with its games.
func (r *Impl) Create(ctx context.Context, db bun.IDB, m *matchdomain.Match) error {
	db = r.resolveDB(db)
	row, games := toModel(m)
	if _, err := db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	if len(games) > 0 {
		if _, err := db.NewInsert().Model(&games).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert match games: %w", err)
		}
	}
	return nil
}

// Get loads a match and its games.
func (r *Impl) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*matchdomain.Match, error) {
	return r.load(ctx, r.resolveDB(db), id, false)
}

// GetForUpdate loads a match and its games, locking the match row.
func (r *Impl) GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*matchdomain.Match, error) {
	return r.load(ctx, r.resolveDB(db), id, true)
}

func (r *Impl) load(ctx context.Context, db bun.IDB, id uuid.UUID, lock bool) (*matchdomain.Match, error) {
	row := new(Match)
	q := db.NewSelect().Model(row).Where("m.id = ?", id)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	var games []*Game
	err := db.NewSelect().
		Model(&games).
		Where("g.match_id = ?", id).
		Order("g.number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get match games: %w", err)
	}
	return toDomain(row, games)
}

// Save persists the match state.
func (r *Impl) Save(ctx context.Context, db bun.IDB, m *matchdomain.Match) error {
	db = r.resolveDB(db)
	row, games := toModel(m)
	row.UpdatedAt = time.Now().UTC()

	res, err := db.NewUpdate().
		Model(row).
		ExcludeColumn("id", "guild_id", "ruleset_id", "player1_id", "player2_id", "started_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if len(games) == 0 {
		return nil
	}
	_, err = db.NewInsert().
		Model(&games).
		On("CONFLICT (match_id, number) DO UPDATE").
		Set("struck_stages = EXCLUDED.struck_stages").
		Set("suggested_stage = EXCLUDED.suggested_stage").
		Set("suggested_by = EXCLUDED.suggested_by").
		Set("last_suggested_by = EXCLUDED.last_suggested_by").
		Set("suggestion_accepted = EXCLUDED.suggestion_accepted").
		Set("suggestion_seq = EXCLUDED.suggestion_seq").
		Set("picked_stage = EXCLUDED.picked_stage").
		Set("claimed_winner = EXCLUDED.claimed_winner").
		Set("claim_seq = EXCLUDED.claim_seq").
		Set("needs_confirmation_by = EXCLUDED.needs_confirmation_by").
		Set("winner_id = EXCLUDED.winner_id").
		Set("player1_fighter = EXCLUDED.player1_fighter").
		Set("player2_fighter = EXCLUDED.player2_fighter").
		Set("player1_fighter_locked = EXCLUDED.player1_fighter_locked").
		Set("player2_fighter_locked = EXCLUDED.player2_fighter_locked").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save match games: %w", err)
	}
	return nil
}

// ListActive returns unfinished matches of a guild, newest first.
func (r *Impl) ListActive(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID) ([]*matchdomain.Match, error) {
	db = r.resolveDB(db)

	var rows []*Match
	q := db.NewSelect().
		Model(&rows).
		Relation("Games", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("g.number ASC")
		}).
		Where("m.guild_id = ?", guildID).
		Where("m.status = ?", matchdomain.StatusInProgress.String()).
		Order("m.started_at DESC")
	if playerID != "" {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("m.player1_id = ?", playerID).WhereOr("m.player2_id = ?", playerID)
		})
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list active matches: %w", err)
	}

	out := make([]*matchdomain.Match, 0, len(rows))
	for _, row := range rows {
		m, err := toDomain(row, row.Games)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
