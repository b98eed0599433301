package rulesetdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	rulesetdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/ruleset/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a ruleset is not found.
	ErrNotFound = errors.New("ruleset not found")
	// ErrDuplicate is returned when a version already exists.
	ErrDuplicate = errors.New("ruleset version already exists")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new ruleset repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create stores a new ruleset version.
func (r *Impl) Create(ctx context.Context, db bun.IDB, rs rulesetdomain.Ruleset) error {
	db = r.resolveDB(db)
	model := toModel(rs)
	if _, err := db.NewInsert().Model(model).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create ruleset: %w", err)
	}
	return nil
}

// GetByID retrieves a specific ruleset version.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (rulesetdomain.Ruleset, error) {
	db = r.resolveDB(db)
	model := new(Ruleset)
	err := db.NewSelect().
		Model(model).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rulesetdomain.Ruleset{}, ErrNotFound
		}
		return rulesetdomain.Ruleset{}, fmt.Errorf("failed to get ruleset by id: %w", err)
	}
	return toDomain(model)
}

// GetLatest retrieves the highest version of a named ruleset.
func (r *Impl) GetLatest(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (rulesetdomain.Ruleset, error) {
	db = r.resolveDB(db)
	model := new(Ruleset)
	err := db.NewSelect().
		Model(model).
		Where("guild_id = ?", guildID).
		Where("name = ?", name).
		Order("version DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rulesetdomain.Ruleset{}, ErrNotFound
		}
		return rulesetdomain.Ruleset{}, fmt.Errorf("failed to get latest ruleset: %w", err)
	}
	return toDomain(model)
}

// ListLatest returns the latest version of each ruleset in a guild.
func (r *Impl) ListLatest(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]rulesetdomain.Ruleset, error) {
	db = r.resolveDB(db)
	var models []Ruleset
	err := db.NewSelect().
		Model(&models).
		DistinctOn("name").
		Where("guild_id = ?", guildID).
		OrderExpr("name ASC, version DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rulesets: %w", err)
	}

	out := make([]rulesetdomain.Ruleset, 0, len(models))
	for i := range models {
		rs, err := toDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

func toModel(rs rulesetdomain.Ruleset) *Ruleset {
	return &Ruleset{
		ID:              rs.ID,
		GuildID:         rs.GuildID,
		Name:            rs.Name,
		Version:         rs.Version,
		Starters:        fromStages(rs.Starters),
		Counterpicks:    fromStages(rs.Counterpicks),
		CounterpickBans: rs.CounterpickBans,
		DSRMode:         FormatDSRMode(rs.DSR),
		CreatedAt:       rs.CreatedAt,
	}
}

func toDomain(m *Ruleset) (rulesetdomain.Ruleset, error) {
	mode, err := ParseDSRMode(m.DSRMode)
	if err != nil {
		return rulesetdomain.Ruleset{}, fmt.Errorf("ruleset %s: %w", m.ID, err)
	}
	return rulesetdomain.Ruleset{
		ID:              m.ID,
		GuildID:         m.GuildID,
		Name:            m.Name,
		Version:         m.Version,
		Starters:        toStages(m.Starters),
		Counterpicks:    toStages(m.Counterpicks),
		CounterpickBans: m.CounterpickBans,
		DSR:             mode,
		CreatedAt:       m.CreatedAt,
	}, nil
}

func fromStages(ids []stagedomain.ID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

func toStages(ids []int) []stagedomain.ID {
	out := make([]stagedomain.ID, len(ids))
	for i, id := range ids {
		out[i] = stagedomain.ID(id)
	}
	return out
}
