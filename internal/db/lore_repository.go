package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/slays/internal/flags"
)

// LoreRepository хранит lore монстров: одна строка на расу.
type LoreRepository struct {
	db *pgxpool.Pool
}

// NewLoreRepository creates a new LoreRepository.
func NewLoreRepository(db *pgxpool.Pool) *LoreRepository {
	return &LoreRepository{db: db}
}

// Load returns the stored lore flags of a race. ok is false if none are stored.
func (r *LoreRepository) Load(ctx context.Context, raceID int32) (flags.Set, bool, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT flags FROM monster_lore WHERE race_id = $1`, raceID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return flags.Set{}, false, nil
		}
		return flags.Set{}, false, fmt.Errorf("querying lore for race %d: %w", raceID, err)
	}

	f, err := flags.FromBytes(raw)
	if err != nil {
		return flags.Set{}, false, fmt.Errorf("decoding lore for race %d: %w", raceID, err)
	}
	return f, true, nil
}

// Merge ORs f into the stored lore of a race, creating the row if needed.
func (r *LoreRepository) Merge(ctx context.Context, raceID int32, f flags.Set) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT flags FROM monster_lore WHERE race_id = $1 FOR UPDATE`, raceID,
	).Scan(&raw)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return fmt.Errorf("locking lore for race %d: %w", raceID, err)
	default:
		stored, err := flags.FromBytes(raw)
		if err != nil {
			return fmt.Errorf("decoding lore for race %d: %w", raceID, err)
		}
		f.Union(stored)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO monster_lore (race_id, flags, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (race_id) DO UPDATE SET flags = EXCLUDED.flags, updated_at = now()`,
		raceID, f.Bytes(),
	); err != nil {
		return fmt.Errorf("saving lore for race %d: %w", raceID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing lore for race %d: %w", raceID, err)
	}
	return nil
}

// Delete removes the stored lore of a race.
func (r *LoreRepository) Delete(ctx context.Context, raceID int32) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM monster_lore WHERE race_id = $1`, raceID); err != nil {
		return fmt.Errorf("deleting lore for race %d: %w", raceID, err)
	}
	return nil
}
