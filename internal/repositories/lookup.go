package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// LookupRepository implements models.Repository[*models.Lookup] for the lookup history log.
//
// Every search and info command appends one row. The log is read back only by
// the history command, never to answer API queries.
type LookupRepository struct {
	db *sql.DB
}

// NewLookupRepository creates a new LookupRepository with the given database connection
func NewLookupRepository(db *sql.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// Create inserts a new [models.Lookup] into the database with generated ID and sequence
func (r *LookupRepository) Create(lookup *models.Lookup) error {
	sequence, err := NextSequence(r.db, "lookups")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	lookup.SetID(id)
	lookup.SetSequence(sequence)

	if err := lookup.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO lookups (id, sequence, kind, query, track_id, track_name, artist, result_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		string(lookup.Kind()),
		lookup.Query(),
		lookup.TrackID(),
		lookup.TrackName(),
		lookup.Artist(),
		lookup.ResultCount(),
		lookup.CreatedAt(),
		lookup.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lookup: %w", err)
	}

	return nil
}

// Get retrieves a lookup by ID, excluding soft-deleted entries
func (r *LookupRepository) Get(id string) (*models.Lookup, error) {
	query := `
		SELECT id, sequence, kind, query, track_id, track_name, artist, result_count, created_at, updated_at, deleted_at
		FROM lookups
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing lookup in the database
func (r *LookupRepository) Update(lookup *models.Lookup) error {
	if err := lookup.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	lookup.SetUpdatedAt(now)

	query := `
		UPDATE lookups
		SET query = ?, track_id = ?, track_name = ?, artist = ?, result_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		lookup.Query(),
		lookup.TrackID(),
		lookup.TrackName(),
		lookup.Artist(),
		lookup.ResultCount(),
		now,
		lookup.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update lookup: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lookup not found or already deleted: %s", lookup.ID())
	}

	return nil
}

// Delete soft-deletes a lookup by ID
func (r *LookupRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE lookups
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete lookup: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lookup not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves lookups matching the given criteria, newest first.
//
// Supported criteria: "kind" (string) and "limit" (int).
func (r *LookupRepository) List(criteria map[string]any) ([]*models.Lookup, error) {
	query := `
		SELECT id, sequence, kind, query, track_id, track_name, artist, result_count, created_at, updated_at, deleted_at
		FROM lookups
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	var lookups []*models.Lookup
	for rows.Next() {
		lookup, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, lookup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lookups: %w", err)
	}

	return lookups, nil
}

// Recent returns the most recent history entries of any kind.
func (r *LookupRepository) Recent(limit int) ([]*models.Lookup, error) {
	return r.List(map[string]any{"limit": limit})
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *LookupRepository) scanOne(row *sql.Row) (*models.Lookup, error) {
	lookup, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lookup not found")
	}
	return lookup, err
}

func (r *LookupRepository) scan(row scannable) (*models.Lookup, error) {
	var (
		id, kind, query, trackID, trackName, artist string
		sequence, resultCount                       int
		createdAt, updatedAt                        time.Time
		deletedAt                                   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &kind, &query, &trackID, &trackName, &artist, &resultCount, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan lookup: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreLookup(id, sequence, models.LookupKind(kind), query, trackID, trackName, artist, resultCount, createdAt, updatedAt, deleted), nil
}
