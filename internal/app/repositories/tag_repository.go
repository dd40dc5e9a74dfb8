package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TagRepository handles the shared tag and link value tables. Values are
// deduplicated: lookups go through get-or-create and rows are never removed
// when the last reference disappears.
type TagRepository struct {
	db *pgxpool.Pool
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

// getOrCreateValueSQL builds the upsert that resolves a value to its row id.
// The DO UPDATE arm makes RETURNING yield the id on the conflict path too,
// so concurrent callers converge on the same row.
func getOrCreateValueSQL(table string) string {
	return fmt.Sprintf(
		`INSERT INTO %s (value) VALUES ($1) ON CONFLICT (value) DO UPDATE SET value = EXCLUDED.value RETURNING id`,
		table)
}

// attachValueSQL builds the join-table insert; the composite primary key
// makes repeated attaches no-ops.
func attachValueSQL(joinTable, ownerColumn, valueColumn string) string {
	return fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		joinTable, ownerColumn, valueColumn)
}

// getOrCreateValueID resolves a value in the given table to its row id,
// inserting it first if absent. The table carries UNIQUE(value).
func getOrCreateValueID(ctx context.Context, q Querier, table, value string) (int64, error) {
	var id int64
	if err := q.QueryRow(ctx, getOrCreateValueSQL(table), value).Scan(&id); err != nil {
		return 0, fmt.Errorf("error upserting %s value: %w", table, err)
	}
	return id, nil
}

// attachValue links a value row to an owner through a join table
func attachValue(ctx context.Context, q Querier, joinTable, ownerColumn, valueColumn string, ownerID, valueID int64) error {
	if _, err := q.Exec(ctx, attachValueSQL(joinTable, ownerColumn, valueColumn), ownerID, valueID); err != nil {
		return fmt.Errorf("error attaching %s value: %w", joinTable, err)
	}
	return nil
}

func valuesForOwner(ctx context.Context, q Querier, valueTable, joinTable, ownerColumn, valueColumn string, ownerID int64) ([]string, error) {
	sql := fmt.Sprintf(
		`SELECT v.value FROM %s v JOIN %s j ON j.%s = v.id WHERE j.%s = $1 ORDER BY v.id`,
		valueTable, joinTable, valueColumn, ownerColumn)

	rows, err := q.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing %s values: %w", joinTable, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning value row: %w", err)
		}
		values = append(values, v)
	}

	return values, nil
}

// GetOrCreateTag resolves a tag value to its id, creating the row if needed
func (r *TagRepository) GetOrCreateTag(ctx context.Context, value string) (int64, error) {
	return getOrCreateValueID(ctx, r.db, "tags", value)
}
