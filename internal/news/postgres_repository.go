package news

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL news repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Upsert writes the item, replacing any existing record with the same ID.
func (r *PostgresRepository) Upsert(ctx context.Context, item *Item) (bool, error) {
	query := `
		INSERT INTO news_items (id, title, body, ts, source, emoji, raw_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			ts = EXCLUDED.ts,
			source = EXCLUDED.source,
			emoji = EXCLUDED.emoji,
			raw_message = EXCLUDED.raw_message
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.Title,
		item.Body,
		item.Timestamp,
		item.Source,
		item.Emoji,
		item.RawMessage,
	).Scan(&inserted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}

// ListRecent retrieves the most recent items ordered newest-first by timestamp.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*Item, error) {
	if limit <= 0 {
		limit = MaxItems
	}

	query := `
		SELECT id, title, body, ts, source, emoji, raw_message
		FROM news_items
		ORDER BY ts DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Body,
			&item.Timestamp,
			&item.Source,
			&item.Emoji,
			&item.RawMessage,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Update overwrites the supplied fields on an existing item.
func (r *PostgresRepository) Update(ctx context.Context, id string, fields UpdateFields) (*Item, error) {
	query := `
		UPDATE news_items SET
			title = COALESCE($2, title),
			body = COALESCE($3, body),
			emoji = COALESCE($4, emoji)
		WHERE id = $1
		RETURNING id, title, body, ts, source, emoji, raw_message
	`

	var item Item
	err := r.pool.QueryRow(ctx, query, id, fields.Title, fields.Body, fields.Emoji).Scan(
		&item.ID,
		&item.Title,
		&item.Body,
		&item.Timestamp,
		&item.Source,
		&item.Emoji,
		&item.RawMessage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

// Delete removes an item.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM news_items WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// DeleteOlderThan removes every item except the most recent keep by timestamp.
func (r *PostgresRepository) DeleteOlderThan(ctx context.Context, keep int) error {
	query := `
		DELETE FROM news_items
		WHERE id NOT IN (
			SELECT id FROM news_items ORDER BY ts DESC LIMIT $1
		)
	`

	_, err := r.pool.Exec(ctx, query, keep)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
