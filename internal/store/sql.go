package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL stores values in the documents table created by the database
// migrations.
type SQL struct {
	db      *sql.DB
	selectQ string
	upsertQ string
}

func NewSQL(db *sql.DB, driver string) *SQL {
	s := &SQL{
		db:      db,
		selectQ: `SELECT body FROM documents WHERE name = ?`,
		upsertQ: `
			INSERT INTO documents (name, body, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
	}

	if driver == DriverPostgres {
		s.selectQ = `SELECT body FROM documents WHERE name = $1`
		s.upsertQ = `
			INSERT INTO documents (name, body, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`
	}

	return s
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte

	err := s.db.QueryRowContext(ctx, s.selectQ, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("getting %s: %w", key, err)
	}

	return body, nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsertQ, key, value); err != nil {
		return fmt.Errorf("putting %s: %w", key, err)
	}

	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
