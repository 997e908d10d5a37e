package databag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx used by PGStore.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// Schema creates the table PGStore reads from.
const Schema = `CREATE TABLE IF NOT EXISTS databag_entries (
	bag   TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (bag, key)
)`

// PGStore serves bags from Postgres so editors can publish drive ids
// without redeploying the site.
type PGStore struct {
	db DBTX
}

// NewPGStore wraps a pool or transaction.
func NewPGStore(db DBTX) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the databag table if needed.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("databag schema: %w", err)
	}
	return nil
}

// Bag implements Store. A bag without rows does not exist.
func (s *PGStore) Bag(ctx context.Context, name string) (map[string]string, error) {
	rows, err := s.db.Query(ctx, `SELECT key, value FROM databag_entries WHERE bag = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("databag %s: %w", name, err)
	}
	defer rows.Close()

	bag := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("databag %s: scan: %w", name, err)
		}
		bag[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("databag %s: %w", name, err)
	}

	if len(bag) == 0 {
		return nil, ErrBagNotFound
	}
	return bag, nil
}

// Put upserts one entry.
func (s *PGStore) Put(ctx context.Context, bag, key, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO databag_entries (bag, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (bag, key) DO UPDATE SET value = EXCLUDED.value`,
		bag, key, value)
	if err != nil {
		return fmt.Errorf("databag %s: put %s: %w", bag, key, err)
	}
	return nil
}
