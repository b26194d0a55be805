package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes on first boot. Statements
// are idempotent, so running it on every start is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			name        TEXT NOT NULL,
			email       TEXT NOT NULL,
			password_h  TEXT NOT NULL,
			role        TEXT NOT NULL DEFAULT 'user',
			avatar      TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email))`,

		`CREATE TABLE IF NOT EXISTS categories (
			id          TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '#1976d2',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories (LOWER(name))`,

		`CREATE TABLE IF NOT EXISTS tickets (
			id          TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			subject     TEXT NOT NULL,
			description TEXT NOT NULL,
			category_id TEXT NOT NULL,
			user_id     TEXT NOT NULL,
			assigned_to TEXT,
			status      TEXT NOT NULL DEFAULT 'open',
			priority    TEXT NOT NULL DEFAULT 'medium',
			attachments TEXT[] NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_user ON tickets (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_assigned ON tickets (assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets (status)`,

		`CREATE TABLE IF NOT EXISTS comments (
			id               TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			ticket_id        TEXT NOT NULL,
			user_id          TEXT NOT NULL,
			content          TEXT NOT NULL,
			is_status_change BOOLEAN NOT NULL DEFAULT FALSE,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_ticket ON comments (ticket_id)`,
	}
	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
