package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the three tables if they do not exist. Structured
// sub-documents are TEXT columns holding serialized JSON rather than native
// nested types.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'student',
			profile TEXT NOT NULL DEFAULT '{}',
			preferences TEXT NOT NULL DEFAULT '{}',
			stats TEXT NOT NULL DEFAULT '{"ideasRefined":0,"interviewsCompleted":0,"totalPracticeTime":0,"averageScore":0}',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			last_login TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ideas (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			original_input TEXT NOT NULL,
			context TEXT NOT NULL,
			structured_content TEXT NOT NULL DEFAULT '{}',
			customization TEXT NOT NULL DEFAULT '{}',
			attachments TEXT NOT NULL DEFAULT '[]',
			feedback TEXT NOT NULL DEFAULT '{}',
			outputs TEXT NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'draft',
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			tags TEXT NOT NULL DEFAULT '[]',
			views INTEGER NOT NULL DEFAULT 0,
			likes TEXT NOT NULL DEFAULT '[]',
			ai_processing_time INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS interviews (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			mode TEXT NOT NULL,
			configuration TEXT NOT NULL DEFAULT '{}',
			questions TEXT NOT NULL DEFAULT '[]',
			responses TEXT NOT NULL DEFAULT '[]',
			score DOUBLE PRECISION NOT NULL DEFAULT 0,
			feedback TEXT NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'draft',
			started_at TIMESTAMPTZ,
			completed_at TIMESTAMPTZ,
			tags TEXT NOT NULL DEFAULT '[]',
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_user_created ON ideas (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_interviews_user_created ON interviews (user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
