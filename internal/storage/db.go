package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() error {
	return db.connection.Close()
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
// The embedding columns use the pgvector extension.
func (db *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			identity_key TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL CHECK (role IN ('candidate', 'recruiter')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id),
			resume_text TEXT NOT NULL,
			embedding vector(1536),
			skills TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			latent_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			resume_file_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			embedding vector(1536),
			filled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id UUID PRIMARY KEY,
			job_id UUID NOT NULL REFERENCES jobs(id),
			candidate_id UUID NOT NULL REFERENCES candidates(id),
			from_user_id UUID NOT NULL REFERENCES users(id),
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (job_id, candidate_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether the error is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// vectorParam renders an embedding in the pgvector text format, e.g. [1,2,3].
// The JSON encoding of a float32 slice happens to match it.
func vectorParam(embedding []float32) (interface{}, error) {
	if embedding == nil {
		return nil, nil
	}
	buf, err := json.Marshal(embedding)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

func parseVector(raw sql.NullString) ([]float32, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var out []float32
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("parse embedding: %w", err)
	}
	return out, nil
}

// skills are stored as a comma-joined string, split back on read.
func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
