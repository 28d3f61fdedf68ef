package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// InsertJob stores a new posting. Jobs are never re-embedded after creation.
func (db *DB) InsertJob(ctx context.Context, j Job) (Job, error) {
	vec, err := vectorParam(j.Embedding)
	if err != nil {
		return Job{}, err
	}

	query := `INSERT INTO jobs (id, user_id, title, description, embedding, filled)
	          VALUES ($1, $2, $3, $4, $5::vector, FALSE)
	          RETURNING id, filled, created_at`

	out := j
	err = db.connection.QueryRowContext(ctx, query,
		uuid.New().String(), j.UserID, j.Title, j.Description, vec,
	).Scan(&out.ID, &out.Filled, &out.CreatedAt)
	if err != nil {
		return Job{}, err
	}
	return out, nil
}

// JobByID returns ErrNotFound when the id is unknown.
func (db *DB) JobByID(ctx context.Context, id string) (Job, error) {
	query := jobSelect + ` WHERE id = $1`
	return scanJob(db.connection.QueryRowContext(ctx, query, id))
}

// JobsByUser lists a recruiter's postings, newest first.
func (db *DB) JobsByUser(ctx context.Context, userID string) ([]Job, error) {
	query := jobSelect + ` WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := db.connection.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// MarkJobFilled flips the filled flag. The transition is one-way.
func (db *DB) MarkJobFilled(ctx context.Context, jobID string) error {
	res, err := db.connection.ExecContext(ctx,
		`UPDATE jobs SET filled = TRUE WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const jobSelect = `SELECT id, user_id, title, description, embedding::text, filled, created_at FROM jobs`

func scanJob(row rowScanner) (Job, error) {
	var j Job
	var embedding sql.NullString

	err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Description, &embedding, &j.Filled, &j.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, err
	}

	if j.Embedding, err = parseVector(embedding); err != nil {
		return Job{}, err
	}
	return j, nil
}
