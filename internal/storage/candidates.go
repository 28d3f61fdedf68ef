package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// UpsertCandidate creates or overwrites the single candidate row for a user.
// Re-upload replaces the résumé text, embedding, skills, summary, experience
// and file reference but preserves the existing latent score; a brand-new
// candidate starts at score 0 and waits for the next refresh run.
func (db *DB) UpsertCandidate(ctx context.Context, c Candidate) (Candidate, error) {
	vec, err := vectorParam(c.Embedding)
	if err != nil {
		return Candidate{}, err
	}

	query := `INSERT INTO candidates
	            (id, user_id, resume_text, embedding, skills, summary, experience, latent_score, resume_file_id)
	          VALUES ($1, $2, $3, $4::vector, $5, $6, $7, 0, $8)
	          ON CONFLICT (user_id) DO UPDATE
	            SET resume_text = EXCLUDED.resume_text,
	                embedding = EXCLUDED.embedding,
	                skills = EXCLUDED.skills,
	                summary = EXCLUDED.summary,
	                experience = EXCLUDED.experience,
	                resume_file_id = EXCLUDED.resume_file_id,
	                updated_at = NOW()
	          RETURNING id, latent_score, created_at, updated_at`

	var fileID interface{}
	if c.ResumeFileID != "" {
		fileID = c.ResumeFileID
	}

	out := c
	err = db.connection.QueryRowContext(ctx, query,
		uuid.New().String(), c.UserID, c.ResumeText, vec,
		joinSkills(c.Skills), c.Summary, c.Experience, fileID,
	).Scan(&out.ID, &out.LatentScore, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return Candidate{}, err
	}
	return out, nil
}

// CandidateByUserID returns ErrNotFound when the user has no candidate row.
func (db *DB) CandidateByUserID(ctx context.Context, userID string) (Candidate, error) {
	query := candidateSelect + ` WHERE user_id = $1`
	return db.scanCandidate(db.connection.QueryRowContext(ctx, query, userID))
}

// CandidateByID returns ErrNotFound when the id is unknown.
func (db *DB) CandidateByID(ctx context.Context, id string) (Candidate, error) {
	query := candidateSelect + ` WHERE id = $1`
	return db.scanCandidate(db.connection.QueryRowContext(ctx, query, id))
}

// AllCandidates returns every candidate, oldest first. Used by the score
// refresh batch.
func (db *DB) AllCandidates(ctx context.Context) ([]Candidate, error) {
	query := candidateSelect + ` ORDER BY created_at ASC, id ASC`
	rows, err := db.connection.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return db.collectCandidates(rows)
}

// CandidatesScoringAtLeast returns candidates whose latent score meets the
// threshold, embeddings included, in a stable order.
func (db *DB) CandidatesScoringAtLeast(ctx context.Context, min float64) ([]Candidate, error) {
	query := candidateSelect + ` WHERE latent_score >= $1 ORDER BY latent_score DESC, id ASC`
	rows, err := db.connection.QueryContext(ctx, query, min)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return db.collectCandidates(rows)
}

// UpdateLatentScore patches only the score field of one candidate.
func (db *DB) UpdateLatentScore(ctx context.Context, candidateID string, score float64) error {
	res, err := db.connection.ExecContext(ctx,
		`UPDATE candidates SET latent_score = $1 WHERE id = $2`, score, candidateID)
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

const candidateSelect = `SELECT id, user_id, resume_text, embedding::text, skills, summary,
	experience, latent_score, resume_file_id, created_at, updated_at FROM candidates`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (db *DB) scanCandidate(row rowScanner) (Candidate, error) {
	var c Candidate
	var embedding sql.NullString
	var skills string
	var fileID sql.NullString

	err := row.Scan(&c.ID, &c.UserID, &c.ResumeText, &embedding, &skills,
		&c.Summary, &c.Experience, &c.LatentScore, &fileID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Candidate{}, ErrNotFound
	}
	if err != nil {
		return Candidate{}, err
	}

	c.Skills = splitSkills(skills)
	c.ResumeFileID = fileID.String
	if c.Embedding, err = parseVector(embedding); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

func (db *DB) collectCandidates(rows *sql.Rows) ([]Candidate, error) {
	var out []Candidate
	for rows.Next() {
		c, err := db.scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
