package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertMessage records an intro request. The composite unique index on
// (job_id, candidate_id) makes the insert atomic with the uniqueness check;
// a duplicate pair surfaces as ErrDuplicate.
func (db *DB) InsertMessage(ctx context.Context, m Message) (Message, error) {
	query := `INSERT INTO messages (id, job_id, candidate_id, from_user_id, body)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`

	out := m
	err := db.connection.QueryRowContext(ctx, query,
		uuid.New().String(), m.JobID, m.CandidateID, m.FromUserID, m.Body,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Message{}, fmt.Errorf("message for job %s and candidate %s: %w", m.JobID, m.CandidateID, ErrDuplicate)
		}
		return Message{}, err
	}
	return out, nil
}

// ThreadMessages returns the messages for a (job, candidate) pair, oldest first.
func (db *DB) ThreadMessages(ctx context.Context, jobID, candidateID string) ([]Message, error) {
	query := `SELECT id, job_id, candidate_id, from_user_id, body, created_at
	          FROM messages WHERE job_id = $1 AND candidate_id = $2
	          ORDER BY created_at ASC, id ASC`

	rows, err := db.connection.QueryContext(ctx, query, jobID, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.JobID, &m.CandidateID, &m.FromUserID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// IntrosForCandidate returns every intro request sent to a candidate,
// enriched with the job and the recruiter who sent it, newest first.
func (db *DB) IntrosForCandidate(ctx context.Context, candidateID string) ([]IntroRequest, error) {
	query := `SELECT m.id, m.job_id, m.candidate_id, m.from_user_id, m.body, m.created_at,
	                 j.id, j.user_id, j.title, j.description, j.filled, j.created_at,
	                 u.id, u.identity_key, u.role, u.created_at
	          FROM messages m
	          JOIN jobs j ON j.id = m.job_id
	          JOIN users u ON u.id = m.from_user_id
	          WHERE m.candidate_id = $1
	          ORDER BY m.created_at DESC, m.id DESC`

	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IntroRequest
	for rows.Next() {
		var r IntroRequest
		err := rows.Scan(
			&r.Message.ID, &r.JobID, &r.CandidateID, &r.FromUserID, &r.Body, &r.Message.CreatedAt,
			&r.Job.ID, &r.Job.UserID, &r.Job.Title, &r.Job.Description, &r.Job.Filled, &r.Job.CreatedAt,
			&r.Recruiter.ID, &r.Recruiter.IdentityKey, &r.Recruiter.Role, &r.Recruiter.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
