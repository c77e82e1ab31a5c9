package postgres

import (
	"context"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) q(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	query := `INSERT INTO interviews (id, hr_id, candidate_id, type, status, company, job_description, expire_at, duration_minutes, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q(ctx).Exec(ctx, query,
		interview.ID, interview.HRID, interview.CandidateID,
		interview.Type, interview.Status,
		interview.Company, interview.JobDescription,
		interview.ExpireAt, interview.DurationMinutes,
		interview.CreatedAt, interview.UpdatedAt,
	)
	if err != nil {
		// Foreign keys guarantee both participants exist at creation time.
		return apperror.Internal(err)
	}
	return nil
}

func (r *interviewRepo) FetchByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]domain.Interview, int64, error) {
	query := `SELECT id, hr_id, candidate_id, type, status, company, job_description, expire_at, duration_minutes, created_at, updated_at
              FROM interviews
              WHERE candidate_id = $1
              ORDER BY created_at
              LIMIT $2 OFFSET $3`
	rows, err := r.q(ctx).Query(ctx, query, candidateID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	interviews := []domain.Interview{}
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(
			&iv.ID, &iv.HRID, &iv.CandidateID, &iv.Type, &iv.Status,
			&iv.Company, &iv.JobDescription, &iv.ExpireAt, &iv.DurationMinutes,
			&iv.CreatedAt, &iv.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM interviews WHERE candidate_id = $1`, candidateID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}
