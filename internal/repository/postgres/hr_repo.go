package postgres

import (
	"context"
	"errors"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type hrRepo struct {
	db *pgxpool.Pool
}

func NewHRRepository(db *pgxpool.Pool) domain.HRRepository {
	return &hrRepo{db: db}
}

func (r *hrRepo) q(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *hrRepo) Create(ctx context.Context, profile *domain.HRProfile) error {
	query := `INSERT INTO hr_profiles (user_id, first_name, last_name, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q(ctx).Exec(ctx, query,
		profile.UserID, profile.FirstName, profile.LastName,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("HR profile already exists for this user")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *hrRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.HRProfile, error) {
	query := `SELECT user_id, first_name, last_name, resume_count, candidate_matched,
                     interview_invitation, interview_rejection,
                     ai_interview_completed, human_interview_completed,
                     created_at, updated_at
              FROM hr_profiles WHERE user_id = $1`
	var p domain.HRProfile
	err := r.q(ctx).QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.ResumeCount, &p.CandidateMatched,
		&p.InterviewInvitation, &p.InterviewRejection,
		&p.AIInterviewCompleted, &p.HumanInterviewCompleted,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *hrRepo) IncrementInvitations(ctx context.Context, userID uuid.UUID) error {
	return r.increment(ctx, userID, "interview_invitation", 1)
}

func (r *hrRepo) IncrementRejections(ctx context.Context, userID uuid.UUID) error {
	return r.increment(ctx, userID, "interview_rejection", 1)
}

func (r *hrRepo) AddResumeCount(ctx context.Context, userID uuid.UUID, n int) error {
	return r.increment(ctx, userID, "resume_count", n)
}

func (r *hrRepo) AddCandidateMatched(ctx context.Context, userID uuid.UUID, n int) error {
	return r.increment(ctx, userID, "candidate_matched", n)
}

// increment applies a single-row atomic counter update. The column name is
// always one of the fixed counter columns above, never user input.
func (r *hrRepo) increment(ctx context.Context, userID uuid.UUID, column string, n int) error {
	query := `UPDATE hr_profiles SET ` + column + ` = ` + column + ` + $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.q(ctx).Exec(ctx, query, userID, n)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("HR profile not found")
	}
	return nil
}
