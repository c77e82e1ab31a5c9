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

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

const userColumns = `id, first_name, last_name, email, role, password_hash, google_id, is_registered, picture, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) q(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// scanUser maps the no-rows case to (nil, nil) so callers branch on the
// user pointer instead of driver errors.
func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Role,
		&user.PasswordHash, &user.GoogleID, &user.IsRegistered, &user.Picture,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.CredentialKind() == domain.CredentialNone {
		return apperror.BadRequest("User must have a password or a linked Google account")
	}

	query := `INSERT INTO users (id, first_name, last_name, email, role, password_hash, google_id, is_registered, picture, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q(ctx).Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Role,
		user.PasswordHash, user.GoogleID, user.IsRegistered, user.Picture,
		user.CreatedAt, user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User with this email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.q(ctx).QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.q(ctx).QueryRow(ctx, query, email))
}

// UpsertByEmail inserts the user unless the email is already taken and
// returns the stored row either way. The no-op DO UPDATE clause makes
// RETURNING yield the existing row on conflict; the unique index on email
// serializes concurrent upserts for the same address.
func (r *userRepo) UpsertByEmail(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.CredentialKind() == domain.CredentialNone {
		return nil, apperror.BadRequest("User must have a password or a linked Google account")
	}

	query := `INSERT INTO users (id, first_name, last_name, email, role, password_hash, google_id, is_registered, picture, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
              RETURNING ` + userColumns
	stored, err := scanUser(r.q(ctx).QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Role,
		user.PasswordHash, user.GoogleID, user.IsRegistered, user.Picture,
		user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stored, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q(ctx).Exec(ctx, query, id, role)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

func (r *userRepo) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string, picture *string) error {
	// Idempotent: re-linking the same identity is a no-op on the same row.
	query := `UPDATE users SET google_id = $2, picture = COALESCE($3, picture), is_registered = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := r.q(ctx).Exec(ctx, query, id, googleID, picture)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("This Google account is already linked to another user")
		}
		return apperror.Internal(err)
	}
	return nil
}
