package usecase

import (
	"context"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type authUsecase struct {
	userRepo domain.UserRepository
	hrRepo   domain.HRRepository
	tx       domain.Transactor
	tokens   domain.TokenIssuer
	google   domain.GoogleVerifier
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	hrRepo domain.HRRepository,
	tx domain.Transactor,
	tokens domain.TokenIssuer,
	google domain.GoogleVerifier,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hrRepo:   hrRepo,
		tx:       tx,
		tokens:   tokens,
		google:   google,
	}
}

func (u *authUsecase) Signup(ctx context.Context, in *domain.SignupInput) (*domain.User, error) {
	existing, err := u.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	hashStr := string(hash)

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Role:         domain.RoleCandidate,
		PasswordHash: &hashStr,
		IsRegistered: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	// A single generic failure for unknown email, OAuth-only account and
	// wrong password alike.
	if user == nil || user.PasswordHash == nil {
		return "", nil, apperror.BadRequest("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.BadRequest("Invalid email or password")
	}

	token, err := u.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return token, user, nil
}

// GoogleAuth verifies the ID token and resolves it to a local account:
// unknown email creates an HR user, a known account gets the Google identity
// linked. Both paths are idempotent and end with a local session token.
func (u *authUsecase) GoogleAuth(ctx context.Context, idToken string) (string, *domain.User, bool, error) {
	claims, err := u.google.Verify(ctx, idToken)
	if err != nil {
		logger.Log.Warn("google token verification failed", "error", err)
		return "", nil, false, apperror.Unauthorized("Google token verification failed")
	}

	var (
		user    *domain.User
		created bool
	)
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := u.userRepo.GetByEmail(ctx, claims.Email)
		if err != nil {
			return apperror.Internal(err)
		}

		if existing == nil {
			now := time.Now()
			user = &domain.User{
				ID:           uuid.New(),
				FirstName:    claims.FirstName,
				Email:        claims.Email,
				Role:         domain.RoleHR,
				GoogleID:     &claims.Subject,
				IsRegistered: true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if claims.LastName != "" {
				user.LastName = &claims.LastName
			}
			if claims.Picture != "" {
				user.Picture = &claims.Picture
			}
			if err := u.userRepo.Create(ctx, user); err != nil {
				return err
			}
			if err := u.ensureHRProfile(ctx, user); err != nil {
				return err
			}
			created = true
			return nil
		}

		user = existing
		if existing.GoogleID == nil || *existing.GoogleID != claims.Subject {
			var picture *string
			if claims.Picture != "" {
				picture = &claims.Picture
			}
			if err := u.userRepo.LinkGoogleID(ctx, existing.ID, claims.Subject, picture); err != nil {
				return err
			}
			user.GoogleID = &claims.Subject
		}
		return nil
	})
	if err != nil {
		return "", nil, false, err
	}

	token, err := u.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, false, apperror.Internal(err)
	}
	return token, user, created, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *authUsecase) AssignRole(ctx context.Context, userID uuid.UUID, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperror.BadRequest("Role must be 'hr' or 'candidate'")
	}

	user, err := u.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.userRepo.UpdateRole(ctx, userID, role); err != nil {
			return err
		}
		user.Role = role
		if role == domain.RoleHR {
			return u.ensureHRProfile(ctx, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ensureHRProfile provisions the counter profile the first time a user
// becomes an HR. All counters start at zero.
func (u *authUsecase) ensureHRProfile(ctx context.Context, user *domain.User) error {
	profile, err := u.hrRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if profile != nil {
		return nil
	}

	now := time.Now()
	return u.hrRepo.Create(ctx, &domain.HRProfile{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
