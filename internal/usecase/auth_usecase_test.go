package usecase_test

import (
	"context"
	"testing"

	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUC(userRepo *MockUserRepo, hrRepo *MockHRRepo, tokens *MockTokenIssuer, google *MockGoogleVerifier) domain.AuthUsecase {
	return usecase.NewAuthUsecase(userRepo, hrRepo, passthroughTx{}, tokens, google)
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	s := string(hash)
	return &s
}

func TestSignup(t *testing.T) {
	t.Run("Should create a candidate with a hashed password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			if u.Role != domain.RoleCandidate || !u.IsRegistered || u.PasswordHash == nil {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("Sup3rSecret!")) == nil
		})).Return(nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		user, err := uc.Signup(context.Background(), &domain.SignupInput{
			FirstName: "Jane",
			Email:     "new@example.com",
			Password:  "Sup3rSecret!",
		})

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should conflict on an existing email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		userRepo.On("GetByEmail", mock.Anything, "taken@example.com").
			Return(&domain.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		_, err := uc.Signup(context.Background(), &domain.SignupInput{
			FirstName: "Jane",
			Email:     "taken@example.com",
			Password:  "Sup3rSecret!",
		})

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Should return a token for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "jane@example.com",
			PasswordHash: hashOf(t, "Sup3rSecret!"),
		}
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
		tokens.On("Generate", user.ID).Return("signed-token", nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		token, got, err := uc.Login(context.Background(), "jane@example.com", "Sup3rSecret!")

		assert.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, user.ID, got.ID)
	})

	// Unknown email, OAuth-only account and wrong password must be
	// indistinguishable to the caller.
	t.Run("Should fail identically for every bad credential", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		userRepo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)
		userRepo.On("GetByEmail", mock.Anything, "oauth@example.com").
			Return(&domain.User{ID: uuid.New(), Email: "oauth@example.com"}, nil)
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").
			Return(&domain.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hashOf(t, "right")}, nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)

		_, _, errUnknown := uc.Login(context.Background(), "unknown@example.com", "whatever")
		_, _, errOAuth := uc.Login(context.Background(), "oauth@example.com", "whatever")
		_, _, errWrong := uc.Login(context.Background(), "jane@example.com", "wrong")

		assert.Error(t, errUnknown)
		assert.Equal(t, errUnknown.Error(), errOAuth.Error())
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		tokens.AssertNotCalled(t, "Generate", mock.Anything)
	})
}

func TestGoogleAuth(t *testing.T) {
	claims := &domain.GoogleClaims{
		Subject:       "google-sub-123",
		Email:         "hr@example.com",
		EmailVerified: true,
		FirstName:     "Alex",
		Picture:       "https://lh3.example.com/photo.jpg",
	}

	t.Run("Should provision an hr user with profile on first sign-in", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		google.On("Verify", mock.Anything, "id-token").Return(claims, nil)
		userRepo.On("GetByEmail", mock.Anything, "hr@example.com").Return(nil, nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleHR && u.GoogleID != nil && *u.GoogleID == "google-sub-123" && u.IsRegistered
		})).Return(nil)
		hrRepo.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, nil)
		hrRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.HRProfile) bool {
			return p.InterviewInvitation == 0 && p.ResumeCount == 0
		})).Return(nil)
		tokens.On("Generate", mock.Anything).Return("signed-token", nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		token, user, created, err := uc.GoogleAuth(context.Background(), "id-token")

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, domain.RoleHR, user.Role)
		hrRepo.AssertExpectations(t)
	})

	t.Run("Should link the identity to an existing local account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		existing := &domain.User{
			ID:           uuid.New(),
			Email:        "hr@example.com",
			Role:         domain.RoleCandidate,
			PasswordHash: hashOf(t, "secret"),
		}
		google.On("Verify", mock.Anything, "id-token").Return(claims, nil)
		userRepo.On("GetByEmail", mock.Anything, "hr@example.com").Return(existing, nil)
		userRepo.On("LinkGoogleID", mock.Anything, existing.ID, "google-sub-123", mock.Anything).Return(nil)
		tokens.On("Generate", existing.ID).Return("signed-token", nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		_, user, created, err := uc.GoogleAuth(context.Background(), "id-token")

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, user.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should skip linking when the identity is already attached", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		sub := "google-sub-123"
		existing := &domain.User{ID: uuid.New(), Email: "hr@example.com", Role: domain.RoleHR, GoogleID: &sub}
		google.On("Verify", mock.Anything, "id-token").Return(claims, nil)
		userRepo.On("GetByEmail", mock.Anything, "hr@example.com").Return(existing, nil)
		tokens.On("Generate", existing.ID).Return("signed-token", nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		_, _, created, err := uc.GoogleAuth(context.Background(), "id-token")

		assert.NoError(t, err)
		assert.False(t, created)
		userRepo.AssertNotCalled(t, "LinkGoogleID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return unauthorized when verification fails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		google.On("Verify", mock.Anything, "bad-token").Return(nil, assert.AnError)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		_, _, _, err := uc.GoogleAuth(context.Background(), "bad-token")

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestAssignRole(t *testing.T) {
	userID := uuid.New()

	t.Run("Should provision the HR profile when switching to hr", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		userRepo.On("GetByID", mock.Anything, userID).
			Return(&domain.User{ID: userID, FirstName: "Jane", Role: domain.RoleCandidate}, nil)
		userRepo.On("UpdateRole", mock.Anything, userID, domain.RoleHR).Return(nil)
		hrRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)
		hrRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		user, err := uc.AssignRole(context.Background(), userID, domain.RoleHR)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleHR, user.Role)
		hrRepo.AssertExpectations(t)
	})

	t.Run("Should not duplicate an existing HR profile", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		userRepo.On("GetByID", mock.Anything, userID).
			Return(&domain.User{ID: userID, FirstName: "Jane", Role: domain.RoleCandidate}, nil)
		userRepo.On("UpdateRole", mock.Anything, userID, domain.RoleHR).Return(nil)
		hrRepo.On("GetByUserID", mock.Anything, userID).
			Return(&domain.HRProfile{UserID: userID}, nil)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		_, err := uc.AssignRole(context.Background(), userID, domain.RoleHR)

		assert.NoError(t, err)
		hrRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an unknown role", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hrRepo := new(MockHRRepo)
		tokens := new(MockTokenIssuer)
		google := new(MockGoogleVerifier)

		uc := newAuthUC(userRepo, hrRepo, tokens, google)
		_, err := uc.AssignRole(context.Background(), userID, domain.Role("admin"))

		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})
}
