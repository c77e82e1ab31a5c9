package usecase_test

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"os"
	"testing"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// passthroughTx runs the callback directly; a failing callback stands in for
// a rolled-back transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpsertByEmail(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepo) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string, picture *string) error {
	return m.Called(ctx, id, googleID, picture).Error(0)
}

type MockHRRepo struct {
	mock.Mock
}

func (m *MockHRRepo) Create(ctx context.Context, profile *domain.HRProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockHRRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.HRProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HRProfile), args.Error(1)
}

func (m *MockHRRepo) IncrementInvitations(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockHRRepo) IncrementRejections(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockHRRepo) AddResumeCount(ctx context.Context, userID uuid.UUID, n int) error {
	return m.Called(ctx, userID, n).Error(0)
}

func (m *MockHRRepo) AddCandidateMatched(ctx context.Context, userID uuid.UUID, n int) error {
	return m.Called(ctx, userID, n).Error(0)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) FetchByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]domain.Interview, int64, error) {
	args := m.Called(ctx, candidateID, limit, offset)
	var interviews []domain.Interview
	if args.Get(0) != nil {
		interviews = args.Get(0).([]domain.Interview)
	}
	return interviews, args.Get(1).(int64), args.Error(2)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, recipientName, subject, htmlBody string) error {
	return m.Called(ctx, to, recipientName, subject, htmlBody).Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Generate(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken string) (*domain.GoogleClaims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleClaims), args.Error(1)
}

type MockResumeProcessor struct {
	mock.Mock
}

func (m *MockResumeProcessor) UploadAndProcess(ctx context.Context, files []*multipart.FileHeader) (json.RawMessage, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockResumeProcessor) Ask(ctx context.Context, question string) (map[string]any, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
