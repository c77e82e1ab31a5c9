package usecase_test

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"testing"

	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUploadAndProcess(t *testing.T) {
	hrID := uuid.New()
	files := []*multipart.FileHeader{
		{Filename: "cv1.pdf"},
		{Filename: "cv2.pdf"},
		{Filename: "cv3.pdf"},
	}

	t.Run("Should count the batch and forward the files", func(t *testing.T) {
		hrRepo := new(MockHRRepo)
		processor := new(MockResumeProcessor)

		hrRepo.On("AddResumeCount", mock.Anything, hrID, 3).Return(nil)
		processor.On("UploadAndProcess", mock.Anything, files).
			Return(json.RawMessage(`{"processed":3}`), nil)

		uc := usecase.NewResumeUsecase(hrRepo, processor)
		result, err := uc.UploadAndProcess(context.Background(), hrID, files)

		assert.NoError(t, err)
		assert.JSONEq(t, `{"processed":3}`, string(result))
		hrRepo.AssertExpectations(t)
	})

	t.Run("Should reject an empty batch", func(t *testing.T) {
		hrRepo := new(MockHRRepo)
		processor := new(MockResumeProcessor)

		uc := usecase.NewResumeUsecase(hrRepo, processor)
		_, err := uc.UploadAndProcess(context.Background(), hrID, nil)

		assert.Error(t, err)
		hrRepo.AssertNotCalled(t, "AddResumeCount", mock.Anything, mock.Anything, mock.Anything)
		processor.AssertNotCalled(t, "UploadAndProcess", mock.Anything, mock.Anything)
	})
}

func TestAsk(t *testing.T) {
	hrID := uuid.New()

	t.Run("Should credit matched candidates from the answer total", func(t *testing.T) {
		hrRepo := new(MockHRRepo)
		processor := new(MockResumeProcessor)

		processor.On("Ask", mock.Anything, "who knows Go?").Return(map[string]any{
			"answer": map[string]any{"total": float64(4)},
		}, nil)
		hrRepo.On("AddCandidateMatched", mock.Anything, hrID, 4).Return(nil)

		uc := usecase.NewResumeUsecase(hrRepo, processor)
		result, err := uc.Ask(context.Background(), hrID, "who knows Go?")

		assert.NoError(t, err)
		assert.NotNil(t, result)
		hrRepo.AssertExpectations(t)
	})

	t.Run("Should leave the counter alone when the answer has no total", func(t *testing.T) {
		hrRepo := new(MockHRRepo)
		processor := new(MockResumeProcessor)

		processor.On("Ask", mock.Anything, "summarize").Return(map[string]any{
			"answer": "free-form text",
		}, nil)

		uc := usecase.NewResumeUsecase(hrRepo, processor)
		_, err := uc.Ask(context.Background(), hrID, "summarize")

		assert.NoError(t, err)
		hrRepo.AssertNotCalled(t, "AddCandidateMatched", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject an empty question", func(t *testing.T) {
		hrRepo := new(MockHRRepo)
		processor := new(MockResumeProcessor)

		uc := usecase.NewResumeUsecase(hrRepo, processor)
		_, err := uc.Ask(context.Background(), hrID, "")

		assert.Error(t, err)
		processor.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything)
	})
}

func TestAnalytics(t *testing.T) {
	hrID := uuid.New()

	t.Run("Should return the counter profile", func(t *testing.T) {
		hrRepo := new(MockHRRepo)
		processor := new(MockResumeProcessor)

		hrRepo.On("GetByUserID", mock.Anything, hrID).Return(&domain.HRProfile{
			UserID:              hrID,
			InterviewInvitation: 7,
			ResumeCount:         42,
		}, nil)

		uc := usecase.NewResumeUsecase(hrRepo, processor)
		profile, err := uc.Analytics(context.Background(), hrID)

		assert.NoError(t, err)
		assert.Equal(t, 7, profile.InterviewInvitation)
		assert.Equal(t, 42, profile.ResumeCount)
	})

	t.Run("Should fail when no profile exists", func(t *testing.T) {
		hrRepo := new(MockHRRepo)
		processor := new(MockResumeProcessor)

		hrRepo.On("GetByUserID", mock.Anything, hrID).Return(nil, nil)

		uc := usecase.NewResumeUsecase(hrRepo, processor)
		_, err := uc.Analytics(context.Background(), hrID)

		assert.Error(t, err)
	})
}
