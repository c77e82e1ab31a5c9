package usecase

import (
	"context"
	"encoding/json"
	"mime/multipart"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/logger"

	"github.com/google/uuid"
)

type resumeUsecase struct {
	hrRepo    domain.HRRepository
	processor domain.ResumeProcessor
}

func NewResumeUsecase(hrRepo domain.HRRepository, processor domain.ResumeProcessor) domain.ResumeUsecase {
	return &resumeUsecase{
		hrRepo:    hrRepo,
		processor: processor,
	}
}

func (u *resumeUsecase) UploadAndProcess(ctx context.Context, hrID uuid.UUID, files []*multipart.FileHeader) (json.RawMessage, error) {
	if len(files) == 0 {
		return nil, apperror.BadRequest("No files provided")
	}

	// Counter is bumped before the forward, matching the single atomic
	// update the dashboard expects per batch.
	if err := u.hrRepo.AddResumeCount(ctx, hrID, len(files)); err != nil {
		return nil, err
	}

	result, err := u.processor.UploadAndProcess(ctx, files)
	if err != nil {
		logger.Log.Error("resume processing failed", "hr_id", hrID, "files", len(files), "error", err)
		return nil, apperror.Internal(err)
	}
	return result, nil
}

func (u *resumeUsecase) Ask(ctx context.Context, hrID uuid.UUID, question string) (map[string]any, error) {
	if question == "" {
		return nil, apperror.BadRequest("Question is required")
	}

	result, err := u.processor.Ask(ctx, question)
	if err != nil {
		logger.Log.Error("resume question failed", "hr_id", hrID, "error", err)
		return nil, apperror.Internal(err)
	}

	// The processor reports how many candidates matched the question; that
	// feeds the dashboard counter when present.
	if n := matchedTotal(result); n > 0 {
		if err := u.hrRepo.AddCandidateMatched(ctx, hrID, n); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (u *resumeUsecase) Analytics(ctx context.Context, hrID uuid.UUID) (*domain.HRProfile, error) {
	profile, err := u.hrRepo.GetByUserID(ctx, hrID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.BadRequest("HR profile not found")
	}
	return profile, nil
}

func matchedTotal(result map[string]any) int {
	answer, ok := result["answer"].(map[string]any)
	if !ok {
		return 0
	}
	total, ok := answer["total"].(float64)
	if !ok {
		return 0
	}
	return int(total)
}
