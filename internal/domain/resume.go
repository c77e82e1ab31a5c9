package domain

import (
	"context"
	"encoding/json"
	"mime/multipart"

	"github.com/google/uuid"
)

// ResumeProcessor is the external document-processing service the resume
// endpoints proxy to.
type ResumeProcessor interface {
	UploadAndProcess(ctx context.Context, files []*multipart.FileHeader) (json.RawMessage, error)
	Ask(ctx context.Context, question string) (map[string]any, error)
}

type ResumeUsecase interface {
	// UploadAndProcess bumps the HR resume counter and relays the files to
	// the processor.
	UploadAndProcess(ctx context.Context, hrID uuid.UUID, files []*multipart.FileHeader) (json.RawMessage, error)
	// Ask relays a question to the processor and credits matched candidates
	// to the HR profile when the answer reports a total.
	Ask(ctx context.Context, hrID uuid.UUID, question string) (map[string]any, error)
	Analytics(ctx context.Context, hrID uuid.UUID) (*HRProfile, error)
}
