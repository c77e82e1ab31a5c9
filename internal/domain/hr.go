package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HRProfile holds the per-HR dashboard counters. Counters only ever
// increase; there is at most one profile per user.
type HRProfile struct {
	UserID                  uuid.UUID `json:"user_id"`
	FirstName               string    `json:"first_name"`
	LastName                *string   `json:"last_name,omitempty"`
	ResumeCount             int       `json:"resume_count"`
	CandidateMatched        int       `json:"candidate_matched"`
	InterviewInvitation     int       `json:"interview_invitation"`
	InterviewRejection      int       `json:"interview_rejection"`
	AIInterviewCompleted    int       `json:"ai_interview_completed"`
	HumanInterviewCompleted int       `json:"human_interview_completed"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

type HRRepository interface {
	Create(ctx context.Context, profile *HRProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*HRProfile, error)
	IncrementInvitations(ctx context.Context, userID uuid.UUID) error
	IncrementRejections(ctx context.Context, userID uuid.UUID) error
	AddResumeCount(ctx context.Context, userID uuid.UUID, n int) error
	AddCandidateMatched(ctx context.Context, userID uuid.UUID, n int) error
}
