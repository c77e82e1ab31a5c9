package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type InterviewType string

const (
	InterviewTypeAI    InterviewType = "ai"
	InterviewTypeHuman InterviewType = "human"
)

func (t InterviewType) Valid() bool {
	return t == InterviewTypeAI || t == InterviewTypeHuman
}

// InterviewStatus transitions are one-directional; there is no re-activation
// after expiry or cancellation.
type InterviewStatus string

const (
	InterviewStatusActive   InterviewStatus = "active"
	InterviewStatusComplete InterviewStatus = "complete"
	InterviewStatusExpired  InterviewStatus = "expired"
	InterviewStatusInactive InterviewStatus = "inactive"
)

// ErrHRAsCandidate aborts an invitation whose target already holds the hr
// role. The whole workflow rolls back, leaving no partial writes.
var ErrHRAsCandidate = errors.New("an HR user cannot be invited as a candidate")

type Interview struct {
	ID              uuid.UUID       `json:"id"`
	HRID            uuid.UUID       `json:"hr_id"`
	CandidateID     uuid.UUID       `json:"candidate_id"`
	Type            InterviewType   `json:"type"`
	Status          InterviewStatus `json:"status"`
	Company         *string         `json:"company,omitempty"`
	JobDescription  *string         `json:"job_description,omitempty"`
	ExpireAt        *time.Time      `json:"expire_at,omitempty"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	// FetchByCandidate returns one page of interviews ordered by creation
	// time, plus the total count for the candidate.
	FetchByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Interview, int64, error)
}

type InviteInput struct {
	CandidateEmail string        `validate:"required,email"`
	CandidateName  string        `validate:"required"`
	InterviewType  InterviewType `validate:"required,oneof=ai human"`
	JobDescription *string
}

type RejectInput struct {
	CandidateEmail string `validate:"required,email"`
	CandidateName  string `validate:"required"`
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type InterviewUsecase interface {
	Invite(ctx context.Context, hrID uuid.UUID, in *InviteInput) (*Interview, error)
	Reject(ctx context.Context, hrID uuid.UUID, in *RejectInput) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, page, limit int) ([]Interview, *PageMeta, error)
}

// Notifier dispatches a templated email through the transactional-mail
// provider. The core interprets nothing beyond success or failure; retries
// and bounce handling belong to the provider.
type Notifier interface {
	Send(ctx context.Context, to, recipientName, subject, htmlBody string) error
}
