package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/email"
	"go-interview-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	inviteSubject    = "You're Invited for an Interview"
	rejectionSubject = "Update on Your Application"

	// Placeholder credential for candidates invited before they register.
	// Replaced when the candidate completes signup.
	placeholderPassword = "Test@123"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type interviewUsecase struct {
	userRepo      domain.UserRepository
	hrRepo        domain.HRRepository
	interviewRepo domain.InterviewRepository
	tx            domain.Transactor
	notifier      domain.Notifier
	validate      *validator.Validate
	frontendURL   string
}

func NewInterviewUsecase(
	userRepo domain.UserRepository,
	hrRepo domain.HRRepository,
	interviewRepo domain.InterviewRepository,
	tx domain.Transactor,
	notifier domain.Notifier,
	validate *validator.Validate,
	frontendURL string,
) domain.InterviewUsecase {
	return &interviewUsecase{
		userRepo:      userRepo,
		hrRepo:        hrRepo,
		interviewRepo: interviewRepo,
		tx:            tx,
		notifier:      notifier,
		validate:      validate,
		frontendURL:   frontendURL,
	}
}

// Invite runs the whole invitation workflow inside one transaction: upsert
// the candidate by email, create the interview, send the invite mail and bump
// the HR counter. Any failure, the mail call included, rolls everything back.
func (u *interviewUsecase) Invite(ctx context.Context, hrID uuid.UUID, in *domain.InviteInput) (*domain.Interview, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	var created *domain.Interview
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcryptCost)
		if err != nil {
			return apperror.Internal(err)
		}
		hashStr := string(hash)

		now := time.Now()
		candidate, err := u.userRepo.UpsertByEmail(ctx, &domain.User{
			ID:           uuid.New(),
			FirstName:    in.CandidateName,
			Email:        in.CandidateEmail,
			Role:         domain.RoleCandidate,
			PasswordHash: &hashStr,
			IsRegistered: false,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}

		if candidate.Role == domain.RoleHR {
			return apperror.New(http.StatusBadRequest, domain.ErrHRAsCandidate.Error(), domain.ErrHRAsCandidate)
		}

		interview := &domain.Interview{
			ID:             uuid.New(),
			HRID:           hrID,
			CandidateID:    candidate.ID,
			Type:           in.InterviewType,
			Status:         domain.InterviewStatusActive,
			JobDescription: in.JobDescription,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := u.interviewRepo.Create(ctx, interview); err != nil {
			return err
		}

		body, err := email.BuildInviteBody(email.InviteEmailData{
			Name:          candidate.FirstName,
			InterviewType: string(in.InterviewType),
			Link:          fmt.Sprintf("%s/interview/%s", u.frontendURL, interview.ID),
		})
		if err != nil {
			return apperror.Internal(err)
		}
		if err := u.notifier.Send(ctx, candidate.Email, candidate.FirstName, inviteSubject, body); err != nil {
			logger.Log.Error("invite email dispatch failed", "candidate", candidate.Email, "error", err)
			return apperror.New(http.StatusInternalServerError, "Could not create interview invitation", err)
		}

		if err := u.hrRepo.IncrementInvitations(ctx, hrID); err != nil {
			return err
		}

		created = interview
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Reject shares the invite's transactional envelope but only sends the
// rejection mail and bumps the rejection counter. No candidate is upserted
// and no interview row is written.
func (u *interviewUsecase) Reject(ctx context.Context, hrID uuid.UUID, in *domain.RejectInput) error {
	if err := u.validate.Struct(in); err != nil {
		return apperror.BadRequest(err.Error())
	}

	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		body, err := email.BuildRejectionBody(email.RejectionEmailData{Name: in.CandidateName})
		if err != nil {
			return apperror.Internal(err)
		}
		if err := u.notifier.Send(ctx, in.CandidateEmail, in.CandidateName, rejectionSubject, body); err != nil {
			logger.Log.Error("rejection email dispatch failed", "candidate", in.CandidateEmail, "error", err)
			return apperror.New(http.StatusInternalServerError, "Could not create interview rejection", err)
		}
		return u.hrRepo.IncrementRejections(ctx, hrID)
	})
}

func (u *interviewUsecase) ListByCandidate(ctx context.Context, candidateID uuid.UUID, page, limit int) ([]domain.Interview, *domain.PageMeta, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	interviews, total, err := u.interviewRepo.FetchByCandidate(ctx, candidateID, limit, offset)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	meta := &domain.PageMeta{
		Total:       total,
		Page:        page,
		Limit:       limit,
		HasNextPage: int64(page*limit) < total,
		HasPrevPage: page > 1,
	}
	return interviews, meta, nil
}
