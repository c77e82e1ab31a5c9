package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of platform roles.
type Role string

const (
	RoleHR        Role = "hr"
	RoleCandidate Role = "candidate"
)

func (r Role) Valid() bool {
	return r == RoleHR || r == RoleCandidate
}

// CredentialKind classifies how a user can authenticate. A user must always
// hold at least one credential; CredentialNone is invalid and rejected at
// the persistence boundary.
type CredentialKind int

const (
	CredentialNone CredentialKind = iota
	CredentialLocal
	CredentialGoogle
	CredentialBoth
)

type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     *string   `json:"last_name,omitempty"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash *string   `json:"-"`
	GoogleID     *string   `json:"google_id,omitempty"`
	IsRegistered bool      `json:"is_registered"`
	Picture      *string   `json:"picture,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) CredentialKind() CredentialKind {
	switch {
	case u.PasswordHash != nil && u.GoogleID != nil:
		return CredentialBoth
	case u.PasswordHash != nil:
		return CredentialLocal
	case u.GoogleID != nil:
		return CredentialGoogle
	default:
		return CredentialNone
	}
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpsertByEmail inserts the user unless a row with the same email exists,
	// and returns the stored row either way. Concurrent calls for the same
	// email are serialized by the unique index.
	UpsertByEmail(ctx context.Context, user *User) (*User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	// LinkGoogleID attaches an external identity to an existing account.
	// Safe to repeat.
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string, picture *string) error
}

// GoogleClaims is the verified payload of a Google-issued ID token.
type GoogleClaims struct {
	Subject       string
	Email         string
	EmailVerified bool
	FirstName     string
	LastName      string
	Picture       string
}

// GoogleVerifier validates a third-party identity token against the
// configured audience.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// TokenIssuer signs local session tokens.
type TokenIssuer interface {
	Generate(userID uuid.UUID) (string, error)
}

type SignupInput struct {
	FirstName string
	LastName  *string
	Email     string
	Password  string
}

type AuthUsecase interface {
	Signup(ctx context.Context, in *SignupInput) (*User, error)
	// Login returns a signed session token alongside the user.
	Login(ctx context.Context, email, password string) (string, *User, error)
	// GoogleAuth verifies the ID token, provisioning or linking the local
	// account as needed. The bool reports whether a new user was created.
	GoogleAuth(ctx context.Context, idToken string) (string, *User, bool, error)
	GetCurrentUser(ctx context.Context, id uuid.UUID) (*User, error)
	// AssignRole updates the caller's role; switching to hr provisions the
	// HR profile.
	AssignRole(ctx context.Context, userID uuid.UUID, role Role) (*User, error)
}
