package auth

import (
	"context"
	"errors"
	"fmt"

	"go-interview-backend/internal/domain"

	"google.golang.org/api/idtoken"
)

var ErrUnverifiedEmail = errors.New("google account email is not verified")

// GoogleProvider verifies Google-issued ID tokens against the configured
// OAuth client id.
type GoogleProvider struct {
	clientID string
}

func NewGoogleProvider(clientID string) *GoogleProvider {
	return &GoogleProvider{clientID: clientID}
}

func (p *GoogleProvider) Verify(ctx context.Context, token string) (*domain.GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, token, p.clientID)
	if err != nil {
		return nil, fmt.Errorf("google token verification failed: %w", err)
	}

	claims := &domain.GoogleClaims{Subject: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		claims.EmailVerified = v
	}
	if v, ok := payload.Claims["given_name"].(string); ok {
		claims.FirstName = v
	}
	if v, ok := payload.Claims["family_name"].(string); ok {
		claims.LastName = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		claims.Picture = v
	}

	if claims.Email == "" || !claims.EmailVerified {
		return nil, ErrUnverifiedEmail
	}
	return claims, nil
}

var _ domain.GoogleVerifier = (*GoogleProvider)(nil)
