package services

import (
	"errors"

	"catalog/internal/models"
)

// ErrForbidden is returned when an authenticated caller lacks the role an
// admin-gated operation requires. It is distinct from the token errors:
// those are unauthenticated outcomes (401), this one is forbidden (403).
var ErrForbidden = errors.New("admin role required")

// AuthService composes token verification with role-based authorization.
// It never issues tokens; minting is owned by the external identity service.
type AuthService struct {
	verifier *TokenVerifier
}

// NewAuthService creates a new AuthService around the given verifier.
func NewAuthService(verifier *TokenVerifier) *AuthService {
	return &AuthService{
		verifier: verifier,
	}
}

// Authenticate verifies the bearer token and returns its identity claims.
// Every verification failure maps to an unauthenticated outcome for the
// client, regardless of the underlying cause.
func (s *AuthService) Authenticate(tokenString string) (*models.Claims, error) {
	return s.verifier.Verify(tokenString)
}

// AuthorizeAdmin checks that already-authenticated claims carry the admin
// role. It is a second gate layered on top of Authenticate, not a substitute
// for it; callers must only pass claims produced by a successful Authenticate.
func (s *AuthService) AuthorizeAdmin(claims *models.Claims) error {
	if !claims.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// AuthenticateAdmin runs both gates in sequence, short-circuiting on the
// first failure, so authorization is never attempted on an unverified token.
func (s *AuthService) AuthenticateAdmin(tokenString string) (*models.Claims, error) {
	claims, err := s.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeAdmin(claims); err != nil {
		return nil, err
	}
	return claims, nil
}
