package usecase

import (
	"context"

	"github.com/biaslens-dev/biaslens/pkg/domain/model/auth"
)

// NoAuthnUseCase accepts every request as a fixed user. It is used
// when authentication is not configured (development and single-user
// deployments).
type NoAuthnUseCase struct {
	sub   string
	email string
	name  string
}

// NoAuthnOption is a functional option for NoAuthnUseCase
type NoAuthnOption func(*NoAuthnUseCase)

// WithUser overrides the anonymous identity with a specified user
func WithUser(sub, email, name string) NoAuthnOption {
	return func(uc *NoAuthnUseCase) {
		uc.sub = sub
		uc.email = email
		uc.name = name
	}
}

// NewNoAuthnUseCase creates a NoAuthnUseCase. Without options every
// request is attributed to the anonymous user.
func NewNoAuthnUseCase(options ...NoAuthnOption) *NoAuthnUseCase {
	uc := &NoAuthnUseCase{}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}

// ValidateToken always returns a token for the configured user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	if uc.sub == "" {
		return auth.NewAnonymousUser(), nil
	}
	return auth.NewToken(uc.sub, uc.email, uc.name), nil
}

// Logout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
