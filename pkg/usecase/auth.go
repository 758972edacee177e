package usecase

import (
	"context"

	"github.com/biaslens-dev/biaslens/pkg/domain/interfaces"
	"github.com/biaslens-dev/biaslens/pkg/domain/model/auth"
)

// AuthUseCaseInterface is the session collaborator surface used by the
// HTTP layer. Identity registration and credential storage live
// outside this service; only issued session tokens are handled here.
type AuthUseCaseInterface interface {
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

// AuthUseCase validates session tokens against the repository
type AuthUseCase struct {
	repo  interfaces.Repository
	cache *authCache
}

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{
		repo:  repo,
		cache: newAuthCache(),
	}
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// ValidateToken validates the token and returns user info
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return uc.validateTokenWithCache(ctx, tokenID, tokenSecret)
}

// Logout deletes the token
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	// Remove from cache first
	uc.cache.remove(tokenID)

	// Then remove from repository
	return uc.repo.DeleteToken(ctx, tokenID)
}
