package interfaces

import (
	"context"

	"github.com/biaslens-dev/biaslens/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence
type Repository interface {
	Report() ReportRepository

	// Auth methods. PutToken is written by the external session
	// collaborator that issues tokens; this service only reads and
	// revokes them.
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	Close() error
}
