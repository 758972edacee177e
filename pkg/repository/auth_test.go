package repository_test

import (
	"context"
	"testing"

	"github.com/biaslens-dev/biaslens/pkg/domain/interfaces"
	"github.com/biaslens-dev/biaslens/pkg/domain/model/auth"
	"github.com/biaslens-dev/biaslens/pkg/repository/memory"
)

func runTokenRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken("sub-1", "user@example.com", "Test User")
		if err := repo.PutToken(ctx, token); err != nil {
			t.Fatalf("failed to put token: %v", err)
		}

		retrieved, err := repo.GetToken(ctx, token.ID)
		if err != nil {
			t.Fatalf("failed to get token: %v", err)
		}
		if retrieved.ID != token.ID {
			t.Errorf("expected ID=%s, got %s", token.ID, retrieved.ID)
		}
		if retrieved.Secret != token.Secret {
			t.Error("token secret mismatch")
		}
		if retrieved.Sub != "sub-1" {
			t.Errorf("expected sub=sub-1, got %s", retrieved.Sub)
		}
		if retrieved.IsExpired() {
			t.Error("fresh token should not be expired")
		}
	})

	t.Run("Get returns error for unknown token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.GetToken(ctx, auth.TokenID("no-such-token")); err == nil {
			t.Error("expected error for unknown token")
		}
	})

	t.Run("Delete removes the token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken("sub-1", "user@example.com", "Test User")
		if err := repo.PutToken(ctx, token); err != nil {
			t.Fatalf("failed to put token: %v", err)
		}
		if err := repo.DeleteToken(ctx, token.ID); err != nil {
			t.Fatalf("failed to delete token: %v", err)
		}
		if _, err := repo.GetToken(ctx, token.ID); err == nil {
			t.Error("expected error after delete")
		}
	})
}

func TestMemoryTokenRepository(t *testing.T) {
	runTokenRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreTokenRepository(t *testing.T) {
	runTokenRepositoryTest(t, newFirestoreRepository)
}
