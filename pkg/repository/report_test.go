package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/biaslens-dev/biaslens/pkg/domain/interfaces"
	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
	"github.com/biaslens-dev/biaslens/pkg/repository/firestore"
	"github.com/biaslens-dev/biaslens/pkg/repository/memory"
)

func newTestReport(t *testing.T, userID types.UserID) *model.Report {
	t.Helper()

	content, err := model.NewContent("the submitted text under analysis")
	if err != nil {
		t.Fatalf("failed to create content: %v", err)
	}

	indicators := []*model.Indicator{
		{
			Text:        "the",
			Category:    types.CategoryGender,
			Confidence:  0.8,
			StartPos:    0,
			EndPos:      3,
			Explanation: "test explanation",
			Suggestions: []string{"a neutral phrasing"},
		},
	}
	assessment := model.NewAssessment(model.CategoryScores{types.CategoryGender: 80})

	return model.NewReport(userID, content, indicators, assessment)
}

func runReportRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := newTestReport(t, "user-1")
		if err := repo.Report().Create(ctx, report); err != nil {
			t.Fatalf("failed to create report: %v", err)
		}

		retrieved, err := repo.Report().Get(ctx, report.ID)
		if err != nil {
			t.Fatalf("failed to get report: %v", err)
		}

		if retrieved.ID != report.ID {
			t.Errorf("expected ID=%s, got %s", report.ID, retrieved.ID)
		}
		if retrieved.UserID != report.UserID {
			t.Errorf("expected UserID=%s, got %s", report.UserID, retrieved.UserID)
		}
		if retrieved.Content.Text != report.Content.Text {
			t.Errorf("expected text=%q, got %q", report.Content.Text, retrieved.Content.Text)
		}
		if len(retrieved.Indicators) != 1 {
			t.Fatalf("expected 1 indicator, got %d", len(retrieved.Indicators))
		}
		if retrieved.Indicators[0].Category != types.CategoryGender {
			t.Errorf("expected category=gender, got %s", retrieved.Indicators[0].Category)
		}
		if retrieved.Assessment.Overall != 80 {
			t.Errorf("expected overall=80, got %d", retrieved.Assessment.Overall)
		}
		if retrieved.Assessment.Level != types.RiskLevelHigh {
			t.Errorf("expected level=high, got %s", retrieved.Assessment.Level)
		}
		if retrieved.Assessment.Categories[types.CategoryGender] != 80 {
			t.Errorf("expected gender score=80, got %d", retrieved.Assessment.Categories[types.CategoryGender])
		}
	})

	t.Run("Get returns not found for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Report().Get(ctx, types.NewReportID())
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("List returns only the user's reports newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := newTestReport(t, "user-a")
		first.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
		second := newTestReport(t, "user-a")
		second.CreatedAt = time.Now().UTC().Add(-1 * time.Hour)
		other := newTestReport(t, "user-b")

		for _, r := range []*model.Report{first, second, other} {
			if err := repo.Report().Create(ctx, r); err != nil {
				t.Fatalf("failed to create report: %v", err)
			}
		}

		items, total, err := repo.Report().List(ctx, "user-a", 10, 0)
		if err != nil {
			t.Fatalf("failed to list reports: %v", err)
		}
		if total != 2 {
			t.Errorf("expected total=2, got %d", total)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].ID != second.ID {
			t.Errorf("expected newest report first, got %s", items[0].ID)
		}
		if items[1].ID != first.ID {
			t.Errorf("expected oldest report last, got %s", items[1].ID)
		}
	})

	t.Run("List paginates with limit and offset", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			r := newTestReport(t, "user-a")
			r.CreatedAt = time.Now().UTC().Add(time.Duration(-i) * time.Hour)
			if err := repo.Report().Create(ctx, r); err != nil {
				t.Fatalf("failed to create report: %v", err)
			}
		}

		items, total, err := repo.Report().List(ctx, "user-a", 2, 2)
		if err != nil {
			t.Fatalf("failed to list reports: %v", err)
		}
		if total != 5 {
			t.Errorf("expected total=5, got %d", total)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}

		items, _, err = repo.Report().List(ctx, "user-a", 10, 10)
		if err != nil {
			t.Fatalf("failed to list reports past the end: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items past the end, got %d", len(items))
		}
	})

	t.Run("Delete removes the report", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := newTestReport(t, "user-a")
		if err := repo.Report().Create(ctx, report); err != nil {
			t.Fatalf("failed to create report: %v", err)
		}

		if err := repo.Report().Delete(ctx, report.ID); err != nil {
			t.Fatalf("failed to delete report: %v", err)
		}

		_, err := repo.Report().Get(ctx, report.ID)
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		err = repo.Report().Delete(ctx, report.ID)
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound on double delete, got %v", err)
		}
	})

	t.Run("Prune deletes only old reports", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		old := newTestReport(t, "user-a")
		old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
		fresh := newTestReport(t, "user-a")

		if err := repo.Report().Create(ctx, old); err != nil {
			t.Fatalf("failed to create old report: %v", err)
		}
		if err := repo.Report().Create(ctx, fresh); err != nil {
			t.Fatalf("failed to create fresh report: %v", err)
		}

		deleted, err := repo.Report().Prune(ctx, time.Now().UTC().Add(-24*time.Hour))
		if err != nil {
			t.Fatalf("failed to prune reports: %v", err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 deleted, got %d", deleted)
		}

		if _, err := repo.Report().Get(ctx, fresh.ID); err != nil {
			t.Errorf("fresh report should survive prune: %v", err)
		}
		if _, err := repo.Report().Get(ctx, old.ID); err == nil {
			t.Error("old report should be pruned")
		}
	})

	t.Run("Create rejects report violating invariants", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := newTestReport(t, "user-a")
		report.Assessment = model.NewAssessment(model.CategoryScores{})

		if err := repo.Report().Create(ctx, report); err == nil {
			t.Error("expected error for report with orphaned indicator category")
		}
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestMemoryReportRepository(t *testing.T) {
	runReportRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreReportRepository(t *testing.T) {
	runReportRepositoryTest(t, newFirestoreRepository)
}
