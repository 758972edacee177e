package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
	"github.com/biaslens-dev/biaslens/pkg/repository/memory"
	"github.com/biaslens-dev/biaslens/pkg/usecase"
)

func seedReport(t *testing.T, repo *memory.Memory, userID types.UserID, createdAt time.Time) *model.Report {
	t.Helper()

	content, err := model.NewContent("seeded content for listing")
	gt.NoError(t, err).Required()

	report := model.NewReport(userID, content, nil, model.NewAssessment(model.CategoryScores{}))
	report.CreatedAt = createdAt
	gt.NoError(t, repo.Report().Create(context.Background(), report)).Required()
	return report
}

func TestReportUseCase_GetReport(t *testing.T) {
	t.Run("returns own report", func(t *testing.T) {
		repo := memory.New()
		seeded := seedReport(t, repo, "user-1", time.Now().UTC())
		uc := usecase.NewReportUseCase(repo)

		report, err := uc.GetReport(context.Background(), "user-1", seeded.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, report.ID).Equal(seeded.ID)
	})

	t.Run("unknown ID yields not found", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewReportUseCase(repo)

		_, err := uc.GetReport(context.Background(), "user-1", types.NewReportID())
		gt.Error(t, err).Is(usecase.ErrReportNotFound)
	})

	t.Run("malformed ID yields not found", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewReportUseCase(repo)

		_, err := uc.GetReport(context.Background(), "user-1", types.ReportID("not-a-uuid"))
		gt.Error(t, err).Is(usecase.ErrReportNotFound)
	})

	t.Run("another user's report yields access denied", func(t *testing.T) {
		repo := memory.New()
		seeded := seedReport(t, repo, "owner", time.Now().UTC())
		uc := usecase.NewReportUseCase(repo)

		_, err := uc.GetReport(context.Background(), "intruder", seeded.ID)
		gt.Error(t, err).Is(usecase.ErrAccessDenied)
	})
}

func TestReportUseCase_ListReports(t *testing.T) {
	t.Run("lists newest first with total", func(t *testing.T) {
		repo := memory.New()
		now := time.Now().UTC()
		older := seedReport(t, repo, "user-1", now.Add(-time.Hour))
		newer := seedReport(t, repo, "user-1", now)
		seedReport(t, repo, "user-2", now)
		uc := usecase.NewReportUseCase(repo)

		items, total, err := uc.ListReports(context.Background(), "user-1", 10, 0)
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(2)
		gt.Array(t, items).Length(2)
		gt.Value(t, items[0].ID).Equal(newer.ID)
		gt.Value(t, items[1].ID).Equal(older.ID)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		repo := memory.New()
		now := time.Now().UTC()
		for i := 0; i < usecase.DefaultListLimit+5; i++ {
			seedReport(t, repo, "user-1", now.Add(time.Duration(-i)*time.Minute))
		}
		uc := usecase.NewReportUseCase(repo)

		items, total, err := uc.ListReports(context.Background(), "user-1", 0, 0)
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(usecase.DefaultListLimit + 5)
		gt.Array(t, items).Length(usecase.DefaultListLimit)
	})

	t.Run("negative pagination is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewReportUseCase(repo)

		_, _, err := uc.ListReports(context.Background(), "user-1", -1, 0)
		gt.Error(t, err).Is(usecase.ErrInvalidPagination)

		_, _, err = uc.ListReports(context.Background(), "user-1", 10, -1)
		gt.Error(t, err).Is(usecase.ErrInvalidPagination)
	})
}

func TestReportUseCase_DeleteReport(t *testing.T) {
	t.Run("deletes own report", func(t *testing.T) {
		repo := memory.New()
		seeded := seedReport(t, repo, "user-1", time.Now().UTC())
		uc := usecase.NewReportUseCase(repo)

		gt.NoError(t, uc.DeleteReport(context.Background(), "user-1", seeded.ID)).Required()

		_, err := uc.GetReport(context.Background(), "user-1", seeded.ID)
		gt.Error(t, err).Is(usecase.ErrReportNotFound)
	})

	t.Run("refuses to delete another user's report", func(t *testing.T) {
		repo := memory.New()
		seeded := seedReport(t, repo, "owner", time.Now().UTC())
		uc := usecase.NewReportUseCase(repo)

		err := uc.DeleteReport(context.Background(), "intruder", seeded.ID)
		gt.Error(t, err).Is(usecase.ErrAccessDenied)

		// Still present for the owner
		_, err = uc.GetReport(context.Background(), "owner", seeded.ID)
		gt.NoError(t, err)
	})

	t.Run("unknown report yields not found", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewReportUseCase(repo)

		err := uc.DeleteReport(context.Background(), "user-1", types.NewReportID())
		gt.Error(t, err).Is(usecase.ErrReportNotFound)
	})
}
