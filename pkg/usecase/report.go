package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/interfaces"
	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

// DefaultListLimit applies when the caller does not specify a page size
const DefaultListLimit = 20

type ReportUseCase struct {
	repo interfaces.Repository
}

func NewReportUseCase(repo interfaces.Repository) *ReportUseCase {
	return &ReportUseCase{
		repo: repo,
	}
}

// GetReport returns one report owned by the given user. A report that
// exists but belongs to someone else is reported as ErrAccessDenied.
func (uc *ReportUseCase) GetReport(ctx context.Context, userID types.UserID, id types.ReportID) (*model.Report, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrReportNotFound, "invalid report ID", goerr.V(ReportIDKey, id))
	}

	report, err := uc.repo.Report().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrReportNotFound, "report not found", goerr.V(ReportIDKey, id))
	}

	if report.UserID != userID {
		return nil, goerr.Wrap(ErrAccessDenied, "report belongs to another user",
			goerr.V(ReportIDKey, id), goerr.V(UserIDKey, userID))
	}

	return report, nil
}

// ListReports returns one page of the user's reports ordered by
// creation time, newest first, along with the total count.
func (uc *ReportUseCase) ListReports(ctx context.Context, userID types.UserID, limit, offset int) ([]*model.Report, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, goerr.Wrap(ErrInvalidPagination, "limit and offset must be non-negative",
			goerr.V("limit", limit), goerr.V("offset", offset))
	}
	if limit == 0 {
		limit = DefaultListLimit
	}

	reports, total, err := uc.repo.Report().List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to list reports", goerr.V(UserIDKey, userID))
	}

	return reports, total, nil
}

// DeleteReport removes one report after an ownership check
func (uc *ReportUseCase) DeleteReport(ctx context.Context, userID types.UserID, id types.ReportID) error {
	if _, err := uc.GetReport(ctx, userID, id); err != nil {
		return err
	}

	if err := uc.repo.Report().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete report", goerr.V(ReportIDKey, id))
	}

	return nil
}
