package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/interfaces"
	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
	"github.com/biaslens-dev/biaslens/pkg/utils/async"
	"github.com/biaslens-dev/biaslens/pkg/utils/logging"
)

type AnalyzeUseCase struct {
	repo     interfaces.Repository
	detector BiasDetector
}

func NewAnalyzeUseCase(repo interfaces.Repository, detector BiasDetector) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		repo:     repo,
		detector: detector,
	}
}

// AnalyzeContent validates the submitted text, runs the detection
// pipeline and returns the resulting report. The report is persisted
// asynchronously: a storage failure is logged but never changes the
// analysis outcome already returned to the caller.
func (uc *AnalyzeUseCase) AnalyzeContent(ctx context.Context, userID types.UserID, text string) (*model.Report, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	content, err := model.NewContent(text)
	if err != nil {
		return nil, err
	}

	result, err := uc.detector.Analyze(ctx, content)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, goerr.New("detector returned no result",
			goerr.V(UserIDKey, userID))
	}

	report := model.NewReport(userID, content, result.Indicators, result.Assessment)
	if err := report.Validate(); err != nil {
		return nil, goerr.Wrap(err, "assembled report is inconsistent")
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := uc.repo.Report().Create(ctx, report); err != nil {
			return goerr.Wrap(err, "failed to persist report",
				goerr.V(ReportIDKey, report.ID),
				goerr.V(UserIDKey, userID))
		}
		logging.From(ctx).Debug("report persisted", "report_id", report.ID)
		return nil
	})

	return report, nil
}
