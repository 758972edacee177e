package usecase

import (
	"context"

	"github.com/biaslens-dev/biaslens/pkg/domain/interfaces"
	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/service/detector"
)

// BiasDetector runs the full detection pipeline for one piece of content
type BiasDetector interface {
	Analyze(ctx context.Context, content *model.Content) (*detector.Result, error)
}

type UseCases struct {
	repo     interfaces.Repository
	detector BiasDetector
	Analyze  *AnalyzeUseCase
	Report   *ReportUseCase
	Auth     AuthUseCaseInterface
}

type Option func(*UseCases)

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, detector BiasDetector, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		detector: detector,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Analyze = NewAnalyzeUseCase(repo, detector)
	uc.Report = NewReportUseCase(repo)
	if uc.Auth == nil {
		uc.Auth = NewNoAuthnUseCase()
	}

	return uc
}
