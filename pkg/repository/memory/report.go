package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[types.ReportID]*model.Report
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[types.ReportID]*model.Report),
	}
}

func copyReport(r *model.Report) *model.Report {
	copied := &model.Report{
		ID:        r.ID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
	if r.Content != nil {
		content := *r.Content
		copied.Content = &content
	}
	if r.Assessment != nil {
		assessment := &model.Assessment{
			Overall:    r.Assessment.Overall,
			Level:      r.Assessment.Level,
			Categories: make(model.CategoryScores, len(r.Assessment.Categories)),
		}
		for c, s := range r.Assessment.Categories {
			assessment.Categories[c] = s
		}
		copied.Assessment = assessment
	}
	copied.Indicators = make([]*model.Indicator, 0, len(r.Indicators))
	for _, ind := range r.Indicators {
		c := *ind
		c.Suggestions = append([]string(nil), ind.Suggestions...)
		copied.Indicators = append(copied.Indicators, &c)
	}
	return copied
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	if err := report.Validate(); err != nil {
		return goerr.Wrap(err, "invalid report")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ID]; exists {
		return goerr.New("report already exists", goerr.V("id", report.ID))
	}

	r.reports[report.ID] = copyReport(report)
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
	}

	return copyReport(report), nil
}

func (r *reportRepository) List(ctx context.Context, userID types.UserID, limit, offset int) ([]*model.Report, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Report, 0)
	for _, report := range r.reports {
		if report.UserID == userID {
			matched = append(matched, report)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*model.Report{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	result := make([]*model.Report, 0, len(matched))
	for _, report := range matched {
		result = append(result, copyReport(report))
	}
	return result, total, nil
}

func (r *reportRepository) Delete(ctx context.Context, id types.ReportID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[id]; !exists {
		return goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
	}

	delete(r.reports, id)
	return nil
}

func (r *reportRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, report := range r.reports {
		if report.CreatedAt.Before(before) {
			delete(r.reports, id)
			deleted++
		}
	}
	return deleted, nil
}
