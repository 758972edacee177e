package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

// Report is the complete output of one analysis: the analyzed content,
// the detected indicators in detection order, and the derived risk
// assessment.
type Report struct {
	ID         types.ReportID `json:"id"`
	UserID     types.UserID   `json:"user_id"`
	Content    *Content       `json:"content"`
	Indicators []*Indicator   `json:"indicators"`
	Assessment *Assessment    `json:"assessment"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewReport assembles a report for the given user and analysis result
// with a fresh ID and generation timestamp.
func NewReport(userID types.UserID, content *Content, indicators []*Indicator, assessment *Assessment) *Report {
	if indicators == nil {
		indicators = []*Indicator{}
	}
	return &Report{
		ID:         types.NewReportID(),
		UserID:     userID,
		Content:    content,
		Indicators: indicators,
		Assessment: assessment,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks the report invariants: every indicator category must
// appear as a key in the assessment's category map and every key must
// have at least one contributing indicator.
func (r *Report) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return err
	}
	if err := r.UserID.Validate(); err != nil {
		return err
	}
	if r.Content == nil {
		return goerr.New("report content is required")
	}
	if r.Assessment == nil {
		return goerr.New("report assessment is required")
	}

	seen := map[types.Category]bool{}
	for _, ind := range r.Indicators {
		if _, ok := r.Assessment.Categories[ind.Category]; !ok {
			return goerr.New("indicator category missing from assessment",
				goerr.V("category", ind.Category))
		}
		seen[ind.Category] = true
	}
	for c := range r.Assessment.Categories {
		if !seen[c] {
			return goerr.New("assessment category has no contributing indicator",
				goerr.V("category", c))
		}
	}
	return nil
}
