package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

func TestNewContent(t *testing.T) {
	t.Run("valid text", func(t *testing.T) {
		c, err := model.NewContent("this statement seems fine")
		gt.NoError(t, err).Required()
		gt.Value(t, c.Text).Equal("this statement seems fine")
		gt.Bool(t, c.CreatedAt.IsZero()).False()
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		_, err := model.NewContent("")
		gt.Bool(t, errors.Is(err, model.ErrContentEmpty)).True()
	})

	t.Run("whitespace-only text is rejected", func(t *testing.T) {
		_, err := model.NewContent(" \t\n ")
		gt.Bool(t, errors.Is(err, model.ErrContentEmpty)).True()
	})

	t.Run("text at the limit is accepted", func(t *testing.T) {
		c, err := model.NewContent(strings.Repeat("a", model.MaxContentLength))
		gt.NoError(t, err).Required()
		gt.Value(t, c.Length()).Equal(model.MaxContentLength)
	})

	t.Run("text over the limit is rejected", func(t *testing.T) {
		_, err := model.NewContent(strings.Repeat("a", model.MaxContentLength+1))
		gt.Bool(t, errors.Is(err, model.ErrContentTooLong)).True()
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		c, err := model.NewContent("héllo")
		gt.NoError(t, err).Required()
		gt.Value(t, c.Length()).Equal(5)
	})

	t.Run("serializes with snake_case keys", func(t *testing.T) {
		c, err := model.NewContent("some text")
		gt.NoError(t, err).Required()

		raw, err := json.Marshal(c)
		gt.NoError(t, err).Required()
		gt.Value(t, strings.Contains(string(raw), `"text"`)).Equal(true)
		gt.Value(t, strings.Contains(string(raw), `"created_at"`)).Equal(true)
	})
}

func TestIndicatorValidate(t *testing.T) {
	valid := func() *model.Indicator {
		return &model.Indicator{
			Text:        "hello",
			Category:    types.CategoryGender,
			Confidence:  0.8,
			StartPos:    0,
			EndPos:      5,
			Explanation: "x",
			Suggestions: []string{"y"},
		}
	}

	t.Run("valid indicator", func(t *testing.T) {
		gt.NoError(t, valid().Validate(10))
	})

	t.Run("inverted span", func(t *testing.T) {
		ind := valid()
		ind.StartPos, ind.EndPos = 5, 5
		gt.Error(t, ind.Validate(10))
	})

	t.Run("span beyond content", func(t *testing.T) {
		ind := valid()
		ind.EndPos = 11
		gt.Error(t, ind.Validate(10))
	})

	t.Run("confidence out of range", func(t *testing.T) {
		ind := valid()
		ind.Confidence = 1.5
		gt.Error(t, ind.Validate(10))
	})

	t.Run("missing explanation", func(t *testing.T) {
		ind := valid()
		ind.Explanation = ""
		gt.Error(t, ind.Validate(10))
	})

	t.Run("no suggestions", func(t *testing.T) {
		ind := valid()
		ind.Suggestions = nil
		gt.Error(t, ind.Validate(10))
	})
}

func TestNewAssessment(t *testing.T) {
	t.Run("empty scores give zero overall and low level", func(t *testing.T) {
		a := model.NewAssessment(model.CategoryScores{})
		gt.Value(t, a.Overall).Equal(0)
		gt.Value(t, a.Level).Equal(types.RiskLevelLow)
	})

	t.Run("overall is the rounded mean of category scores", func(t *testing.T) {
		a := model.NewAssessment(model.CategoryScores{
			types.CategoryGender:    90,
			types.CategoryPolitical: 45,
		})
		gt.Value(t, a.Overall).Equal(68)
		gt.Value(t, a.Level).Equal(types.RiskLevelMedium)
	})

	t.Run("rounding is half away from zero", func(t *testing.T) {
		a := model.NewAssessment(model.CategoryScores{
			types.CategoryGender:    50,
			types.CategoryPolitical: 51,
		})
		gt.Value(t, a.Overall).Equal(51)
	})

	t.Run("single category passes through", func(t *testing.T) {
		a := model.NewAssessment(model.CategoryScores{types.CategoryGender: 90})
		gt.Value(t, a.Overall).Equal(90)
		gt.Value(t, a.Level).Equal(types.RiskLevelHigh)
	})
}

func TestReportValidate(t *testing.T) {
	content, err := model.NewContent("some text to analyze")
	gt.NoError(t, err).Required()

	indicator := &model.Indicator{
		Text:        "some",
		Category:    types.CategoryGender,
		Confidence:  0.9,
		StartPos:    0,
		EndPos:      4,
		Explanation: "x",
		Suggestions: []string{"y"},
	}

	t.Run("categories match both directions", func(t *testing.T) {
		assessment := model.NewAssessment(model.CategoryScores{types.CategoryGender: 90})
		r := model.NewReport("user-1", content, []*model.Indicator{indicator}, assessment)
		gt.NoError(t, r.Validate())
	})

	t.Run("indicator category missing from assessment", func(t *testing.T) {
		assessment := model.NewAssessment(model.CategoryScores{})
		r := model.NewReport("user-1", content, []*model.Indicator{indicator}, assessment)
		gt.Error(t, r.Validate())
	})

	t.Run("orphaned assessment category", func(t *testing.T) {
		assessment := model.NewAssessment(model.CategoryScores{types.CategoryPolitical: 10})
		r := model.NewReport("user-1", content, nil, assessment)
		gt.Error(t, r.Validate())
	})

	t.Run("zero indicator report is valid", func(t *testing.T) {
		assessment := model.NewAssessment(model.CategoryScores{})
		r := model.NewReport("user-1", content, nil, assessment)
		gt.NoError(t, r.Validate())
		gt.Array(t, r.Indicators).Length(0)
	})
}
