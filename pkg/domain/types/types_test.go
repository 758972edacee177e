package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    types.Category
		wantErr bool
	}{
		{"lowercase", "gender", types.CategoryGender, false},
		{"mixed case", "Gender", types.CategoryGender, false},
		{"uppercase", "POLITICAL", types.CategoryPolitical, false},
		{"surrounding spaces", "  religious ", types.CategoryReligious, false},
		{"ideological", "ideological", types.CategoryIdeological, false},
		{"unknown", "racial", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := types.ParseCategory(tc.input)
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tc.want)
		})
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range types.AllCategories() {
		gt.Bool(t, c.IsValid()).True()
	}
	gt.Bool(t, types.Category("").IsValid()).False()
	gt.Bool(t, types.Category("Gender").IsValid()).False()
}

func TestRiskLevelForScore(t *testing.T) {
	cases := []struct {
		score int
		want  types.RiskLevel
	}{
		{0, types.RiskLevelLow},
		{30, types.RiskLevelLow},
		{31, types.RiskLevelMedium},
		{70, types.RiskLevelMedium},
		{71, types.RiskLevelHigh},
		{100, types.RiskLevelHigh},
	}

	for _, tc := range cases {
		gt.Value(t, types.RiskLevelForScore(tc.score)).Equal(tc.want)
	}
}

func TestReportID(t *testing.T) {
	t.Run("generated IDs are valid and unique", func(t *testing.T) {
		a := types.NewReportID()
		b := types.NewReportID()
		gt.NoError(t, a.Validate())
		gt.NoError(t, b.Validate())
		gt.Value(t, a == b).Equal(false)
	})

	t.Run("rejects empty and non-UUID", func(t *testing.T) {
		gt.Error(t, types.ReportID("").Validate())
		gt.Error(t, types.ReportID("not-a-uuid").Validate())
	})
}
