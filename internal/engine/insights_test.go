package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-insight-engine/internal/model"
)

func TestGenerateInsights_FlagsObviousOutlier(t *testing.T) {
	d := numericDataset("reading", 1.0, 2.0, 3.0, 4.0, 5.0, 100.0)

	insights := GenerateInsights(d, d.Fields, 0)

	require.NotEmpty(t, insights.Anomalies, "100 among [1..5] must be flagged")
	found := false
	for _, a := range insights.Anomalies {
		if a.Value == 100.0 {
			found = true
			assert.NotEqual(t, model.SeverityLow, a.Severity, "severity must be at least medium")
			assert.Equal(t, "reading", a.Field)
			assert.Equal(t, 5, a.RowIndex)
			assert.Less(t, a.ExpectedRange[0], a.ExpectedRange[1])
		}
	}
	assert.True(t, found)
}

func TestGenerateInsights_NoAnomaliesInUniformData(t *testing.T) {
	d := numericDataset("v", 10.0, 11.0, 12.0, 11.0, 10.0, 12.0)

	insights := GenerateInsights(d, d.Fields, 0)

	assert.Empty(t, insights.Anomalies)
}

func TestGenerateInsights_UpwardTrendNote(t *testing.T) {
	d := numericDataset("sales", 10.0, 20.0, 30.0, 40.0, 50.0, 60.0, 70.0)

	insights := GenerateInsights(d, d.Fields, 0)

	require.Len(t, insights.Trends, 1)
	assert.Equal(t, model.DirectionUp, insights.Trends[0].Direction)
	assert.InDelta(t, 10.0, insights.Trends[0].Slope, 1e-9)

	// A strong upward trend also triggers a recommendation.
	hasTrendRec := false
	for _, rec := range insights.Recommendations {
		if strings.Contains(rec, "trending upward") {
			hasTrendRec = true
		}
	}
	assert.True(t, hasTrendRec)
}

func TestGenerateInsights_NoTrendNoteForShortSeries(t *testing.T) {
	d := numericDataset("v", 1.0, 2.0, 3.0, 4.0, 5.0)

	insights := GenerateInsights(d, d.Fields, 0)

	assert.Empty(t, insights.Trends, "trend notes require more than 5 values")
}

func TestGenerateInsights_SmallDatasetRecommendation(t *testing.T) {
	d := numericDataset("v", 1.0, 2.0, 3.0)

	insights := GenerateInsights(d, d.Fields, 0)

	assert.Contains(t, insights.Recommendations,
		"Dataset is small (under 100 rows); collect more data for reliable statistics")
}

func TestGenerateInsights_DominantCategoryPattern(t *testing.T) {
	rows := []model.Row{
		{"status": "done"}, {"status": "done"}, {"status": "done"}, {"status": "open"},
	}
	d := model.Dataset{
		Rows:   rows,
		Fields: []model.FieldDescriptor{{ID: "status", Type: model.FieldCategorical}},
	}

	insights := GenerateInsights(d, d.Fields, 0)

	require.Len(t, insights.Patterns, 1)
	assert.Contains(t, insights.Patterns[0], "dominated by")
	assert.Contains(t, insights.Patterns[0], "done")
}

func TestGenerateInsights_StrongCorrelationNote(t *testing.T) {
	rows := make([]model.Row, 10)
	for i := range rows {
		rows[i] = model.Row{"a": float64(i), "b": float64(i) * 2}
	}
	d := model.Dataset{
		Rows: rows,
		Fields: []model.FieldDescriptor{
			{ID: "a", Type: model.FieldNumerical},
			{ID: "b", Type: model.FieldNumerical},
		},
	}

	insights := GenerateInsights(d, d.Fields, 0)

	require.NotEmpty(t, insights.Correlations)
	assert.Equal(t, model.CorrelationStrong, insights.Correlations[0].Strength)
}

func TestGenerateInsights_DeterministicAcrossWorkerCounts(t *testing.T) {
	rows := make([]model.Row, 50)
	for i := range rows {
		rows[i] = model.Row{
			"a": float64(i),
			"b": float64(50 - i),
			"c": float64(i % 7),
		}
	}
	d := model.Dataset{
		Rows: rows,
		Fields: []model.FieldDescriptor{
			{ID: "a", Type: model.FieldNumerical},
			{ID: "b", Type: model.FieldNumerical},
			{ID: "c", Type: model.FieldNumerical},
		},
	}

	serial := GenerateInsights(d, d.Fields, 1)
	parallel := GenerateInsights(d, d.Fields, 8)

	assert.Equal(t, serial, parallel, "worker count must not change observable results")
}
