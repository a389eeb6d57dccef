package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-insight-engine/internal/model"
)

func qualityFields() []model.FieldDescriptor {
	return []model.FieldDescriptor{
		{ID: "name", Type: model.FieldCategorical},
		{ID: "score", Type: model.FieldNumerical},
	}
}

func TestAssessQuality_FullyPopulatedDistinctRows(t *testing.T) {
	d := model.Dataset{
		Rows: []model.Row{
			{"name": "alpha", "score": 1},
			{"name": "beta", "score": 2},
			{"name": "gamma", "score": 3},
		},
		Fields: qualityFields(),
	}

	result := AssessQuality(d, d.Fields, nil)

	assert.Equal(t, 1.0, result.Completeness)
	assert.Equal(t, 1.0, result.Uniqueness)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Recommendations)
}

func TestAssessQuality_DefaultPolicyConstants(t *testing.T) {
	d := model.Dataset{
		Rows:   []model.Row{{"name": "x", "score": 1}},
		Fields: qualityFields(),
	}

	result := AssessQuality(d, d.Fields, nil)

	assert.Equal(t, 0.95, result.Accuracy)
	assert.Equal(t, 0.90, result.Consistency)
	assert.Equal(t, 0.92, result.Validity)
	assert.InDelta(t, (1+1+0.95+0.90+0.92)/5, result.OverallScore, 1e-12)
}

func TestAssessQuality_MissingAndEmptyValues(t *testing.T) {
	d := model.Dataset{
		Rows: []model.Row{
			{"name": "alpha", "score": 1}, // 2 filled
			{"name": ""},                  // 0 filled: empty string and missing field
			{"score": nil},                // 0 filled: nil value
			{"name": "delta", "score": 4}, // 2 filled
		},
		Fields: qualityFields(),
	}

	result := AssessQuality(d, d.Fields, nil)

	assert.InDelta(t, 0.5, result.Completeness, 1e-12)
	assert.Contains(t, result.Issues, "Low data completeness detected")
	require.NotEmpty(t, result.Recommendations)
}

func TestAssessQuality_DuplicateRows(t *testing.T) {
	dup := model.Row{"name": "same", "score": 7}
	d := model.Dataset{
		Rows:   []model.Row{dup, {"name": "same", "score": 7}, {"name": "other", "score": 8}},
		Fields: qualityFields(),
	}

	result := AssessQuality(d, d.Fields, nil)

	assert.InDelta(t, 2.0/3.0, result.Uniqueness, 1e-12)
	assert.Contains(t, result.Issues, "Duplicate records detected")
}

type fixedPolicy struct{ a, c, v float64 }

func (p fixedPolicy) Accuracy(model.Dataset, []model.FieldDescriptor) float64    { return p.a }
func (p fixedPolicy) Consistency(model.Dataset, []model.FieldDescriptor) float64 { return p.c }
func (p fixedPolicy) Validity(model.Dataset, []model.FieldDescriptor) float64    { return p.v }

func TestAssessQuality_InjectedPolicy(t *testing.T) {
	d := model.Dataset{
		Rows:   []model.Row{{"name": "x", "score": 1}},
		Fields: qualityFields(),
	}

	result := AssessQuality(d, d.Fields, fixedPolicy{a: 0.5, c: 0.6, v: 0.7})

	assert.Equal(t, 0.5, result.Accuracy)
	assert.Equal(t, 0.6, result.Consistency)
	assert.Equal(t, 0.7, result.Validity)
}

func TestAssessQuality_EmptyDataset(t *testing.T) {
	d := model.Dataset{Fields: qualityFields()}

	result := AssessQuality(d, d.Fields, nil)

	assert.Zero(t, result.Completeness)
	assert.Zero(t, result.Uniqueness)
}
