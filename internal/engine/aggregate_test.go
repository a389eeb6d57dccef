package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-insight-engine/internal/model"
)

// numericDataset builds a single-column dataset from the given cell values.
func numericDataset(fieldID string, values ...interface{}) model.Dataset {
	rows := make([]model.Row, len(values))
	for i, v := range values {
		rows[i] = model.Row{fieldID: v}
	}
	return model.Dataset{
		Rows:   rows,
		Fields: []model.FieldDescriptor{{ID: fieldID, Name: fieldID, Type: model.FieldNumerical}},
	}
}

func TestAggregate_KnownSample(t *testing.T) {
	d := numericDataset("amount", 10, 20, 30, 40)

	result, err := Aggregate(d, "amount")
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Sum)
	assert.Equal(t, 25.0, result.Average)
	assert.Equal(t, 125.0, result.Variance, "variance divisor must be n, not n-1")
	assert.InDelta(t, math.Sqrt(125), result.StandardDeviation, 1e-12)
	assert.Equal(t, 30.0, result.Median, "median is the element at floor(n/2), never an average of the middle pair")
	assert.Equal(t, 10.0, result.Min)
	assert.Equal(t, 40.0, result.Max)
	assert.Equal(t, 4, result.Count)
}

func TestAggregate_NearestRankPercentiles(t *testing.T) {
	d := numericDataset("amount", 40, 10, 30, 20)

	result, err := Aggregate(d, "amount")
	require.NoError(t, err)

	// sorted: [10 20 30 40]; index = floor(n*p)
	assert.Equal(t, 10.0, result.Percentiles.P10)
	assert.Equal(t, 20.0, result.Percentiles.P25)
	assert.Equal(t, 30.0, result.Percentiles.P50)
	assert.Equal(t, 40.0, result.Percentiles.P75)
	assert.Equal(t, 40.0, result.Percentiles.P90)
	assert.Equal(t, 20.0, result.Quartiles.Q1)
	assert.Equal(t, 30.0, result.Quartiles.Q2)
	assert.Equal(t, 40.0, result.Quartiles.Q3)
}

func TestAggregate_OrderingInvariant(t *testing.T) {
	d := numericDataset("v", 7.5, 1.25, 99, -3, 42, 0.5)

	result, err := Aggregate(d, "v")
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Min, result.Median)
	assert.LessOrEqual(t, result.Median, result.Max)
	assert.GreaterOrEqual(t, result.Average, result.Min)
	assert.LessOrEqual(t, result.Average, result.Max)
}

func TestAggregate_CountsOnlyValidValues(t *testing.T) {
	d := numericDataset("v", 10, "not a number", nil, "20", 30)

	result, err := Aggregate(d, "v")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Count, "count is valid numeric values, not rows")
	assert.Equal(t, 60.0, result.Sum)
}

func TestAggregate_NoValidValues(t *testing.T) {
	d := numericDataset("v", "a", "b", nil)

	_, err := Aggregate(d, "v")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestAggregate_MissingField(t *testing.T) {
	d := numericDataset("v", 1, 2, 3)

	_, err := Aggregate(d, "absent")
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestAggregateBy_PartitionsIndependently(t *testing.T) {
	d := model.Dataset{
		Rows: []model.Row{
			{"region": "east", "sales": 10},
			{"region": "east", "sales": 20},
			{"region": "west", "sales": 100},
			{"region": "west", "sales": 200},
			{"region": "west", "sales": 300},
		},
		Fields: []model.FieldDescriptor{
			{ID: "region", Name: "Region", Type: model.FieldCategorical},
			{ID: "sales", Name: "Sales", Type: model.FieldNumerical},
		},
	}

	results, err := AggregateBy(d, "sales", "region")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 15.0, results["east"].Average)
	assert.Equal(t, 2, results["east"].Count)
	assert.Equal(t, 200.0, results["west"].Average)
	assert.Equal(t, 3, results["west"].Count)
}

func TestAggregateBy_OmitsEmptyPartitions(t *testing.T) {
	d := model.Dataset{
		Rows: []model.Row{
			{"region": "east", "sales": 10},
			{"region": "west", "sales": "broken"},
			{"sales": 99}, // no group field → skipped
		},
		Fields: []model.FieldDescriptor{
			{ID: "region", Name: "Region", Type: model.FieldCategorical},
			{ID: "sales", Name: "Sales", Type: model.FieldNumerical},
		},
	}

	results, err := AggregateBy(d, "sales", "region")
	require.NoError(t, err)

	assert.Contains(t, results, "east")
	assert.NotContains(t, results, "west", "partitions with zero valid values are omitted, not zeroed")
	assert.Len(t, results, 1)
}
