package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-insight-engine/internal/model"
)

// seriesDataset builds a (time, value) dataset. Numeric timestamps pass
// through as-is, so unit spacing keeps slope magnitudes readable.
func seriesDataset(times []interface{}, values []interface{}) model.Dataset {
	rows := make([]model.Row, len(times))
	for i := range times {
		rows[i] = model.Row{"ts": times[i], "value": values[i]}
	}
	return model.Dataset{
		Rows: rows,
		Fields: []model.FieldDescriptor{
			{ID: "ts", Name: "Timestamp", Type: model.FieldTemporal},
			{ID: "value", Name: "Value", Type: model.FieldNumerical},
		},
	}
}

func TestAnalyzeTimeSeries_LinearIncreasing(t *testing.T) {
	times := []interface{}{0, 1, 2, 3, 4, 5}
	values := []interface{}{10.0, 15.0, 20.0, 25.0, 30.0, 35.0}

	result, err := AnalyzeTimeSeries(seriesDataset(times, values), "ts", "value")
	require.NoError(t, err)

	assert.Equal(t, model.TrendIncreasing, result.Trend)
	assert.InDelta(t, 5.0, result.TrendStrength, 1e-9)
	assert.InDelta(t, 40.0, result.Forecast.NextValue, 1e-9, "forecast continues the arithmetic progression")
	assert.Equal(t, model.TrendIncreasing, result.Forecast.Trend)
	assert.GreaterOrEqual(t, result.Forecast.Confidence, 0.1)
	assert.LessOrEqual(t, result.Forecast.Confidence, 0.95)
}

func TestAnalyzeTimeSeries_Decreasing(t *testing.T) {
	times := []interface{}{0, 1, 2, 3}
	values := []interface{}{30.0, 20.0, 10.0, 0.0}

	result, err := AnalyzeTimeSeries(seriesDataset(times, values), "ts", "value")
	require.NoError(t, err)

	assert.Equal(t, model.TrendDecreasing, result.Trend)
	assert.InDelta(t, -10.0, result.Forecast.NextValue, 1e-9)
}

func TestAnalyzeTimeSeries_StableSeries(t *testing.T) {
	times := []interface{}{0, 1, 2, 3, 4}
	values := []interface{}{7.0, 7.0, 7.0, 7.0, 7.0}

	result, err := AnalyzeTimeSeries(seriesDataset(times, values), "ts", "value")
	require.NoError(t, err)

	assert.Equal(t, model.TrendStable, result.Trend)
	assert.InDelta(t, 7.0, result.Forecast.NextValue, 1e-9)
}

func TestAnalyzeTimeSeries_UnsortedInputIsSorted(t *testing.T) {
	times := []interface{}{3, 0, 2, 1}
	values := []interface{}{25.0, 10.0, 20.0, 15.0}

	result, err := AnalyzeTimeSeries(seriesDataset(times, values), "ts", "value")
	require.NoError(t, err)

	assert.Equal(t, model.TrendIncreasing, result.Trend)
	assert.InDelta(t, 30.0, result.Forecast.NextValue, 1e-9, "rows must be ordered by timestamp before fitting")
}

func TestAnalyzeTimeSeries_InsufficientRows(t *testing.T) {
	d := seriesDataset([]interface{}{0}, []interface{}{1.0})

	_, err := AnalyzeTimeSeries(d, "ts", "value")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestAnalyzeTimeSeries_DropsRowsMissingEitherField(t *testing.T) {
	d := model.Dataset{
		Rows: []model.Row{
			{"ts": 0, "value": 10.0},
			{"ts": 1},                 // missing value
			{"value": 99.0},           // missing time
			{"ts": "junk", "value": 5.0}, // unparseable time
			{"ts": 2, "value": 20.0},
		},
		Fields: []model.FieldDescriptor{
			{ID: "ts", Type: model.FieldTemporal},
			{ID: "value", Type: model.FieldNumerical},
		},
	}

	result, err := AnalyzeTimeSeries(d, "ts", "value")
	require.NoError(t, err)
	assert.Equal(t, model.TrendIncreasing, result.Trend)
}

func TestAnalyzeTimeSeries_SeasonalityNeedsTwelvePoints(t *testing.T) {
	times := make([]interface{}, 11)
	values := make([]interface{}, 11)
	for i := 0; i < 11; i++ {
		times[i] = i
		values[i] = float64(i % 3) // strongly periodic, but too short
	}

	result, err := AnalyzeTimeSeries(seriesDataset(times, values), "ts", "value")
	require.NoError(t, err)

	assert.False(t, result.Seasonality, "fewer than 12 points never detects seasonality")
	assert.Zero(t, result.SeasonalityStrength)
}

func TestAnalyzeTimeSeries_SeasonalityOnSmoothSeries(t *testing.T) {
	// A slow ramp has strongly positive lag-1 autocorrelation.
	times := make([]interface{}, 20)
	values := make([]interface{}, 20)
	for i := 0; i < 20; i++ {
		times[i] = i
		values[i] = float64(i) * 0.001
	}

	result, err := AnalyzeTimeSeries(seriesDataset(times, values), "ts", "value")
	require.NoError(t, err)

	assert.True(t, result.Seasonality)
	assert.Greater(t, result.SeasonalityStrength, 0.3)
	assert.LessOrEqual(t, result.SeasonalityStrength, 1.0)
}

func TestAnalyzeTimeSeries_TemporalStrings(t *testing.T) {
	times := []interface{}{"2026-01-01", "2026-01-02", "2026-01-03"}
	values := []interface{}{1.0, 2.0, 3.0}

	result, err := AnalyzeTimeSeries(seriesDataset(times, values), "ts", "value")
	require.NoError(t, err)

	// One unit per day in epoch milliseconds: a tiny slope, hence stable.
	assert.Equal(t, model.TrendStable, result.Trend)
}
