package engine

import (
	"fmt"
	"math"
	"sort"

	"go-insight-engine/internal/model"
	"go-insight-engine/pkg/utils"
)

// trend classification thresholds shared by the time-based (4-way) and
// index-based (3-way) classifiers.
const (
	stableSlope = 0.01
	trendSlope  = 0.1
)

// seasonalityMinPoints is the shortest series seasonality is attempted on.
const seasonalityMinPoints = 12

type timePoint struct {
	ts    float64 // epoch milliseconds
	value float64
}

// AnalyzeTimeSeries computes trend direction/strength, seasonality, and a
// one-step-ahead forecast for a (time field, value field) pair. Rows
// lacking either field are dropped; the remainder is sorted by parsed
// timestamp. Fewer than 2 usable rows is ErrInsufficientData.
//
// The slope is an ordinary least-squares fit of value against the
// timestamp itself (epoch milliseconds), not the row index, so its
// magnitude depends on the time unit. The forecast confidence is a
// heuristic clamp, not a prediction interval.
func AnalyzeTimeSeries(d model.Dataset, timeFieldID, valueFieldID string) (model.TimeSeriesResult, error) {
	points := make([]timePoint, 0, len(d.Rows))
	for _, row := range d.Rows {
		rawTime, ok := row[timeFieldID]
		if !ok {
			continue
		}
		rawValue, ok := row[valueFieldID]
		if !ok {
			continue
		}
		ts, ok := utils.ToTimestamp(rawTime)
		if !ok {
			continue
		}
		v, ok := utils.ToFloat(rawValue)
		if !ok {
			continue
		}
		points = append(points, timePoint{ts: ts, value: v})
	}

	if len(points) < 2 {
		return model.TimeSeriesResult{}, fmt.Errorf("time series %s/%s: %w", timeFieldID, valueFieldID, ErrInsufficientData)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].ts < points[j].ts })

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.ts
		ys[i] = p.value
	}

	slope := olsSlope(xs, ys)
	trend := classifyTrend(slope)

	seasonal, seasonalStrength := seasonality(ys)

	last := ys[len(ys)-1]
	maxV := ys[0]
	for _, v := range ys[1:] {
		if v > maxV {
			maxV = v
		}
	}
	confidence := clamp(1-math.Abs(slope)/maxV, 0.1, 0.95)

	return model.TimeSeriesResult{
		Trend:               trend,
		TrendStrength:       math.Abs(slope),
		Seasonality:         seasonal,
		SeasonalityStrength: seasonalStrength,
		Forecast: model.Forecast{
			NextValue:  last + slope,
			Confidence: confidence,
			Trend:      trend,
		},
	}, nil
}

// olsSlope is the ordinary least-squares slope of y against x. A
// degenerate x spread (all timestamps equal) yields slope 0.
func olsSlope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func classifyTrend(slope float64) model.Trend {
	switch {
	case math.Abs(slope) < stableSlope:
		return model.TrendStable
	case slope > trendSlope:
		return model.TrendIncreasing
	case slope < -trendSlope:
		return model.TrendDecreasing
	default:
		return model.TrendFluctuating
	}
}

// seasonality is the lag-1 autocorrelation of the value series:
// Σ(x_t-μ)(x_{t+1}-μ) / ((n-1)·σ²). Series shorter than 12 points report
// not-detected with strength 0 (not an error). Detection threshold is 0.3;
// strength is the autocorrelation clamped to [0,1].
func seasonality(ys []float64) (bool, float64) {
	n := len(ys)
	if n < seasonalityMinPoints {
		return false, 0
	}

	var mean float64
	for _, v := range ys {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range ys {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	if variance == 0 {
		return false, 0
	}

	var num float64
	for i := 0; i < n-1; i++ {
		num += (ys[i] - mean) * (ys[i+1] - mean)
	}
	autocorr := num / (float64(n-1) * variance)

	return autocorr > 0.3, clamp(autocorr, 0, 1)
}

// clamp bounds v to [lo, hi]. NaN resolves to lo.
func clamp(v, lo, hi float64) float64 {
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
