package engine

import (
	"fmt"
	"math"
	"sort"

	"go-insight-engine/internal/model"
	"go-insight-engine/pkg/utils"
)

// Aggregate computes summary statistics for one field across the whole
// dataset. Returns ErrInsufficientData when the field yields no valid
// numeric values.
//
// Conventions, fixed for reproducibility:
//   - median is the element at index floor(n/2) of the sorted values
//     (nearest-rank; the two middle elements are never averaged),
//   - variance is the population variance (divisor n, not n-1),
//   - quartiles and percentiles use the nearest-rank index floor(n*p)
//     with no interpolation between ranks.
func Aggregate(d model.Dataset, fieldID string) (model.AggregationResult, error) {
	values := ExtractNumeric(d, fieldID)
	if len(values) == 0 {
		return model.AggregationResult{}, fmt.Errorf("aggregate %s: %w", fieldID, ErrInsufficientData)
	}
	return summarize(values), nil
}

// AggregateBy partitions rows by the string value of the group field and
// aggregates the value field independently per partition. Rows missing the
// group field are skipped; partitions that yield zero valid numeric values
// are omitted from the result map entirely.
func AggregateBy(d model.Dataset, fieldID, groupFieldID string) (map[string]model.AggregationResult, error) {
	partitions := make(map[string][]model.Row)
	order := make([]string, 0)
	for _, row := range d.Rows {
		raw, ok := row[groupFieldID]
		if !ok {
			continue
		}
		key := utils.Stringify(raw)
		if _, seen := partitions[key]; !seen {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], row)
	}

	results := make(map[string]model.AggregationResult, len(order))
	for _, key := range order {
		sub := model.Dataset{Rows: partitions[key], Fields: d.Fields}
		values := ExtractNumeric(sub, fieldID)
		if len(values) == 0 {
			continue
		}
		results[key] = summarize(values)
	}
	return results, nil
}

func summarize(values []float64) model.AggregationResult {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var sqDiff float64
	for _, v := range sorted {
		d := v - mean
		sqDiff += d * d
	}
	variance := sqDiff / float64(n)

	return model.AggregationResult{
		Sum:               sum,
		Average:           mean,
		Median:            nearestRank(sorted, 0.5),
		Min:               sorted[0],
		Max:               sorted[n-1],
		Count:             n,
		StandardDeviation: math.Sqrt(variance),
		Variance:          variance,
		Quartiles: model.Quartiles{
			Q1: nearestRank(sorted, 0.25),
			Q2: nearestRank(sorted, 0.50),
			Q3: nearestRank(sorted, 0.75),
		},
		Percentiles: model.Percentiles{
			P10: nearestRank(sorted, 0.10),
			P25: nearestRank(sorted, 0.25),
			P50: nearestRank(sorted, 0.50),
			P75: nearestRank(sorted, 0.75),
			P90: nearestRank(sorted, 0.90),
		},
	}
}

// nearestRank selects sorted[floor(n*p)], clamped to the last element.
// Deliberately under-samples the tail for small n; not an approximation of
// any interpolating percentile definition.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
