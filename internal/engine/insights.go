package engine

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"go-insight-engine/internal/model"
)

// anomaly detection bands (z-score multiples)
const (
	anomalyThreshold = 3.0
	mediumThreshold  = 3.5
	highThreshold    = 4.0
)

// trendMinValues is the smallest sample an index-based trend note is
// produced for (strictly more than this many values required).
const trendMinValues = 5

// smallDatasetRows triggers the collect-more-data recommendation.
const smallDatasetRows = 100

// defaultInsightWorkers bounds per-field parallelism when the caller does
// not choose.
const defaultInsightWorkers = 4

// fieldFindings is what one worker produces for one numerical field.
type fieldFindings struct {
	order     int
	anomalies []model.Anomaly
	trend     *model.TrendNote
	pattern   string
}

// GenerateInsights composes the aggregation, correlation, and quality
// layers into pattern/anomaly/trend/correlation/recommendation summaries.
// Per-field computations run on a bounded worker pool; output order is
// deterministic (field declaration order) regardless of scheduling.
func GenerateInsights(d model.Dataset, fields []model.FieldDescriptor, workers int) model.Insights {
	if workers <= 0 {
		workers = defaultInsightWorkers
	}

	working := model.Dataset{Rows: d.Rows, Fields: fields}
	numerical := working.FieldsOfType(model.FieldNumerical)

	// --- Per-field anomalies, trends, and variability patterns ---
	jobs := make(chan int, len(numerical))
	findings := make([]fieldFindings, len(numerical))
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				findings[idx] = analyzeField(working, numerical[idx], idx)
			}
		}()
	}
	for i := range numerical {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sort.Slice(findings, func(i, j int) bool { return findings[i].order < findings[j].order })

	insights := model.Insights{
		Patterns:        []string{},
		Anomalies:       []model.Anomaly{},
		Trends:          []model.TrendNote{},
		Correlations:    []model.CorrelationNote{},
		Recommendations: []string{},
	}
	for _, f := range findings {
		insights.Anomalies = append(insights.Anomalies, f.anomalies...)
		if f.trend != nil {
			insights.Trends = append(insights.Trends, *f.trend)
		}
		if f.pattern != "" {
			insights.Patterns = append(insights.Patterns, f.pattern)
		}
	}

	// --- Categorical dominance patterns ---
	for _, f := range working.FieldsOfType(model.FieldCategorical) {
		if p := dominancePattern(working, f); p != "" {
			insights.Patterns = append(insights.Patterns, p)
		}
	}

	// --- Notable correlations ---
	var numericalIDs []string
	for _, f := range numerical {
		numericalIDs = append(numericalIDs, f.ID)
	}
	for _, c := range AnalyzeCorrelations(working, numericalIDs) {
		if c.Strength != model.CorrelationStrong && c.Strength != model.CorrelationModerate {
			continue
		}
		insights.Correlations = append(insights.Correlations, model.CorrelationNote{
			FieldA:      c.FieldA,
			FieldB:      c.FieldB,
			Correlation: c.Correlation,
			Strength:    c.Strength,
			Message:     fmt.Sprintf("%s and %s show a %s %s correlation (r=%.2f)", c.FieldA, c.FieldB, c.Strength, c.Relationship, c.Correlation),
		})
	}

	// --- Recommendations ---
	if len(insights.Anomalies) > 0 {
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Investigate %d anomalous values before drawing conclusions", len(insights.Anomalies)))
	}
	for _, t := range insights.Trends {
		if t.Direction == model.DirectionUp {
			insights.Recommendations = append(insights.Recommendations,
				fmt.Sprintf("%s is trending upward; consider extending the observation window", t.Field))
			break
		}
	}
	if len(working.Rows) < smallDatasetRows {
		insights.Recommendations = append(insights.Recommendations,
			"Dataset is small (under 100 rows); collect more data for reliable statistics")
	}

	return insights
}

// analyzeField computes anomalies, an index-based trend note, and a
// variability pattern for one numerical field.
func analyzeField(d model.Dataset, field model.FieldDescriptor, order int) fieldFindings {
	out := fieldFindings{order: order}

	values, indices := extractIndexed(d, field.ID)
	if len(values) == 0 {
		return out
	}

	n := float64(len(values))
	var sum, sumSq float64
	for _, v := range values {
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	stddev := math.Sqrt(sumSq/n - mean*mean)

	if len(values) >= 3 {
		expected := [2]float64{mean - 2*stddev, mean + 2*stddev}
		for i, v := range values {
			// Each value is scored against the statistics of the other
			// values: a single extreme value cannot inflate the deviation
			// it is measured by and mask itself.
			restMean := (sum - v) / (n - 1)
			restVar := (sumSq-v*v)/(n-1) - restMean*restMean
			if restVar <= 0 {
				continue
			}
			z := (v - restMean) / math.Sqrt(restVar)
			if math.Abs(z) <= anomalyThreshold {
				continue
			}
			out.anomalies = append(out.anomalies, model.Anomaly{
				Field:         field.ID,
				RowIndex:      indices[i],
				Value:         v,
				ZScore:        z,
				Severity:      severityFor(z),
				ExpectedRange: expected,
			})
		}
	}

	if len(values) > trendMinValues {
		xs := make([]float64, len(values))
		for i := range values {
			xs[i] = float64(i)
		}
		slope := olsSlope(xs, values)
		direction := classifyDirection(slope)
		out.trend = &model.TrendNote{
			Field:     field.ID,
			Direction: direction,
			Slope:     slope,
			Message:   fmt.Sprintf("%s is trending %s (slope %.4f per observation)", field.ID, direction, slope),
		}
	}

	// Coefficient of variation above 1 marks a high-variability field.
	if mean != 0 && stddev/math.Abs(mean) > 1 {
		out.pattern = fmt.Sprintf("%s shows high variability (std dev %.2f vs mean %.2f)", field.ID, stddev, mean)
	}

	return out
}

// classifyDirection is the 3-way trend classifier used for insight notes.
// Distinct from the 4-way time-series classifier: the fluctuating band
// collapses into stable here.
func classifyDirection(slope float64) model.TrendDirection {
	switch {
	case slope > trendSlope:
		return model.DirectionUp
	case slope < -trendSlope:
		return model.DirectionDown
	default:
		return model.DirectionStable
	}
}

func severityFor(z float64) model.Severity {
	abs := math.Abs(z)
	switch {
	case abs > highThreshold:
		return model.SeverityHigh
	case abs > mediumThreshold:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// dominancePattern reports a categorical value covering more than half of
// the rows that carry the field.
func dominancePattern(d model.Dataset, field model.FieldDescriptor) string {
	counts := make(map[string]int)
	total := 0
	for _, row := range d.Rows {
		raw, ok := row[field.ID]
		if !ok || raw == nil {
			continue
		}
		key := fmt.Sprintf("%v", raw)
		if key == "" {
			continue
		}
		counts[key]++
		total++
	}
	if total == 0 {
		return ""
	}
	best, bestCount := "", 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	if bestCount*2 > total {
		return fmt.Sprintf("%s is dominated by %q (%d of %d rows)", field.ID, best, bestCount, total)
	}
	return ""
}
