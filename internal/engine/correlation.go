package engine

import (
	"math"

	"go-insight-engine/internal/model"
	"go-insight-engine/pkg/utils"
)

// AnalyzeCorrelations computes the Pearson correlation for every unordered
// pair of the given fields. A pair with fewer than 2 rows where both
// fields parse to numbers yields correlation 0 — deliberately not an
// error, in contrast to the time-series analyzer's failure policy.
func AnalyzeCorrelations(d model.Dataset, fieldIDs []string) []model.CorrelationResult {
	results := make([]model.CorrelationResult, 0, len(fieldIDs)*(len(fieldIDs)-1)/2)
	for i := 0; i < len(fieldIDs); i++ {
		for j := i + 1; j < len(fieldIDs); j++ {
			results = append(results, correlatePair(d, fieldIDs[i], fieldIDs[j]))
		}
	}
	return results
}

func correlatePair(d model.Dataset, fieldA, fieldB string) model.CorrelationResult {
	var xs, ys []float64
	for _, row := range d.Rows {
		rawA, okA := row[fieldA]
		rawB, okB := row[fieldB]
		if !okA || !okB {
			continue
		}
		a, okA := utils.ToFloat(rawA)
		b, okB := utils.ToFloat(rawB)
		if !okA || !okB {
			continue
		}
		xs = append(xs, a)
		ys = append(ys, b)
	}

	r := pearson(xs, ys)

	return model.CorrelationResult{
		FieldA:       fieldA,
		FieldB:       fieldB,
		Correlation:  r,
		Strength:     classifyStrength(r),
		Significance: significance(r, len(xs)),
		Relationship: classifyRelationship(r),
	}
}

// pearson is the standard sum-of-products correlation. Fewer than 2 pairs
// or a zero denominator both resolve to 0.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if len(xs) < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// significance approximates how notable a correlation is via
// t = r·sqrt((n-2)/(1-r²)) and e^(-|t|/10). Indicative only — this is not
// a p-value from a t-distribution.
func significance(r float64, n int) float64 {
	if n < 3 {
		// Too few pairs for the t statistic; neutral significance.
		return 1
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	return math.Exp(-math.Abs(t) / 10)
}

func classifyStrength(r float64) model.CorrelationStrength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return model.CorrelationStrong
	case abs >= 0.3:
		return model.CorrelationModerate
	case abs >= 0.1:
		return model.CorrelationWeak
	default:
		return model.CorrelationNone
	}
}

func classifyRelationship(r float64) model.Relationship {
	switch {
	case r > 0:
		return model.RelationshipPositive
	case r < 0:
		return model.RelationshipNegative
	default:
		return model.RelationshipNone
	}
}
