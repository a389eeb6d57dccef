package engine

import (
	"go-insight-engine/internal/model"
	"go-insight-engine/pkg/utils"
)

// ExtractNumeric pulls the ordered list of numeric values for a field
// across all rows. A value is included iff it parses to a finite number;
// missing keys, non-numeric strings, NaN, and infinities are silently
// dropped. Every statistic in the engine is built on this exclusion
// policy.
func ExtractNumeric(d model.Dataset, fieldID string) []float64 {
	values := make([]float64, 0, len(d.Rows))
	for _, row := range d.Rows {
		raw, ok := row[fieldID]
		if !ok {
			continue
		}
		if f, ok := utils.ToFloat(raw); ok {
			values = append(values, f)
		}
	}
	return values
}

// ExtractReport carries the clean values plus the number of rows that were
// dropped on the way, for callers that need an audit trail. The values are
// identical to what ExtractNumeric returns.
type ExtractReport struct {
	Values  []float64 `json:"values"`
	Dropped int       `json:"dropped"`
}

// ExtractNumericReport is ExtractNumeric with a dropped-row count.
func ExtractNumericReport(d model.Dataset, fieldID string) ExtractReport {
	values := ExtractNumeric(d, fieldID)
	return ExtractReport{Values: values, Dropped: len(d.Rows) - len(values)}
}

// extractIndexed returns valid numeric values alongside the indices of the
// rows they came from. Used by anomaly detection to point back at rows.
func extractIndexed(d model.Dataset, fieldID string) ([]float64, []int) {
	values := make([]float64, 0, len(d.Rows))
	indices := make([]int, 0, len(d.Rows))
	for i, row := range d.Rows {
		raw, ok := row[fieldID]
		if !ok {
			continue
		}
		if f, ok := utils.ToFloat(raw); ok {
			values = append(values, f)
			indices = append(indices, i)
		}
	}
	return values, indices
}
