package engine

import (
	"encoding/json"

	"go-insight-engine/internal/model"
)

// QualityPolicy supplies the accuracy, consistency, and validity scores,
// which are not derivable from the data alone. Callers with real
// validation rules inject their own policy.
type QualityPolicy interface {
	Accuracy(d model.Dataset, fields []model.FieldDescriptor) float64
	Consistency(d model.Dataset, fields []model.FieldDescriptor) float64
	Validity(d model.Dataset, fields []model.FieldDescriptor) float64
}

// DefaultQualityPolicy reproduces the original placeholder constants
// exactly. These are stubs, not measurements: swap in a real policy before
// trusting the three scores it returns.
type DefaultQualityPolicy struct{}

func (DefaultQualityPolicy) Accuracy(model.Dataset, []model.FieldDescriptor) float64 {
	return 0.95
}
func (DefaultQualityPolicy) Consistency(model.Dataset, []model.FieldDescriptor) float64 {
	return 0.90
}
func (DefaultQualityPolicy) Validity(model.Dataset, []model.FieldDescriptor) float64 {
	return 0.92
}

// issue/recommendation thresholds
const (
	completenessFloor = 0.8
	uniquenessFloor   = 0.9
)

// AssessQuality scores the dataset on five dimensions. Completeness and
// uniqueness are exact and data-driven; the remaining three come from the
// policy (see DefaultQualityPolicy). OverallScore is the arithmetic mean
// of all five.
func AssessQuality(d model.Dataset, fields []model.FieldDescriptor, policy QualityPolicy) model.DataQualityResult {
	if policy == nil {
		policy = DefaultQualityPolicy{}
	}

	completeness := completeness(d, fields)
	uniqueness := uniqueness(d)
	accuracy := policy.Accuracy(d, fields)
	consistency := policy.Consistency(d, fields)
	validity := policy.Validity(d, fields)

	result := model.DataQualityResult{
		Completeness:    completeness,
		Uniqueness:      uniqueness,
		Accuracy:        accuracy,
		Consistency:     consistency,
		Validity:        validity,
		OverallScore:    (completeness + uniqueness + accuracy + consistency + validity) / 5,
		Issues:          []string{},
		Recommendations: []string{},
	}

	if completeness < completenessFloor {
		result.Issues = append(result.Issues, "Low data completeness detected")
		result.Recommendations = append(result.Recommendations, "Fill missing values or remove incomplete records")
	}
	if uniqueness < uniquenessFloor {
		result.Issues = append(result.Issues, "Duplicate records detected")
		result.Recommendations = append(result.Recommendations, "Deduplicate rows before analysis")
	}

	return result
}

// completeness is the share of non-null, non-empty cells over the full
// rows × fields grid.
func completeness(d model.Dataset, fields []model.FieldDescriptor) float64 {
	total := len(d.Rows) * len(fields)
	if total == 0 {
		return 0
	}
	filled := 0
	for _, row := range d.Rows {
		for _, f := range fields {
			v, ok := row[f.ID]
			if !ok || v == nil {
				continue
			}
			if s, isStr := v.(string); isStr && s == "" {
				continue
			}
			filled++
		}
	}
	return float64(filled) / float64(total)
}

// uniqueness is the share of structurally distinct rows. Rows compare by
// full structural equality; JSON encoding sorts map keys, which makes the
// comparison deterministic.
func uniqueness(d model.Dataset) float64 {
	if len(d.Rows) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(d.Rows))
	distinct := 0
	for _, row := range d.Rows {
		key, err := json.Marshal(row)
		if err != nil {
			// Unencodable rows count as distinct.
			distinct++
			continue
		}
		if !seen[string(key)] {
			seen[string(key)] = true
			distinct++
		}
	}
	return float64(distinct) / float64(len(d.Rows))
}
