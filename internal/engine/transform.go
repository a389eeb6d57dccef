package engine

import (
	"math"

	"go-insight-engine/internal/model"
	"go-insight-engine/pkg/utils"
)

// logFloor keeps log inputs away from -Infinity.
const logFloor = 0.0001

// ApplyTransforms rewrites fields of every row per the rule list. Input
// rows are never mutated: each row gets a working copy, and rules apply to
// that copy sequentially, so a later rule sees an earlier rule's writes on
// the same row. normalize and standardize scale by the source field's own
// min/max and mean/stddev across the dataset, computed once up front from
// the untransformed input. Rows whose source value is not numeric pass
// through unmodified for that rule.
func ApplyTransforms(d model.Dataset, rules []model.TransformRule) model.Dataset {
	if len(rules) == 0 {
		return d
	}

	// Field statistics for the scaling operators, from the original data.
	type fieldStats struct {
		min, max, mean, stddev float64
		ok                     bool
	}
	stats := make(map[string]fieldStats)
	for _, rule := range rules {
		if rule.Operator != model.OpNormalize && rule.Operator != model.OpStandardize {
			continue
		}
		if _, done := stats[rule.Field]; done {
			continue
		}
		agg, err := Aggregate(d, rule.Field)
		if err != nil {
			stats[rule.Field] = fieldStats{}
			continue
		}
		stats[rule.Field] = fieldStats{
			min:    agg.Min,
			max:    agg.Max,
			mean:   agg.Average,
			stddev: agg.StandardDeviation,
			ok:     true,
		}
	}

	out := make([]model.Row, len(d.Rows))
	for i, row := range d.Rows {
		work := row.Clone()
		for _, rule := range rules {
			raw, ok := work[rule.Field]
			if !ok {
				continue
			}
			v, ok := utils.ToFloat(raw)
			if !ok {
				continue
			}

			var result float64
			switch rule.Operator {
			case model.OpNormalize:
				s := stats[rule.Field]
				if !s.ok || s.max == s.min {
					continue
				}
				result = (v - s.min) / (s.max - s.min)
			case model.OpStandardize:
				s := stats[rule.Field]
				if !s.ok || s.stddev == 0 {
					continue
				}
				result = (v - s.mean) / s.stddev
			case model.OpLog:
				result = math.Log(math.Max(v, logFloor))
			case model.OpSqrt:
				result = math.Sqrt(math.Max(v, 0))
			case model.OpSquare:
				result = v * v
			case model.OpRound:
				result = math.Round(v)
			case model.OpFloor:
				result = math.Floor(v)
			case model.OpCeil:
				result = math.Ceil(v)
			default:
				continue
			}

			target := rule.Target
			if target == "" {
				target = rule.Field
			}
			work[target] = result
		}
		out[i] = work
	}

	return model.Dataset{Rows: out, Fields: d.Fields}
}
