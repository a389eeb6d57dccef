package engine

import (
	"strings"

	"go-insight-engine/internal/model"
	"go-insight-engine/pkg/utils"
)

// ApplyFilters returns the rows satisfying every rule in the list (AND).
// Rows are not copied; filtering never mutates.
//
// Coercion rule (fixed and tested, see filter tests): equals, not_equals,
// and in compare numerically when both sides parse to numbers, otherwise
// by string coercion — so "5" matches 5 and 5.0. greater_than, less_than,
// and between require both operands to parse as numbers and exclude the
// row otherwise. between is inclusive on both bounds. in requires the rule
// value to be an array, else every row is excluded by that rule.
func ApplyFilters(d model.Dataset, rules []model.FilterRule) model.Dataset {
	if len(rules) == 0 {
		return d
	}
	filtered := make([]model.Row, 0, len(d.Rows))
	for _, row := range d.Rows {
		if matchesAll(row, rules) {
			filtered = append(filtered, row)
		}
	}
	return model.Dataset{Rows: filtered, Fields: d.Fields}
}

func matchesAll(row model.Row, rules []model.FilterRule) bool {
	for _, rule := range rules {
		if !matches(row, rule) {
			return false
		}
	}
	return true
}

func matches(row model.Row, rule model.FilterRule) bool {
	raw, ok := row[rule.Field]
	if !ok {
		return false
	}

	switch rule.Operator {
	case model.OpEquals:
		return looseEqual(raw, rule.Value)
	case model.OpNotEquals:
		return !looseEqual(raw, rule.Value)
	case model.OpGreaterThan:
		a, okA := utils.ToFloat(raw)
		b, okB := utils.ToFloat(rule.Value)
		return okA && okB && a > b
	case model.OpLessThan:
		a, okA := utils.ToFloat(raw)
		b, okB := utils.ToFloat(rule.Value)
		return okA && okB && a < b
	case model.OpContains:
		return strings.Contains(utils.Stringify(raw), utils.Stringify(rule.Value))
	case model.OpNotContains:
		return !strings.Contains(utils.Stringify(raw), utils.Stringify(rule.Value))
	case model.OpBetween:
		v, okV := utils.ToFloat(raw)
		lo, okLo := utils.ToFloat(rule.Value)
		hi, okHi := utils.ToFloat(rule.Value2)
		return okV && okLo && okHi && v >= lo && v <= hi
	case model.OpIn:
		items, ok := asSlice(rule.Value)
		if !ok {
			return false
		}
		for _, item := range items {
			if looseEqual(raw, item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// looseEqual compares numerically when both sides parse as numbers,
// otherwise by string coercion.
func looseEqual(a, b interface{}) bool {
	fa, okA := utils.ToFloat(a)
	fb, okB := utils.ToFloat(b)
	if okA && okB {
		return fa == fb
	}
	return utils.Stringify(a) == utils.Stringify(b)
}

func asSlice(v interface{}) ([]interface{}, bool) {
	switch items := v.(type) {
	case []interface{}:
		return items, true
	case []string:
		out := make([]interface{}, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(items))
		for i, f := range items {
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]interface{}, len(items))
		for i, n := range items {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}
