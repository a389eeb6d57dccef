package engine

import "errors"

// ErrInsufficientData is returned when an analyzer has nothing to work
// with: aggregation over zero valid numeric values, or a time series with
// fewer than 2 usable rows. Sparse-data situations short of that (missing
// fields, thin correlation pairs, short seasonality windows) are not
// errors and resolve to neutral results instead.
var ErrInsufficientData = errors.New("insufficient data")
