package model

// Operation names one engine computation an analysis job can request.
type Operation string

const (
	OpAggregate     Operation = "aggregate"
	OpTimeSeries    Operation = "timeseries"
	OpCorrelations  Operation = "correlations"
	OpQuality       Operation = "quality"
	OpInsights      Operation = "insights"
	OpFilter        Operation = "filter"
	OpTransformRows Operation = "transform"
)

// AggregateSpec configures an aggregation request.
type AggregateSpec struct {
	Field   string `json:"field"`
	GroupBy string `json:"groupBy,omitempty"`
}

// TimeSeriesSpec configures a time-series request.
type TimeSeriesSpec struct {
	TimeField  string `json:"timeField"`
	ValueField string `json:"valueField"`
}

// AnalysisJobSpec is the full configuration of an analysis job: the dataset,
// which operations to run, and their parameters. Operations left nil or
// empty are skipped.
type AnalysisJobSpec struct {
	Dataset      Dataset          `json:"dataset"`
	Operations   []Operation      `json:"operations"`
	Aggregations []AggregateSpec  `json:"aggregations,omitempty"`
	TimeSeries   []TimeSeriesSpec `json:"timeSeries,omitempty"`
	Correlate    []string         `json:"correlate,omitempty"` // field IDs; empty → all numerical
	Filters      []FilterRule     `json:"filters,omitempty"`
	Transforms   []TransformRule  `json:"transforms,omitempty"`
	Workers      int              `json:"workers,omitempty"` // per-field parallelism, 0 → default
	Timeout      string           `json:"timeout,omitempty"` // job deadline, e.g. "5m"
}

// JobStatus values follow the job through its lifecycle.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
