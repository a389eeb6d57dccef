package model

// Quartiles holds the nearest-rank quartile values of a numeric sample.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// Percentiles holds the nearest-rank percentile values of a numeric sample.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// AggregationResult summarizes the valid numeric values of one field.
// Count is the number of valid numeric values seen, not the row count.
type AggregationResult struct {
	Sum               float64     `json:"sum"`
	Average           float64     `json:"average"`
	Median            float64     `json:"median"`
	Min               float64     `json:"min"`
	Max               float64     `json:"max"`
	Count             int         `json:"count"`
	StandardDeviation float64     `json:"standardDeviation"`
	Variance          float64     `json:"variance"`
	Quartiles         Quartiles   `json:"quartiles"`
	Percentiles       Percentiles `json:"percentiles"`
}

// Trend classifies the direction of a time series (4-way).
type Trend string

const (
	TrendIncreasing  Trend = "increasing"
	TrendDecreasing  Trend = "decreasing"
	TrendStable      Trend = "stable"
	TrendFluctuating Trend = "fluctuating"
)

// Forecast is a one-step-ahead projection. Confidence is a heuristic in
// [0.1, 0.95], not a statistical prediction interval.
type Forecast struct {
	NextValue  float64 `json:"nextValue"`
	Confidence float64 `json:"confidence"`
	Trend      Trend   `json:"trend"`
}

// TimeSeriesResult holds trend, seasonality, and forecast diagnostics for a
// (time field, value field) pair.
type TimeSeriesResult struct {
	Trend               Trend    `json:"trend"`
	TrendStrength       float64  `json:"trendStrength"`
	Seasonality         bool     `json:"seasonality"`
	SeasonalityStrength float64  `json:"seasonalityStrength"`
	Forecast            Forecast `json:"forecast"`
}

// CorrelationStrength classifies |r| into buckets.
type CorrelationStrength string

const (
	CorrelationStrong   CorrelationStrength = "strong"
	CorrelationModerate CorrelationStrength = "moderate"
	CorrelationWeak     CorrelationStrength = "weak"
	CorrelationNone     CorrelationStrength = "none"
)

// Relationship is the sign of a correlation.
type Relationship string

const (
	RelationshipPositive Relationship = "positive"
	RelationshipNegative Relationship = "negative"
	RelationshipNone     Relationship = "none"
)

// CorrelationResult describes one unordered field pair. Significance is an
// indicative heuristic (e^(-|t|/10)), not a calibrated p-value.
type CorrelationResult struct {
	FieldA       string              `json:"fieldA"`
	FieldB       string              `json:"fieldB"`
	Correlation  float64             `json:"correlation"`
	Strength     CorrelationStrength `json:"strength"`
	Significance float64             `json:"significance"`
	Relationship Relationship        `json:"relationship"`
}

// DataQualityResult carries the five dimension scores in [0,1], their
// arithmetic mean, and any threshold-triggered issues.
type DataQualityResult struct {
	Completeness    float64  `json:"completeness"`
	Uniqueness      float64  `json:"uniqueness"`
	Accuracy        float64  `json:"accuracy"`
	Consistency     float64  `json:"consistency"`
	Validity        float64  `json:"validity"`
	OverallScore    float64  `json:"overallScore"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Severity grades an anomaly by how far it sits from the mean.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Anomaly flags a single value whose z-score exceeds the detection
// threshold. ExpectedRange is [mean-2σ, mean+2σ].
type Anomaly struct {
	Field         string     `json:"field"`
	RowIndex      int        `json:"rowIndex"`
	Value         float64    `json:"value"`
	ZScore        float64    `json:"zScore"`
	Severity      Severity   `json:"severity"`
	ExpectedRange [2]float64 `json:"expectedRange"`
}

// TrendDirection is the 3-way classification used by insight trend notes.
// Distinct from the 4-way Trend used by the time-series analyzer.
type TrendDirection string

const (
	DirectionUp     TrendDirection = "up"
	DirectionDown   TrendDirection = "down"
	DirectionStable TrendDirection = "stable"
)

// TrendNote is a directional observation about one numerical field.
type TrendNote struct {
	Field     string         `json:"field"`
	Direction TrendDirection `json:"direction"`
	Slope     float64        `json:"slope"`
	Message   string         `json:"message"`
}

// CorrelationNote is a notable pairwise correlation surfaced as an insight.
type CorrelationNote struct {
	FieldA      string              `json:"fieldA"`
	FieldB      string              `json:"fieldB"`
	Correlation float64             `json:"correlation"`
	Strength    CorrelationStrength `json:"strength"`
	Message     string              `json:"message"`
}

// Insights composes patterns, anomalies, trends, correlations, and
// recommendations for a dataset.
type Insights struct {
	Patterns        []string          `json:"patterns"`
	Anomalies       []Anomaly         `json:"anomalies"`
	Trends          []TrendNote       `json:"trends"`
	Correlations    []CorrelationNote `json:"correlations"`
	Recommendations []string          `json:"recommendations"`
}
