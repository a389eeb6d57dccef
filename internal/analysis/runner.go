package analysis

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go-insight-engine/internal/engine"
	"go-insight-engine/internal/model"
	"go-insight-engine/internal/store"
)

// Run executes every operation an analysis job requests against its
// dataset, persisting each result as it lands. Filters and transforms run
// first so the statistical operations see the shaped dataset; the
// remaining operations are independent and run concurrently.
func Run(ctx context.Context, jobID string, spec model.AnalysisJobSpec) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting analysis for job: %s\n", jobID)

	store.UpdateJobStatus(jobID, model.StatusRunning)

	defer func() {
		if err != nil {
			store.UpdateJobStatus(jobID, model.StatusFailed)
			store.SaveJobError(jobID, err)
		}
	}()

	working := spec.Dataset

	// --- SHAPING STAGE ---
	for _, op := range spec.Operations {
		switch op {
		case model.OpFilter:
			before := len(working.Rows)
			working = engine.ApplyFilters(working, spec.Filters)
			fmt.Printf("🔍 Filter stage: %d of %d rows kept\n", len(working.Rows), before)
			if err := store.SaveResult(jobID, model.OpFilter, working.Rows); err != nil {
				return fmt.Errorf("save filter result: %w", err)
			}
		case model.OpTransformRows:
			working = engine.ApplyTransforms(working, spec.Transforms)
			fmt.Printf("🔄 Transform stage: %d rules applied\n", len(spec.Transforms))
			if err := store.SaveResult(jobID, model.OpTransformRows, working.Rows); err != nil {
				return fmt.Errorf("save transform result: %w", err)
			}
		}
	}

	// --- ANALYSIS STAGE ---
	errorCh := make(chan error, len(spec.Operations)*4)
	var wg sync.WaitGroup

	var logWG sync.WaitGroup
	logWG.Add(1)
	go func() {
		defer logWG.Done()
		for opErr := range errorCh {
			log.Printf("❌ Error in job %s: %v\n", jobID, opErr)
			store.SaveJobError(jobID, opErr)
		}
	}()

	for _, op := range spec.Operations {
		if ctx.Err() != nil {
			break
		}
		switch op {
		case model.OpAggregate:
			wg.Add(1)
			go func() {
				defer wg.Done()
				runAggregations(jobID, working, spec.Aggregations, errorCh)
			}()
		case model.OpTimeSeries:
			wg.Add(1)
			go func() {
				defer wg.Done()
				runTimeSeries(jobID, working, spec.TimeSeries, errorCh)
			}()
		case model.OpCorrelations:
			wg.Add(1)
			go func() {
				defer wg.Done()
				fields := spec.Correlate
				if len(fields) == 0 {
					for _, f := range working.FieldsOfType(model.FieldNumerical) {
						fields = append(fields, f.ID)
					}
				}
				results := engine.AnalyzeCorrelations(working, fields)
				if err := store.SaveResult(jobID, model.OpCorrelations, results); err != nil {
					errorCh <- fmt.Errorf("save correlations: %w", err)
				}
			}()
		case model.OpQuality:
			wg.Add(1)
			go func() {
				defer wg.Done()
				result := engine.AssessQuality(working, working.Fields, nil)
				if err := store.SaveResult(jobID, model.OpQuality, result); err != nil {
					errorCh <- fmt.Errorf("save quality: %w", err)
				}
			}()
		case model.OpInsights:
			wg.Add(1)
			go func() {
				defer wg.Done()
				insights := engine.GenerateInsights(working, working.Fields, spec.Workers)
				if err := store.SaveResult(jobID, model.OpInsights, insights); err != nil {
					errorCh <- fmt.Errorf("save insights: %w", err)
				}
			}()
		}
	}

	wg.Wait()
	close(errorCh)
	logWG.Wait()

	if ctx.Err() != nil {
		return fmt.Errorf("analysis cancelled: %w", ctx.Err())
	}

	fmt.Printf("🏁 Analysis completed for job: %s in %v\n", jobID, time.Since(start))
	store.UpdateJobStatus(jobID, model.StatusCompleted)
	return nil
}

// runAggregations runs every requested aggregation. A failing field is
// reported and skipped; the rest still produce results.
func runAggregations(jobID string, d model.Dataset, specs []model.AggregateSpec, errorCh chan<- error) {
	for _, agg := range specs {
		if agg.GroupBy != "" {
			groups, err := engine.AggregateBy(d, agg.Field, agg.GroupBy)
			if err != nil {
				errorCh <- fmt.Errorf("aggregate %s by %s: %w", agg.Field, agg.GroupBy, err)
				continue
			}
			payload := map[string]interface{}{
				"field":   agg.Field,
				"groupBy": agg.GroupBy,
				"groups":  groups,
			}
			if err := store.SaveResult(jobID, model.OpAggregate, payload); err != nil {
				errorCh <- fmt.Errorf("save aggregation: %w", err)
			}
			continue
		}

		result, err := engine.Aggregate(d, agg.Field)
		if err != nil {
			errorCh <- fmt.Errorf("aggregate %s: %w", agg.Field, err)
			continue
		}
		payload := map[string]interface{}{
			"field":  agg.Field,
			"result": result,
		}
		if err := store.SaveResult(jobID, model.OpAggregate, payload); err != nil {
			errorCh <- fmt.Errorf("save aggregation: %w", err)
		}
	}
}

func runTimeSeries(jobID string, d model.Dataset, specs []model.TimeSeriesSpec, errorCh chan<- error) {
	for _, ts := range specs {
		result, err := engine.AnalyzeTimeSeries(d, ts.TimeField, ts.ValueField)
		if err != nil {
			errorCh <- fmt.Errorf("time series %s/%s: %w", ts.TimeField, ts.ValueField, err)
			continue
		}
		payload := map[string]interface{}{
			"timeField":  ts.TimeField,
			"valueField": ts.ValueField,
			"result":     result,
		}
		if err := store.SaveResult(jobID, model.OpTimeSeries, payload); err != nil {
			errorCh <- fmt.Errorf("save time series: %w", err)
		}
	}
}
