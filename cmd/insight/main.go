package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go-insight-engine/internal/dataset"
	"go-insight-engine/internal/engine"
)

// One-shot analysis of a local dataset file: infer the schema, assess
// quality, generate insights, and print everything as JSON.
func main() {
	file := flag.String("file", "", "dataset file (.csv or .json)")
	field := flag.String("field", "", "optional field to aggregate")
	groupBy := flag.String("group-by", "", "optional grouping field for the aggregation")
	workers := flag.Int("workers", 0, "insight worker count (0 = default)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: insight -file data.csv [-field amount] [-group-by region]")
		os.Exit(2)
	}

	d, err := dataset.Load(context.Background(), *file, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("📄 Loaded %d rows, %d fields from %s\n", len(d.Rows), len(d.Fields), *file)

	report := map[string]interface{}{
		"fields":   d.Fields,
		"quality":  engine.AssessQuality(d, d.Fields, nil),
		"insights": engine.GenerateInsights(d, d.Fields, *workers),
	}

	if *field != "" {
		if *groupBy != "" {
			groups, err := engine.AggregateBy(d, *field, *groupBy)
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ aggregate %s by %s: %v\n", *field, *groupBy, err)
				os.Exit(1)
			}
			report["aggregation"] = groups
		} else {
			result, err := engine.Aggregate(d, *field)
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ aggregate %s: %v\n", *field, err)
				os.Exit(1)
			}
			report["aggregation"] = result
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ encode report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
