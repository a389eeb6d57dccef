package main

import (
	"flag"

	"go-insight-engine/internal/api"
	"go-insight-engine/internal/api/handler"
	"go-insight-engine/internal/config"
	"go-insight-engine/internal/store"
	"go-insight-engine/pkg/router"
)

// @title Insight Engine API
// @version 1.0
// @description Tabular analytics service: aggregation, time series, correlations, data quality, and insight generation.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	if err := store.InitDB(cfg.Database.Path); err != nil {
		panic(err)
	}
	handler.SetDefaults(cfg.Engine.Workers, cfg.Engine.JobTimeout)

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(cfg.Server.Addr)
}
