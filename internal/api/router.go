package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-insight-engine/docs"
	"go-insight-engine/internal/api/handler"
	"go-insight-engine/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/analyses", handler.CreateAnalysis)
	r.GET("/api/v1/analyses", handler.ListAnalyses)
	// More specific routes first
	r.GET("/api/v1/analyses/*/errors", handler.GetAnalysisErrors)
	r.GET("/api/v1/analyses/*/results", handler.GetAnalysisResults)
	// Generic analysis routes last
	r.GET("/api/v1/analyses/*", handler.GetAnalysis)
	r.DELETE("/api/v1/analyses/*", handler.DeleteAnalysis)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
