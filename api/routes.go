package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/releasewatch/mailparser/api/handlers"
	"github.com/releasewatch/mailparser/api/middleware"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/repository"
	"github.com/releasewatch/mailparser/internal/tracing"
)

const APIKeyHeader = "X-MAILPARSER-API-KEY"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, repos *repository.Repositories, apikey string, log logger.Logger) {
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  APIKeyHeader,
		ValidAPIKey: apikey,
	})

	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.TracingMiddleware())
	{
		releases := api.Group("/releases")
		{
			releases.GET("", handlers.ListReleases(repos.ReleaseRepository, log))
		}
	}
}
