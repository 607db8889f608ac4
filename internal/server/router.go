// Package server assembles the HTTP surface: middleware, probes, docs and the authenticated API.
package server

import (
	"context"
	"net/http"
	"time"

	"location-tracker/docs"
	"location-tracker/internal/auth"
	"location-tracker/internal/handler"
	"location-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const readyTimeout = time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the API handlers mounted behind authentication.
type Handlers struct {
	Locations *handler.LocationHandler
	Routes    *handler.RouteHandler
	Logs      *handler.LogHandler
}

// NewRouter builds the gin engine. Everything except the probes, metrics and docs requires a bearer
// token signed with jwtSecret.
func NewRouter(jwtSecret []byte, db Pinger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	api := r.Group("/", auth.BearerMiddleware(jwtSecret))
	{
		api.POST("/locations", h.Locations.Submit)
		api.POST("/locations/batch", h.Locations.SubmitBatch)
		api.GET("/locations/:client_id", h.Locations.List)
		api.GET("/locations/:client_id/latest", h.Locations.Latest)

		api.GET("/routes/:client_id", h.Routes.Route)

		api.GET("/logs/:client_id", h.Logs.List)
	}

	return r
}
