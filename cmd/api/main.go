package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"location-tracker/internal/audit"
	"location-tracker/internal/config"
	"location-tracker/internal/handler"
	"location-tracker/internal/logging"
	"location-tracker/internal/repository"
	"location-tracker/internal/route"
	"location-tracker/internal/server"
	"location-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//	@title						Location Tracker API
//	@version					1.0
//	@description				Ingests GPS fixes from authenticated clients and serves their history, audit log and route geometry.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logging.Init(logging.Config{Level: config.LogLevel, Format: config.LogFormat})
	gin.SetMode(config.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot apply schema")
	}

	auditLogger := audit.NewLogger(repo)
	routeOpts := route.Options{MaxPoints: config.RouteMaxPoints, KeepLast: config.RouteKeepLastPoint}

	ingestService := service.NewIngestService(repo, auditLogger, config.MaxBatchSize)
	queryService := service.NewQueryService(repo, routeOpts)
	logService := service.NewLogService(repo)

	r := server.NewRouter([]byte(config.JWTSecret), repo, server.Handlers{
		Locations: handler.NewLocationHandler(ingestService, queryService),
		Routes:    handler.NewRouteHandler(queryService),
		Logs:      handler.NewLogHandler(logService),
	})

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("address", config.ServerAddress).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
