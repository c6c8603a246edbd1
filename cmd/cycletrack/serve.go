package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cycletrack/internal/api"
	"github.com/terraincognita07/cycletrack/internal/config"
	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/scheduler"
	"github.com/terraincognita07/cycletrack/internal/services"
	"gorm.io/gorm"
)

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the cycles REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), options.cfg)
		},
	}
}

type server struct {
	app         *fiber.App
	database    *gorm.DB
	predictions *services.PredictionService
}

func newServer(cfg config.Config) (*server, error) {
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	predictionService := services.NewPredictionService(repositories.CycleEntries, repositories.Predictions)
	entryService := services.NewEntryService(repositories.CycleEntries, predictionService)
	insightsService := services.NewInsightsService(entryService, predictionService)
	exportService := services.NewExportService(entryService)
	handler := api.NewHandler(entryService, predictionService, insightsService, exportService, cfg.Location)

	app := fiber.New(fiber.Config{
		AppName:               "cycletrack",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:   "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
		TimeZone: cfg.Location.String(),
	}))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	return &server{app: app, database: database, predictions: predictionService}, nil
}

func (s *server) close() {
	if sqlDB, err := s.database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func runServer(ctx context.Context, cfg config.Config) error {
	time.Local = cfg.Location

	srv, err := newServer(cfg)
	if err != nil {
		return err
	}
	defer srv.close()

	lifecycleCtx, cancelLifecycle := context.WithCancel(ctx)
	defer cancelLifecycle()

	refresher := &scheduler.Service{
		Predictions: srv.predictions,
		Schedule:    cfg.PredictionRefreshSchedule,
		Location:    cfg.Location,
	}
	_, refresherStopped, err := refresher.Start(lifecycleCtx)
	if err != nil {
		return err
	}
	// The database stays open until an in-flight refresh returns.
	defer func() {
		cancelLifecycle()
		<-refresherStopped
	}()

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("cycletrack listening on http://0.0.0.0:%s (db: %s, tz: %s, refresh: %s)",
		cfg.Port, cfg.DBPath, cfg.Location.String(), cfg.PredictionRefreshSchedule)
	if err := srv.app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
