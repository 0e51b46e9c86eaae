package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to build logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// run returns instead of exiting so its deferred cleanup always happens.
	err = run(cfg, logger)
	if err != nil {
		logger.Error("diet recommendation api stopped", "error", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run builds the service from cfg and serves until the listener fails.
func run(cfg config, logger *appLogger) error {
	// The model is loaded once and shared read-only by every request.
	predictor, err := loadDietPredictor(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("load diet model %s: %w", cfg.ModelPath, err)
	}

	renderer, err := rendererFor(cfg.ReportFormat)
	if err != nil {
		return fmt.Errorf("build report renderer: %w", err)
	}

	store, closeStore, err := openReportStore(cfg, logger.With("component", "report_store"))
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer closeStore()

	h := &Handler{
		predictor: predictor,
		renderer:  renderer,
		reports:   store,
		log:       logger,
		now:       time.Now,
	}

	logger.Info("starting diet recommendation api",
		"addr", cfg.HTTPAddr,
		"model", cfg.ModelPath,
		"diet_types", predictor.target.Classes(),
		"report_format", cfg.ReportFormat)

	if err := newRouter(cfg, h).Run(cfg.HTTPAddr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// openReportStore picks Postgres when DB_URL is set, the local directory otherwise.
func openReportStore(cfg config, logger *appLogger) (reportStore, func(), error) {
	if cfg.DBURL == "" {
		store, err := newFSReportStore(cfg.ReportDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("storing reports on disk", "dir", cfg.ReportDir)
		return store, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := getDBPool(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("storing reports in postgres")
	return &pgReportStore{db: pool}, pool.Close, nil
}
