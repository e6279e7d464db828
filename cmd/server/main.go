package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/config"
	"github.com/mamadbah2/mfgconsole/internal/repository/mongodb"
	"github.com/mamadbah2/mfgconsole/internal/repository/sheets"
	"github.com/mamadbah2/mfgconsole/internal/scheduler"
	"github.com/mamadbah2/mfgconsole/internal/server/handlers"
	"github.com/mamadbah2/mfgconsole/internal/server/router"
	formssvc "github.com/mamadbah2/mfgconsole/internal/service/forms"
	reportingsvc "github.com/mamadbah2/mfgconsole/internal/service/reporting"
	submissionsvc "github.com/mamadbah2/mfgconsole/internal/service/submission"
	"github.com/mamadbah2/mfgconsole/pkg/clients/backend"
	"github.com/mamadbah2/mfgconsole/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var journal mongodb.Repository = mongodb.NopRepository{}
	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		journal = mongoRepo
		baseLogger.Info("submission journal enabled", zap.String("db", cfg.MongoDB.DBName))
	} else {
		baseLogger.Warn("mongodb uri missing, submission journal disabled")
	}
	defer func() {
		if err := journal.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var sheetsRepo sheets.Repository
	var register submissionsvc.Register
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		register = sheets.NewQualityRegister(sheetsRepo)
		baseLogger.Info("quality register enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, quality register disabled")
	}

	api := backend.NewClient(cfg.Backend)
	formsSvc := formssvc.NewService(api, baseLogger.Named("svc.forms"))
	submitter := submissionsvc.NewService(formsSvc, api, journal, register, baseLogger.Named("svc.submission"))
	reportingSvc := reportingsvc.NewService(sheetsRepo, journal, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		QualityForms:    handlers.NewQualityFormHandler(formsSvc, submitter, baseLogger.Named("handlers.quality_forms")),
		ProductionForms: handlers.NewProductionFormHandler(formsSvc, submitter, baseLogger.Named("handlers.production_forms")),
		QualityChecks:   handlers.NewQualityCheckHandler(api, submitter, baseLogger.Named("handlers.quality_checks")),
		Reports:         handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, baseLogger.Named("router"))

	var reporter scheduler.QualityReporter
	if sheetsRepo != nil {
		reporter = reportingSvc
	}
	sched, err := scheduler.NewScheduler(*cfg, formsSvc, reporter, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Backend.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
