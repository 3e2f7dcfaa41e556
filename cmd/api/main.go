package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/config"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	appHTTP "github.com/cmlabs-hris/agent-hours-go/internal/handler/http"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/cron"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/database"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/sse"
	"github.com/cmlabs-hris/agent-hours-go/internal/repository/file"
	"github.com/cmlabs-hris/agent-hours-go/internal/repository/memory"
	"github.com/cmlabs-hris/agent-hours-go/internal/repository/postgresql"
	reportService "github.com/cmlabs-hris/agent-hours-go/internal/service/report"
	rosterService "github.com/cmlabs-hris/agent-hours-go/internal/service/roster"
	sessionService "github.com/cmlabs-hris/agent-hours-go/internal/service/session"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "agent-hours"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assignments, activity, err := loadDatasets(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to load datasets: ", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg); err != nil {
		log.Fatal("Failed to register metrics: ", err)
	}

	roster := rosterService.NewRosterService(assignments)
	reports := reportService.NewReportService(activity, roster, spreadsheet.NewExporter())
	sessions := sessionService.NewSessionService(memory.NewSessionRepository(), roster, reports, sse.NewHub(), cfg.Session.DefaultHours)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(sessions, cfg.Session.TTL, cfg.Session.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       slog.LevelDebug,
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Gatherer:       reg,
		},
		appHTTP.NewRosterHandler(roster),
		appHTTP.NewSessionHandler(sessions),
		appHTTP.NewReportHandler(sessions),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "managers", len(roster.Managers()), "activity_rows", len(activity.Records))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
}

// loadDatasets reads both datasets once from the configured source.
func loadDatasets(ctx context.Context, cfg *config.Config) ([]dataset.Assignment, dataset.ActivitySet, error) {
	var (
		assignments []dataset.Assignment
		activity    dataset.ActivitySet
	)

	load := func(ctx context.Context, source dataset.Source) error {
		var err error
		if assignments, err = source.LoadAssignments(ctx); err != nil {
			return err
		}
		activity, err = source.LoadActivity(ctx)
		return err
	}

	switch cfg.Dataset.Source {
	case config.SourceFile:
		source := file.NewDatasetSource(cfg.Dataset.AssignmentsPath, cfg.Dataset.ActivityPath)
		if err := load(ctx, source); err != nil {
			return nil, dataset.ActivitySet{}, err
		}
	case config.SourcePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, dataset.ActivitySet{}, err
		}
		defer db.Close()

		source := postgresql.NewDatasetSource(db)
		if err := postgresql.WithSnapshot(ctx, db, func(ctx context.Context) error {
			return load(ctx, source)
		}); err != nil {
			return nil, dataset.ActivitySet{}, err
		}
	default:
		return nil, dataset.ActivitySet{}, fmt.Errorf("%q: %w", cfg.Dataset.Source, dataset.ErrUnknownSource)
	}

	return assignments, activity, nil
}
