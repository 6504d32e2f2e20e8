package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"scanpulse/internal/config"
	"scanpulse/internal/dataprocessing"
	apierrors "scanpulse/internal/errors"
	"scanpulse/internal/files"
	"scanpulse/internal/infrastructure"
	custommw "scanpulse/internal/middleware"
	"scanpulse/internal/services"
	transporthttp "scanpulse/internal/transport/http"
	"scanpulse/pkg/contracts/domain"
)

// Application wires configuration, the dataset pipeline, services and the
// HTTP server together.
type Application struct {
	config  *config.Config
	logger  *slog.Logger
	otel    *infrastructure.OTelProviders
	metrics *infrastructure.ScanMetrics
	server  *http.Server

	dataService   *services.DataService
	healthService *services.HealthService
}

// New builds the application: load config, initialize observability, build
// the scan dataset once, then construct services and the HTTP server. A
// scan directory with no matching files is not fatal; the server starts
// with an empty dashboard.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize otel: %w", err)
	}

	metrics, err := infrastructure.NewScanMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	app := &Application{
		config:  cfg,
		logger:  logger,
		otel:    providers,
		metrics: metrics,
	}

	dataset, err := app.buildDataset(context.Background())
	if err != nil {
		return nil, err
	}

	app.dataService = services.NewDataService(dataset, cfg.Scan.MoverLimit, logger)
	app.healthService = services.NewHealthService(dataset, infrastructure.Version, logger)

	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// buildDataset runs the load pipeline and records its metrics.
func (a *Application) buildDataset(ctx context.Context) (*domain.ScanDataset, error) {
	start := time.Now()

	discovery := files.NewDiscovery(a.config.Scan.FilePrefix, a.config.Scan.FileExtension)
	processor := dataprocessing.NewProcessor(discovery, columnPatterns(a.config.Scan.Columns), a.logger)

	ds, err := processor.Build(ctx, a.config.Scan.DataDir)
	if err != nil {
		if !errors.Is(err, dataprocessing.ErrNoScanFiles) {
			return nil, fmt.Errorf("failed to build scan dataset: %w", err)
		}
		a.logger.Warn("no scan files found, serving empty dataset",
			slog.String("dir", a.config.Scan.DataDir))
	}

	a.metrics.LoadDuration.Record(ctx, time.Since(start).Seconds())
	a.metrics.RowsLoaded.Add(ctx, int64(ds.Len()))
	a.metrics.FilesParsed.Add(ctx, int64(len(ds.Dates())))

	return ds, nil
}

// router assembles the middleware chain and mounts the handlers.
func (a *Application) router() http.Handler {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.logger))
	r.Use(custommw.Recoverer(a.logger))
	r.Use(custommw.RequestMetrics(a.metrics))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.StripSlashes)
	r.Use(custommw.Compress(5))
	r.Use(custommw.Timeout(a.config.Server.RequestTimeout, a.logger))

	if a.config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.config.Security.AllowedOrigins,
			Logger:         a.logger,
		}))
	}

	if a.config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.config.Security.RateLimit.RPS,
			a.config.Security.RateLimit.Burst,
			a.logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.logger, false)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	dataHandler := transporthttp.NewDataHandler(a.dataService, a.logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(a.healthService, a.logger)

	r.Mount("/api", dataHandler.Routes())
	r.Mount("/healthz", healthHandler.Routes())
	r.Handle("/metrics", transporthttp.MetricsHandler())

	return r
}

// Run starts the HTTP server and blocks until a shutdown signal arrives or
// the server fails.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server starting",
			slog.String("addr", a.server.Addr),
			slog.String("version", infrastructure.Version))

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

// shutdown drains connections and flushes telemetry.
func (a *Application) shutdown() error {
	a.logger.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := a.otel.Shutdown(ctx); err != nil {
		a.logger.Warn("otel shutdown failed", slog.String("error", err.Error()))
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.logger.Warn("log file close failed", slog.String("error", err.Error()))
	}

	a.logger.Info("server stopped")
	return nil
}

// columnPatterns overlays configured header patterns onto the defaults.
func columnPatterns(cfg config.ColumnsConfig) dataprocessing.ColumnPatterns {
	patterns := dataprocessing.DefaultColumns()

	if len(cfg.Symbol) > 0 {
		patterns.Symbol = cfg.Symbol
	}
	if len(cfg.Sector) > 0 {
		patterns.Sector = cfg.Sector
	}
	if len(cfg.ChangePercent) > 0 {
		patterns.ChangePercent = cfg.ChangePercent
	}
	if len(cfg.Volume) > 0 {
		patterns.Volume = cfg.Volume
	}
	if len(cfg.RelativeVolume) > 0 {
		patterns.RelativeVolume = cfg.RelativeVolume
	}
	if len(cfg.MarketCap) > 0 {
		patterns.MarketCap = cfg.MarketCap
	}

	return patterns
}
