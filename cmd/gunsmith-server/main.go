package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/gunsmith-go/internal/adapters/catalogapi"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/httpapi"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/metrics"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/persistence"
	"github.com/andrescamacho/gunsmith-go/internal/application/catalogsvc"
	"github.com/andrescamacho/gunsmith-go/internal/application/mediator"
	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/commands"
	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/queries"
	"github.com/andrescamacho/gunsmith-go/internal/infrastructure/config"
	"github.com/andrescamacho/gunsmith-go/internal/infrastructure/database"
	"github.com/andrescamacho/gunsmith-go/internal/infrastructure/pidfile"
)

func main() {
	fmt.Println("Gunsmith Optimizer Server v0.1.0")
	fmt.Println("================================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("")

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Server.PIDFile)
	pf := pidfile.New(cfg.Server.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	fmt.Println("Database connected and migrated")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		solverCollector := metrics.NewSolverMetricsCollector()
		if err := solverCollector.Register(); err != nil {
			return fmt.Errorf("failed to register solver metrics: %w", err)
		}
		metrics.SetGlobalSolverCollector(solverCollector)

		catalogCollector := metrics.NewCatalogMetricsCollector()
		if err := catalogCollector.Register(); err != nil {
			return fmt.Errorf("failed to register catalog metrics: %w", err)
		}
		metrics.SetGlobalCatalogCollector(catalogCollector)

		startMetricsServer(&cfg.Metrics)
	}

	catalogClient := catalogapi.NewClient(catalogapi.Config{
		BaseURL:         cfg.Catalog.BaseURL,
		Timeout:         cfg.Catalog.Timeout,
		RateRequests:    cfg.Catalog.RateLimit.Requests,
		RateBurst:       cfg.Catalog.RateLimit.Burst,
		MaxRetries:      cfg.Catalog.Retry.MaxAttempts,
		BackoffBase:     cfg.Catalog.Retry.BackoffBase,
		CacheDir:        cfg.Catalog.CacheDir,
		CacheTTLSeconds: int64(cfg.Catalog.CacheTTL.Seconds()),
		CacheVersion:    cfg.Catalog.CacheVersion,
	}, nil)

	catalogRepo := persistence.NewGormCatalogRepository(db)
	catalogService := catalogsvc.NewService(catalogClient, catalogRepo, cfg.Catalog.CacheVersion)

	med := mediator.New()
	if err := mediator.RegisterHandler[*commands.OptimizeWeaponCommand](med, commands.NewOptimizeWeaponHandler(catalogService)); err != nil {
		return fmt.Errorf("failed to register optimize handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.ExploreParetoCommand](med, commands.NewExploreParetoHandler(catalogService)); err != nil {
		return fmt.Errorf("failed to register explore handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.ListWeaponsQuery](med, queries.NewListWeaponsHandler(catalogService)); err != nil {
		return fmt.Errorf("failed to register list weapons handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.ListModsQuery](med, queries.NewListModsHandler(catalogService)); err != nil {
		return fmt.Errorf("failed to register list mods handler: %w", err)
	}

	handlers := httpapi.NewHandlers(med)
	router := httpapi.NewRouter(handlers)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("Listening on %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		fmt.Println("Shutting down gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func startMetricsServer(cfg *config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{EnableOpenMetrics: true}))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	metricsServer := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()
	fmt.Printf("Metrics exposed on %s%s\n", addr, cfg.Path)
}
