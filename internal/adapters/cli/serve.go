package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/gunsmith-go/internal/adapters/httpapi"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/metrics"
	"github.com/andrescamacho/gunsmith-go/internal/infrastructure/config"
	"github.com/andrescamacho/gunsmith-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command, which starts the same HTTP
// server cmd/gunsmith-server runs, for environments that prefer a single
// binary with subcommands over a dedicated server image.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Starts the optimizer HTTP API: GET /api/info, GET /api/info/{weapon_id}/mods,
POST /api/optimize, and POST /api/explore.

Example:
  gunsmith serve --config ./config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pf := pidfile.New(a.cfg.Server.PIDFile)
	if err := pf.Acquire(); err != nil {
		return fmt.Errorf("failed to acquire PID file lock: %w", err)
	}
	defer pf.Release()

	if a.cfg.Metrics.Enabled {
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

		startMetricsServer(&a.cfg.Metrics)
	}

	handlers := httpapi.NewHandlers(a.med)
	router := httpapi.NewRouter(handlers)

	server := &http.Server{
		Addr:         a.cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("Listening on %s\n", a.cfg.Server.Address)
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
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
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
