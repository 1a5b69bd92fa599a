package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	"github.com/DeBrosOfficial/marketplace/pkg/config"
	"github.com/DeBrosOfficial/marketplace/pkg/gateway"
	"github.com/DeBrosOfficial/marketplace/pkg/logging"
	"github.com/DeBrosOfficial/marketplace/pkg/metrics"
	"github.com/DeBrosOfficial/marketplace/pkg/registry"
	"github.com/DeBrosOfficial/marketplace/pkg/subgraph"
)

var version = "dev"

func setupLogger(cfg config.LoggingConfig) *logging.ColoredLogger {
	logger, err := logging.NewLogger(logging.Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		OutputFile: cfg.OutputFile,
		Colors:     cfg.Colors,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// newStore opens the registry store selected in the configuration.
func newStore(ctx context.Context, cfg config.RegistryConfig, logger *zap.Logger) (registry.Store, error) {
	switch cfg.Store {
	case config.StoreOlric:
		return registry.NewOlricStore(registry.OlricConfig{
			Servers: cfg.OlricServers,
			DMap:    cfg.OlricDMap,
			Timeout: cfg.OlricTimeout,
		}, logger)
	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		return registry.NewSQLStore(ctx, registry.DriverSQLite, cfg.SQLitePath, logger)
	case config.StoreRQLite:
		return registry.NewSQLStore(ctx, registry.DriverRQLite, cfg.RQLiteDSN, logger)
	default:
		return registry.NewMemoryStore(), nil
	}
}

// newSources builds one subgraph client per configured subgraph.
func newSources(cfgs []config.SubgraphConfig, logger *zap.Logger, m *metrics.Metrics) []registry.Source {
	sources := make([]registry.Source, 0, len(cfgs))
	for _, sc := range cfgs {
		network, _ := catalog.ParseNetwork(sc.Network)
		client := subgraph.NewClient(subgraph.Config{
			URL:     sc.URL,
			Timeout: sc.Timeout,
		}, logger.With(zap.String("source", sc.Name)), m)

		sources = append(sources, registry.Source{
			Name:     sc.Name,
			Network:  network,
			ChainID:  catalog.ChainID(sc.ChainID),
			Subgraph: client,
			Discover: sc.Discover,
		})
	}
	return sources
}

func main() {
	cfg, source, err := parseGatewayConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid gateway configuration:\n%v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging)
	defer logger.Sync()

	logger.ComponentInfo(logging.ComponentGeneral, "Loaded gateway configuration",
		zap.String("source", source),
		zap.String("addr", cfg.Server.ListenAddr),
		zap.String("store", cfg.Registry.Store),
		zap.Int("subgraphs", len(cfg.Subgraphs)),
		zap.Duration("refresh_interval", cfg.Registry.RefreshInterval),
	)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(promReg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg.Registry, logger.ComponentLogger(logging.ComponentStore))
	if err != nil {
		logger.ComponentError(logging.ComponentGeneral, "failed to open registry store", zap.Error(err))
		os.Exit(1)
	}

	reg := registry.New(store,
		newSources(cfg.Subgraphs, logger.ComponentLogger(logging.ComponentSubgraph), m),
		registry.WithLogger(logger.ComponentLogger(logging.ComponentRegistry)),
		registry.WithMetrics(m),
		registry.WithSeed(cfg.Registry.IncludeSeed),
		registry.WithRefreshInterval(cfg.Registry.RefreshInterval),
	)
	reg.Start(ctx)

	g := gateway.New(logger, gateway.Config{
		RequestTimeout: cfg.Server.RequestTimeout,
		Version:        version,
	}, reg, m, promReg)

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      g.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	errCh := make(chan error, 1)
	go func() {
		logger.ComponentInfo(logging.ComponentGeneral, "Gateway HTTP server starting",
			zap.String("addr", cfg.Server.ListenAddr),
			zap.String("version", version),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	exitCode := 0
	select {
	case <-ctx.Done():
		logger.ComponentInfo(logging.ComponentGeneral, "Shutting down gateway HTTP server...")
	case err := <-errCh:
		logger.ComponentError(logging.ComponentGeneral, "HTTP server error", zap.Error(err))
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ComponentError(logging.ComponentGeneral, "HTTP server shutdown error", zap.Error(err))
	}
	if err := reg.Close(shutdownCtx); err != nil {
		logger.ComponentError(logging.ComponentGeneral, "Registry close error", zap.Error(err))
	}
	logger.ComponentInfo(logging.ComponentGeneral, "Gateway shutdown complete")

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
