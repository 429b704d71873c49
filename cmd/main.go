package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bistro/internal/api"
	"bistro/internal/assistant"
	"bistro/internal/config"
	"bistro/internal/database"
	"bistro/internal/engine"
	"bistro/internal/monitoring"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	dbPath      = flag.String("db", "", "Path to the archive database (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *metricsPort != 0 {
		cfg.MetricsPort = *metricsPort
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	store, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Printf("Archive database unavailable, continuing without history: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	eng := engine.New(
		engine.WithTuning(cfg.EngineTuning()),
		engine.WithGame(cfg.BuildGame()),
		engine.WithRestaurant(cfg.BuildRestaurant()),
	)
	defer eng.Stop()

	recorder := database.NewRecorder(store, eng.Bus())
	defer recorder.Detach()

	collector := monitoring.NewCollector()
	detachMetrics := collector.Attach(eng.Bus())
	defer detachMetrics()

	asst := initializeAssistant(cfg, eng)

	server := api.NewServer(eng, store, asst)
	defer server.Hub().Stop()

	go startMetricsServer(cfg.MetricsPort, collector)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// initializeAssistant wires the command router. A missing API key is not
// fatal; the assistant then only accepts the direct command form.
func initializeAssistant(cfg *config.Config, eng *engine.Engine) *assistant.Assistant {
	registry := assistant.NewRegistry()
	if cfg.Assistant.Model != "" {
		registry.Register(cfg.Assistant.Provider, assistant.Provider{
			Name: cfg.Assistant.Model,
			Type: cfg.Assistant.Provider,
		})
	}

	model, err := registry.GetModel(cfg.Assistant.Provider)
	if err != nil {
		log.Printf("Assistant model unavailable, direct commands only: %v", err)
		model = nil
	}
	return assistant.New(model, assistant.NewDispatcher(eng))
}

func startMetricsServer(port int, collector *monitoring.Collector) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		collector.Registry(), promhttp.HandlerOpts{},
	)))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
