package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vod-coordinator/internal/catalog"
	"vod-coordinator/internal/coordinator"
	"vod-coordinator/internal/engine"
	"vod-coordinator/internal/platform/config"
	"vod-coordinator/internal/platform/logger"
	"vod-coordinator/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const (
	shutdownTimeout = 10 * time.Second
	reapInterval    = 30 * time.Second
)

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "5000")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	rtspHost := config.GetEnv("RTSP_HOST", "localhost")
	rtspPort := config.GetEnvInt("RTSP_PORT", 8554)
	dbPath := config.GetEnv("CATALOG_DB", "movies_database.db")
	vlcBinary := config.GetEnv("VLC_BINARY", engine.DefaultVLCBinary)
	portfolioPath := config.GetEnv("PORTFOLIO_PATH", "assets/project_portfolio.docx")
	idleTimeout := config.GetEnvDuration("SESSION_IDLE_TIMEOUT", 0)

	log := logger.New(logLevel, logFormat)

	cat, err := catalog.OpenSQLite(dbPath)
	if err != nil {
		log.Error("open catalog", "error", err)
		os.Exit(1)
	}
	defer cat.Close()

	alloc := coordinator.NewAllocator(rtspHost, rtspPort)
	registry := coordinator.NewRegistry(engine.NewVLCFactory(vlcBinary), alloc)
	svc := coordinator.NewService(registry, cat)
	met := metrics.New()
	h := coordinator.NewHandler(svc, log, met, portfolioPath)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		met.Handler(func() {
			met.SetConnectedClients(registry.ConnectedCount())
			met.SetStreamingClients(registry.StreamingCount())
		}).ServeHTTP(w, req)
	})
	h.Register(r)

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	stopReaper := make(chan struct{})
	if idleTimeout > 0 {
		go func() {
			ticker := time.NewTicker(reapInterval)
			defer ticker.Stop()
			for {
				select {
				case <-stopReaper:
					return
				case <-ticker.C:
					reaped := registry.ReapIdle(idleTimeout)
					if len(reaped) > 0 {
						met.AddSessionsReaped(len(reaped))
						log.Info("reaped idle sessions", "count", len(reaped))
					}
				}
			}
		}()
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"rtsp_host", rtspHost,
		"rtsp_port", rtspPort,
		"catalog_db", dbPath,
		"session_idle_timeout", idleTimeout.String(),
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")
	close(stopReaper)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
