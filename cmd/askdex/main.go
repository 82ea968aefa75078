package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/solistra/askdex/internal/config"
	"github.com/solistra/askdex/internal/db"
	dbRedis "github.com/solistra/askdex/internal/db/redis"
	logpkg "github.com/solistra/askdex/internal/logger"
	"github.com/solistra/askdex/internal/metrics"
	"github.com/solistra/askdex/internal/repository/facetcache"
	"github.com/solistra/askdex/internal/transport/azsearch"
	chiTransport "github.com/solistra/askdex/internal/transport/chi"
	openaiGen "github.com/solistra/askdex/internal/transport/openai"
	askuc "github.com/solistra/askdex/internal/usecase/ask"
	facetsuc "github.com/solistra/askdex/internal/usecase/facets"
	healthuc "github.com/solistra/askdex/internal/usecase/health"
	"github.com/solistra/askdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting askdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("search_index", cfg.Search.Index),
		zap.String("generation_api_type", cfg.Generation.APIType),
	)

	// Facet cache store, optional
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to facet cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register backend metrics explicitly (no init())
	metrics.RegisterBackendMetrics()

	// Backend clients — composition root
	searchClient := azsearch.NewClient(&azsearch.Config{
		Endpoint:   cfg.Search.Endpoint,
		Index:      cfg.Search.Index,
		APIKey:     cfg.Search.APIKey,
		APIVersion: cfg.Search.APIVersion,
		Timeout:    time.Duration(cfg.Search.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	generator := openaiGen.NewGenerator(&openaiGen.Config{
		APIType:    cfg.Generation.APIType,
		APIKey:     cfg.Generation.APIKey,
		BaseURL:    cfg.Generation.BaseURL,
		APIVersion: cfg.Generation.APIVersion,
		Deployment: cfg.Generation.Deployment,
		Model:      cfg.Generation.Model,
		Logger:     logger,
	})

	// Facet scanner, cached when a store is configured
	var scanner facetsuc.Scanner = searchClient
	if store != nil {
		scanner = facetcache.New(
			searchClient, store, cfg.Cache.KeyPrefix,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.FacetCacheTotal, logger,
		)
		logger.Info("Facet cache enabled",
			zap.Int("ttl_sec", cfg.Cache.TTLSec),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	}

	// Use case services
	askSvc := askuc.New(searchClient, generator)
	facetsSvc := facetsuc.New(scanner)

	// Pass nil interface (not typed nil) when no cache is configured.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(searchClient, generator, cachePinger)

	// Chi server
	server := chiTransport.NewServer(askSvc, facetsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.NewContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
