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

	"github.com/boardka/boardka/internal/config"
	dbRedis "github.com/boardka/boardka/internal/db/redis"
	logpkg "github.com/boardka/boardka/internal/logger"
	"github.com/boardka/boardka/internal/metrics"
	catalogrepo "github.com/boardka/boardka/internal/repository/catalog"
	preferencerepo "github.com/boardka/boardka/internal/repository/preference"
	chiTransport "github.com/boardka/boardka/internal/transport/chi"
	cataloguc "github.com/boardka/boardka/internal/usecase/catalog"
	healthuc "github.com/boardka/boardka/internal/usecase/health"
	preferenceuc "github.com/boardka/boardka/internal/usecase/preference"
	recommenduc "github.com/boardka/boardka/internal/usecase/recommend"
	"github.com/boardka/boardka/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting boardka API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog", cfg.Catalog.Path),
		zap.String("preferences_driver", cfg.Preferences.Driver),
	)

	ctx := logpkg.ContextWithLogger(context.Background(), logger)

	// Register domain metrics explicitly (no init())
	metrics.RegisterRecommendMetrics()

	// Catalog: load once at startup, reload on demand via the API.
	loader, err := catalogrepo.NewLoader(cfg.Catalog.Path, cfg.Catalog.Format, cfg.Catalog.Sheet)
	if err != nil {
		logger.Fatal("Invalid catalog source", zap.Error(err))
	}
	catalogSvc := cataloguc.New(loader)
	if _, err := catalogSvc.Reload(ctx); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	// Preference store based on driver
	var (
		prefStore preferenceuc.Store
		storePing healthuc.StorePinger
	)
	switch cfg.Preferences.Driver {
	case "redis", "valkey":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Preferences.Addrs,
			Password: cfg.Preferences.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create preference store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Preferences.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Preference store not ready", zap.Error(err))
		}
		logger.Info("Connected to preference store", zap.Strings("addrs", cfg.Preferences.Addrs))

		prefStore = preferencerepo.New(store, cfg.Preferences.KeyPrefix)
		storePing = store
	default:
		fileStore := preferencerepo.NewFileStore(cfg.Preferences.Path)
		logger.Info("Using file preference store", zap.String("path", fileStore.Path()))
		prefStore = fileStore
	}

	// Use case services
	engine := recommenduc.NewEngine(cfg.Scoring.Domain())
	prefSvc := preferenceuc.New(prefStore, catalogSvc)
	recommendSvc := recommenduc.New(engine, catalogSvc, prefSvc).
		WithPreferredTopN(cfg.Preferences.TopN)
	healthSvc := healthuc.New(catalogSvc, storePing)

	// Create chi server
	server := chiTransport.NewServer(recommendSvc, catalogSvc, prefSvc, healthSvc, logger).
		WithPreferenceSettings(cfg.Preferences.TopN, cfg.Preferences.MinTagCount)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Use(chiTransport.CORSMiddleware(cfg.CORS.AllowedOrigins, time.Duration(cfg.CORS.MaxAgeSec)*time.Second))
	r.Use(chiTransport.RateLimitMiddleware(cfg.RateLimit.RequestsPerMinute))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			// Canonical log line: one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
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
