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

	"github.com/bokji-cloud/genie/internal/catalog"
	"github.com/bokji-cloud/genie/internal/chat"
	"github.com/bokji-cloud/genie/internal/config"
	"github.com/bokji-cloud/genie/internal/health"
	"github.com/bokji-cloud/genie/internal/keyword"
	"github.com/bokji-cloud/genie/internal/llm"
	logpkg "github.com/bokji-cloud/genie/internal/logger"
	"github.com/bokji-cloud/genie/internal/metrics"
	"github.com/bokji-cloud/genie/internal/retrieval"
	"github.com/bokji-cloud/genie/internal/session"
	chiTransport "github.com/bokji-cloud/genie/internal/transport/chi"
	"github.com/bokji-cloud/genie/internal/version"
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

	logger.Info("Starting genie API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.String("session_driver", cfg.Session.Driver),
	)

	// Load the welfare record catalog once; it is immutable afterwards.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.Int("records", cat.Len()),
		zap.Int("entries", len(cat.Schema().EntryNames)),
	)

	// Full-text index for /v1/search
	kwIndex, err := keyword.NewIndex(cat.Records())
	if err != nil {
		logger.Fatal("Failed to build keyword index", zap.Error(err))
	}
	defer func() { _ = kwIndex.Close() }()

	// Create session store based on driver
	var store session.Store
	switch cfg.Session.Driver {
	case "memory":
		store = session.NewMemoryStore(time.Duration(cfg.Session.TTLHours) * time.Hour)
	case "redis":
		redisStore, err := session.NewRedisStore(session.RedisConfig{
			Addrs:    cfg.Session.Addrs,
			Password: cfg.Session.Password,
			DB:       cfg.Session.DB,
			TTL:      time.Duration(cfg.Session.TTLHours) * time.Hour,
		})
		if err != nil {
			logger.Fatal("Failed to create session store", zap.Error(err))
		}
		readiness := time.Duration(cfg.Session.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Session store not ready", zap.Error(err))
		}
		store = redisStore
	default:
		logger.Fatal("Unknown session driver", zap.String("driver", cfg.Session.Driver))
	}
	defer store.Close()
	logger.Info("Session store ready", zap.String("driver", cfg.Session.Driver))

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// LLM client shared by the planner and the synthesizer
	llmClient := llm.NewClient(&llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: float32(cfg.LLM.Temperature),
		Logger:      logger,
	})
	planner := llm.NewPlanner(llmClient, logger)
	synth := llm.NewSynthesizer(llmClient, logger)

	// Retrieval engine and chat orchestrator
	engine := retrieval.NewEngine(cat, cfg.Retrieval.CrisisCategory, logger)
	chatSvc := chat.New(cat, engine, planner, synth, chat.Options{
		FallbackEntryName: cfg.Retrieval.FallbackEntryName,
		FallbackItemKind:  cfg.Retrieval.FallbackItemKind,
		NavigationMarkers: cfg.Retrieval.NavigationMarkers,
	}, logger)

	// Health service
	healthSvc := health.New(cat, store, llmClient)

	// Create chi server
	server := chiTransport.NewServer(
		chatSvc, store, cat, kwIndex, healthSvc, cfg.Retrieval.SearchLimit, logger,
	)

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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

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
