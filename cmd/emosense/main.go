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

	"github.com/emosense-cloud/emosense/internal/config"
	"github.com/emosense-cloud/emosense/internal/db"
	dbRedis "github.com/emosense-cloud/emosense/internal/db/redis"
	"github.com/emosense-cloud/emosense/internal/domain"
	logpkg "github.com/emosense-cloud/emosense/internal/logger"
	"github.com/emosense-cloud/emosense/internal/metrics"
	"github.com/emosense-cloud/emosense/internal/repository/embcache"
	chiTransport "github.com/emosense-cloud/emosense/internal/transport/chi"
	"github.com/emosense-cloud/emosense/internal/transport/huggingface"
	openaiProv "github.com/emosense-cloud/emosense/internal/transport/openai"
	analyzeuc "github.com/emosense-cloud/emosense/internal/usecase/analyze"
	clusteruc "github.com/emosense-cloud/emosense/internal/usecase/cluster"
	healthuc "github.com/emosense-cloud/emosense/internal/usecase/health"
	recommenduc "github.com/emosense-cloud/emosense/internal/usecase/recommend"
	rootcauseuc "github.com/emosense-cloud/emosense/internal/usecase/rootcause"
	summaryuc "github.com/emosense-cloud/emosense/internal/usecase/summary"
	"github.com/emosense-cloud/emosense/internal/usecase/vectorize"
	"github.com/emosense-cloud/emosense/internal/version"
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

	logger.Info("Starting emosense API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx := context.Background()

	// Cache store is optional: without it embeddings are re-fetched every time.
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer redisStore.Close()

		if err := redisStore.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")
		store = redisStore
	} else {
		logger.Warn("No database configured, embedding cache disabled")
	}

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Classifier loader chain: hosted API first, mock last when degraded
	// output is allowed.
	allowDegraded := cfg.Classifier.AllowDegraded != nil && *cfg.Classifier.AllowDegraded
	loaders := []vectorize.Loader{
		{
			Name: "api",
			Load: func() (vectorize.Classifier, error) {
				c, err := huggingface.NewClassifier(&huggingface.ClassifierConfig{
					APIKey:  cfg.Classifier.APIKey,
					BaseURL: cfg.Classifier.BaseURL,
					Model:   cfg.Classifier.Model,
					Timeout: time.Duration(cfg.Classifier.TimeoutSec) * time.Second,
					Logger:  logger,
				})
				if err != nil {
					return nil, err
				}
				return c, nil
			},
		},
	}
	if allowDegraded {
		loaders = append(loaders, vectorize.Loader{
			Name: "mock",
			Load: func() (vectorize.Classifier, error) {
				return vectorize.NewMockClassifier(), nil
			},
		})
	}

	classifier, source, err := vectorize.BuildClassifier(loaders, logger)
	if err != nil {
		logger.Fatal("No emotion classifier available", zap.Error(err))
	}

	predictor := vectorize.NewService(classifier, vectorize.Config{
		Source:        source,
		Threshold:     cfg.Classifier.Threshold,
		BoostFactor:   cfg.Pipeline.EmojiBoostFactor,
		AllowDegraded: allowDegraded,
	}, logger)

	// Embedder chain: OpenAI -> Cached
	baseEmbedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	var embedder domain.Embedder = baseEmbedder
	if store != nil {
		embedder = embcache.New(baseEmbedder, store, cfg.Database.KeyPrefix, metrics.EmbeddingCacheTotal, logger)
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Bool("cached", store != nil),
	)

	clusterer := clusteruc.NewService(embedder, clusteruc.Config{
		MinClusterSize: cfg.Pipeline.MinClusterSize,
		MaxClusters:    cfg.Pipeline.MaxClusters,
	}, logger)

	// Generation-backed services are optional: without an API key the
	// analyze pipeline still runs, minus root causes and recommendations.
	var generator *openaiProv.Generator
	var rootcauseSvc *rootcauseuc.Service
	var recommendSvc *recommenduc.Service
	if cfg.Generation.APIKey != "" {
		generator = openaiProv.NewGenerator(&openaiProv.GeneratorConfig{
			APIKey:    cfg.Generation.APIKey,
			BaseURL:   cfg.Generation.BaseURL,
			Model:     cfg.Generation.Model,
			MaxTokens: cfg.Generation.MaxTokens,
			Logger:    logger,
		})
		rootcauseSvc = rootcauseuc.NewService(generator, rootcauseuc.Config{
			MaxTokens: cfg.Generation.MaxTokens,
		}, logger)
		recommendSvc = recommenduc.NewService(generator, recommenduc.Config{}, logger)
	} else {
		logger.Warn("No generation API key, root causes and recommendations disabled")
	}

	var summarySvc *summaryuc.Service
	summarizer, err := huggingface.NewSummarizer(&huggingface.SummarizerConfig{
		APIKey:  cfg.Classifier.APIKey,
		BaseURL: cfg.Classifier.BaseURL,
		Model:   cfg.Pipeline.SummaryModel,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("Summarization disabled", zap.Error(err))
	} else {
		summarySvc = summaryuc.NewService(summarizer, predictor, logger)
	}

	// Pass nil interface (not typed nil pointer!) if synthesis is not configured.
	// Go gotcha: (*rootcauseuc.Service)(nil) wrapped in Synthesizer != nil.
	var synthesizer analyzeuc.Synthesizer
	if rootcauseSvc != nil {
		synthesizer = rootcauseSvc
	}
	analyzeSvc := analyzeuc.NewService(predictor, clusterer, synthesizer, logger)

	var genChecker healthuc.ProviderChecker
	if generator != nil {
		genChecker = generator
	}
	healthSvc := healthuc.New(store, baseEmbedder, genChecker, source == "mock")

	server := chiTransport.NewServer(analyzeSvc, predictor, clusterer, summarySvc, recommendSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

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

			// Canonical log line, one per request
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
