// Package server provides the HTTP REST API for the resume matcher.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/audit"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/feedback"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/storage"
)

// Database availability states reported by /health.
const (
	dbStatusConnected     = "connected"
	dbStatusUnavailable   = "unavailable"
	dbStatusNotConfigured = "not_configured"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger

	db       *db.DB // nil when the database is not configured or unreachable
	dbStatus string

	matcher    *matching.Matcher
	extractor  *skills.Extractor
	embeddings *embedding.Service
	recorder   *audit.Recorder
	archive    *storage.Archive // nil unless object storage is configured
	retention  *storage.RetentionPolicy

	rateLimiter *ratelimit.Limiter
	auth        *config.AuthConfig
	jwtService  *JWTService // nil when authentication is disabled
	validate    *validator.Validate

	useBrowser bool
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string // optional; the matcher runs without persistence

	Embedding embedding.Config

	VocabularyPath string // optional custom skill vocabulary JSON
	FeedbackPath   string // optional custom feedback table JSON

	UseBrowser bool // render JS-heavy job pages in a headless browser

	AMQPURL      string         // optional audit event broker
	Archive      storage.Config // optional S3 document archive (Bucket empty disables)
	RetentionAge time.Duration  // optional; zero disables the retention sweep
}

// New creates a new server instance. The database, broker and object storage
// are each optional: a missing database only disables persistence endpoints,
// matching itself keeps working.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		logger:     logger,
		dbStatus:   dbStatusNotConfigured,
		useBrowser: cfg.UseBrowser,
		validate:   validator.New(),
	}

	// Vocabulary and feedback table: built-in defaults unless files are given.
	vocab := skills.Default()
	if cfg.VocabularyPath != "" {
		loaded, err := skills.LoadVocabularyFile(cfg.VocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary: %w", err)
		}
		vocab = loaded
	}
	s.extractor = skills.NewExtractor(vocab)

	feedbackCfg := feedback.DefaultConfig()
	if cfg.FeedbackPath != "" {
		loaded, err := feedback.LoadConfigFile(cfg.FeedbackPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load feedback table: %w", err)
		}
		feedbackCfg = loaded
	}
	generator, err := feedback.NewGenerator(feedbackCfg)
	if err != nil {
		return nil, fmt.Errorf("invalid feedback table: %w", err)
	}

	// Database connection is tolerated to fail so the service can come up
	// degraded and report it through /health.
	cacheReady := false
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database unavailable, persistence disabled", zap.Error(err))
			s.dbStatus = dbStatusUnavailable
		} else {
			cacheReady, err = database.Migrate(ctx)
			if err != nil {
				database.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
			s.db = database
			s.dbStatus = dbStatusConnected
		}
	}

	var cache embedding.VectorCache
	if s.db != nil && cacheReady {
		cache = db.NewEmbeddingCache(s.db)
	}
	s.embeddings = embedding.NewService(cfg.Embedding, cache, logger)

	s.matcher, err = matching.NewMatcher(s.extractor, s.embeddings, generator)
	if err != nil {
		return nil, fmt.Errorf("failed to build matcher: %w", err)
	}

	// Audit side-channel: store and broker are both optional, and a recorder
	// with neither still absorbs events.
	var store audit.Store
	if s.db != nil {
		store = s.db
	}
	var publisher audit.Publisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := audit.NewAMQPPublisher(cfg.AMQPURL, "")
		if err != nil {
			logger.Warn("audit broker unavailable, events stay local", zap.Error(err))
		} else {
			publisher = amqpPublisher
		}
	}
	s.recorder = audit.NewRecorder(store, publisher, logger)

	if cfg.Archive.Bucket != "" {
		archive, err := storage.New(ctx, cfg.Archive, logger)
		if err != nil {
			logger.Warn("object storage unavailable, uploads not archived", zap.Error(err))
		} else {
			s.archive = archive
		}
	}

	if cfg.RetentionAge > 0 && (s.db != nil || s.archive != nil) {
		s.retention = storage.NewRetentionPolicy(cfg.RetentionAge, s.db, s.archive, logger)
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.auth, err = config.NewAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create auth config: %w", err)
	}
	if s.auth.Enabled() {
		s.jwtService = NewJWTService(s.auth)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /match/file", s.handleMatchFile)
	mux.HandleFunc("POST /match/batch", s.handleMatchBatch)

	mux.HandleFunc("POST /parse/resume", s.handleParseResume)
	mux.HandleFunc("POST /parse/job", s.handleParseJob)
	mux.HandleFunc("POST /parse/job/url", s.handleParseJobURL)

	mux.HandleFunc("POST /extract-skills", s.handleExtractSkills)

	mux.HandleFunc("GET /matches", s.handleListMatches)
	mux.HandleFunc("GET /matches/{id}", s.handleGetMatch)
	mux.HandleFunc("DELETE /matches/{id}", s.handleDeleteMatch)

	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)

	mux.HandleFunc("GET /statistics", s.handleGetStatistics)
	mux.HandleFunc("GET /audit-events", s.handleListAuditEvents)

	mux.HandleFunc("POST /auth/token", s.handleIssueToken)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withAuth(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // batch matching and browser rendering take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	retentionCtx, cancelRetention := context.WithCancel(context.Background())
	defer cancelRetention()
	if s.retention != nil {
		s.retention.Start(retentionCtx, 12*time.Hour)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("addr", s.httpServer.Addr),
			zap.String("database", s.dbStatus),
			zap.Bool("auth", s.auth.Enabled()))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	// Drain buffered audit events before the database goes away
	if s.recorder != nil {
		s.recorder.Close()
	}
	if s.embeddings != nil {
		_ = s.embeddings.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// ignored because it is client-controlled unless set by a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Debug("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
