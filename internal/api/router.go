package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// RouterOption configures the behaviour of NewRouter.
type RouterOption func(*routerConfig)

// WithLogging controls whether access logs are emitted.
func WithLogging(enabled bool) RouterOption {
	return func(cfg *routerConfig) {
		cfg.enableLogging = enabled
	}
}

// WithRateLimit configures per-client token buckets. A zero rate or burst disables limiting.
func WithRateLimit(rps float64, burst int) RouterOption {
	return func(cfg *routerConfig) {
		if rps <= 0 || burst <= 0 {
			cfg.rateLimiter = nil
			return
		}
		cfg.rateLimiter = newClientLimiter(rps, burst)
	}
}

// WithRateLimiter overrides the default request rate limiter (primarily for tests).
func WithRateLimiter(limiter rateLimiter) RouterOption {
	return func(cfg *routerConfig) {
		cfg.rateLimiter = limiter
	}
}

// WithAllowedOrigins restricts the origins allowed by CORS.
func WithAllowedOrigins(origins []string) RouterOption {
	return func(cfg *routerConfig) {
		cfg.allowedOrigins = origins
	}
}

type routerConfig struct {
	enableLogging  bool
	logger         *zap.Logger
	rateLimiter    rateLimiter
	allowedOrigins []string
}

// NewRouter creates an HTTP router with standard middleware.
func NewRouter(handler *Handler, logger *zap.Logger, opts ...RouterOption) http.Handler {
	cfg := routerConfig{
		enableLogging:  true,
		logger:         logger,
		rateLimiter:    newClientLimiter(25, 50),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/health", http.HandlerFunc(handler.handleHealth))
	mux.Handle("GET /api/v1/config", http.HandlerFunc(handler.handleConfig))
	mux.Handle("GET /api/v1/config/storage-keys", http.HandlerFunc(handler.handleStorageKeys))
	mux.Handle("GET /api/v1/config/colors", http.HandlerFunc(handler.handleColors))
	mux.Handle("GET /api/v1/config/membership-tiers", http.HandlerFunc(handler.handleMembershipTiers))
	mux.Handle("GET /api/v1/config/membership-tiers/{code}", http.HandlerFunc(handler.handleMembershipTier))
	mux.Handle("GET /api/v1/config/order-statuses", http.HandlerFunc(handler.handleOrderStatuses))
	mux.Handle("GET /api/v1/config/order-statuses/{code}", http.HandlerFunc(handler.handleOrderStatus))
	mux.Handle("GET /api/v1/membership/progress", http.HandlerFunc(handler.handleMembershipProgress))

	var root http.Handler = mux
	root = recoveryMiddleware(cfg.logger, root)
	if cfg.enableLogging {
		root = loggingMiddleware(cfg.logger, root)
	}
	root = rateLimitMiddleware(cfg.rateLimiter, root)
	root = requestIDMiddleware(root)
	// CORS stays outermost: preflights must not reach the limiter.
	root = corsMiddleware(cfg.allowedOrigins, root)

	return root
}

func corsMiddleware(origins []string, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With", "Accept-Language", "If-None-Match"},
		ExposedHeaders: []string{"X-Request-ID", "ETag", "Content-Language"},
		MaxAge:         86400,
	})
	return c.Handler(next)
}

func loggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		requestID := requestIDFromContext(r.Context())
		logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", duration),
			zap.String("request_id", requestID),
		)
	})
}

func recoveryMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", zap.Any("error", rec), zap.String("path", r.URL.Path))
				writeError(w, http.StatusInternalServerError, "Internal error", "unexpected server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = generateRequestID()
		}
		ctx := contextWithRequestID(r.Context(), requestID)

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func generateRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
