package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devjjun/commu/internal/attendance"
	"github.com/devjjun/commu/internal/database"
	"github.com/devjjun/commu/internal/handler"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/metrics"
	"github.com/devjjun/commu/internal/queue"
	"github.com/devjjun/commu/internal/shop"
	"github.com/devjjun/commu/internal/user"
)

// Services bundles everything the router needs so NewServer doesn't take a
// dozen positional arguments.
type Services struct {
	User       user.Service
	Attendance attendance.Service
	Ledger     ledger.Service
	Shop       shop.Service
	MailQueue  queue.Queue

	ActivityRewards handler.ActivityRewardConfig
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// User routes
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(svcs.User))
			r.Get("/profile", handler.HandleGetProfile(svcs.User))
		})

		// Attendance routes
		r.Post("/attendance/check-in", handler.HandleCheckIn(svcs.Attendance))

		// Point ledger routes
		r.Route("/points", func(r chi.Router) {
			r.Get("/balance", handler.HandleGetBalance(svcs.Ledger))
			r.Get("/history", handler.HandleGetHistory(svcs.Ledger))
			r.Post("/activity", handler.HandleActivityReward(svcs.Ledger, svcs.ActivityRewards))
		})

		// Shop routes
		r.Route("/shop", func(r chi.Router) {
			r.Get("/catalog", handler.HandleGetCatalog(svcs.Shop))
			r.Get("/item", handler.HandleGetItem(svcs.Shop))
			r.Get("/inventory", handler.HandleGetInventory(svcs.Shop))
			r.Post("/purchase", handler.HandlePurchase(svcs.Shop))
			r.Post("/equip", handler.HandleEquip(svcs.Shop))
			r.Post("/unequip", handler.HandleUnequip(svcs.Shop))
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/points/grant", handler.HandleAdminGrant(svcs.Ledger))
			r.Post("/points/penalty", handler.HandleAdminPenalty(svcs.Ledger))
			r.Get("/dlq", handler.HandleListDeadLetters(svcs.MailQueue))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes are noise, skip them
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
