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

	"github.com/linkup-app/linkup-engine/internal/achievement"
	"github.com/linkup-app/linkup-engine/internal/database"
	"github.com/linkup-app/linkup-engine/internal/eventlog"
	"github.com/linkup-app/linkup-engine/internal/handler"
	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/lootcase"
	"github.com/linkup-app/linkup-engine/internal/metrics"
	"github.com/linkup-app/linkup-engine/internal/progression"
	"github.com/linkup-app/linkup-engine/internal/streak"
)

type Server struct {
	httpServer         *http.Server
	dbPool             database.Pool
	progressionService progression.Service
	streakService      streak.Service
	lootcaseService    lootcase.Service
	achievementService achievement.Service
	eventlogService    eventlog.Service
}

// NewServer builds the router and wires every service behind it
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, progressionService progression.Service, streakService streak.Service, lootcaseService lootcase.Service, achievementService achievement.Service, eventlogService eventlog.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(progressionService))
			r.Get("/{userID}/progression", handler.HandleGetProgression(progressionService))
			r.Get("/{userID}/achievements", handler.HandleGetAchievements(achievementService))
			r.Get("/{userID}/history", handler.HandleGetHistory(eventlogService))
		})

		r.Post("/xp/grant", handler.HandleGrantXP(progressionService))
		r.Post("/checkin", handler.HandleCheckIn(streakService))

		r.Route("/cases", func(r chi.Router) {
			r.Post("/{caseID}/open", handler.HandleOpenCase(lootcaseService))
		})

		r.Post("/achievements/check", handler.HandleCheckAchievements(achievementService))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:             dbPool,
		progressionService: progressionService,
		streakService:      streakService,
		lootcaseService:    lootcaseService,
		achievementService: achievementService,
		eventlogService:    eventlogService,
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
		statusCode:     http.StatusOK,
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

		// Skip health check endpoints and metrics. HasPrefix catches
		// variations like /healthz/.
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
