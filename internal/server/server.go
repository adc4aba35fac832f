// Package server provides the HTTP API for the portfolio assistant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/portfolio-ai/internal/assistant"
	"github.com/jonathan/portfolio-ai/internal/contact"
	"github.com/jonathan/portfolio-ai/internal/server/middleware"
	"github.com/jonathan/portfolio-ai/internal/server/ratelimit"
)

// DefaultChatPath is where questions are posted when no path is configured
const DefaultChatPath = "/api/assistant"

const (
	maxBodyBytes    = 64 << 10
	shutdownTimeout = 30 * time.Second
	unknownClientID = "unknown"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	assistant   *assistant.Service
	contacts    *contact.Sink
	rateLimiter *ratelimit.EndpointLimiter
	logger      *slog.Logger
	cleanup     func()
}

// Config holds server configuration
type Config struct {
	Port      int
	ChatPath  string
	Assistant *assistant.Service
	Contacts  *contact.Sink
	// RateLimiter limits the generic endpoints; nil disables endpoint limiting
	RateLimiter *ratelimit.EndpointLimiter
	Logger      *slog.Logger
	// Cleanup runs once after the server has shut down
	Cleanup func()
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Assistant == nil {
		return nil, fmt.Errorf("assistant service is required")
	}
	if cfg.Contacts == nil {
		return nil, fmt.Errorf("contact sink is required")
	}

	chatPath := cfg.ChatPath
	if chatPath == "" {
		chatPath = DefaultChatPath
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		assistant:   cfg.Assistant,
		contacts:    cfg.Contacts,
		rateLimiter: cfg.RateLimiter,
		logger:      logger,
		cleanup:     cfg.Cleanup,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+chatPath, s.handleAsk)
	mux.HandleFunc("POST /api/contact-message", s.handleContactMessage)
	mux.HandleFunc("GET /api/example", s.handleExample)
	mux.HandleFunc("POST /api/example", s.handleExample)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           middleware.CorrelationID(logger)(s.withRateLimit(s.withCORS(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second, // covers the model call
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the server's root handler, including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled or the process receives SIGINT or SIGTERM, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if s.cleanup != nil {
		s.cleanup()
	}
	s.logger.Info("server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.CorrelationHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit applies the endpoint limiter. Limiter failures let the request through.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		clientID := s.extractClientID(r)

		info, err := s.rateLimiter.Allow(r.Context(), clientID, r.URL.Path, r.Method)
		if err != nil {
			s.logger.WarnContext(r.Context(), "rate limiter error, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		s.setRateLimitHeaders(w, info)
		if !info.Allowed {
			s.logger.WarnContext(r.Context(), "rate limit exceeded", "client", clientID, "path", r.URL.Path)
			s.setRetryAfter(w, info.RetryAfter)
			s.errorResponse(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"chunks": s.assistant.TotalChunks(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the caller by the first X-Forwarded-For entry, falling back to
// the connection's IP and then to "unknown". The header is client-controlled and not
// validated, so a caller can present a different identity on every request.
func (s *Server) extractClientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if r.RemoteAddr == "" {
		return unknownClientID
	}

	// Get IP from RemoteAddr (format: "IP:port")
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// setRetryAfter sets Retry-After in whole seconds, rounded up
func (s *Server) setRetryAfter(w http.ResponseWriter, d time.Duration) {
	if d > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.Seconds()))))
	}
}
