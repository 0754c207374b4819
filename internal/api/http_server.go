package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"homefix/internal/config"
	"homefix/internal/domain"
	"homefix/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPServer is the HTTP surface the mobile UI talks to.
type HTTPServer struct {
	cfg      config.APIConfig
	bookings domain.BookingService
	catalog  domain.CatalogService
	sessions domain.SessionManager
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(cfg config.APIConfig, bookings domain.BookingService, catalog domain.CatalogService, sessions domain.SessionManager, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{
		cfg:      cfg,
		bookings: bookings,
		catalog:  catalog,
		sessions: sessions,
		logger:   logger,
	}

	mux.HandleFunc("/api/v1/auth/signup", srv.handleSignUp)
	mux.HandleFunc("/api/v1/auth/signin", srv.handleSignIn)
	mux.HandleFunc("/api/v1/auth/signout", srv.handleSignOut)
	mux.HandleFunc("/api/v1/auth/me", srv.handleMe)
	mux.HandleFunc("/api/v1/services", srv.handleServices)
	mux.HandleFunc("/api/v1/bookings", srv.handleBookings)
	mux.HandleFunc("/api/v1/bookings/export", srv.handleBookingsExport)
	mux.HandleFunc("/api/v1/bookings/", srv.handleBookingComplete)

	handler := srv.loggingMiddleware(mux)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		metrics.IncHTTP(r.URL.Path)

		next.ServeHTTP(w, r)

		s.logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends the single descriptive message the UI shows the user.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
