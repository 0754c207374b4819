package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"homefix/internal/export"
	"homefix/internal/models"
	"homefix/internal/service"
	"homefix/internal/validate"
)

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleSignUp(w http.ResponseWriter, r *http.Request) {
	s.handleAuth(w, r, s.sessions.SignUp)
}

func (s *HTTPServer) handleSignIn(w http.ResponseWriter, r *http.Request) {
	s.handleAuth(w, r, s.sessions.SignIn)
}

func (s *HTTPServer) handleAuth(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, string) (*models.Session, error)) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := fn(r.Context(), strings.TrimSpace(body.Email), body.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if isValidationError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": session.UserID,
		"email":   session.Email,
	})
}

func (s *HTTPServer) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.sessions.SignOut(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"signed_out": true})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessions.Current()
	if session == nil {
		writeError(w, http.StatusUnauthorized, service.ErrNotSignedIn.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": session.UserID,
		"email":   session.Email,
	})
}

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	services, err := s.catalog.ListServices(r.Context())
	if err != nil && !service.Recovered(err) {
		writeError(w, http.StatusBadGateway, "could not load services")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBookings(w, r)
	case http.MethodPost:
		s.createBooking(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) createBooking(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Current()
	if session == nil {
		writeError(w, http.StatusUnauthorized, service.ErrNotSignedIn.Error())
		return
	}

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Service) == "" {
		writeError(w, http.StatusBadRequest, "missing service")
		return
	}
	if err := validate.BookingForm(req.Date, req.Time, req.Address); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.Create(r.Context(), session.UserID, req)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Current()
	if session == nil {
		writeError(w, http.StatusUnauthorized, service.ErrNotSignedIn.Error())
		return
	}

	upcoming, past, err := s.bookings.Load(r.Context(), session.UserID)
	if err != nil && !service.Recovered(err) {
		writeError(w, http.StatusInternalServerError, "could not load bookings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"upcoming": upcoming,
		"past":     past,
	})
}

func (s *HTTPServer) handleBookingComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessions.Current()
	if session == nil {
		writeError(w, http.StatusUnauthorized, service.ErrNotSignedIn.Error())
		return
	}

	const prefix = "/api/v1/bookings/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	idStr, action, found := strings.Cut(rest, "/")
	if !found || action != "complete" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := s.bookings.Complete(r.Context(), session.UserID, id); err != nil && !service.Recovered(err) {
		writeError(w, http.StatusInternalServerError, "could not complete booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"completed": id})
}

func (s *HTTPServer) handleBookingsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessions.Current()
	if session == nil {
		writeError(w, http.StatusUnauthorized, service.ErrNotSignedIn.Error())
		return
	}

	upcoming, past, err := s.bookings.Load(r.Context(), session.UserID)
	if err != nil && !service.Recovered(err) {
		writeError(w, http.StatusInternalServerError, "could not load bookings")
		return
	}

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format(models.DateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := export.WriteBookings(w, append(upcoming, past...)); err != nil {
		s.logger.Error().Err(err).Str("user_id", session.UserID).Msg("export bookings")
	}
}

// isValidationError distinguishes bad input from auth provider rejections.
func isValidationError(err error) bool {
	return errors.Is(err, validate.ErrMissingEmail) ||
		errors.Is(err, validate.ErrMissingPassword) ||
		errors.Is(err, validate.ErrPasswordTooShort)
}
