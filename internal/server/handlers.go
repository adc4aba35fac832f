package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/portfolio-ai/internal/assistant"
	"github.com/jonathan/portfolio-ai/internal/contact"
)

// AskRequest represents the request body for the chat endpoint
type AskRequest struct {
	Question string `json:"question"`
}

// ContactResponse represents the response for /api/contact-message
type ContactResponse struct {
	Success bool `json:"success"`
}

// ExampleResponse represents the response for /api/example
type ExampleResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	Path      string `json:"path"`
}

// handleAsk answers a question about the profile owner
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := s.extractClientID(r)

	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":         "Please provide a valid question.",
			"remaining":     s.assistant.Remaining(ctx, callerID),
			"isGlobalLimit": false,
		})
		return
	}

	resp, err := s.assistant.Ask(ctx, callerID, req.Question)
	if err != nil {
		s.askErrorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// askErrorResponse writes a failed question with the caller's remaining quota
func (s *Server) askErrorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	remaining, _ := assistant.RemainingOf(err)
	body := map[string]any{"remaining": remaining}

	var (
		questionErr *assistant.ValidationError
		rejection   *assistant.SecurityRejection
		limitErr    *assistant.RateLimitError
		upstream    *assistant.UpstreamError
	)

	switch {
	case errors.As(err, &questionErr):
		body["error"] = questionErr.Message
		body["isGlobalLimit"] = false
	case errors.As(err, &rejection):
		body["error"] = rejection.Reason
		body["isGlobalLimit"] = false
	case errors.As(err, &limitErr):
		body["error"] = limitErr.Message
		body["isGlobalLimit"] = limitErr.Global
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limitErr.Limit))
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(limitErr.ResetAt.Unix(), 10))
		s.setRetryAfter(w, limitErr.RetryAfter)
	case errors.As(err, &upstream):
		body["error"] = upstream.Message
	default:
		body["error"] = "Unknown error"
	}

	s.jsonResponse(w, status, body)
}

// handleContactMessage appends a contact-form submission to the CSV log
func (s *Server) handleContactMessage(w http.ResponseWriter, r *http.Request) {
	var msg contact.Message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&msg); err != nil {
		s.errorResponse(w, HTTPStatus(&ErrValidation{Field: "body", Message: "invalid JSON"}), "Invalid request body")
		return
	}

	if err := s.contacts.Append(msg); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusBadRequest {
			s.errorResponse(w, status, "Please check your name, email address and message.")
			return
		}
		s.logger.ErrorContext(r.Context(), "failed to save contact message", "error", err)
		s.errorResponse(w, status, "Failed to save message")
		return
	}

	s.jsonResponse(w, http.StatusOK, ContactResponse{Success: true})
}

// handleExample is a demonstration endpoint guarded by the endpoint limiter
func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, ExampleResponse{
		Message:   "API request successful",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Method:    r.Method,
		Path:      r.URL.Path,
	})
}
