// Package server exposes authentication and email CRUD over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/nhle/email-triage/internal/auth"
	"github.com/nhle/email-triage/internal/ingest"
	"github.com/nhle/email-triage/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Store       store.EmailStore
	Credentials *auth.Credentials
	Tokens      *auth.TokenService
	Logger      *slog.Logger

	// AuthRequired puts the email routes behind the bearer check.
	AuthRequired bool

	// Ingest is the background mailbox poller, nil when ingestion is off.
	Ingest Ingester

	// Now stamps records that carry no date. Defaults to time.Now.
	Now func() time.Time
}

// Ingester is the part of the ingestion poller the API exposes.
type Ingester interface {
	Status() ingest.Status
	RefreshNow()
}

// Server routes API requests to the email store.
type Server struct {
	ingest       Ingester
	store        store.EmailStore
	creds        *auth.Credentials
	tokens       *auth.TokenService
	logger       *slog.Logger
	authRequired bool
	now          func() time.Time
}

// New creates a Server.
func New(d Deps) *Server {
	s := &Server{
		store:        d.Store,
		creds:        d.Credentials,
		tokens:       d.Tokens,
		logger:       d.Logger,
		ingest:       d.Ingest,
		authRequired: d.AuthRequired,
		now:          d.Now,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/verify", s.handleVerify)

	mux.Handle("GET /emails", s.protect(s.handleListEmails))
	mux.Handle("PATCH /emails/{id}/importance", s.protect(s.handleUpdateImportance))
	mux.Handle("PATCH /emails/{id}/read", s.protect(s.handleUpdateRead))
	mux.Handle("DELETE /emails/{id}", s.protect(s.handleDeleteEmail))

	mux.Handle("POST /ingest/refresh", s.protect(s.handleIngestRefresh))

	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.logRequests(mux)
}

type messageResponse struct {
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response", "error", err)
	}
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, messageResponse{Message: msg})
}
