package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nhle/email-triage/internal/auth"
	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/store"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// VerifyResponse is returned by GET /auth/verify.
type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  *auth.Claims `json:"user,omitempty"`
}

// ImportanceRequest is the body of PATCH /emails/{id}/importance.
type ImportanceRequest struct {
	IsImportant    *bool   `json:"isImportant"`
	Classification *string `json:"classification"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string        `json:"status"`
	Ingest *IngestStatus `json:"ingest,omitempty"`
}

// IngestStatus reports the most recent ingestion run.
type IngestStatus struct {
	Running   bool       `json:"running"`
	LastRun   *time.Time `json:"lastRun,omitempty"`
	Inserted  int        `json:"inserted"`
	LastError string     `json:"lastError,omitempty"`
}

// ReadRequest is the body of PATCH /emails/{id}/read.
type ReadRequest struct {
	IsRead *bool `json:"isRead"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("decoding login body", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	account, err := s.creds.Authenticate(req.Email, req.Password)
	if err != nil {
		s.logger.Info("login rejected", "email", req.Email)
		s.writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		s.logger.Error("issuing token", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: account.User()})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, VerifyResponse{Valid: false})
		return
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, VerifyResponse{Valid: false})
		return
	}
	s.writeJSON(w, http.StatusOK, VerifyResponse{Valid: true, User: claims})
}

func (s *Server) handleListEmails(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListEmails(r.Context())
	if err != nil {
		s.logger.Error("listing emails", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, "Failed to fetch emails")
		return
	}

	now := s.now()
	records := make([]model.EmailRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.Normalize(now))
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleUpdateImportance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ImportanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsImportant == nil {
		s.writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var classification *string
	if req.Classification != nil && *req.Classification != "" {
		classification = req.Classification
	}

	err := s.store.UpdateImportance(r.Context(), id, *req.IsImportant, classification)
	s.writeMutation(w, err, id, "Failed to update email")
}

func (s *Server) handleUpdateRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsRead == nil {
		s.writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.store.UpdateRead(r.Context(), id, *req.IsRead)
	s.writeMutation(w, err, id, "Failed to update email")
}

func (s *Server) handleDeleteEmail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.store.DeleteEmail(r.Context(), id)
	s.writeMutation(w, err, id, "Failed to delete email")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.CountEmails(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		s.writeMessage(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	resp := HealthResponse{Status: "ok"}
	if s.ingest != nil {
		st := s.ingest.Status()
		resp.Ingest = &IngestStatus{Running: st.Running, Inserted: st.Inserted}
		if !st.LastRun.IsZero() {
			resp.Ingest.LastRun = &st.LastRun
		}
		if st.Err != nil {
			resp.Ingest.LastError = st.Err.Error()
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIngestRefresh(w http.ResponseWriter, r *http.Request) {
	if s.ingest == nil {
		s.writeMessage(w, http.StatusNotFound, "Ingestion is not enabled")
		return
	}
	s.ingest.RefreshNow()
	s.writeJSON(w, http.StatusAccepted, successResponse{Success: true})
}

// writeMutation maps the outcome of an update or delete onto a response.
func (s *Server) writeMutation(w http.ResponseWriter, err error, id, failure string) {
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, successResponse{Success: true})
	case errors.Is(err, store.ErrNotFound):
		s.writeMessage(w, http.StatusNotFound, "Email not found")
	default:
		s.logger.Error("mutating email", "id", id, "error", err)
		s.writeMessage(w, http.StatusInternalServerError, failure)
	}
}
