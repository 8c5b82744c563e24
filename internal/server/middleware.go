package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/email-triage/internal/auth"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r, _ = withState(r)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		}
		if c, ok := ClaimsFrom(r.Context()); ok {
			attrs = append(attrs, "user", c.Email)
		}
		s.logger.Info("request", attrs...)
	})
}

// requestState is shared by the middleware chain of one request, so the
// outer logger sees what inner handlers learned.
type requestState struct {
	claims *auth.Claims
}

type stateKey struct{}

func withState(r *http.Request) (*http.Request, *requestState) {
	if st, ok := r.Context().Value(stateKey{}).(*requestState); ok {
		return r, st
	}
	st := &requestState{}
	return r.WithContext(context.WithValue(r.Context(), stateKey{}, st)), st
}

// ClaimsFrom returns the verified claims of an authenticated request.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	st, ok := ctx.Value(stateKey{}).(*requestState)
	if !ok || st.claims == nil {
		return nil, false
	}
	return st.claims, true
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// protect wraps h in the bearer check when auth is required.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if !s.authRequired {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		r, st := withState(r)
		st.claims = claims
		h(w, r)
	})
}
