package server

import (
	"net/http"
	"strings"

	"readstudy/internal/auth"
)

// sessionHandler receives the resolved session alongside the request.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess auth.Session)

// requireSession rejects requests without a valid bearer token.
func (s *Server) requireSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		sess, ok := s.sessions.Resolve(token)
		if !ok {
			s.writeError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		next(w, r, sess)
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
