package server

import (
	"net/http"

	"readstudy/internal/auth"
	"readstudy/internal/logging"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := auth.ValidateLogin(req.Affiliation, req.Name, req.Password, s.cfg.Auth.PasswordHash); err != nil {
		s.writeDomainError(w, err)
		return
	}

	inspector, err := s.store.GetOrCreateInspector(r.Context(), req.Affiliation, req.Name)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess := s.sessions.Issue(inspector.ID, inspector.Affiliation, inspector.Name)
	s.log().Info("reviewer logged in",
		logging.String("inspector", inspector.Label()),
		logging.Int64("inspector_id", inspector.ID))
	s.writeJSON(w, http.StatusOK, loginResponse{
		Token:       sess.Token,
		InspectorID: sess.InspectorID,
		Affiliation: sess.Affiliation,
		Name:        sess.Name,
		ExpiresAt:   sess.ExpiresAt,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.sessions.Revoke(sess.Token)
	s.caches.Drop(sess.Token)
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, authStatusResponse{
		InspectorID: sess.InspectorID,
		Affiliation: sess.Affiliation,
		Name:        sess.Name,
		ExpiresAt:   sess.ExpiresAt,
	})
}
