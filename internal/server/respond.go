package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"readstudy/internal/auth"
	"readstudy/internal/logging"
	"readstudy/internal/results"
	"readstudy/internal/session"
	"readstudy/internal/volume"
	"readstudy/internal/window"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps domain sentinel errors onto HTTP status codes
// and falls back to 500 for anything unrecognized.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	s.writeError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, volume.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, volume.ErrFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, volume.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, window.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoVolume):
		return http.StatusConflict
	case errors.Is(err, results.ErrInvalidClassification):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrMissingField):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
