package server

import (
	"net/http"
	"strings"

	"readstudy/internal/auth"
	"readstudy/internal/logging"
	"readstudy/internal/results"
	"readstudy/internal/volume"
)

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.PatientID) == "" {
		s.writeError(w, http.StatusBadRequest, "patient_id is required")
		return
	}
	classification, err := results.ParseClassification(req.Result)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if !s.library.Exists(req.PatientID) {
		s.writeDomainError(w, volume.ErrNotFound)
		return
	}

	if err := s.store.SaveResult(r.Context(), sess.InspectorID, req.PatientID, classification); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log().Info("result submitted",
		logging.String("patient", req.PatientID),
		logging.String("result", string(classification)),
		logging.Int64("inspector_id", sess.InspectorID))
	s.writeJSON(w, http.StatusOK, submitResponse{
		PatientID: req.PatientID,
		Result:    string(classification),
		Saved:     true,
	})
}

func (s *Server) handlePatientResults(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	patientID := strings.TrimPrefix(r.URL.Path, "/api/analysis/patients/")
	if patientID == "" || strings.Contains(patientID, "/") {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	rows, err := s.store.PatientResults(r.Context(), patientID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]patientResultPayload, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, patientResultPayload{
			Inspector: row.Affiliation + "_" + row.Name,
			Result:    string(row.Classification),
			UpdatedAt: row.UpdatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, patientResultsResponse{
		PatientID: patientID,
		Results:   payload,
	})
}
