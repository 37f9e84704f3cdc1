package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"readstudy/internal/auth"
	"readstudy/internal/window"
)

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	patients, err := s.library.List()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	submitted, err := s.store.SubmittedPatients(r.Context(), sess.InspectorID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, patientListResponse{
		Patients:  patients,
		Submitted: submitted,
	})
}

func (s *Server) handlePatientInfo(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/patients/")
	patientID, ok := strings.CutSuffix(rest, "/info")
	if !ok || patientID == "" || strings.Contains(patientID, "/") {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	info, err := s.caches.Cache(sess.Token).Describe(patientID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	var recorded *string
	if result, err := s.store.GetResult(r.Context(), sess.InspectorID, patientID); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	} else if result != nil {
		value := string(result.Classification)
		recorded = &value
	}

	s.writeJSON(w, http.StatusOK, patientInfoResponse{
		PatientID: info.Identity,
		Shape:     info.Shape,
		Stats:     info.Stats,
		Result:    recorded,
		Presets:   presetPayloads(),
	})
}

func (s *Server) handleSlice(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req sliceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.PatientID) == "" {
		s.writeError(w, http.StatusBadRequest, "patient_id is required")
		return
	}

	spec, err := resolveWindow(req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	rendered, err := s.caches.Cache(sess.Token).Render(req.PatientID, req.SliceIndex, spec)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, sliceResponse{
		PatientID:   req.PatientID,
		SliceIndex:  req.SliceIndex,
		NumSlices:   rendered.Depth,
		Height:      rendered.Height,
		Width:       rendered.Width,
		Level:       spec.Level,
		WindowWidth: spec.Width,
		Image:       rendered.Image,
	})
}

// resolveWindow picks the windowing parameters for a slice request.
// An explicit level/width pair wins over a named preset; with neither
// present the abdomen preset applies.
func resolveWindow(req sliceRequest) (window.Spec, error) {
	if req.Level != nil || req.Width != nil {
		if req.Level == nil || req.Width == nil {
			return window.Spec{}, window.ErrInvalidWindow
		}
		spec := window.Spec{Level: *req.Level, Width: *req.Width}
		return spec, spec.Validate()
	}
	name := strings.TrimSpace(req.Preset)
	if name == "" {
		name = "abdomen"
	}
	preset, ok := window.PresetByName(name)
	if !ok {
		return window.Spec{}, window.ErrInvalidWindow
	}
	return preset.Spec(), nil
}

func presetPayloads() []presetPayload {
	presets := window.Presets()
	payload := make([]presetPayload, 0, len(presets))
	for _, p := range presets {
		payload = append(payload, presetPayload{Name: p.Name, Level: p.Level, Width: p.Width})
	}
	return payload
}

func (s *Server) handleWindowPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, presetListResponse{Presets: presetPayloads()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	volumes := 0
	if list, err := s.library.List(); err == nil {
		volumes = len(list)
	}
	s.writeJSON(w, http.StatusOK, statusResponse{
		Running:       true,
		PID:           os.Getpid(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		DataDir:       s.cfg.Paths.DataDir,
		DatabasePath:  s.cfg.Paths.DatabasePath,
		Volumes:       volumes,
		Sessions:      s.caches.Len(),
	})
}
