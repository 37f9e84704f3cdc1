package server

import (
	"time"

	"readstudy/internal/volume"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Affiliation string `json:"affiliation"`
	Name        string `json:"name"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Token       string    `json:"token"`
	InspectorID int64     `json:"inspector_id"`
	Affiliation string    `json:"affiliation"`
	Name        string    `json:"name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type authStatusResponse struct {
	InspectorID int64     `json:"inspector_id"`
	Affiliation string    `json:"affiliation"`
	Name        string    `json:"name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type patientListResponse struct {
	Patients  []string `json:"patients"`
	Submitted []string `json:"submitted"`
}

// patientInfoResponse mirrors the case info screen: volume summary, the
// calling inspector's recorded read (null when unread), and the preset
// table the window controls offer.
type patientInfoResponse struct {
	PatientID string          `json:"patient_id"`
	Shape     volume.Shape    `json:"shape"`
	Stats     volume.Stats    `json:"stats"`
	Result    *string         `json:"analysis_result"`
	Presets   []presetPayload `json:"window_presets"`
}

type sliceRequest struct {
	PatientID  string   `json:"patient_id"`
	SliceIndex int      `json:"slice_index"`
	Preset     string   `json:"preset,omitempty"`
	Level      *float64 `json:"level,omitempty"`
	Width      *float64 `json:"width,omitempty"`
}

type sliceResponse struct {
	PatientID   string  `json:"patient_id"`
	SliceIndex  int     `json:"slice_index"`
	NumSlices   int     `json:"num_slices"`
	Height      int     `json:"height"`
	Width       int     `json:"width"`
	Level       float64 `json:"level"`
	WindowWidth float64 `json:"window_width"`
	Image       string  `json:"image"`
}

type presetPayload struct {
	Name  string  `json:"name"`
	Level float64 `json:"level"`
	Width float64 `json:"width"`
}

type presetListResponse struct {
	Presets []presetPayload `json:"presets"`
}

type submitRequest struct {
	PatientID string `json:"patient_id"`
	Result    string `json:"result"`
}

type submitResponse struct {
	PatientID string `json:"patient_id"`
	Result    string `json:"result"`
	Saved     bool   `json:"saved"`
}

type patientResultPayload struct {
	Inspector string    `json:"inspector"`
	Result    string    `json:"result"`
	UpdatedAt time.Time `json:"updated_at"`
}

type patientResultsResponse struct {
	PatientID string                 `json:"patient_id"`
	Results   []patientResultPayload `json:"results"`
}

type statusResponse struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DataDir       string `json:"data_dir"`
	DatabasePath  string `json:"database_path"`
	Volumes       int    `json:"volumes"`
	Sessions      int    `json:"sessions"`
}
