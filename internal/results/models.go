package results

import (
	"fmt"
	"time"
)

// Classification is the binary read study outcome for one case.
type Classification string

const (
	// ClassificationCECT marks a volume read as a true contrast-enhanced CT.
	ClassificationCECT Classification = "CECT"
	// ClassificationSynthetic marks a volume read as a synthesized contrast CT.
	ClassificationSynthetic Classification = "sCECT"
)

// ParseClassification validates a submitted result value.
func ParseClassification(value string) (Classification, error) {
	switch Classification(value) {
	case ClassificationCECT:
		return ClassificationCECT, nil
	case ClassificationSynthetic:
		return ClassificationSynthetic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidClassification, value)
	}
}

// Inspector is a registered reviewer, unique per (affiliation, name).
type Inspector struct {
	ID          int64     `json:"id"`
	Affiliation string    `json:"affiliation"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	LastLogin   time.Time `json:"last_login"`
}

// Label renders the column label exports use for the inspector.
func (i Inspector) Label() string {
	return i.Affiliation + "_" + i.Name
}

// Result is one recorded classification.
type Result struct {
	ID             int64          `json:"id"`
	InspectorID    int64          `json:"inspector_id"`
	PatientID      string         `json:"patient_id"`
	Classification Classification `json:"result"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// InspectorResult is a result joined with its inspector, used when listing
// every read of one case and when exporting.
type InspectorResult struct {
	Affiliation    string         `json:"affiliation"`
	Name           string         `json:"name"`
	PatientID      string         `json:"patient_id"`
	Classification Classification `json:"result"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
