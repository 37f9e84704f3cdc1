// Package export writes the recorded study results to CSV files: a
// patients-by-inspectors matrix, a row-per-result listing with timestamps,
// and per-inspector summary statistics.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"readstudy/internal/results"
	"readstudy/internal/volume"
)

const timestampLayout = "20060102_150405"

// Exporter renders CSV files from the results store. Patients with no
// recorded result still appear in the matrix export, which is why the
// volume library is consulted for the full case list.
type Exporter struct {
	store   *results.Store
	library volume.Library
	dir     string
	now     func() time.Time
}

// New returns an Exporter writing files under dir.
func New(store *results.Store, library volume.Library, dir string) *Exporter {
	return &Exporter{store: store, library: library, dir: dir, now: time.Now}
}

// Matrix writes one row per case and one column per inspector. Cells hold
// the recorded classification or stay empty. Returns the written path.
func (e *Exporter) Matrix(ctx context.Context) (string, error) {
	inspectors, err := e.store.Inspectors(ctx)
	if err != nil {
		return "", err
	}
	allResults, err := e.store.AllResults(ctx)
	if err != nil {
		return "", err
	}
	patients, err := e.library.List()
	if err != nil {
		return "", err
	}

	// Cases may have results without a surviving backing file; keep them.
	seen := make(map[string]struct{}, len(patients))
	for _, patient := range patients {
		seen[patient] = struct{}{}
	}
	for _, result := range allResults {
		if _, ok := seen[result.PatientID]; !ok {
			seen[result.PatientID] = struct{}{}
			patients = append(patients, result.PatientID)
		}
	}

	cells := make(map[string]map[string]string, len(patients))
	for _, result := range allResults {
		label := result.Affiliation + "_" + result.Name
		if cells[result.PatientID] == nil {
			cells[result.PatientID] = make(map[string]string)
		}
		cells[result.PatientID][label] = string(result.Classification)
	}

	header := []string{"Patient_ID"}
	for _, inspector := range inspectors {
		header = append(header, inspector.Label())
	}

	rows := make([][]string, 0, len(patients))
	for _, patient := range patients {
		row := []string{patient}
		for _, inspector := range inspectors {
			row = append(row, cells[patient][inspector.Label()])
		}
		rows = append(rows, row)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("results_%s.csv", e.now().Format(timestampLayout)))
	return path, writeCSV(path, header, rows)
}

// Timestamps writes one row per recorded result including creation and
// update times. Returns the written path.
func (e *Exporter) Timestamps(ctx context.Context) (string, error) {
	allResults, err := e.store.AllResults(ctx)
	if err != nil {
		return "", err
	}

	header := []string{"Patient_ID", "Affiliation", "Inspector_Name", "Result", "Created_At", "Updated_At"}
	rows := make([][]string, 0, len(allResults))
	for _, result := range allResults {
		rows = append(rows, []string{
			result.PatientID,
			result.Affiliation,
			result.Name,
			string(result.Classification),
			result.CreatedAt.UTC().Format(time.RFC3339),
			result.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	path := filepath.Join(e.dir, fmt.Sprintf("results_with_time_%s.csv", e.now().Format(timestampLayout)))
	return path, writeCSV(path, header, rows)
}

// Statistics writes one row per inspector with result counts and the share
// of CECT reads. Returns the written path.
func (e *Exporter) Statistics(ctx context.Context) (string, error) {
	inspectors, err := e.store.Inspectors(ctx)
	if err != nil {
		return "", err
	}
	allResults, err := e.store.AllResults(ctx)
	if err != nil {
		return "", err
	}

	type tally struct {
		total int
		cect  int
		first time.Time
		last  time.Time
	}
	tallies := make(map[string]*tally, len(inspectors))
	for _, result := range allResults {
		label := result.Affiliation + "_" + result.Name
		entry := tallies[label]
		if entry == nil {
			entry = &tally{first: result.CreatedAt, last: result.UpdatedAt}
			tallies[label] = entry
		}
		entry.total++
		if result.Classification == results.ClassificationCECT {
			entry.cect++
		}
		if result.CreatedAt.Before(entry.first) {
			entry.first = result.CreatedAt
		}
		if result.UpdatedAt.After(entry.last) {
			entry.last = result.UpdatedAt
		}
	}

	header := []string{"Inspector", "Total", "CECT", "sCECT", "CECT_Percent", "First_Analysis", "Last_Analysis"}
	rows := make([][]string, 0, len(inspectors))
	for _, inspector := range inspectors {
		entry := tallies[inspector.Label()]
		if entry == nil {
			rows = append(rows, []string{inspector.Label(), "0", "0", "0", "0.0%", "", ""})
			continue
		}
		percent := float64(entry.cect) / float64(entry.total) * 100
		rows = append(rows, []string{
			inspector.Label(),
			fmt.Sprintf("%d", entry.total),
			fmt.Sprintf("%d", entry.cect),
			fmt.Sprintf("%d", entry.total-entry.cect),
			fmt.Sprintf("%.1f%%", percent),
			entry.first.UTC().Format(time.RFC3339),
			entry.last.UTC().Format(time.RFC3339),
		})
	}

	path := filepath.Join(e.dir, fmt.Sprintf("results_statistics_%s.csv", e.now().Format(timestampLayout)))
	return path, writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}
