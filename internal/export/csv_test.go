package export_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"readstudy/internal/export"
	"readstudy/internal/results"
	"readstudy/internal/testsupport"
	"readstudy/internal/volume"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return records
}

func seedExporter(t *testing.T) (*export.Exporter, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	shape := volume.Shape{Depth: 1, Height: 2, Width: 2}
	testsupport.UniformVolume(t, cfg.Paths.DataDir, "patient_001", shape, 40)
	testsupport.UniformVolume(t, cfg.Paths.DataDir, "patient_002", shape, 40)

	tanaka := testsupport.NewInspector(t, store, "hospital_a", "tanaka")
	sato := testsupport.NewInspector(t, store, "hospital_b", "sato")
	if err := store.SaveResult(ctx, tanaka.ID, "patient_001", results.ClassificationCECT); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if err := store.SaveResult(ctx, sato.ID, "patient_001", results.ClassificationSynthetic); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if err := store.SaveResult(ctx, tanaka.ID, "patient_003", results.ClassificationCECT); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	library := volume.NewStore(cfg.Paths.DataDir)
	return export.New(store, library, cfg.Paths.ExportDir), cfg.Paths.ExportDir
}

func TestMatrixExport(t *testing.T) {
	exporter, dir := seedExporter(t)
	path, err := exporter.Matrix(context.Background())
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path %s not under export dir %s", path, dir)
	}
	if name := filepath.Base(path); !strings.HasPrefix(name, "results_") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("unexpected file name %s", name)
	}

	records := readCSV(t, path)
	header := records[0]
	if header[0] != "Patient_ID" {
		t.Fatalf("header = %v", header)
	}
	col := make(map[string]int, len(header))
	for i, label := range header {
		col[label] = i
	}
	if _, ok := col["hospital_a_tanaka"]; !ok {
		t.Fatalf("tanaka column missing: %v", header)
	}

	byPatient := make(map[string][]string, len(records)-1)
	for _, row := range records[1:] {
		byPatient[row[0]] = row
	}
	// patient_003 has a result but no backing volume and must still appear.
	for _, patient := range []string{"patient_001", "patient_002", "patient_003"} {
		if _, ok := byPatient[patient]; !ok {
			t.Fatalf("%s missing from matrix", patient)
		}
	}
	if got := byPatient["patient_001"][col["hospital_a_tanaka"]]; got != "CECT" {
		t.Fatalf("patient_001/tanaka = %q, want CECT", got)
	}
	if got := byPatient["patient_001"][col["hospital_b_sato"]]; got != "sCECT" {
		t.Fatalf("patient_001/sato = %q, want sCECT", got)
	}
	if got := byPatient["patient_002"][col["hospital_a_tanaka"]]; got != "" {
		t.Fatalf("patient_002/tanaka = %q, want empty", got)
	}
}

func TestTimestampsExport(t *testing.T) {
	exporter, _ := seedExporter(t)
	path, err := exporter.Timestamps(context.Background())
	if err != nil {
		t.Fatalf("Timestamps: %v", err)
	}
	if name := filepath.Base(path); !strings.HasPrefix(name, "results_with_time_") {
		t.Fatalf("unexpected file name %s", name)
	}

	records := readCSV(t, path)
	if len(records) != 4 {
		t.Fatalf("rows = %d, want header + 3 results", len(records))
	}
	for _, row := range records[1:] {
		if len(row) != 6 {
			t.Fatalf("row width = %d: %v", len(row), row)
		}
		if row[4] == "" || row[5] == "" {
			t.Fatalf("missing timestamps: %v", row)
		}
	}
}

func TestStatisticsExport(t *testing.T) {
	exporter, _ := seedExporter(t)
	path, err := exporter.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if name := filepath.Base(path); !strings.HasPrefix(name, "results_statistics_") {
		t.Fatalf("unexpected file name %s", name)
	}

	records := readCSV(t, path)
	byInspector := make(map[string][]string, len(records)-1)
	for _, row := range records[1:] {
		byInspector[row[0]] = row
	}

	tanaka := byInspector["hospital_a_tanaka"]
	if tanaka == nil {
		t.Fatal("tanaka row missing")
	}
	if tanaka[1] != "2" || tanaka[2] != "2" || tanaka[3] != "0" || tanaka[4] != "100.0%" {
		t.Fatalf("tanaka stats = %v", tanaka)
	}

	sato := byInspector["hospital_b_sato"]
	if sato == nil {
		t.Fatal("sato row missing")
	}
	if sato[1] != "1" || sato[2] != "0" || sato[3] != "1" || sato[4] != "0.0%" {
		t.Fatalf("sato stats = %v", sato)
	}
}
