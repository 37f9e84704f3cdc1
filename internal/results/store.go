package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"readstudy/internal/config"
)

// Store manages result persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the results database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.Paths.DatabasePath
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// GetOrCreateInspector returns the inspector keyed by (affiliation, name),
// creating the row on first login and refreshing last_login otherwise.
func (s *Store) GetOrCreateInspector(ctx context.Context, affiliation, name string) (*Inspector, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM inspectors WHERE affiliation = ? AND name = ?`,
		affiliation, name,
	)
	var id int64
	err := row.Scan(&id)
	switch {
	case err == nil:
		if _, err := s.db.ExecContext(ctx,
			`UPDATE inspectors SET last_login = ? WHERE id = ?`, timestamp, id,
		); err != nil {
			return nil, fmt.Errorf("update last login: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO inspectors (affiliation, name, created_at, last_login) VALUES (?, ?, ?, ?)`,
			affiliation, name, timestamp, timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("insert inspector: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
	default:
		return nil, fmt.Errorf("find inspector: %w", err)
	}

	return s.InspectorByID(ctx, id)
}

// InspectorByID fetches an inspector by identifier; nil when absent.
func (s *Store) InspectorByID(ctx context.Context, id int64) (*Inspector, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, affiliation, name, created_at, last_login FROM inspectors WHERE id = ?`, id,
	)
	inspector, err := scanInspector(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inspector: %w", err)
	}
	return inspector, nil
}

// Inspectors returns all registered reviewers ordered by affiliation then name.
func (s *Store) Inspectors(ctx context.Context) ([]*Inspector, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, affiliation, name, created_at, last_login FROM inspectors ORDER BY affiliation, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list inspectors: %w", err)
	}
	defer rows.Close()

	var inspectors []*Inspector
	for rows.Next() {
		inspector, err := scanInspector(rows)
		if err != nil {
			return nil, err
		}
		inspectors = append(inspectors, inspector)
	}
	return inspectors, rows.Err()
}

// SaveResult records a classification, replacing any previous result the
// inspector submitted for the same case.
func (s *Store) SaveResult(ctx context.Context, inspectorID int64, patientID string, classification Classification) error {
	if _, err := ParseClassification(string(classification)); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_results (inspector_id, patient_id, result, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(inspector_id, patient_id)
         DO UPDATE SET result = excluded.result, updated_at = excluded.updated_at`,
		inspectorID, patientID, string(classification), now, now,
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// GetResult returns one inspector's result for a case, nil when no result
// has been recorded.
func (s *Store) GetResult(ctx context.Context, inspectorID int64, patientID string) (*Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM analysis_results WHERE inspector_id = ? AND patient_id = ?`,
		inspectorID, patientID,
	)
	result, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return result, nil
}

// InspectorResults returns every result one inspector recorded, most
// recently updated first.
func (s *Store) InspectorResults(ctx context.Context, inspectorID int64) ([]*Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resultColumns+` FROM analysis_results WHERE inspector_id = ? ORDER BY updated_at DESC`,
		inspectorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inspector results: %w", err)
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}

// PatientResults returns every inspector's result for one case, most
// recently updated first.
func (s *Store) PatientResults(ctx context.Context, patientID string) ([]*InspectorResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.affiliation, i.name, ar.patient_id, ar.result, ar.created_at, ar.updated_at
         FROM analysis_results ar
         JOIN inspectors i ON ar.inspector_id = i.id
         WHERE ar.patient_id = ?
         ORDER BY ar.updated_at DESC`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list patient results: %w", err)
	}
	defer rows.Close()

	return scanInspectorResults(rows)
}

// AllResults returns every recorded result joined with its inspector,
// ordered for deterministic export output.
func (s *Store) AllResults(ctx context.Context) ([]*InspectorResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.affiliation, i.name, ar.patient_id, ar.result, ar.created_at, ar.updated_at
         FROM analysis_results ar
         JOIN inspectors i ON ar.inspector_id = i.id
         ORDER BY ar.patient_id, i.affiliation, i.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list all results: %w", err)
	}
	defer rows.Close()

	return scanInspectorResults(rows)
}

// SubmittedPatients returns the case identities one inspector has already
// classified.
func (s *Store) SubmittedPatients(ctx context.Context, inspectorID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT patient_id FROM analysis_results WHERE inspector_id = ? ORDER BY patient_id`,
		inspectorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list submitted patients: %w", err)
	}
	defer rows.Close()

	var patients []string
	for rows.Next() {
		var patientID string
		if err := rows.Scan(&patientID); err != nil {
			return nil, err
		}
		patients = append(patients, patientID)
	}
	return patients, rows.Err()
}

const resultColumns = "id, inspector_id, patient_id, result, created_at, updated_at"

func scanInspector(scanner interface{ Scan(dest ...any) error }) (*Inspector, error) {
	var (
		inspector Inspector
		createdAt string
		lastLogin string
	)
	if err := scanner.Scan(&inspector.ID, &inspector.Affiliation, &inspector.Name, &createdAt, &lastLogin); err != nil {
		return nil, err
	}
	if parsed, err := parseTimeString(createdAt); err == nil {
		inspector.CreatedAt = parsed
	}
	if parsed, err := parseTimeString(lastLogin); err == nil {
		inspector.LastLogin = parsed
	}
	return &inspector, nil
}

func scanResult(scanner interface{ Scan(dest ...any) error }) (*Result, error) {
	var (
		result         Result
		classification string
		createdAt      string
		updatedAt      string
	)
	if err := scanner.Scan(&result.ID, &result.InspectorID, &result.PatientID, &classification, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	result.Classification = Classification(classification)
	if parsed, err := parseTimeString(createdAt); err == nil {
		result.CreatedAt = parsed
	}
	if parsed, err := parseTimeString(updatedAt); err == nil {
		result.UpdatedAt = parsed
	}
	return &result, nil
}

func scanInspectorResults(rows *sql.Rows) ([]*InspectorResult, error) {
	var out []*InspectorResult
	for rows.Next() {
		var (
			entry          InspectorResult
			classification string
			createdAt      string
			updatedAt      string
		)
		if err := rows.Scan(&entry.Affiliation, &entry.Name, &entry.PatientID, &classification, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		entry.Classification = Classification(classification)
		if parsed, err := parseTimeString(createdAt); err == nil {
			entry.CreatedAt = parsed
		}
		if parsed, err := parseTimeString(updatedAt); err == nil {
			entry.UpdatedAt = parsed
		}
		out = append(out, &entry)
	}
	return out, rows.Err()
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
