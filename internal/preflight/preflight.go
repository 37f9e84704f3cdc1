package preflight

import (
	"readstudy/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all readiness checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Export directory", cfg.Paths.ExportDir))
	results = append(results, CheckDatabaseDir("Database directory", cfg.Paths.DatabasePath))
	results = append(results, CheckVolumes("Volume files", cfg.Paths.DataDir))

	return results
}

// Passed reports whether every result in the slice passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
