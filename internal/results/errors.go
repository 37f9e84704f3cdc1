package results

import "errors"

var (
	// ErrInvalidClassification indicates a result value outside the two
	// allowed study outcomes.
	ErrInvalidClassification = errors.New("invalid classification")
	// ErrSchemaMismatch indicates the database schema version doesn't match
	// the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
