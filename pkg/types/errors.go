package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Schema Manager errors. ErrSchema is wrapped with the offending table, row
// and field when a rebuild is rejected.
var (
	ErrSchema = errors.New("schema error")
)

// Query Catalog errors. ErrQueryExecution is joined with the engine error so
// callers can inspect both.
var (
	ErrQueryNotFound  = errors.New("query not found")
	ErrQueryExecution = errors.New("query execution failed")
	ErrInvalidFilter  = errors.New("invalid filter")
)

// Record Mutator errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidStatus     = errors.New("invalid claim status")
	ErrInvalidID         = errors.New("invalid record ID")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrReferenceNotFound = errors.New("referenced record not found")
)
