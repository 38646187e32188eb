package track

import "errors"

// Sentinel errors for registry and task operations. Validation errors
// (empty name, duplicate taxonomy entry) are rejected before any state
// changes; the state-transition errors indicate a caller bypassed the
// registry's toggle cascade.
var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrTaskNotFound     = errors.New("task not found")
	ErrAlreadyRunning   = errors.New("task already running")
	ErrNotRunning       = errors.New("task not running")
	ErrDuplicateEntry   = errors.New("taxonomy entry already exists")
	ErrTaxonomyNotFound = errors.New("taxonomy entry not found")
	ErrUnknownKind      = errors.New("unknown taxonomy kind")
)
