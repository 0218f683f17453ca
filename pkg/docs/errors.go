package docs

import "errors"

// Common errors.
var (
	// ErrNotFound signals that no document exists at the requested path.
	ErrNotFound = errors.New("document not found")

	// ErrNoActiveFile signals that an editor operation requires a loaded file.
	ErrNoActiveFile = errors.New("no active file")

	// ErrUnsavedChanges signals that the editor holds modifications that
	// would be lost by the requested operation.
	ErrUnsavedChanges = errors.New("unsaved changes")
)
