package guardian

import "errors"

// Errors.
var (
	// ErrNilBackend is returned by New when no backend is given.
	ErrNilBackend = errors.New("guardian: nil backend")

	// ErrNoBackend is returned when no registered backend could create a
	// guardian.
	ErrNoBackend = errors.New("guardian: no backend available")

	// ErrInvalidTexture is returned for texture descriptors without a
	// usable size, or pixel data that does not match the size.
	ErrInvalidTexture = errors.New("guardian: invalid texture")

	// ErrTextureReleased is returned when updating a texture that has
	// already been released.
	ErrTextureReleased = errors.New("guardian: texture released")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "guardian: backend not found: " + e.Name
}
