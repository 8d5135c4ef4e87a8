package atlas

import "errors"

// Sentinel errors for the atlas package.
var (
	// ErrFull is returned by Place when no free region of the current
	// surface can hold the image. The caller is expected to Expand.
	ErrFull = errors.New("atlas: no space left on surface")

	// ErrEmptyImage is returned when placing an image with zero area.
	ErrEmptyImage = errors.New("atlas: image has no pixels")

	// ErrDuplicate is returned when a name is placed twice on the same packer.
	ErrDuplicate = errors.New("atlas: name already placed")
)

// ConfigError represents an invalid packer or surface configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
