package convert

import "fmt"

// ConfigError reports a conversion option that fails validation. The
// pipeline never guesses around a bad option; it refuses the whole request.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DecodeError reports input bytes that could not be decoded as a supported
// image format. It wraps the decoder's error.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EmptyImageError reports an image with no pixel area, either as decoded or
// after resizing.
type EmptyImageError struct {
	Width  int
	Height int
}

func (e *EmptyImageError) Error() string {
	return fmt.Sprintf("image has no pixels (%dx%d)", e.Width, e.Height)
}
