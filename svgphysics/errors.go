package svgphysics

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError with errors.Is.
var ErrConfiguration = errors.New("svgphysics: configuration error")

// ConfigurationError reports a scene that cannot be built from its options.
// It is returned before any physics or rendering state is created.
type ConfigurationError struct {
	Selector string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("svgphysics: %s", e.Reason)
	}
	return fmt.Sprintf("svgphysics: container %q: %s", e.Selector, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
