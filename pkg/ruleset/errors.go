package ruleset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingProperty is matched by every *ConfigurationError.
	ErrMissingProperty = errors.New("missing property")

	// ErrNotSupported is returned for Action values outside the declared set.
	ErrNotSupported = errors.New("not supported")
)

// ArgumentError reports a required Generate argument that was not supplied.
type ArgumentError struct {
	Param string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %s must not be empty", e.Param)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ConfigurationError reports a server property the analyzer plugin was
// expected to publish but did not.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Property does not exist: %s. This property should be set by the plugin in SonarQube.", e.Key)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrMissingProperty
}
