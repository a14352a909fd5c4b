package lock

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation is returned for calls that do not apply to the
	// current lock state, such as an unknown plug or an out of range symbol.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotActive is returned when a lock is driven outside an active session.
	ErrNotActive = fmt.Errorf("%w: session not active", ErrInvalidOperation)
)

// ConfigError reports a lock parameter rejected at activation.
type ConfigError struct {
	Lock   string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Lock == "" {
		return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s config: %s %s", e.Lock, e.Field, e.Reason)
}

// Invalid builds a ConfigError.
func Invalid(lock, field, reason string, args ...any) *ConfigError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &ConfigError{Lock: lock, Field: field, Reason: reason}
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Invalidf returns an error wrapping ErrInvalidOperation.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}
