package timeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrConfiguration = errors.New("invalid timeline configuration")
	ErrInvalidDate   = errors.New("invalid record date")
)

// ConfigurationError reports a configuration that cannot produce a usable
// window. It is fatal to the whole layout call.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("timeline config %s: %s", e.Field, e.Reason)
}

// Is makes ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InvalidDateError reports a record whose creation date is unusable.
// Compute collects these instead of failing.
type InvalidDateError struct {
	RecordID string
	Reason   string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("record %q: %s", e.RecordID, e.Reason)
}

// Is makes InvalidDateError match ErrInvalidDate.
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}
