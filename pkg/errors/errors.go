// Package errors defines the error taxonomy shared by the mdshare packages.
// Callers classify failures with errors.Is against the sentinels below;
// LoadError additionally carries the catalogue name that caused the failure.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Catalogue and fetch errors.
var (
	// ErrSchema is returned when a catalogue document or build template is
	// missing a required key or is otherwise structurally invalid.
	ErrSchema = fmt.Errorf("invalid catalogue schema")

	// ErrIntegrity is returned when a checksum does not match, either for the
	// catalogue document itself or for a downloaded file.
	ErrIntegrity = fmt.Errorf("checksum test failed")

	// ErrNotFound is returned when a name or pattern matches nothing in the
	// repository, or when a catalogue file does not exist.
	ErrNotFound = fmt.Errorf("not found")

	// ErrDownloadExhausted is returned when every download attempt failed.
	ErrDownloadExhausted = fmt.Errorf("download failed")

	// ErrConfiguration is returned for invalid argument combinations.
	ErrConfiguration = fmt.Errorf("invalid configuration")

	// ErrInternal marks states that should be unreachable.
	ErrInternal = fmt.Errorf("internal error")
)

// Config errors.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration values")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrInvalidLogLevel   = fmt.Errorf("invalid log level")
)

// LoadError reports a failure tied to a single catalogue name.
type LoadError struct {
	Name    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s [%s]", e.Name, e.Message)
}

// Unwrap returns the sentinel the error was created with.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a LoadError for name that matches kind with errors.Is.
func NewLoadError(kind error, name, message string) error {
	return &LoadError{Name: name, Message: message, Err: kind}
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// ErrInvalidLogLevelWithDetails wraps ErrInvalidLogLevel with the offending value.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}
