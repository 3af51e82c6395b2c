package errors

import (
	"errors"
	"fmt"
)

// Exit codes for openwrt-builder
const (
	ExitSuccess           = 0
	ExitGeneralError      = 1
	ExitImageNameRequired = 2
	ExitTemplateNotFound  = 3
	ExitCommandFailed     = 4
	ExitContainerFailed   = 5
	ExitConfigParse       = 6
	ExitPrecondition      = 7
)

// BuilderError is the base error type for openwrt-builder
type BuilderError struct {
	Code    int
	Message string
	Cause   error
}

func (e *BuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BuilderError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *BuilderError) ExitCode() int {
	return e.Code
}

// New creates a new BuilderError
func New(code int, message string) *BuilderError {
	return &BuilderError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a BuilderError
func Wrap(code int, message string, cause error) *BuilderError {
	return &BuilderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ImageNameRequired returns the error raised when an operation needs an image name
func ImageNameRequired() *BuilderError {
	return New(ExitImageNameRequired, "image name is required")
}

// TemplateNotFound returns an error for a missing template
func TemplateNotFound(name string) *BuilderError {
	return New(ExitTemplateNotFound, fmt.Sprintf("template not found: %s", name))
}

// CommandFailed returns an error for a failed host command
func CommandFailed(command string, cause error) *BuilderError {
	return Wrap(ExitCommandFailed, fmt.Sprintf("command %s failed", command), cause)
}

// ContainerFailed returns an error for container operations
func ContainerFailed(op string, cause error) *BuilderError {
	return Wrap(ExitContainerFailed, fmt.Sprintf("container %s failed", op), cause)
}

// ConfigParse returns an error for a config document that cannot be parsed
func ConfigParse(path string, cause error) *BuilderError {
	return Wrap(ExitConfigParse, fmt.Sprintf("failed to parse config %s", path), cause)
}

// SettingsError returns an error for settings file issues
func SettingsError(message string, cause error) *BuilderError {
	return Wrap(ExitConfigParse, message, cause)
}

// Precondition returns an error for a required value that is missing
func Precondition(message string) *BuilderError {
	return New(ExitPrecondition, message)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *BuilderError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var builderErr *BuilderError
	if errors.As(err, &builderErr) {
		return builderErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
