// Package errors provides typed errors with exit codes for openwrt-builder.
//
// # Error Types
//
// BuilderError is the base error type that wraps an error with an exit code:
//
//	type BuilderError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess           = 0  // Success
//	ExitGeneralError      = 1  // General/unknown errors
//	ExitImageNameRequired = 2  // No image name was given
//	ExitTemplateNotFound  = 3  // Explicitly requested template does not exist
//	ExitCommandFailed     = 4  // cp, qemu-img, gzip, ... returned non-zero
//	ExitContainerFailed   = 5  // Container build/run/cp/stop/rm failed
//	ExitConfigParse       = 6  // Config document or settings could not be parsed
//	ExitPrecondition      = 7  // A required value was missing before running anything
//
// A missing config file or a missing included template is not an error:
// the resolver falls back to defaults and skips the template.
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
