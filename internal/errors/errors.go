// Package errors provides standardized error types for the vidos CLI tool.
//
// The errors package defines domain-specific error types that enable
// structured error handling and consistent error messages throughout
// the application.
//
// # Error Types
//
// DomainError is the primary error type, containing:
//   - Code: Categorizes the error (NOT_FOUND, ALREADY_EXISTS, etc.)
//   - Message: Human-readable error description
//   - Domain: The domain name involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Usage
//
// Creating domain-specific errors:
//
//	// Domain not declared
//	return errors.NotFound("api.example.com")
//
//	// Domain already declared
//	return errors.AlreadyExists("api.example.com")
//
//	// Validation error
//	return errors.Validation("destination must be ip:port")
//
//	// Wrapping a failing file operation, naming the attempted operation
//	return errors.IO("rewrite hosts file", err)
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrDomainNotFound) {
//	    // Handle not found case
//	}
//
// Use errors.As for type assertion:
//
//	var domErr *errors.DomainError
//	if errors.As(err, &domErr) {
//	    fmt.Printf("Error code: %s, Domain: %s\n", domErr.Code, domErr.Domain)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"      // Domain or config document not found
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS" // Domain already declared
	ErrCodeValidation    ErrorCode = "VALIDATION"     // Input validation failed
	ErrCodeIO            ErrorCode = "IO"             // File read/write/delete failed
	ErrCodeNetwork       ErrorCode = "NETWORK"        // Release artifact download failed
	ErrCodeProcess       ErrorCode = "PROCESS"        // Proxy process control failed
	ErrCodeConfig        ErrorCode = "CONFIG"         // Configuration document error
	ErrCodeInternal      ErrorCode = "INTERNAL"       // Internal/unexpected error
)

// DomainError represents a structured error with context about the operation.
type DomainError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Domain != "" && e.Err != nil {
		return fmt.Sprintf("domain %s: %s: %v", e.Domain, e.Message, e.Err)
	}
	if e.Domain != "" {
		return fmt.Sprintf("domain %s: %s", e.Domain, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrDomainNotFound indicates the requested domain is not declared.
	ErrDomainNotFound = &DomainError{Code: ErrCodeNotFound, Message: "domain not found"}

	// ErrDomainExists indicates a domain with the same source already exists.
	ErrDomainExists = &DomainError{Code: ErrCodeAlreadyExists, Message: "domain already exists"}

	// ErrConfigNotFound indicates the declared configuration document is missing.
	ErrConfigNotFound = &DomainError{Code: ErrCodeNotFound, Message: "configuration not found, run 'vidos init' first"}

	// ErrInvalidSource indicates the hostname is not valid.
	ErrInvalidSource = &DomainError{Code: ErrCodeValidation, Message: "invalid hostname"}

	// ErrInvalidDestination indicates the destination is not a valid ip:port.
	ErrInvalidDestination = &DomainError{Code: ErrCodeValidation, Message: "destination must be ip:port"}

	// ErrConfigInvalid indicates the configuration document is invalid or corrupt.
	ErrConfigInvalid = &DomainError{Code: ErrCodeConfig, Message: "invalid configuration"}

	// ErrProxyNotRunning indicates the proxy process could not be found.
	ErrProxyNotRunning = &DomainError{Code: ErrCodeProcess, Message: "proxy is not running"}
)

// NotFound creates an error for a domain that is not declared.
func NotFound(domain string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: "domain not found",
		Domain:  domain,
	}
}

// AlreadyExists creates an error for a domain that is already declared.
func AlreadyExists(domain string) error {
	return &DomainError{
		Code:    ErrCodeAlreadyExists,
		Message: "domain already exists",
		Domain:  domain,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// IO wraps a failing file operation, naming the operation that was attempted.
func IO(operation string, err error) error {
	return &DomainError{
		Code:    ErrCodeIO,
		Message: operation + " failed",
		Err:     err,
	}
}

// Network wraps a failing download, naming what was being fetched.
func Network(what string, err error) error {
	return &DomainError{
		Code:    ErrCodeNetwork,
		Message: "failed to fetch " + what,
		Err:     err,
	}
}

// Process wraps a failing proxy process operation.
func Process(operation string, err error) error {
	return &DomainError{
		Code:    ErrCodeProcess,
		Message: operation + " failed",
		Err:     err,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &DomainError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with domain context and underlying error.
func WrapDomain(code ErrorCode, domain string, err error) error {
	return &DomainError{
		Code:   code,
		Domain: domain,
		Err:    err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
