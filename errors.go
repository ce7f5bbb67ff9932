package llmprovider

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrMissingCredential indicates the backend's credential variable is not set.
	ErrMissingCredential = errors.New("llmprovider: missing credential")

	// ErrBackendUnavailable indicates the backend's client cannot be made available.
	ErrBackendUnavailable = errors.New("llmprovider: backend unavailable")

	// ErrBackend indicates the generation call itself failed
	// (transport failure, error status, malformed response).
	ErrBackend = errors.New("llmprovider: backend call failed")

	// ErrUnknownBackend indicates the requested backend name is not registered.
	ErrUnknownBackend = errors.New("llmprovider: unknown backend")

	// ErrUnknownTechnique indicates a technique id outside the catalog.
	ErrUnknownTechnique = errors.New("llmprovider: unknown technique")

	// ErrInvalidRequest indicates the request parameters are invalid.
	ErrInvalidRequest = errors.New("llmprovider: invalid request")

	// ErrUnknownTool indicates a tool name that is not registered.
	ErrUnknownTool = errors.New("llmprovider: unknown tool")
)

// MissingCredentialError is returned when none of a backend's credential
// variables is set in the environment.
type MissingCredentialError struct {
	Provider string   // The provider name
	EnvVars  []string // Expected variable first, then documented fallbacks
}

func (e *MissingCredentialError) Error() string {
	vars := "its credential variable"
	if len(e.EnvVars) > 0 {
		vars = e.EnvVars[0]
		if len(e.EnvVars) > 1 {
			vars += " (or " + strings.Join(e.EnvVars[1:], ", ") + ")"
		}
	}
	return fmt.Sprintf("provider '%s': set %s in your environment", e.Provider, vars)
}

func (e *MissingCredentialError) Unwrap() error {
	return ErrMissingCredential
}

// BackendUnavailableError is returned when a backend's client cannot be used,
// either because it was disabled or because it failed to initialize.
type BackendUnavailableError struct {
	Provider string // The provider name
	Hint     string // The setup step that makes the backend available
	Err      error  // Underlying initialization failure, if any
}

func (e *BackendUnavailableError) Error() string {
	msg := fmt.Sprintf("provider '%s' is unavailable", e.Provider)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

func (e *BackendUnavailableError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrBackendUnavailable, e.Err}
	}
	return []error{ErrBackendUnavailable}
}

// BackendError represents a failed call to the underlying backend API.
type BackendError struct {
	Provider   string // The provider name
	StatusCode int    // HTTP status code (if applicable)
	Message    string // Error message from provider
	Err        error  // Wrapped cause (transport or decode error), if any
}

func (e *BackendError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider '%s' error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider '%s' error: %s", e.Provider, e.Message)
}

func (e *BackendError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrBackend, e.Err}
	}
	return []error{ErrBackend}
}

// UnknownBackendError is returned by Registry.Resolve for unregistered names.
type UnknownBackendError struct {
	Name  string   // The name that was requested
	Known []string // Every registered name, sorted
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unsupported provider '%s'. Choose one of: %s", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownBackendError) Unwrap() error {
	return ErrUnknownBackend
}

// UnknownTechniqueError is returned for technique ids outside the catalog.
type UnknownTechniqueError struct {
	ID    int    // The requested id (0 when Input did not parse)
	Input string // Raw selector text, when the id came from user input
	Max   int    // Highest valid id
}

func (e *UnknownTechniqueError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("unknown technique '%s': pass 'all' or a number 1..%d", e.Input, e.Max)
	}
	return fmt.Sprintf("unknown technique %d: pass 'all' or a number 1..%d", e.ID, e.Max)
}

func (e *UnknownTechniqueError) Unwrap() error {
	return ErrUnknownTechnique
}

// ValidationError represents an error in request parameter validation.
type ValidationError struct {
	Field  string // The parameter field that failed validation
	Value  any    // The invalid value
	Reason string // Human-readable explanation
	Err    error  // Wrapped error (usually ErrInvalidRequest)
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for '%s': %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsAuthError checks if an error is related to authentication.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrMissingCredential) {
		return true
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		// HTTP 401/403 indicate auth issues
		return backendErr.StatusCode == 401 || backendErr.StatusCode == 403
	}

	return false
}

// IsUsageError reports whether err stems from caller input rather than a
// backend: unknown backend, unknown technique or invalid request parameters.
// Usage errors are resolved before any generation call is attempted.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUnknownBackend) ||
		errors.Is(err, ErrUnknownTechnique) ||
		errors.Is(err, ErrInvalidRequest)
}
