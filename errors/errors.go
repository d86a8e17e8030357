// Package errors defines the error taxonomy of the middleware.
// Import as oaerrors to avoid clashing with the standard library.
package errors

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a per-element failure in a batched operation.
type ErrorCode int

const (
	// ErrorCodeUnknown is a fallback for uncategorised failures.
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodeInvalidEntityReference means the reference is not known
	// to the manager.
	ErrorCodeInvalidEntityReference
	// ErrorCodeMalformedEntityReference means the reference is
	// syntactically invalid for the operation.
	ErrorCodeMalformedEntityReference
	// ErrorCodeEntityAccessError means the supplied access mode cannot
	// be honoured for the entity.
	ErrorCodeEntityAccessError
	// ErrorCodeEntityResolutionError means the entity exists but failed
	// to resolve, e.g. missing or corrupt data.
	ErrorCodeEntityResolutionError
	// ErrorCodeInvalidPreflightHint means the hint given to Preflight
	// is unusable.
	ErrorCodeInvalidPreflightHint
	// ErrorCodeInvalidTraitSet means the trait set is rejected by the
	// manager.
	ErrorCodeInvalidTraitSet
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeUnknown:                  "unknown",
	ErrorCodeInvalidEntityReference:   "invalidEntityReference",
	ErrorCodeMalformedEntityReference: "malformedEntityReference",
	ErrorCodeEntityAccessError:        "entityAccessError",
	ErrorCodeEntityResolutionError:    "entityResolutionError",
	ErrorCodeInvalidPreflightHint:     "invalidPreflightHint",
	ErrorCodeInvalidTraitSet:          "invalidTraitSet",
}

// Name returns the stable name used in rendered error messages.
func (c ErrorCode) Name() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "unknown"
}

// BatchElementError describes the failure of a single element of a
// batched operation. It is a value, not a Go error: under the variant
// result policy it is embedded in the result sequence.
type BatchElementError struct {
	Code    ErrorCode
	Message string
}

// BatchElementException surfaces a BatchElementError through the
// throwing result policy. Index is the position of the failed element
// in the operation's input.
type BatchElementException struct {
	Index   int
	Err     BatchElementError
	message string
}

// NewBatchElementException renders the failure into a deterministic
// message of the form
//
//	<codeName>: <message> [index=<i>] [access=<accessName>] [entity=<ref>]
//
// accessName and entityReference segments are omitted when empty, for
// operations that have no access mode or no entity-reference input.
func NewBatchElementException(index int, err BatchElementError, accessName, entityReference string) *BatchElementException {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s [index=%d]", err.Code.Name(), err.Message, index)
	if accessName != "" {
		fmt.Fprintf(&sb, " [access=%s]", accessName)
	}
	if entityReference != "" {
		fmt.Fprintf(&sb, " [entity=%s]", entityReference)
	}
	return &BatchElementException{Index: index, Err: err, message: sb.String()}
}

func (e *BatchElementException) Error() string {
	return e.message
}

// InputValidationError indicates the caller supplied malformed or
// inconsistent inputs.
type InputValidationError struct {
	Message string
}

// NewInputValidationError creates a new input validation error.
func NewInputValidationError(message string) *InputValidationError {
	return &InputValidationError{Message: message}
}

func (e *InputValidationError) Error() string {
	return e.Message
}

// ConfigurationError indicates a manager or system misconfiguration,
// e.g. a manager lacking required capabilities after initialization.
type ConfigurationError struct {
	Message string
	Cause   error
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{Message: message, Cause: cause}
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NotImplementedError indicates an optional-capability operation was
// invoked on a manager that does not implement it.
type NotImplementedError struct {
	Message string
}

// NewNotImplementedError creates a new not-implemented error.
func NewNotImplementedError(message string) *NotImplementedError {
	return &NotImplementedError{Message: message}
}

func (e *NotImplementedError) Error() string {
	return e.Message
}
