// =============================================================================
// Smart Bookshop POS - Error Taxonomy
// =============================================================================
//
// Every store operation returns one of these error types to its caller.
// Callers match them with errors.As:
//
//   var verr *types.ValidationError
//   if errors.As(err, &verr) { ... }
//
// ERROR KINDS:
//   - ValidationError  : bad or missing field, no state change
//   - NotFoundError    : referenced key is absent
//   - AuthError        : credential mismatch
//   - CorruptDataError : persisted file exists but cannot be parsed
//   - IOError          : file system failure on read or write
//   - IndexError       : cart position out of range
//
// =============================================================================

package types

import (
	"fmt"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError represents a single rejected field.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated
	// (e.g. "required", "unique", "category", "positive").
	Rule string

	// Message is a human-readable reason.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// =============================================================================
// NOT FOUND ERROR
// =============================================================================

// NotFoundError is returned when a referenced key does not exist.
type NotFoundError struct {
	// Kind is the kind of object looked up ("book", "ledger").
	Kind string

	// Key is the value that was looked up.
	Key string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Key)
}

// =============================================================================
// AUTH ERROR
// =============================================================================

// AuthError is returned when a supplied password does not match.
type AuthError struct {
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Message
}

// =============================================================================
// CORRUPT DATA ERROR
// =============================================================================

// CorruptDataError is returned when a persisted file exists but does not have
// the expected structure. It is never repaired automatically.
type CorruptDataError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// =============================================================================
// IO ERROR
// =============================================================================

// IOError wraps a file system failure. The operation that returned it left
// in-memory state unchanged, so retrying is safe.
type IOError struct {
	// Op is the attempted operation ("read", "write", "list").
	Op string

	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying file system error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// =============================================================================
// INDEX ERROR
// =============================================================================

// IndexError is returned when a cart position is out of range.
type IndexError struct {
	Index  int
	Length int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (cart has %d item(s))", e.Index, e.Length)
}
