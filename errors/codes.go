package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Caller contract violations (fatal)
const (
	// ErrCodeCompletionSignaledTwice indicates a completion signal fired more than once.
	ErrCodeCompletionSignaledTwice ErrorCode = "COMPLETION_SIGNALED_TWICE"
	// ErrCodeIteratorPanic indicates an iterator panicked inside a blocking adapter.
	ErrCodeIteratorPanic ErrorCode = "ITERATOR_PANIC"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates a configuration block cannot be applied.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeCompletionSignaledTwice: true,
}

// IsFatalCode reports whether the code marks an unrecoverable caller bug.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
