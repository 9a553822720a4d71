package errors

// ErrorCode identifies the category and kind of a structured error.
type ErrorCode int

const (
	// General errors (1-99).
	ErrCodeUnknown ErrorCode = iota + 1
	ErrCodeInternal
)

// Validation errors (100-199).
const (
	ErrCodeInvalidParameter ErrorCode = iota + 100
	ErrCodeMissingParameter
	ErrCodeInvalidConfig
)

// Series errors (200-299).
const (
	// ErrCodeOutOfOrderTimestamp is returned when a bar is appended with a
	// timestamp that is not strictly after the last one on the axis.
	ErrCodeOutOfOrderTimestamp ErrorCode = iota + 200
	// ErrCodeIndexOutOfRange marks a column access outside [0, axis size).
	ErrCodeIndexOutOfRange
	// ErrCodeEmptySeries is returned when an operation needs at least one bar.
	ErrCodeEmptySeries
)

// Indicator errors (300-399).
const (
	ErrCodeIndicatorNotFound ErrorCode = iota + 300
	ErrCodeIndicatorConflict
)

// Data source errors (400-499).
const (
	ErrCodeDataSourceFailed ErrorCode = iota + 400
	ErrCodeDataNotFound
	ErrCodeQueryFailed
)

// Output errors (500-599).
const (
	ErrCodeWriteFailed ErrorCode = iota + 500
)
