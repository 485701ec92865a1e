package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents an API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeServerError:
		return true
	case ErrorTypeAuth, ErrorTypeNotFound, ErrorTypeParsing:
		return false
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 500, 502, 503, 504: // Server errors
		return true
	case 401, 403, 404: // Client errors that won't change
		return false
	default:
		return statusCode >= 500 // Retry all 5xx errors
	}
}

// Stage identifies which part of the scrape pipeline an error came from.
type Stage string

const (
	StageSummoner Stage = "summoner"
	StageListing  Stage = "listing"
	StageDetail   Stage = "detail"
	StageTimeline Stage = "timeline"
	StageStorage  Stage = "storage"
)

// FetchError is a fatal remote fetch failure. It is raised only after the
// client's own retry policy has been exhausted; the session never continues
// past one because skipping an unfetchable match would leave a permanent gap
// in the output.
type FetchError struct {
	Stage   Stage
	MatchID string
	Err     error
}

func (e *FetchError) Error() string {
	if e.MatchID != "" {
		return fmt.Sprintf("%s fetch failed for match %s: %v", e.Stage, e.MatchID, e.Err)
	}
	return fmt.Sprintf("%s fetch failed: %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err with the pipeline stage and, where applicable, the
// match identifier being fetched.
func NewFetchError(stage Stage, matchID string, err error) *FetchError {
	return &FetchError{Stage: stage, MatchID: matchID, Err: err}
}

// StorageError is a fatal sink failure: the destination could not be opened,
// scanned for existing records, or written.
type StorageError struct {
	Op          string
	Destination string
	Err         error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Destination, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failing sink operation and destination.
func NewStorageError(op, destination string, err error) *StorageError {
	return &StorageError{Op: op, Destination: destination, Err: err}
}

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
