package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		retryable bool
	}{
		{ErrorTypeNetwork, true},
		{ErrorTypeRateLimit, true},
		{ErrorTypeServerError, true},
		{ErrorTypeAuth, false},
		{ErrorTypeNotFound, false},
		{ErrorTypeParsing, false},
		{ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.errorType))
		})
	}
}

func TestIsRetryableStatusCode(t *testing.T) {
	assert.True(t, IsRetryableStatusCode(429))
	assert.True(t, IsRetryableStatusCode(500))
	assert.True(t, IsRetryableStatusCode(503))
	assert.True(t, IsRetryableStatusCode(0))
	assert.False(t, IsRetryableStatusCode(404))
	assert.False(t, IsRetryableStatusCode(401))
	assert.False(t, IsRetryableStatusCode(200))
}

func TestFetchErrorMessage(t *testing.T) {
	err := NewFetchError(StageDetail, "NA1_4567", errors.New("connection reset"))
	assert.Contains(t, err.Error(), "detail fetch failed for match NA1_4567")

	listErr := NewFetchError(StageListing, "", errors.New("status 503"))
	assert.Equal(t, "listing fetch failed: status 503", listErr.Error())
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := &Error{Type: ErrorTypeServerError, Message: "server error", Code: 502}
	err := fmt.Errorf("scrape aborted: %w", NewFetchError(StageTimeline, "NA1_1", cause))

	assert.True(t, IsFetchError(err))
	assert.False(t, IsStorageError(err))

	var apiErr *Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrorTypeServerError, apiErr.Type)
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := fmt.Errorf("session failed: %w", NewStorageError("open", "/tmp/out.jsonl", cause))

	assert.True(t, IsStorageError(err))
	assert.False(t, IsFetchError(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "storage open failed for /tmp/out.jsonl")
}
