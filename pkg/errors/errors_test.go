package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

func TestAppError_Error(t *testing.T) {
	bare := apperrors.NewAuthError("token expired")
	assert.Equal(t, "AUTH_ERROR: token expired", bare.Error())

	wrapped := apperrors.NewServerError("upstream failed", stderrors.New("boom"))
	assert.Equal(t, "SERVER_ERROR: upstream failed: boom", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := apperrors.NewNetworkError("connection reset", cause)

	assert.True(t, stderrors.Is(err, cause))
}

func TestAppError_Retryable(t *testing.T) {
	tests := []struct {
		name      string
		err       *apperrors.AppError
		retryable bool
	}{
		{"network", apperrors.NewNetworkError("timeout", nil), true},
		{"rate limit", apperrors.NewRateLimitError("throttled"), true},
		{"server", apperrors.NewServerError("5xx", nil), true},
		{"unknown", apperrors.NewUnknownError("odd", nil), true},
		{"auth", apperrors.NewAuthError("denied"), false},
		{"not found", apperrors.NewNotFoundError("gone"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.err.Retryable())
		})
	}
}

func TestAppError_WithContextCopies(t *testing.T) {
	original := apperrors.NewServerError("upstream failed", nil)
	annotated := original.WithContext("patients")

	assert.Equal(t, "patients", annotated.Context)
	assert.Empty(t, original.Context)
	assert.Equal(t, original.Code, annotated.Code)
}

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial refused" }
func (fakeNetError) Timeout() bool   { return false }
func (fakeNetError) Temporary() bool { return true }

var _ net.Error = fakeNetError{}

func TestClassify(t *testing.T) {
	assert.Nil(t, apperrors.Classify(nil))

	appErr := apperrors.NewRateLimitError("throttled")
	assert.Same(t, appErr, apperrors.Classify(appErr))

	wrapped := fmt.Errorf("fetch: %w", appErr)
	assert.Same(t, appErr, apperrors.Classify(wrapped))

	deadline := apperrors.Classify(context.DeadlineExceeded)
	require.NotNil(t, deadline)
	assert.Equal(t, apperrors.ErrorCodeNetwork, deadline.Code)

	netErr := apperrors.Classify(fakeNetError{})
	assert.Equal(t, apperrors.ErrorCodeNetwork, netErr.Code)

	unknown := apperrors.Classify(stderrors.New("boom"))
	assert.Equal(t, apperrors.ErrorCodeUnknown, unknown.Code)
}

func TestClassifyHTTPStatus(t *testing.T) {
	assert.Equal(t, apperrors.ErrorCodeAuth, apperrors.ClassifyHTTPStatus(http.StatusUnauthorized))
	assert.Equal(t, apperrors.ErrorCodeAuth, apperrors.ClassifyHTTPStatus(http.StatusForbidden))
	assert.Equal(t, apperrors.ErrorCodeNotFound, apperrors.ClassifyHTTPStatus(http.StatusNotFound))
	assert.Equal(t, apperrors.ErrorCodeRateLimit, apperrors.ClassifyHTTPStatus(http.StatusTooManyRequests))
	assert.Equal(t, apperrors.ErrorCodeServer, apperrors.ClassifyHTTPStatus(http.StatusBadGateway))
	assert.Equal(t, apperrors.ErrorCodeUnknown, apperrors.ClassifyHTTPStatus(http.StatusTeapot))
}
