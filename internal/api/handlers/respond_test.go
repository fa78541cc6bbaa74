package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"fitforge/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"timeout", fmt.Errorf("post: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, common.ErrCodeGatewayTimeout},
		{"canceled", context.Canceled, http.StatusRequestTimeout, common.ErrCodeRequestTimeout},
		{"prompt", common.ErrPromptRequired, http.StatusBadRequest, "PROMPT_REQUIRED"},
		{"queue full", common.ErrQueueFull, http.StatusServiceUnavailable, "QUEUE_FULL"},
		{"validation", common.NewValidationError("bad"), http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"body", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"other", errors.New("API Error: 500"), http.StatusInternalServerError, common.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}

	_, _, msg := ErrorStatus(common.ErrPromptRequired)
	assert.Equal(t, "Prompt is required", msg)
}

func TestErrorStatus_HidesUpstreamDetail(t *testing.T) {
	upstream := &url.Error{
		Op:  "Post",
		URL: "https://generativelanguage.googleapis.com/v1beta/models/m:generateContent?key=SECRET-KEY-123",
		Err: context.DeadlineExceeded,
	}

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"transport timeout", fmt.Errorf("failed to send request to Gemini: %w", upstream), http.StatusGatewayTimeout, "Request timed out"},
		{"transport failure", fmt.Errorf("failed to send request: %w", &url.Error{Op: "Post", URL: upstream.URL, Err: errors.New("connection reset by peer")}), http.StatusInternalServerError, "internal server error"},
		{"wrapped custom error", common.ErrUnsupportedStorage.Wrap(errors.New("dsn=postgres://user:pw@db")), http.StatusInternalServerError, common.ErrUnsupportedStorage.Message},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, msg := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
			assert.NotContains(t, msg, "SECRET-KEY-123")
			assert.NotContains(t, msg, "pw@db")
		})
	}
}
