package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatusCodes(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewAuthError("unauthorized"), http.StatusUnauthorized},
		{NewForbiddenError("nope"), http.StatusForbidden},
		{NewNotFoundError("gone"), http.StatusNotFound},
		{NewFulfillmentError("factory", nil, nil), http.StatusInternalServerError},
		{NewInternalError(errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestAsAppErrorUnwrapsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewForbiddenError("nope"))

	appErr := AsAppError(wrapped)
	assert.Equal(t, KindForbidden, appErr.Kind)
	assert.Equal(t, "nope", appErr.Message)
}

func TestAsAppErrorHidesUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")

	appErr := AsAppError(cause)
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestResponseErrorMergesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseError(rec, NewFulfillmentError("Failed to fulfill order at factory",
		map[string]any{"followLinkToEndChaos": "http://report"}, errors.New("boom")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fulfill order at factory", body["message"])
	assert.Equal(t, "http://report", body["followLinkToEndChaos"])
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestResponseErrorNeverLeaksCause(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseError(rec, NewInternalError(errors.New("pq: password authentication failed")))

	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}
