package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/shared/failure"
)

func TestFailureCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("Check-out date must be after check-in date."),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Check-out date must be after check-in date.",
		},
		{
			name:     "forbidden",
			err:      failure.Forbidden("You can only update your own listings."),
			wantCode: http.StatusForbidden,
			wantMsg:  "You can only update your own listings.",
		},
		{
			name:     "not found",
			err:      failure.NotFound("Listing not found."),
			wantCode: http.StatusNotFound,
			wantMsg:  "Listing not found.",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("Missing authorization header"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Missing authorization header",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("email already registered"),
			wantCode: http.StatusConflict,
			wantMsg:  "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestGetCodeUnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
}

func TestGetCodeWrappedFailure(t *testing.T) {
	err := fmt.Errorf("failed to get listing: %w", failure.NotFound("Listing not found."))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBadRequestNilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}
