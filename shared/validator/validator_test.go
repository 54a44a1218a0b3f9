package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/shared/failure"
	"stayhub/shared/validator"
)

type createRequest struct {
	Title     string `json:"title"      validate:"required,max=200"`
	MaxGuests int    `json:"max_guests" validate:"omitempty,min=0"`
	Status    string `json:"status"     validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

func TestValidateDecodesAndValidates(t *testing.T) {
	body := strings.NewReader(`{"title":"Seaside flat","max_guests":4,"status":"pending"}`)

	req := createRequest{}
	err := validator.Validate(body, &req)

	assert.NoError(t, err)
	assert.Equal(t, "Seaside flat", req.Title)
	assert.Equal(t, 4, req.MaxGuests)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"title":`)

	req := createRequest{}
	err := validator.Validate(body, &req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     createRequest
		wantErr string
	}{
		{
			name:    "missing required field",
			req:     createRequest{},
			wantErr: "Title is required",
		},
		{
			name:    "invalid enum value",
			req:     createRequest{Title: "Flat", Status: "archived"},
			wantErr: "Status must be one of pending confirmed cancelled completed",
		},
		{
			name: "valid request",
			req:  createRequest{Title: "Flat", Status: "confirmed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("host@example.com", "email"))
	assert.Error(t, validator.ValidateVar("not-an-email", "email"))
}
