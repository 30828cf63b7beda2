package validation

import (
	"errors"
	"testing"

	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Stage    string  `json:"stage" validate:"oneof=prospect ask"`
	Score    int     `json:"score" validate:"min=0,max=100"`
	Nickname *string `json:"nickname,omitempty"`
	negative bool
}

func (s *sample) Validate() error {
	if s.negative {
		return apperrors.NewValidation("Validation failed: amount must be greater than 0")
	}
	return nil
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(&sample{Name: "Ada", Stage: "ask", Score: 50}))
}

func TestStruct_FieldErrorsUseJSONNames(t *testing.T) {
	err := Struct(&sample{Email: "nope", Stage: "won", Score: 101})
	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "is required", ve.Details["name"])
	assert.Equal(t, "must be a valid email", ve.Details["email"])
	assert.Equal(t, "must be one of [prospect ask]", ve.Details["stage"])
	assert.Equal(t, "must be at most 100", ve.Details["score"])
	assert.Contains(t, ve.Message, "name is required")
}

func TestStruct_ModelRules(t *testing.T) {
	err := Struct(&sample{Name: "Ada", Stage: "ask", negative: true})
	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Validation failed: amount must be greater than 0", ve.Message)
}
