package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/devconnect-service/internal/api/dto"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

func TestValidateBatchesFieldErrors(t *testing.T) {
	err := dto.Validate(dto.UserRegisterRequest{})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	require.Len(t, de.Errors, 3)
	assert.Equal(t, "name is required", de.Errors[0].Msg)
	assert.Equal(t, "email is required", de.Errors[1].Msg)
	assert.Equal(t, "password is required", de.Errors[2].Msg)
}

func TestValidateEmailAndLength(t *testing.T) {
	err := dto.Validate(dto.UserRegisterRequest{
		Name:     "Alice",
		Email:    "not-an-email",
		Password: "123",
	})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	require.Len(t, de.Errors, 2)
	assert.Equal(t, "email must be a valid email", de.Errors[0].Msg)
	assert.Equal(t, "password must be at least 6 characters", de.Errors[1].Msg)
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.UserRegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}))
	assert.NoError(t, dto.Validate(dto.CreatePostRequest{Text: "hello"}))
	assert.Error(t, dto.Validate(dto.CreatePostRequest{}))
}
