package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := UserNotFound(7)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NotErrorIs(t, err, ErrEmailExists)

	wrapped := fmt.Errorf("handler: %w", err)
	assert.ErrorIs(t, wrapped, ErrUserNotFound)

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "User with ID 7 not found", de.Detail())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := StorageUnavailable(cause)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Database connection failed. Please try again later: dial tcp: connection refused", err.Error())

	var de *DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, "Database connection failed. Please try again later", de.Detail())
}

func TestDomainError_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		detail   string
	}{
		{"by id", UserNotFound(3), ErrUserNotFound, "User with ID 3 not found"},
		{"by email", UserNotFoundByEmail("a@x.com"), ErrUserNotFound, "User with email 'a@x.com' not found"},
		{"email exists", EmailExists("a@x.com"), ErrEmailExists, "Email 'a@x.com' is already registered"},
		{"forbidden", Forbidden("user profile"), ErrForbidden, "You are not authorized to access this user profile"},
		{"invalid token", InvalidToken(ErrTokenExpired), ErrInvalidToken, "invalid or expired authentication token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			var de *DomainError
			assert.True(t, errors.As(tt.err, &de))
			assert.Equal(t, tt.detail, de.Detail())
		})
	}
}

func TestInvalidToken_KeepsCause(t *testing.T) {
	err := InvalidToken(ErrTokenExpired)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "invalid or expired authentication token: token expired", err.Error())
}
