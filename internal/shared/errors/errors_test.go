package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetType(t *testing.T) {
	t.Run("app errors report their type", func(t *testing.T) {
		assert.Equal(t, ErrorTypeNotFound, GetType(NotFoundf("mission %s not found", "sub-1")))
		assert.Equal(t, ErrorTypeValidation, GetType(Validation("duration must be positive")))
		assert.Equal(t, ErrorTypeMethodNotAllowed, GetType(MethodNotAllowed("PATCH")))
		assert.Equal(t, ErrorTypeRateLimited, GetType(RateLimited("slow down")))
	})

	t.Run("wrapped app errors keep their type", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", WrapExternal("redis unavailable", errors.New("dial tcp")))
		assert.Equal(t, ErrorTypeExternal, GetType(err))
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		assert.Equal(t, ErrorTypeInternal, GetType(errors.New("boom")))
	})
}

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := WrapValidation("invalid JSON in request body", cause)

	assert.Equal(t, "invalid JSON in request body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "method PATCH not allowed", MethodNotAllowed("PATCH").Error())
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "failed to store playlist", PublicMessage(WrapInternal("failed to store playlist", errors.New("pq: connection refused"))))
	assert.Equal(t, "redis unavailable", PublicMessage(fmt.Errorf("get: %w", WrapExternal("redis unavailable", errors.New("dial tcp")))))
	assert.Equal(t, "internal server error", PublicMessage(errors.New("boom")))
}
