package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	v := Validation("customerEmail is required")
	n := NotFound("order not found")

	assert.True(t, IsValidation(v))
	assert.False(t, IsNotFound(v))
	assert.True(t, IsNotFound(n))
	assert.Equal(t, "order not found", n.Error())

	t.Run("Wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("get order: %w", n)
		assert.True(t, IsNotFound(wrapped))
	})

	t.Run("TooLarge", func(t *testing.T) {
		e := TooLarge("request body too large")
		assert.True(t, IsTooLarge(e))
		assert.False(t, IsValidation(e))
	})

	t.Run("Plain", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.False(t, IsValidation(plain))
		assert.False(t, IsNotFound(plain))
	})
}
