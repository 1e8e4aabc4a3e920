package selftest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeError(t *testing.T) {
	base := errors.New("cannot spawn ldconfig")
	err := fmt.Errorf("wrapped: %w", NewRuntimeError(base))

	assert.True(t, IsRuntimeError(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "runtime error: cannot spawn ldconfig", NewRuntimeError(base).Error())

	assert.False(t, IsRuntimeError(nil))
	assert.False(t, IsRuntimeError(base))
}

func TestParseErrorIsNotRuntimeError(t *testing.T) {
	err := &ParseError{Token: "x"}
	assert.False(t, IsRuntimeError(err))
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
