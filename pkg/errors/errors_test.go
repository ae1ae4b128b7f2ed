package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewNotFoundError("care plan cp-1 not found")
	assert.Equal(t, "NOT_FOUND: care plan cp-1 not found", err.Error())

	wrapped := NewExternalError("care step store unavailable", fmt.Errorf("dial tcp: refused"))
	assert.Equal(t, "EXTERNAL: care step store unavailable: dial tcp: refused", wrapped.Error())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeValidation, TypeOf(NewValidationError("endDay before startDay")))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(fmt.Errorf("loading: %w", NewNotFoundError("missing"))))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("plain")))
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewExternalError("redis down", nil))
	assert.True(t, IsType(err, ErrorTypeExternal))
	assert.False(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(nil, ErrorTypeNotFound))
}
