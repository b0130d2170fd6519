package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidatePassword("secret123"))
	assert.ErrorIs(t, v.ValidatePassword("short1"), ErrPasswordTooShort)
	assert.ErrorIs(t, v.ValidatePassword("onlyletters"), ErrPasswordTooWeak)
	assert.ErrorIs(t, v.ValidatePassword("12345678"), ErrPasswordTooWeak)
}
