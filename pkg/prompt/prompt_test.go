package prompt

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.Error(t, Required("  "))
	assert.NoError(t, Required("Ana"))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email(" Ana@Example.com "))
	assert.Error(t, Email("ana"))
	assert.Error(t, Email(""))
}

func TestCancelled(t *testing.T) {
	assert.ErrorIs(t, cancelled(promptui.ErrInterrupt), ErrCancelled)
	assert.ErrorIs(t, cancelled(promptui.ErrEOF), ErrCancelled)
	assert.NoError(t, cancelled(nil))
	other := errors.New("tty")
	assert.Equal(t, other, cancelled(other))
}

func TestChoiceString(t *testing.T) {
	assert.Equal(t, "Sign up", SignUp.String())
	assert.Equal(t, "unknown", Choice(7).String())
}
