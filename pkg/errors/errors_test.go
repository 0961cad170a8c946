package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "unsupported directive",
			wantStr: "[INVALID_INPUT] unsupported directive",
		},
		{
			name:    "config_invalid",
			code:    errors.ErrConfigValid,
			message: "bad chrome path",
			wantStr: "[CONFIG_INVALID] bad chrome path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrFileAccess, "ignored"))
	})

	t.Run("wrapped error is reachable", func(t *testing.T) {
		base := stderrors.New("permission denied")
		err := errors.Wrapf(base, errors.ErrSymlinkCreate, "linking %s", "/tmp/x")

		require.NotNil(t, err)
		assert.Equal(t, "[SYMLINK_CREATE] linking /tmp/x: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, base))
	})
}

func TestIsErrorCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrDirectiveUnknown, "nope"))

	assert.True(t, errors.IsErrorCode(err, errors.ErrDirectiveUnknown))
	assert.False(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrInvalidInput))
	assert.Equal(t, errors.ErrDirectiveUnknown, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrNotFound, "a")
	b := errors.New(errors.ErrNotFound, "b")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, errors.New(errors.ErrInternal, "c")))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrConfigValid, "bad value").
		WithDetail("key", "chrome").
		WithDetail("value", 42)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "chrome", details["key"])
	assert.Equal(t, 42, details["value"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
