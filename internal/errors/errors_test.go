package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeLookup, "unknown theme %q", "Mauve")

	assert.Equal(t, ErrCodeLookup, err.Code)
	assert.Equal(t, `unknown theme "Mauve"`, err.Message)
	assert.Equal(t, `LOOKUP_ERROR: unknown theme "Mauve"`, err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeData, cause, "open colors.csv")

	require.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "DATA_ERROR: open colors.csv: no such file", err.Error())
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidParameter, "x"), ErrCodeInvalidParameter, true},
		{"other code", New(ErrCodeInvalidParameter, "x"), ErrCodeLookup, false},
		{"fmt wrapped", fmt.Errorf("ctx: %w", New(ErrCodeData, "x")), ErrCodeData, true},
		{"outer code wins", Wrap(ErrCodeInternal, New(ErrCodeData, "inner"), "outer"), ErrCodeInternal, true},
		{"plain error", errors.New("plain"), ErrCodeData, false},
		{"nil", nil, ErrCodeData, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Is(tt.err, tt.code))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeInvalidFormat, GetCode(New(ErrCodeInvalidFormat, "gif")))
	assert.Equal(t, Code(""), GetCode(errors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "wobble out of range", UserMessage(New(ErrCodeInvalidParameter, "wobble out of range")))
	assert.Equal(t, "read colors.csv: boom", UserMessage(Wrap(ErrCodeData, errors.New("boom"), "read colors.csv")))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestUserMessageNested(t *testing.T) {
	inner := New(ErrCodeData, "line 3: r=%q is not an integer", "x")
	err := Wrap(ErrCodeData, inner, "load colors.csv")
	assert.Equal(t, `load colors.csv: line 3: r="x" is not an integer`, UserMessage(err))
}
