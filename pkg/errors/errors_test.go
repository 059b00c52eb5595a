package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidPath, "bad path")
	assert.Equal(t, CodeInvalidPath, GetCode(err))
	assert.Equal(t, "bad path", GetMessage(err))
	assert.Equal(t, "bad path", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, "failed to save")

	require.NotNil(t, err)
	assert.Equal(t, "failed to save: disk full", err.Error())
	assert.True(t, stderrors.Is(err, cause))

	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestWrapf(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrapf(cause, "failed to delete %s", "a.mp3")

	require.NotNil(t, err)
	assert.Equal(t, "failed to delete a.mp3: boom", err.Error())
	assert.Nil(t, Wrapf(nil, "ignored"))
}

func TestGetCodeAndMessageOnForeignError(t *testing.T) {
	plain := stderrors.New("plain")
	assert.Equal(t, 0, GetCode(plain))
	assert.Equal(t, "plain", GetMessage(plain))
	assert.Equal(t, "", GetMessage(nil))
}
