package types

import (
	"io/fs"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPathErrorKinds(t *testing.T) {
	err := NewPathError("open", "/tmp/a.jpg", ErrNotFound, fs.ErrNotExist)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "underlying cause should stay reachable")
	assert.False(t, errors.Is(err, ErrDecode))
	assert.Contains(t, err.Error(), "/tmp/a.jpg")
}

func TestPathErrorSurvivesWrapping(t *testing.T) {
	base := NewPathError("decode", "b.png", ErrDecode, errors.New("bad header"))
	wrapped := errors.Wrap(base, "pair 1")

	var pe *PathError
	if assert.True(t, errors.As(wrapped, &pe)) {
		assert.Equal(t, "b.png", pe.Path)
	}
	assert.True(t, errors.Is(wrapped, ErrDecode))
}

func TestPathErrorWithoutCause(t *testing.T) {
	err := NewPathError("list", "photos", ErrInsufficientInput, nil)
	assert.Equal(t, "list photos: not enough images", err.Error())
	assert.Nil(t, err.Unwrap())
}
