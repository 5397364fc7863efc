package domainerrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	t.Run("wrap keeps the cause reachable", func(t *testing.T) {
		err := Wrap(fs.ErrPermission, CodeIOFailure, "failed to save snapshot")
		assert.True(t, errors.Is(err, fs.ErrPermission))
		assert.True(t, Is(err, CodeIOFailure))
		assert.Equal(t, "failed to save snapshot: permission denied", err.Error())
	})

	t.Run("wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "nothing"))
	})

	t.Run("Is only looks at the outermost code", func(t *testing.T) {
		inner := New(CodeCorruptData, "bad record")
		outer := Wrap(inner, CodeInternal, "failed to load")
		assert.False(t, Is(outer, CodeCorruptData))
		assert.True(t, HasCode(outer, CodeCorruptData))
		assert.Equal(t, CodeInternal, CodeOf(outer))
	})

	t.Run("fmt wrapping is transparent", func(t *testing.T) {
		err := fmt.Errorf("check-in: %w", New(CodeAlreadyDone, "already checked in"))
		assert.True(t, Is(err, CodeAlreadyDone))
		assert.Equal(t, "already checked in", Message(err))
	})

	t.Run("plain errors are internal faults", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.True(t, IsFault(err))
		assert.False(t, IsFault(New(CodeNotFound, "missing")))
		assert.Equal(t, "internal error", Message(err))
	})
}
