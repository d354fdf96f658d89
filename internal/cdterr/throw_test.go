package cdterr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFatalfAndRecover(t *testing.T) {
	run := func(shouldThrow, shouldPanic bool) (err error) {
		defer func() {
			if recovered := Recover(recover()); recovered != nil {
				err = recovered
			}
		}()
		if shouldThrow {
			Fatalf("kaboom!")
		}
		if shouldPanic {
			panic("true panic")
		}
		return nil
	}

	t.Run("with violation", func(t *testing.T) {
		err := run(true, false)
		assert.EqualError(t, err, "kaboom!")
	})

	t.Run("with unrelated panic", func(t *testing.T) {
		assert.Panics(t, func() {
			run(false, true)
		})
	})

	t.Run("no error", func(t *testing.T) {
		err := run(false, false)
		assert.NoError(t, err)
	})
}
