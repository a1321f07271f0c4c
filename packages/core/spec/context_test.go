package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_GetSet(t *testing.T) {
	t.Run("set then get", func(t *testing.T) {
		ctx := NewContext()
		ctx.Set("key", "value")

		v, err := ctx.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	})

	t.Run("missing key is an error", func(t *testing.T) {
		_, err := NewContext().Get("missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("set overwrites unconditionally", func(t *testing.T) {
		ctx := NewContext()
		ctx.Set("key", 1)
		ctx.Set("key", 2)

		v, err := ctx.Get("key")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("GetOr falls back without storing", func(t *testing.T) {
		ctx := NewContext()
		v := ctx.GetOr("missing", func() any { return "default" })
		assert.Equal(t, "default", v)

		_, err := ctx.Get("missing")
		assert.Error(t, err)
	})
}

func TestContext_Copy(t *testing.T) {
	t.Run("copies see values set before the fork", func(t *testing.T) {
		ctx := NewContext()
		ctx.Set("before", "visible")

		dup := ctx.Copy()
		v, err := dup.Get("before")
		require.NoError(t, err)
		assert.Equal(t, "visible", v)
	})

	t.Run("mutations after the fork are isolated", func(t *testing.T) {
		ctx := NewContext()
		ctx.Set("key", "original")

		dup := ctx.Copy()
		dup.Set("key", "changed")
		dup.Set("new", "only here")

		v, err := ctx.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "original", v)
		_, err = ctx.Get("new")
		assert.Error(t, err)
	})

	t.Run("values are shared by reference", func(t *testing.T) {
		ctx := NewContext()
		shared := map[string]int{"n": 1}
		ctx.Set("shared", shared)

		dup := ctx.Copy()
		v, err := dup.Get("shared")
		require.NoError(t, err)
		v.(map[string]int)["n"] = 2

		assert.Equal(t, 2, shared["n"])
	})
}
