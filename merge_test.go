package conftree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	t.Run("Disjoint", func(t *testing.T) {
		left := New()
		require.NoError(t, left.Set("a", 1))

		right := New()
		require.NoError(t, right.Set("b", 2))

		require.NoError(t, left.Update(right))
		assert.Equal(t, []string{"a", "b"}, left.Keys())
	})

	t.Run("CollisionFails", func(t *testing.T) {
		left := New()
		require.NoError(t, left.Set("a", 1))

		right := New()
		require.NoError(t, right.Set("a", 2))

		err := left.Update(right)
		assert.ErrorIs(t, err, ErrDuplicateKey)

		value, err := left.Get("a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), value)
	})
}

func TestCombine(t *testing.T) {
	t.Run("Disjoint", func(t *testing.T) {
		left, err := FromMap(map[string]any{"a": 1})
		require.NoError(t, err)
		right, err := FromMap(map[string]any{"b": map[string]any{"c": 2}})
		require.NoError(t, err)

		combined, err := left.Combine(right)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"a": int64(1),
			"b": map[string]any{"c": int64(2)},
		}, combined.ToMap())

		// The operands are untouched.
		assert.Equal(t, 1, left.Len())
		assert.Equal(t, 1, right.Len())
	})

	t.Run("CollisionFails", func(t *testing.T) {
		left, err := FromMap(map[string]any{"a": 1})
		require.NoError(t, err)
		right, err := FromMap(map[string]any{"a": 2})
		require.NoError(t, err)

		_, err = left.Combine(right)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("ResultIsIndependent", func(t *testing.T) {
		left, err := FromMap(map[string]any{"sub": map[string]any{"x": 1}})
		require.NoError(t, err)

		combined, err := left.Combine(New())
		require.NoError(t, err)

		_, err = combined.Overwrite("sub.x", 9)
		require.NoError(t, err)

		original, err := left.Get("sub.x")
		require.NoError(t, err)
		assert.Equal(t, int64(1), original)
	})
}
