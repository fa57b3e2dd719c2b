package conftree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShallowCopy(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"scalar": 1,
		"sub":    map[string]any{"x": 1},
	})
	require.NoError(t, err)

	dup := cfg.Copy()
	assert.Equal(t, cfg.Keys(), dup.Keys())

	// Top-level bindings are independent.
	require.NoError(t, dup.Delete("scalar"))
	assert.True(t, cfg.Has("scalar"))

	// Sub-configurations are shared by reference.
	_, err = dup.Overwrite("sub.x", 9)
	require.NoError(t, err)
	shared, err := cfg.Get("sub.x")
	require.NoError(t, err)
	assert.Equal(t, int64(9), shared)
}

func TestDeepCopy(t *testing.T) {
	t.Run("Independence", func(t *testing.T) {
		cfg, err := FromMap(map[string]any{
			"sub": map[string]any{"x": 1},
			"seq": []any{map[string]any{"y": 2}},
		})
		require.NoError(t, err)

		dup := cfg.DeepCopy()
		_, err = dup.Overwrite("sub.x", 9)
		require.NoError(t, err)

		seq, err := dup.GetSlice("seq")
		require.NoError(t, err)
		_, err = seq[0].(*Configuration).Overwrite("y", 9)
		require.NoError(t, err)

		x, err := cfg.Get("sub.x")
		require.NoError(t, err)
		assert.Equal(t, int64(1), x)

		originalSeq, err := cfg.GetSlice("seq")
		require.NoError(t, err)
		y, err := originalSeq[0].(*Configuration).Get("y")
		require.NoError(t, err)
		assert.Equal(t, int64(2), y)
	})

	t.Run("DiamondSharingPreserved", func(t *testing.T) {
		shared, err := FromMap(map[string]any{"x": 1})
		require.NoError(t, err)

		// Shallow copies are the one way to alias a subtree from two spots.
		cfg := New()
		cfg.keys = append(cfg.keys, "left", "right")
		cfg.entries["left"] = shared
		cfg.entries["right"] = shared

		dup := cfg.DeepCopy()
		left, err := dup.Sub("left")
		require.NoError(t, err)
		right, err := dup.Sub("right")
		require.NoError(t, err)

		assert.Same(t, left, right, "aliased subtrees must stay aliased, not multiplied")
		assert.NotSame(t, shared, left)
	})
}
