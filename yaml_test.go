package conftree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLFloatRecognition(t *testing.T) {
	// YAML 1.1 resolvers miss several float spellings that should
	// not end up as strings.
	tests := []struct {
		name    string
		content string
		want    any
	}{
		{"BareExponent", "lr: 1e5", float64(1e5)},
		{"NegativeExponent", "lr: 1e-3", float64(1e-3)},
		{"LeadingDot", "lr: .5", 0.5},
		{"UnderscoreSeparators", "lr: 1_000.5", 1000.5},
		{"SignedExponent", "lr: -2.5e+4", -2.5e4},
		{"QuotedStaysString", "lr: '1e5'", "1e5"},
		{"PlainWordStaysString", "lr: epochs", "epochs"},
		{"RegularFloatUnaffected", "lr: 0.1", 0.1},
		{"IntegerUnaffected", "lr: 100", int64(100)},
	}

	codec := &YAMLCodec{}
	tmpDir := t.TempDir()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			data, err := codec.Load(path)
			require.NoError(t, err)
			val := data["lr"]
			if n, ok := val.(int); ok {
				val = int64(n)
			}
			assert.Equal(t, tt.want, val)
		})
	}
}

func TestYAMLTopLevelMustBeMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- 1\n- 2\n"), 0644))

	_, err := (&YAMLCodec{}).Load(path)
	assert.Error(t, err)
}

func TestYAMLSaveSortKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	codec := &YAMLCodec{SortKeys: true}
	require.NoError(t, codec.Save(map[string]any{"zeta": 1, "alpha": 2}, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `(?s)alpha.*zeta`, string(raw))
}
