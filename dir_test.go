package conftree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestDirLoader(t *testing.T) {
	t.Run("OptionSelection", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"config.json": `{"mode": "train"}`,
			"mode.json":   `{"train": {"lr": 0.1}, "eval": {"batch": 64}}`,
		})

		data, err := (&DirLoader{}).Load(dir)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"mode": map[string]any{"lr": 0.1},
		}, data)
	})

	t.Run("OptionMismatch", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"config.json": `{"mode": "test"}`,
			"mode.json":   `{"train": {"lr": 0.1}}`,
		})

		_, err := (&DirLoader{}).Load(dir)
		assert.ErrorIs(t, err, ErrOptionMismatch)
	})

	t.Run("NonStringOptionValue", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"config.json": `{"mode": 3}`,
			"mode.json":   `{"train": {"lr": 0.1}}`,
		})

		_, err := (&DirLoader{}).Load(dir)
		assert.ErrorIs(t, err, ErrOptionMismatch)
	})

	t.Run("StemBecomesNewKey", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"config.yaml": "name: demo\n",
			"server.yaml": "port: 8080\n",
		})

		data, err := (&DirLoader{}).Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "demo", data["name"])

		cfg, err := FromMap(data)
		require.NoError(t, err)
		port, err := cfg.GetInt64("server.port")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), port)
	})

	t.Run("MixedFormats", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"config.json": `{"name": "demo"}`,
			"extra.toml":  "flag = true\n",
		})

		data, err := (&DirLoader{}).Load(dir)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"flag": true}, data["extra"])
	})

	t.Run("NestedDirectory", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"config.json":       `{"name": "demo"}`,
			"model/config.json": `{"layers": 3}`,
			"model/head.json":   `{"units": 10}`,
		})

		data, err := (&DirLoader{}).Load(dir)
		require.NoError(t, err)
		model, ok := data["model"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"units": int64(10)}, model["head"])
	})

	t.Run("NoBaseFile", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"server.json": `{"port": 8080}`,
		})

		data, err := (&DirLoader{}).Load(dir)
		require.NoError(t, err)
		require.Contains(t, data, "server")
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		_, err := (&DirLoader{}).Load(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

func TestLoadFileDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"config.json": `{"mode": "train"}`,
		"mode.json":   `{"train": {"lr": 0.1}}`,
	})

	cfg, err := LoadFile(dir, nil)
	require.NoError(t, err)
	lr, err := cfg.GetFloat64("mode.lr")
	require.NoError(t, err)
	assert.Equal(t, 0.1, lr)
}

func TestDirDumper(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	cfg, err := FromMap(map[string]any{"name": "demo", "lr": 0.5})
	require.NoError(t, err)
	require.NoError(t, Save(cfg, dir, &DirDumper{}, nil))

	loaded, err := LoadFile(filepath.Join(dir, "config.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.ToMap(), loaded.ToMap())
}

func TestDirDumperCustomName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	cfg, err := FromMap(map[string]any{"name": "demo"})
	require.NoError(t, err)
	require.NoError(t, Save(cfg, dir, &DirDumper{Name: "config.yaml"}, nil))

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}
