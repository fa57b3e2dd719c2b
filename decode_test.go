package conftree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverSettings struct {
	Host    string  `config:"host"`
	Port    int64   `config:"port"`
	Timeout float64 `config:"timeout"`
	Debug   bool    `config:"debug"`
	Tags    []any   `config:"tags"`
}

type appSettings struct {
	Name   string         `config:"name"`
	Server serverSettings `config:"server"`
}

func TestScan(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"name": "demo",
		"server": map[string]any{
			"host":    "localhost",
			"port":    8080,
			"timeout": 2.5,
			"debug":   true,
			"tags":    []any{"a", "b"},
		},
	})
	require.NoError(t, err)

	t.Run("WholeTree", func(t *testing.T) {
		var app appSettings
		require.NoError(t, cfg.Scan("", &app))
		assert.Equal(t, "demo", app.Name)
		assert.Equal(t, "localhost", app.Server.Host)
		assert.Equal(t, int64(8080), app.Server.Port)
		assert.Equal(t, 2.5, app.Server.Timeout)
		assert.True(t, app.Server.Debug)
		assert.Equal(t, []any{"a", "b"}, app.Server.Tags)
	})

	t.Run("Subtree", func(t *testing.T) {
		var server serverSettings
		require.NoError(t, cfg.Scan("server", &server))
		assert.Equal(t, "localhost", server.Host)
	})

	t.Run("MissingBasePath", func(t *testing.T) {
		var server serverSettings
		err := cfg.Scan("absent", &server)
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var server serverSettings
		assert.Error(t, cfg.Scan("server", server))
	})
}
