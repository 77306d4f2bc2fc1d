package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300.0, cfg.Animation.SpringTension)
	assert.Equal(t, 35.0, cfg.Animation.SpringFriction)
	assert.Equal(t, 1000000.0, cfg.VelocityScale["android"])
	assert.Equal(t, 1.0, cfg.VelocityScaleFor())
}

func TestLoadTOMLFillsDefaults(t *testing.T) {
	path := writeFile(t, "tabs.toml", `
strategy = "native"
platform = "android"

[ui]
show_indicator = false

[[routes]]
title = "First"
body = "one"

[[routes]]
key = "second"
title = "Second"
`)

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, StrategyNative, cfg.Strategy)
	assert.Equal(t, 1000000.0, cfg.VelocityScaleFor())
	assert.False(t, cfg.UISettings.ShowIndicator)
	assert.True(t, cfg.UISettings.ShowHelp)
	assert.Equal(t, 0.998, cfg.Animation.DecayDeceleration)
	require.Len(t, cfg.Routes, 2)
	assert.NotEmpty(t, cfg.Routes[0].Key, "missing keys are generated")
	assert.Equal(t, "second", cfg.Routes[1].Key)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "tabs.yaml", `
strategy: drag
pager:
  style: fade
routes:
  - key: a
    title: A
  - key: b
    title: B
`)

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, StyleFade, cfg.Pager.Style)
	assert.Len(t, cfg.Routes, 2)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown strategy", `strategy = "sideways"`},
		{"unknown platform", `platform = "amiga"`},
		{"duplicate keys", "[[routes]]\nkey = \"a\"\n[[routes]]\nkey = \"a\"\n"},
		{"bad deceleration", "[animation]\ndecay_deceleration = 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.toml", tt.content)
			_, err := NewConfigService().LoadFromPath(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "not found")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	svc := NewConfigService()
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Strategy = StrategyNative
	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Strategy, loaded.Strategy)
	assert.Equal(t, cfg.Routes, loaded.Routes)
}
