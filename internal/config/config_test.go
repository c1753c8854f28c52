package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./templates", cfg.Roots.Templates)
	assert.Equal(t, "./data", cfg.Roots.Data)
	assert.Equal(t, "./output", cfg.Roots.Output)
	assert.Equal(t, 8129, cfg.Server.Port)
	assert.True(t, cfg.Build.Minify)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("roots.templates", "/srv/site/templates")
	viper.Set("server.port", 9000)
	viper.Set("build.minify", false)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/site/templates", cfg.Roots.Templates)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Build.Minify)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing root", func(c *Config) { c.Roots.Data = "" }, "roots"},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, "port"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pagesmith.yml")

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "templates: ./templates")
	assert.Contains(t, string(data), "minify: true")

	// Refuses to clobber.
	assert.Error(t, WriteDefault(path))
}
