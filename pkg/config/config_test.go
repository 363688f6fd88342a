package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
	t.Setenv("AUTOCRUD_CONFIG_PATH", dir)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTOCRUD_CONFIG_PATH", t.TempDir())
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AUTOCRUD_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "models", cfg.ModelsDir)
	assert.Equal(t, 8*time.Hour, cfg.TokenLifetime())
	assert.Equal(t, "Viewer", cfg.DefaultRole)
	assert.False(t, cfg.MockAuth)
	assert.False(t, cfg.OwnerScopedReads)
	assert.True(t, cfg.SeedUsers)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "default", cfg.Source("token_ttl"))
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateServer())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	writeConfig(t, `
models_dir: /srv/models
token_ttl: 600
mock_auth: true
api_list_limit_max: 50
cors_allowed_origins: [https://app.example.com]
`)
	t.Setenv("AUTOCRUD_TOKEN_TTL", "120")
	t.Setenv("JWT_SECRET", "legacy")
	t.Setenv("AUTOCRUD_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/models", cfg.ModelsDir)
	assert.Equal(t, "file", cfg.Source("models_dir"))
	assert.Equal(t, 120, cfg.TokenTTL)
	assert.Equal(t, "environment", cfg.Source("token_ttl"))
	assert.True(t, cfg.MockAuth)
	assert.Equal(t, "legacy", cfg.JWTSecret)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_PreferredSecret(t *testing.T) {
	t.Setenv("AUTOCRUD_CONFIG_PATH", t.TempDir())
	t.Setenv("JWT_SECRET", "legacy")
	t.Setenv("AUTOCRUD_JWT_SECRET", "preferred")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "preferred", cfg.JWTSecret)
}

func TestLoad_InvalidFile(t *testing.T) {
	writeConfig(t, "token_ttl: [oops")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("AUTOCRUD_CONFIG_PATH", t.TempDir())
	t.Setenv("AUTOCRUD_TOKEN_TTL", "forever")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *AutocrudConfig)
	}{
		{name: "zero ttl", modify: func(c *AutocrudConfig) { c.TokenTTL = 0 }},
		{name: "zero list limit", modify: func(c *AutocrudConfig) { c.APIListLimitMax = 0 }},
		{name: "blank default role", modify: func(c *AutocrudConfig) { c.DefaultRole = " " }},
		{name: "empty models dir", modify: func(c *AutocrudConfig) { c.ModelsDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newDefault()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestListLimit(t *testing.T) {
	c := newDefault()
	c.APIListLimitMax = 100

	assert.Equal(t, 100, c.ListLimit(0))
	assert.Equal(t, 10, c.ListLimit(10))
	assert.Equal(t, 100, c.ListLimit(1000))
}

func TestAttributes_MaskSecrets(t *testing.T) {
	c := newDefault()
	c.JWTSecret = "top-secret"

	text := c.FormatText()
	assert.NotContains(t, text, "top-secret")

	out, err := c.FormatJSON()
	require.NoError(t, err)
	assert.NotContains(t, out, "top-secret")

	var decoded struct {
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Attributes, len(attributeNames()))
}
