package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 168, cfg.JWTExpiryHours)
	assert.True(t, cfg.IsDev())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
port: 8080
env: production
jwt_secret: prod-secret
database:
  host: db.internal
  port: 3306
  user: cms
  password: pw
  name: cms_prod
  charset: utf8mb4
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Contains(t, cfg.Database.DSN(), "cms:pw@tcp(db.internal:3306)/cms_prod")
	// Untouched keys keep their defaults.
	assert.Equal(t, 168, cfg.JWTExpiryHours)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [oops"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
