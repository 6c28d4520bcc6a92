package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONTENTFUL_SPACE_ID", "space")
	t.Setenv("CONTENTFUL_ACCESS_TOKEN", "token")
	t.Setenv("CONTENTFUL_PREVIEW_SECRET", "preview")
	t.Setenv("SITE_NAME", "Env Blog")
	t.Setenv("CACHE_TTL", "30s")
	cfgFile = ""

	require.NoError(t, initializeConfig(versionCmd))
	assert.Equal(t, "space", appConfig.SpaceID)
	assert.Equal(t, "token", appConfig.AccessToken)
	assert.Equal(t, "preview", appConfig.PreviewSecret)
	assert.Equal(t, "Env Blog", appConfig.SiteName)
	assert.Equal(t, 30*time.Second, appConfig.CacheTTL)
	assert.Equal(t, ":3000", appConfig.Addr)
	assert.Equal(t, "http://localhost:3000", appConfig.SiteURL)
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site_name: File Blog\naddr: \":8080\"\n"), 0o644))
	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })

	require.NoError(t, initializeConfig(versionCmd))
	assert.Equal(t, "File Blog", appConfig.SiteName)
	assert.Equal(t, ":8080", appConfig.Addr)
}

func TestInitializeConfigMissingExplicitFile(t *testing.T) {
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { cfgFile = "" })

	require.Error(t, initializeConfig(versionCmd))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "cmsblog dev\n", out.String())
}
