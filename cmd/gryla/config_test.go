package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gryla-project/gryla-go/pkg/gryla"
	"github.com/gryla-project/gryla-go/pkg/gryla/wikiapi"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, wikiapi.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Zero(t, cfg.MaxDepth)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, gryla.DefaultDialect().States, cfg.Dialect.States)
	assert.Equal(t, "Packet ID", cfg.Dialect.PacketIDHeader)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gryla.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  timeout_seconds: 60
max_depth: 4
dialect:
  states:
    - Play
`), 0644))

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.API.TimeoutSeconds)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, []string{"Play"}, cfg.Dialect.States)
	// Untouched keys keep their defaults.
	assert.Equal(t, wikiapi.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "Field Name", cfg.Dialect.FieldNameHeader)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gryla.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 4\n"), 0644))

	t.Setenv("GRYLA_MAX_DEPTH", "9")
	t.Setenv("GRYLA_API__BASE_URL", "http://localhost:8080/api.php")

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.MaxDepth)
	assert.Equal(t, "http://localhost:8080/api.php", cfg.API.BaseURL)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("GRYLA_MAX_DEPTH", "9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-depth", 0, "")
	flags.String("api-url", "", "")
	flags.Int("timeout", 0, "")
	require.NoError(t, flags.Set("max-depth", "3"))
	require.NoError(t, flags.Set("api-url", "http://flag.example/api.php"))

	cfg, err := loadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, "http://flag.example/api.php", cfg.API.BaseURL)
	// Flags left at their defaults never clobber lower layers.
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
}

func TestFindConfigFile_ExplicitWins(t *testing.T) {
	assert.Equal(t, "custom.yaml", findConfigFile("custom.yaml"))
	assert.Equal(t, "", findConfigFile(""))
}
