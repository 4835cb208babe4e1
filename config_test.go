package puzzlegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "puzzlegen.yaml")
	err := os.WriteFile(configPath, []byte(content), 0644)
	assert.NoError(t, err)

	return configPath
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
input_dir: "./programs"
render:
  pretty: true
  indent: 4
  address_format: hex
generation:
  generators:
    go:
      output: "./gen"
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, "./programs", config.InputDir)
	assert.True(t, config.Render.Pretty)
	assert.Equal(t, 4, config.Render.Indent)
	assert.Equal(t, 80, config.Render.Width)
	assert.Equal(t, AddressHex, config.Render.AddressFormat)

	goGen := config.Generation.Generators["go"]
	assert.Equal(t, "./gen", goGen.Output)
	assert.Equal(t, "puzzles", goGen.Package)
	assert.True(t, goGen.IsEnabled())
}

func TestLoadConfig_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("PUZZLE_ROOT", "/srv/puzzles")
	t.Setenv("GEN_DIR", "gen")

	configPath := writeConfig(t, `
input_dir: "${PUZZLE_ROOT}/src"
generation:
  generators:
    go:
      output: "./$GEN_DIR/puzzles"
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, "/srv/puzzles/src", config.InputDir)
	assert.Equal(t, "./gen/puzzles", config.Generation.Generators["go"].Output)
}

func TestGeneratorConfig_IsEnabled(t *testing.T) {
	disabled := true
	enabled := false

	assert.True(t, (&GeneratorConfig{}).IsEnabled())
	assert.False(t, (&GeneratorConfig{Disabled: &disabled}).IsEnabled())
	assert.True(t, (&GeneratorConfig{Disabled: &enabled}).IsEnabled())
}
