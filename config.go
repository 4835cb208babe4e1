package puzzlegen

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents the puzzlegen configuration
type Config struct {
	InputDir   string           `yaml:"input_dir"`
	Render     RenderConfig     `yaml:"render"`
	Generation GenerationConfig `yaml:"generation"`
}

// RenderConfig controls how programs are printed by the CLI
type RenderConfig struct {
	Pretty        bool          `yaml:"pretty"`
	Indent        int           `yaml:"indent"`
	Width         int           `yaml:"width"`
	AddressFormat AddressFormat `yaml:"address_format"`
}

// AddressFormat selects how environment addresses are printed by `path encode`
type AddressFormat string

const (
	AddressDecimal AddressFormat = "decimal"
	AddressHex     AddressFormat = "hex"
)

// GenerationConfig represents code generation settings
type GenerationConfig struct {
	Generators map[string]GeneratorConfig `yaml:"generators"`
}

// GeneratorConfig represents a single generator configuration
type GeneratorConfig struct {
	Output   string `yaml:"output"`
	Package  string `yaml:"package"`
	Disabled *bool  `yaml:"disabled"` // nil means enabled
}

// IsEnabled returns true if the generator is not explicitly disabled
func (g *GeneratorConfig) IsEnabled() bool {
	return g.Disabled == nil || !*g.Disabled
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := DefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode reports unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	switch config.Render.AddressFormat {
	case "", AddressDecimal, AddressHex:
	default:
		return fmt.Errorf("%w: render.address_format '%s': must be one of decimal, hex", ErrConfigValidation, config.Render.AddressFormat)
	}

	if config.Render.Indent < 0 {
		return fmt.Errorf("%w: render.indent must be non-negative, got %d", ErrConfigValidation, config.Render.Indent)
	}

	if config.Render.Width < 0 {
		return fmt.Errorf("%w: render.width must be non-negative, got %d", ErrConfigValidation, config.Render.Width)
	}

	for name, generator := range config.Generation.Generators {
		if name != "go" {
			return fmt.Errorf("%w: unknown generator type '%s': must be go", ErrConfigValidation, name)
		}

		if generator.IsEnabled() && generator.Output == "" {
			return fmt.Errorf("%w: generator '%s': output path is required when enabled", ErrConfigValidation, name)
		}
	}

	return nil
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		InputDir: "./puzzles",
		Render: RenderConfig{
			Pretty:        false,
			Indent:        2,
			Width:         80,
			AddressFormat: AddressDecimal,
		},
		Generation: GenerationConfig{
			Generators: map[string]GeneratorConfig{
				"go": {
					Output:  "./internal/puzzles",
					Package: "puzzles",
				},
			},
		},
	}
}

// applyDefaults fills in values that were left empty in the file
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.InputDir == "" {
		config.InputDir = defaults.InputDir
	}

	if config.Render.Indent == 0 {
		config.Render.Indent = defaults.Render.Indent
	}

	if config.Render.Width == 0 {
		config.Render.Width = defaults.Render.Width
	}

	if config.Render.AddressFormat == "" {
		config.Render.AddressFormat = defaults.Render.AddressFormat
	}

	if config.Generation.Generators == nil {
		config.Generation.Generators = defaults.Generation.Generators
	}

	for name, generator := range config.Generation.Generators {
		if generator.Package == "" {
			generator.Package = defaults.Generation.Generators["go"].Package
			config.Generation.Generators[name] = generator
		}
	}
}

// loadEnvFiles loads .env from the current directory when present
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.InputDir = expandEnvVars(config.InputDir)

	for name, generator := range config.Generation.Generators {
		generator.Output = expandEnvVars(generator.Output)
		config.Generation.Generators[name] = generator
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
