package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shibukawa/puzzlegen"
	"github.com/shibukawa/puzzlegen/formatter"
	"github.com/shibukawa/puzzlegen/sexp"
)

// loadConfig loads the configuration named by --config
func loadConfig(ctx *Context) (*puzzlegen.Config, error) {
	config, err := puzzlegen.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx.debug("Loaded configuration from %s", ctx.Config)

	return config, nil
}

// renderProgram renders node in the canonical form or, when pretty is set,
// broken over lines by the formatter
func renderProgram(node sexp.Node, render puzzlegen.RenderConfig, pretty bool) string {
	if !pretty {
		return sexp.Render(node)
	}

	return formatter.NewProgramFormatter(render.Indent, render.Width).Format(node)
}

// ensureDir creates a directory if it doesn't exist
func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0o755)
	}

	return nil
}

// writeFile writes content to a file, creating directories if necessary
func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return os.WriteFile(path, content, 0o644)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
