package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shibukawa/puzzlegen/programdoc"
	"github.com/shibukawa/puzzlegen/sexp"
)

// RenderCmd represents the render command
type RenderCmd struct {
	File    string `arg:"" help:"Program document (.md) or YAML program (.yaml, .yml)" type:"existingfile"`
	Pretty  bool   `help:"Break long programs over several lines (also enabled by render.pretty)"`
	Compact bool   `help:"Print on one line even when render.pretty is set"`
}

func (r *RenderCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	node, err := loadProgram(r.File)
	if err != nil {
		return err
	}

	pretty := (config.Render.Pretty || r.Pretty) && !r.Compact

	fmt.Fprintln(ctx.out(), renderProgram(node, config.Render, pretty))

	return nil
}

// loadProgram compiles the program held in a document or a bare YAML file
func loadProgram(path string) (sexp.Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		doc, err := programdoc.ParseFile(path)
		if err != nil {
			return nil, err
		}

		return doc.Program, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		node, err := programdoc.CompileYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return node, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}
}
