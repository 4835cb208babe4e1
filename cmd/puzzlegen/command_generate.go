package main

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/shibukawa/puzzlegen/langs/gogen"
	"github.com/shibukawa/puzzlegen/programdoc"
)

// GenerateCmd represents the generate command
type GenerateCmd struct {
	Dir     string `arg:"" optional:"" help:"Directory of program documents (defaults to input_dir)" type:"path"`
	Output  string `short:"o" help:"Output directory (defaults to generation.generators.go.output)"`
	Package string `help:"Package name (defaults to generation.generators.go.package)"`
	NoCheck bool   `help:"Skip comparing programs with their expected rendering"`
}

// generatedFileName is the file written into the output directory
const generatedFileName = "programs_gen.go"

func (g *GenerateCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	generator, ok := config.Generation.Generators["go"]
	if (!ok || !generator.IsEnabled()) && g.Output == "" {
		return fmt.Errorf("%w: 'go'", ErrGeneratorNotConfigured)
	}

	outputDir := generator.Output
	if g.Output != "" {
		outputDir = g.Output
	}

	packageName := generator.Package
	if g.Package != "" {
		packageName = g.Package
	}

	dir := g.Dir
	if dir == "" {
		dir = config.InputDir
	}

	ctx.debug("Generating Go constants from %s", dir)

	docs, err := programdoc.ParseDir(dir)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	if !g.NoCheck {
		for _, doc := range docs {
			if err := doc.Check(); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrCheckFailed, doc.Path, err)
			}
		}
	}

	var buf bytes.Buffer

	err = gogen.New(docs, gogen.WithConfig(packageName, outputDir)).Generate(&buf)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(outputDir, generatedFileName)
	if err := writeFile(outputPath, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	ctx.status(color.FgGreen, "Generated %s with %d program(s)", outputPath, len(docs))

	return nil
}
