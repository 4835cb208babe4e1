package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
)

// InitCmd represents the init command
type InitCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Project directory" type:"path"`
}

func (i *InitCmd) Run(ctx *Context) error {
	ctx.debug("Initializing puzzlegen project in %s", i.Dir)

	configPath := ctx.Config
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(i.Dir, configPath)
	}

	if fileExists(configPath) {
		return fmt.Errorf("%w: %s exists", ErrAlreadyInitialized, configPath)
	}

	files := []struct {
		path    string
		content string
	}{
		{configPath, sampleConfig},
		{filepath.Join(i.Dir, "puzzles", "pay_to_first.md"), sampleDocument},
	}

	for _, f := range files {
		if fileExists(f.path) {
			ctx.status(color.FgYellow, "Skipped existing %s", f.path)
			continue
		}

		if err := writeFile(f.path, []byte(f.content)); err != nil {
			return fmt.Errorf("failed to create %s: %w", f.path, err)
		}

		ctx.debug("Created %s", f.path)
	}

	if !ctx.Quiet {
		ctx.status(color.FgGreen, "puzzlegen project initialized successfully")

		out := ctx.out()
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "1. Describe programs as Markdown documents in the puzzles/ directory")
		fmt.Fprintln(out, "2. Run 'puzzlegen check' to compare them with their expected rendering")
		fmt.Fprintln(out, "3. Run 'puzzlegen generate' to write Go constants")
	}

	return nil
}

const sampleConfig = `# Directory scanned by check and generate
input_dir: "./puzzles"

render:
  pretty: false
  indent: 2
  width: 80
  address_format: "decimal"  # decimal or hex

generation:
  generators:
    go:
      output: "./internal/puzzles"
      package: "puzzles"
`

const sampleDocument = "---\n" +
	"name: pay_to_first\n" +
	"---\n" +
	"# Pay To First\n" +
	"\n" +
	"## Description\n" +
	"\n" +
	"Fails when the first argument is zero, otherwise returns the second argument in a list.\n" +
	"\n" +
	"## Program\n" +
	"\n" +
	"```yaml\n" +
	"if:\n" +
	"  - is_zero: {arg: 0}\n" +
	"  - fail: []\n" +
	"  - list: [{arg: 1}]\n" +
	"```\n" +
	"\n" +
	"## Expected\n" +
	"\n" +
	"```clvm\n" +
	"((c (q (i (= 2 (q 0)) (q (x)) (q (c 6 (q ()))))) 1))\n" +
	"```\n"
