package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/shibukawa/puzzlegen/programdoc"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Dir string `arg:"" optional:"" help:"Directory of program documents (defaults to input_dir)" type:"path"`
}

func (c *CheckCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	dir := c.Dir
	if dir == "" {
		dir = config.InputDir
	}

	docs, err := programdoc.ParseDir(dir)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	failed := 0
	unchecked := 0

	for _, doc := range docs {
		ctx.debug("%s operators: %s", doc.Name, programdoc.FormatOperatorCounts(doc.OperatorCounts()))

		if doc.Expected == "" {
			unchecked++

			ctx.status(color.FgYellow, "SKIP %s (%s): no expected rendering", doc.Name, doc.Path)

			continue
		}

		if err := doc.Check(); err != nil {
			failed++

			ctx.status(color.FgRed, "FAIL %s (%s): %v", doc.Name, doc.Path, err)

			continue
		}

		ctx.status(color.FgGreen, "PASS %s", doc.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d document(s)", ErrCheckFailed, failed, len(docs))
	}

	ctx.status(color.FgGreen, "%d document(s) checked, %d without expectation", len(docs)-unchecked, unchecked)

	return nil
}
