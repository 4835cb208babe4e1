package main

import (
	"encoding/hex"
	"fmt"

	"github.com/shibukawa/puzzlegen/ccparent"
)

// CCParentCmd represents the ccparent command
type CCParentCmd struct {
	Parent string `required:"" help:"Parent coin name (64 hex digits)"`
	Inner  string `help:"Inner puzzle hash (64 hex digits); omitted means nil"`
	Amount uint64 `required:"" help:"Parent coin amount"`
	Pretty bool   `help:"Break the program over several lines"`
}

func (c *CCParentCmd) Run(ctx *Context) error {
	parent, err := ccparent.ParseBytes32(c.Parent)
	if err != nil {
		return fmt.Errorf("--parent: %w", err)
	}

	var inner *ccparent.Bytes32

	if c.Inner != "" {
		h, err := ccparent.ParseBytes32(c.Inner)
		if err != nil {
			return fmt.Errorf("--inner: %w", err)
		}

		inner = &h
	}

	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	record := ccparent.New(parent, inner, c.Amount)

	data, err := record.MarshalBinary()
	if err != nil {
		return err
	}

	out := ctx.out()
	fmt.Fprintf(out, "program: %s\n", renderProgram(record.Program(), config.Render, c.Pretty || config.Render.Pretty))
	fmt.Fprintf(out, "binary:  %s\n", hex.EncodeToString(data))

	return nil
}
