package main

import (
	"fmt"
	"strings"

	"github.com/shibukawa/puzzlegen"
	"github.com/shibukawa/puzzlegen/nodepath"
)

// PathCmd groups the path conversion subcommands
type PathCmd struct {
	Encode PathEncodeCmd `cmd:"" help:"Encode a path such as LRL into an environment address"`
	Decode PathDecodeCmd `cmd:"" help:"Decode an environment address into a path"`
	Args   PathArgsCmd   `cmd:"" help:"Address of a positional argument, optionally nested"`
}

// PathEncodeCmd represents the path encode command
type PathEncodeCmd struct {
	Path   string `arg:"" help:"Directions: L/R, f/r or first/rest, separated by spaces, commas or dots (\".\" is the root)"`
	Format string `help:"Address format (decimal or hex), defaults to render.address_format"`
}

func (p *PathEncodeCmd) Run(ctx *Context) error {
	path, err := nodepath.Parse(p.Path)
	if err != nil {
		return err
	}

	format, err := addressFormat(ctx, p.Format)
	if err != nil {
		return err
	}

	ctx.debug("Path %s has depth %d", path, path.Len())

	fmt.Fprintln(ctx.out(), formatAddress(path.Encode(), format))

	return nil
}

// PathDecodeCmd represents the path decode command
type PathDecodeCmd struct {
	Address string `arg:"" help:"Address in decimal or 0x-prefixed hex"`
}

func (p *PathDecodeCmd) Run(ctx *Context) error {
	addr, err := nodepath.ParseAddress(p.Address)
	if err != nil {
		return err
	}

	ctx.debug("Address %s has depth %d", addr, addr.Depth())

	fmt.Fprintln(ctx.out(), addr.Decode())

	return nil
}

// PathArgsCmd represents the path args command
type PathArgsCmd struct {
	Indices []int  `arg:"" help:"Argument indices; each further index descends into the previous argument"`
	Format  string `help:"Address format (decimal or hex), defaults to render.address_format"`
}

func (p *PathArgsCmd) Run(ctx *Context) error {
	path, err := nodepath.FromArgs(p.Indices...)
	if err != nil {
		return err
	}

	format, err := addressFormat(ctx, p.Format)
	if err != nil {
		return err
	}

	ctx.debug("Arguments %v are at path %s", p.Indices, path)

	fmt.Fprintln(ctx.out(), formatAddress(path.Encode(), format))

	return nil
}

func addressFormat(ctx *Context, flag string) (puzzlegen.AddressFormat, error) {
	switch format := puzzlegen.AddressFormat(strings.ToLower(flag)); format {
	case "":
	case puzzlegen.AddressDecimal, puzzlegen.AddressHex:
		return format, nil
	default:
		return "", fmt.Errorf("%w: address format '%s': must be one of decimal, hex", puzzlegen.ErrInvalidArgument, flag)
	}

	config, err := loadConfig(ctx)
	if err != nil {
		return "", err
	}

	return config.Render.AddressFormat, nil
}

func formatAddress(addr nodepath.Address, format puzzlegen.AddressFormat) string {
	if format == puzzlegen.AddressHex {
		return addr.Hex()
	}

	return addr.Literal()
}
