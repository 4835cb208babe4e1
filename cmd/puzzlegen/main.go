package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	// Out receives command output; tests replace it with a buffer
	Out io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}

	return c.Out
}

// status prints a coloured progress line unless --quiet is set
func (c *Context) status(attr color.Attribute, format string, args ...any) {
	if c.Quiet {
		return
	}

	color.New(attr).Fprintf(c.out(), format+"\n", args...)
}

// debug prints only with --verbose
func (c *Context) debug(format string, args ...any) {
	if c.Verbose && !c.Quiet {
		color.New(color.FgBlue).Fprintf(c.out(), format+"\n", args...)
	}
}

// CLI represents the command-line interface
var CLI struct {
	Config   string      `help:"Configuration file path" default:"puzzlegen.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Path     PathCmd     `cmd:"" help:"Convert between environment paths and addresses"`
	Render   RenderCmd   `cmd:"" help:"Render a program document or YAML program"`
	Check    CheckCmd    `cmd:"" help:"Check program documents against their expected rendering"`
	Generate GenerateCmd `cmd:"" help:"Generate Go constants from program documents"`
	CCParent CCParentCmd `cmd:"" name:"ccparent" help:"Build a CCParent record"`
	Init     InitCmd     `cmd:"" help:"Initialize a new puzzlegen project"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.out(), "puzzlegen v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("puzzlegen"),
		kong.Description("Builds and checks programs for the chialisp virtual machine."),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
