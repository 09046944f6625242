package commands

import (
	"io"
	"log/slog"
	"os"
)

// Global holds state shared by every subcommand.
type Global struct {
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"_config.yml" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build   BuildCmd   `cmd:"" help:"Compute tag pages, the tag cloud and the paginated tag index"`
	Cloud   CloudCmd   `cmd:"" help:"Print the tag cloud size class of every tag"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild whenever posts, pages or the configuration change"`
	Version VersionCmd `cmd:"" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
