package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/tagbuilder/cmd/tagbuilder/commands"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("tagbuilder"),
		kong.Description("Generate per-tag pages, a tag cloud and a paginated tag index for a static site."),
		kong.UsageOnError(),
	)

	if err := parser.Run(&commands.Global{}, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
