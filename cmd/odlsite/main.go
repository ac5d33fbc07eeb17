package main

import (
	"github.com/alecthomas/kong"

	"github.com/opendataloader-project/odlsite/cmd/odlsite/commands"
	"github.com/opendataloader-project/odlsite/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("odlsite"),
		kong.Description("OpenDataLoader PDF website and documentation portal"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(&commands.Global{}),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
