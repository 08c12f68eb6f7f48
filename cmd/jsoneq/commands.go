package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "x",
		Aliases:     []string{"exclude"},
		Description: "path to leave out of the comparison, may be repeated",
		Type:        cli.NamedFuncOpt(cfg.excludeOpt, "(path)"),
	})

	return cli.NewCommandAt(&cfg.Main, "jsoneq").
		WithSynopsis("jsoneq [opts] expected actual").
		WithDescription("jsoneq checks two documents are semantically equal, ignoring key order & whitespace.\n" +
			"Either file may be - for stdin. Exits 1 when the documents differ.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsoneq(cfg, cc, args)
		})
}
