package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "datajack").
		WithSynopsis("datajack [opts] command [opts]").
		WithDescription("datajack reads test fixture data from json, yaml, properties, xlsx and sqlite collections.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return datajackMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			KeysCommand(cfg),
			DumpCommand(cfg),
			CheckCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <collection> <path>").
		WithDescription("print the value at path, following references and rendering templates").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Keys, "keys").
		WithAliases("k", "ls").
		WithSynopsis("keys [-all] <collection> [path]").
		WithDescription("list the keys of the object at path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-raw] <collection> [path]").
		WithDescription("print the document at path as json").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [collections]").
		WithDescription("resolve every reference and report broken ones").
		WithRun(func(cc *cli.Context, args []string) error {
			return runCheck(cfg, cc, args)
		})
}
