package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/scott-cotton/cli"

	"github.com/sbtqa/datajack-sub000/internal/setup"
)

var rawDumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	collection, path, err := target("dump", args)
	if err != nil {
		return err
	}
	env, _, err := cfg.env()
	if err != nil {
		return err
	}
	defer env.Close()

	return writeDump(cc.Out, env, collection, path, cfg.Raw)
}

func writeDump(w io.Writer, env *setup.Env, collection, path string, raw bool) error {
	p, err := provider(env, collection, path)
	if err != nil {
		return err
	}
	if raw {
		rawDumper.Fdump(w, p.Node().Interface())
		return nil
	}
	_, err = fmt.Fprintln(w, p.String())
	return err
}
