package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/sbtqa/datajack-sub000/internal/setup"
	"github.com/sbtqa/datajack-sub000/node"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		cfg.Keys.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	collection, path, err := target("keys", args)
	if err != nil {
		return err
	}
	env, _, err := cfg.env()
	if err != nil {
		return err
	}
	defer env.Close()

	return writeKeys(cc.Out, env, collection, path, cfg.All)
}

func writeKeys(w io.Writer, env *setup.Env, collection, path string, all bool) error {
	p, err := provider(env, collection, path)
	if err != nil {
		return err
	}

	if all {
		p.Node().Walk(func(rel string, y *node.Node) bool {
			if rel != "" && y.IsScalar() {
				fmt.Fprintln(w, rel)
			}
			return true
		})
		return nil
	}

	ks, err := p.KeySet()
	if err != nil {
		return err
	}
	for _, k := range ks {
		fmt.Fprintln(w, k)
	}
	return nil
}
