package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/internal/setup"
	"github.com/sbtqa/datajack-sub000/utils"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires a collection and a path", cli.ErrUsage)
	}
	env, _, err := cfg.env()
	if err != nil {
		return err
	}
	defer env.Close()

	collection, path := utils.Unpack2(args)
	return writeValue(cc.Out, env, collection, path)
}

func writeValue(w io.Writer, env *setup.Env, collection, path string) error {
	p, err := provider(env, collection, path)
	if err != nil {
		return err
	}
	v, err := p.Value()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

func provider(env *setup.Env, collection, path string) (*fixture.Provider, error) {
	p, err := env.Open(collection)
	if err != nil {
		return nil, err
	}
	return p.Get(path)
}

// target splits the <collection> [path] arguments shared by keys and dump.
func target(name string, args []string) (collection, path string, err error) {
	if len(args) == 0 || len(args) > 2 {
		return "", "", fmt.Errorf("%w: %s requires a collection and an optional path", cli.ErrUsage, name)
	}
	collection, path = utils.Unpack2(args)
	return collection, path, nil
}
