package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/sbtqa/datajack-sub000/internal/config"
	"github.com/sbtqa/datajack-sub000/internal/setup"
)

type MainConfig struct {
	Config  string `cli:"name=c aliases=config desc='config file (default datajack.yaml)'"`
	Verbose bool   `cli:"name=v desc='log debug messages'"`
	Color   bool   `cli:"name=color desc='force colored output'"`

	Main *cli.Command
}

// load reads the config file. Without -c a missing datajack.yaml falls back
// to json and yaml collections in the current directory.
func (cfg *MainConfig) load() (*config.Config, error) {
	path := cfg.Config
	if path == "" {
		path = config.DefaultFile
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.LoadFile(path)
}

func (cfg *MainConfig) logger(c *config.Config) *slog.Logger {
	level := c.LogLevel()
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return newLogger(os.Stderr, level)
}

func (cfg *MainConfig) env() (*setup.Env, *slog.Logger, error) {
	c, err := cfg.load()
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.logger(c)
	env, err := setup.Build(context.Background(), c, logger)
	if err != nil {
		return nil, nil, err
	}
	return env, logger, nil
}

// colored reports whether output to w is colored: forced by -color,
// otherwise only on a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type KeysConfig struct {
	*MainConfig
	All bool `cli:"name=all desc='list every leaf path below path'"`

	Keys *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Raw bool `cli:"name=raw desc='dump plain go values with go-spew'"`

	Dump *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Check *cli.Command
}
