package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/sbtqa/datajack-sub000/internal/check"
	"github.com/sbtqa/datajack-sub000/internal/diagnostic"
	"github.com/sbtqa/datajack-sub000/internal/setup"
)

func runCheck(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	env, logger, err := cfg.env()
	if err != nil {
		return err
	}
	defer env.Close()

	if !writeCheck(cc.Out, env, logger, cfg.colored(cc.Out), args) {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeCheck reports the diagnostics of collections, or of every collection,
// and returns false when any of them is an error.
func writeCheck(w io.Writer, env *setup.Env, logger *slog.Logger, colored bool, collections []string) bool {
	res := check.New(env.Loader, logger, env.Options...).Run(collections...)

	paints := map[diagnostic.DiagnosticSeverity]func(...any) string{
		diagnostic.DiagnosticError:   paint(colored, color.FgRed),
		diagnostic.DiagnosticWarning: paint(colored, color.FgYellow),
		diagnostic.DiagnosticInfo:    paint(colored, color.FgCyan),
	}

	for _, d := range res.All() {
		fmt.Fprintf(w, "%s: %s\n", paints[d.Severity](d.Severity), d)
	}

	if res.HasErrors() {
		fmt.Fprintln(w, paint(colored, color.FgRed, color.Bold)(fmt.Sprintf("%d errors", len(res.Errors))))
		return false
	}
	fmt.Fprintln(w, paint(colored, color.FgGreen)("ok"))
	return true
}

func paint(on bool, attrs ...color.Attribute) func(...any) string {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}
