package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/mini/compiler"
	"github.com/slowlang/mini/compiler/ast"
)

func main() {
	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print abstract syntax tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile source file to x86-64 nasm assembly",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file (stdout if empty)"),
		},
	}

	app := &cli.Command{
		Name:        "mini",
		Description: "mini is a compiler for a tiny integer language",
		Commands: []*cli.Command{
			parseCmd,
			compileCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func parseAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		x, err := compiler.ParseFile(ctx, a)
		if err != nil {
			return diag(a, err)
		}

		fmt.Printf("%s", ast.Dump(x))
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	if len(c.Args) != 1 {
		return errors.New("exactly one source file expected")
	}

	a := c.Args[0]

	obj, err := compiler.CompileFile(ctx, a)
	if err != nil {
		return diag(a, err)
	}

	if out := c.String("output"); out != "" {
		err = os.WriteFile(out, obj, 0o644)
		if err != nil {
			return errors.Wrap(err, "write output")
		}

		return nil
	}

	_, err = os.Stdout.Write(obj)

	return err
}

func diag(name string, err error) error {
	tlog.Printw("compile failed", "file", name, "err", err)

	return errors.New("%v", compiler.Diagnose(name, err))
}
