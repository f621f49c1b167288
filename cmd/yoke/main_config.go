package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gops/agent"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	yoke "github.com/yoke-format/go-yoke"
	"github.com/yoke-format/go-yoke/encode"
)

const usageText = `yoke - convert between YAML and JSON

Usage:
  yoke view [file...]              Normalize and pretty-print YAML
  yoke json [file...]              Convert YAML to JSON
  yoke yaml [file...]              Convert JSON to YAML
  yoke get -e <expr> [file...]     Evaluate an expression against a document
  yoke diff <a> <b>                Structurally compare two YAML documents
  yoke patch -p <patch> [file...]  Apply a merge patch to a document

Files default to stdin; "-" reads stdin explicitly.  Inputs may hold
multiple documents separated by "---" lines.

Examples:
  yoke json config.yaml
  yoke json -indent 0 config.yaml
  cat values.json | yoke yaml
  yoke get -e 'doc.spec.replicas' deploy.yaml
  yoke diff before.yaml after.yaml
  yoke patch -p override.yaml base.yaml`

type MainConfig struct {
	Main    *cli.Command
	Indent  int    `cli:"name=indent desc='output indent width'"`
	YesNo   bool   `cli:"name=yes-no desc='treat yes/no as booleans'"`
	DupKeys bool   `cli:"name=dup-keys desc='allow duplicate mapping keys'"`
	Color   string `cli:"name=color desc='colorize output: auto, on, off'"`
	Gops    bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{Indent: 2, YesNo: true, Color: "auto"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "yoke").
		WithSynopsis("yoke <subcommand>").
		WithDescription(usageText).
		WithOpts(opts...).
		WithSubs(
			ViewCommand(cfg),
			JSONCommand(cfg),
			YAMLCommand(cfg),
			GetCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
		)
}

func (cfg *MainConfig) convOpts(w io.Writer) []yoke.Option {
	res := []yoke.Option{
		yoke.WithIndent(cfg.Indent),
		yoke.WithYesNoBool(cfg.YesNo),
		yoke.WithDuplicateKeys(cfg.DupKeys),
	}
	if cfg.useColor(w) {
		res = append(res, yoke.WithColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	switch cfg.Color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) maybeGops(cc *cli.Context) {
	if !cfg.Gops {
		return
	}
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}
}
