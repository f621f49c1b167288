package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	yoke "github.com/yoke-format/go-yoke"
)

type PatchConfig struct {
	*MainConfig
	Patch     *cli.Command
	PatchFile string `cli:"name=p desc='merge patch file (yaml or json)'"`
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithSynopsis("patch -p <patch> [file...] - apply a merge patch to a document").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *PatchConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.PatchFile == "" {
		return fmt.Errorf("%w: patch requires -p <patch>", cli.ErrUsage)
	}
	cfg.maybeGops(cc)
	patch, err := readInput(cc, cfg.PatchFile)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(w io.Writer, doc []byte) error {
		out, err := yoke.Patch(doc, patch, cfg.convOpts(w)...)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}
