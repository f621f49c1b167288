package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	yoke "github.com/yoke-format/go-yoke"
)

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithSynopsis("diff <a> <b> - structurally compare two YAML documents").
		WithRun(cfg.run)
}

func (cfg *DiffConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	cfg.maybeGops(cc)
	a, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	b, err := readInput(cc, args[1])
	if err != nil {
		return err
	}
	opts := cfg.convOpts(cc.Out)
	deltas, err := yoke.Diff(a, b, opts...)
	if err != nil {
		return err
	}
	if len(deltas) == 0 {
		return nil
	}
	fmt.Fprint(cc.Out, yoke.FormatDeltas(deltas))
	return cli.ExitCodeErr(1)
}
