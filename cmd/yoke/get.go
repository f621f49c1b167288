package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	yoke "github.com/yoke-format/go-yoke"
)

type GetConfig struct {
	*MainConfig
	Get  *cli.Command
	Expr string `cli:"name=e desc='expr program evaluated with the document bound as doc'"`
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithSynopsis("get -e <expr> [file...] - evaluate an expression against a document").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *GetConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: get requires -e <expr>", cli.ErrUsage)
	}
	cfg.maybeGops(cc)
	return eachInput(cc, args, cfg.getDocs)
}

func (cfg *GetConfig) getDocs(w io.Writer, in []byte) error {
	docs := splitDocs(in)
	n := len(docs)
	opts := cfg.convOpts(w)
	for i, doc := range docs {
		res, err := yoke.Query(doc, cfg.Expr, opts...)
		if err != nil {
			return fmt.Errorf("error querying document %d: %w", i, err)
		}
		out, err := yoke.ValueToYAML(res, opts...)
		if err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
		if i < n-1 {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
