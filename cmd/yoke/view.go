package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	yoke "github.com/yoke-format/go-yoke"
	"github.com/yoke-format/go-yoke/format"
)

type ViewConfig struct {
	*MainConfig
	View   *cli.Command
	Format string `cli:"name=f desc='output format: yaml or json'"`
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg, Format: "yaml"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithSynopsis("view [-f yaml|json] [file...] - normalize and pretty-print").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *ViewConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if _, err := format.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	cfg.maybeGops(cc)
	return eachInput(cc, args, cfg.viewDocs)
}

func (cfg *ViewConfig) viewDocs(w io.Writer, in []byte) error {
	f, err := format.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	docs := splitDocs(in)
	n := len(docs)
	opts := cfg.convOpts(w)
	for i, doc := range docs {
		var out []byte
		if f.IsJSON() {
			out, err = yoke.YAMLToJSON(doc, opts...)
			if err != nil {
				return fmt.Errorf("error decoding document %d: %w", i, err)
			}
		} else {
			v, err := yoke.YAMLToJSONValue(doc, opts...)
			if err != nil {
				return fmt.Errorf("error decoding document %d: %w", i, err)
			}
			out, err = yoke.ValueToYAML(v, opts...)
			if err != nil {
				return fmt.Errorf("error encoding document %d: %w", i, err)
			}
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
