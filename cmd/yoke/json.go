package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	yoke "github.com/yoke-format/go-yoke"
)

type JSONConfig struct {
	*MainConfig
	JSON *cli.Command
}

func JSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.JSON, "json").
		WithSynopsis("json [file...] - convert YAML to JSON").
		WithRun(cfg.run)
}

func (cfg *JSONConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.JSON.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.maybeGops(cc)
	return eachInput(cc, args, cfg.jsonDocs)
}

func (cfg *JSONConfig) jsonDocs(w io.Writer, in []byte) error {
	docs := splitDocs(in)
	opts := cfg.convOpts(w)
	for i, doc := range docs {
		out, err := yoke.YAMLToJSON(doc, opts...)
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}
