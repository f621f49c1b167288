package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	yoke "github.com/yoke-format/go-yoke"
)

type YAMLConfig struct {
	*MainConfig
	YAML *cli.Command
}

func YAMLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &YAMLConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.YAML, "yaml").
		WithSynopsis("yaml [file...] - convert JSON to YAML").
		WithRun(cfg.run)
}

func (cfg *YAMLConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.YAML.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.maybeGops(cc)
	return eachInput(cc, args, cfg.yamlDoc)
}

func (cfg *YAMLConfig) yamlDoc(w io.Writer, in []byte) error {
	out, err := yoke.JSONToYAML(in, cfg.convOpts(w)...)
	if err != nil {
		return fmt.Errorf("error converting: %w", err)
	}
	_, err = w.Write(out)
	return err
}
