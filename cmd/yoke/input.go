package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// splitDocs breaks an input into its "---"-separated documents.
func splitDocs(d []byte) [][]byte {
	return bytes.Split(d, []byte("\n---\n"))
}

// eachInput runs f over every file argument, or stdin when none are
// given, writing a document separator between files.
func eachInput(cc *cli.Context, args []string, f func(w io.Writer, d []byte) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		d, err := readInput(cc, arg)
		if err != nil {
			return err
		}
		if err := f(cc.Out, d); err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		if i < len(args)-1 {
			cc.Out.Write([]byte("\n---\n"))
		}
	}
	return nil
}
