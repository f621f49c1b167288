package yoke

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/expr-lang/expr"
)

// Query evaluates an expr program against a parsed YAML document.  The
// document's JSON value is bound as "doc" and the process environment
// as "env".
func Query(d []byte, program string, opts ...Option) (any, error) {
	j, err := YAMLToJSON(d, opts...)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(j, &v); err != nil {
		return nil, err
	}
	return QueryValue(v, program)
}

// QueryValue evaluates an expr program against an already decoded
// document value.
func QueryValue(v any, program string) (any, error) {
	env := map[string]any{
		"doc": v,
		"env": osEnv(),
	}
	prg, err := expr.Compile(program, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", program, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", program, err)
	}
	return res, nil
}

func osEnv() map[string]string {
	res := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		res[k] = v
	}
	return res
}
