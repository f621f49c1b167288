// Package yoke converts between a practical subset of YAML and JSON.
//
// The YAML side supports block mappings, block and inline sequences,
// plain and quoted scalars, block literals with chomping, comments,
// anchors, aliases, the "<<" merge key, and explicit !!type tags.  The
// JSON side is standard.
package yoke

import (
	"bytes"
	"encoding/json"

	"github.com/yoke-format/go-yoke/encode"
	"github.com/yoke-format/go-yoke/parse"
)

type options struct {
	indent   int
	yesNo    bool
	allowDup bool
	colors   *encode.Colors
}

type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{indent: 2, yesNo: true}
	for _, f := range opts {
		f(o)
	}
	return o
}

// WithIndent sets the output indentation width: 0..8 for JSON, 2..8
// for YAML.
func WithIndent(n int) Option {
	return func(o *options) { o.indent = n }
}

// WithYesNoBool treats yes/no as booleans when parsing YAML and
// renders booleans as yes/no when emitting it.  On by default for
// parsing.
func WithYesNoBool(v bool) Option {
	return func(o *options) { o.yesNo = v }
}

// WithDuplicateKeys allows two sibling mapping entries to share a key;
// by default the second is an error.
func WithDuplicateKeys(v bool) Option {
	return func(o *options) { o.allowDup = v }
}

// WithColors colorizes emitted output for terminals.
func WithColors(c *encode.Colors) Option {
	return func(o *options) { o.colors = c }
}

func (o *options) encodeOpts() []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeIndent(o.indent),
		encode.EncodeYesNo(o.yesNo),
	}
	if o.colors != nil {
		res = append(res, encode.EncodeColors(o.colors))
	}
	return res
}

// YAMLToJSON parses one YAML document and renders it as JSON text.
func YAMLToJSON(d []byte, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	els, err := parse.Parse(d, parse.DuplicateKeys(o.allowDup))
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(els, buf, o.encodeOpts()...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAMLToJSONValue parses one YAML document and returns its decoded
// JSON value, with numbers as json.Number.
func YAMLToJSONValue(d []byte, opts ...Option) (any, error) {
	o := newOptions(opts)
	o.colors = nil
	els, err := parse.Parse(d, parse.DuplicateKeys(o.allowDup))
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(els, buf, o.encodeOpts()...); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(buf)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONToYAML renders JSON text as YAML.
func JSONToYAML(d []byte, opts ...Option) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return ValueToYAML(v, opts...)
}

// ValueToYAML renders a decoded JSON value as YAML.
func ValueToYAML(v any, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeYAML(v, buf, o.encodeOpts()...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
