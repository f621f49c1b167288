// Package encode renders resolved element lists as JSON and JSON
// values as YAML.
package encode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yoke-format/go-yoke/debug"
	"github.com/yoke-format/go-yoke/ir"
	"github.com/yoke-format/go-yoke/token"
)

// Encode walks a resolved, balanced element list and writes it as
// JSON.  An indent width of 0 produces compact single-line output.
func Encode(els []ir.Element, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{width: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.width < 0 || es.width > 8 {
		return fmt.Errorf("%w: json indent width %d out of range 0..8", ErrEncoding, es.width)
	}
	b := bufio.NewWriter(w)
	enc := &jsonEnc{es: es, b: b, compact: es.width == 0}
	if debug.Emit() {
		debug.Logf("emit: %d elements, width %d\n", len(els), es.width)
	}
	for i := range els {
		if err := enc.element(&els[i]); err != nil {
			return err
		}
	}
	b.WriteByte('\n')
	return b.Flush()
}

type jsonEnc struct {
	es      *EncState
	b       *bufio.Writer
	compact bool
	stack   []jsonFrame
}

type jsonFrame struct {
	mark     byte
	children int
}

func (e *jsonEnc) element(el *ir.Element) error {
	switch {
	case el.IsOpen():
		e.sep(el)
		e.key(el)
		if err := e.openTag(el); err != nil {
			return err
		}
		kind := ObjectKind
		if el.Mark == ir.OpenSeq {
			kind = ArrayKind
		}
		e.b.WriteString(e.color(kind, SepColor, string(el.Mark)))
		e.stack = append(e.stack, jsonFrame{mark: el.Mark})
		return nil
	case el.IsClose():
		if len(e.stack) == 0 {
			return fmt.Errorf("%w: closer %c with no opener", ErrEncoding, el.Mark)
		}
		top := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		if top.children > 0 && !e.compact {
			e.b.WriteByte('\n')
			e.b.WriteString(strings.Repeat(" ", el.Indent*e.es.width))
		}
		kind := ObjectKind
		if el.Mark == ir.CloseSeq {
			kind = ArrayKind
		}
		e.b.WriteString(e.color(kind, SepColor, string(el.Mark)))
		return nil
	default:
		kind, tok, err := classify(el, e.es.yesNo)
		if err != nil {
			return err
		}
		e.sep(el)
		e.key(el)
		e.b.WriteString(e.color(kind, ValueColor, tok))
		return nil
	}
}

// sep writes the separator preceding a child: a comma after a prior
// sibling, then the line break and indentation.
func (e *jsonEnc) sep(el *ir.Element) {
	if len(e.stack) == 0 {
		return
	}
	top := &e.stack[len(e.stack)-1]
	if top.children > 0 {
		e.b.WriteString(e.color(ObjectKind, SepColor, ","))
	}
	top.children++
	if !e.compact {
		e.b.WriteByte('\n')
		e.b.WriteString(strings.Repeat(" ", el.Indent*e.es.width))
	}
}

func (e *jsonEnc) key(el *ir.Element) {
	if el.Key == "" {
		return
	}
	f := `"` + token.Expand(el.Key) + `"`
	e.b.WriteString(e.color(ObjectKind, FieldColor, f))
	e.b.WriteString(e.color(ObjectKind, SepColor, ":"))
	if !e.compact {
		e.b.WriteByte(' ')
	}
}

// openTag rejects tags that contradict the opened container.
func (e *jsonEnc) openTag(el *ir.Element) error {
	switch el.Tag {
	case ir.NoTag:
		return nil
	case ir.MapTag:
		if el.Mark == ir.OpenMap {
			return nil
		}
	case ir.SeqTag:
		if el.Mark == ir.OpenSeq {
			return nil
		}
	}
	return tagErr(el, el.Tag.String())
}

func (e *jsonEnc) color(kind Kind, attr ColorAttr, s string) string {
	if e.es.colors == nil {
		return s
	}
	return e.es.colors.Color(kind, attr, s)
}
