// Package parse turns YAML input into the flat element representation,
// resolving aliases and merge keys along the way.
package parse

import (
	"fmt"
	"io"
	"strings"

	"github.com/yoke-format/go-yoke/ir"
	"github.com/yoke-format/go-yoke/token"
)

// Parse tokenizes and structurally parses one document, then resolves
// aliases and merge keys.  The returned list passes ir.Check (balanced
// brackets, strict nesting) and holds no remaining alias references.
func Parse(d []byte, opts ...ParseOption) ([]ir.Element, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	p := &parser{
		tz:      token.NewTokenizer(token.NewSource(d)),
		opts:    pOpts,
		anchors: map[string]int{},
	}
	if err := p.doc(); err != nil {
		return nil, err
	}
	if err := resolveAliases(&p.els); err != nil {
		return nil, err
	}
	if err := resolveMerges(&p.els); err != nil {
		return nil, err
	}
	if err := ir.Check(p.els); err != nil {
		return nil, err
	}
	return p.els, nil
}

// parser threads the tokenizer cursor through the three mutually
// recursive block routines: mapping, sequence, and flow.
type parser struct {
	tz      *token.Tokenizer
	els     []ir.Element
	opts    *parseOpts
	anchors map[string]int
}

func (p *parser) append(el ir.Element) error {
	if el.Anchor != "" {
		if old, ok := p.anchors[el.Anchor]; ok {
			return errAt(fmt.Errorf("%w %q (first at line %d)", ErrDuplicateAnchor, el.Anchor, old), el.Line)
		}
		p.anchors[el.Anchor] = el.Line
	}
	p.els = append(p.els, el)
	return nil
}

func (p *parser) lastLine() int {
	if len(p.els) == 0 {
		return 1
	}
	return p.els[len(p.els)-1].Line
}

func (p *parser) tag(t *token.Token) ir.Tag {
	if t.Tag == "" {
		return ir.NoTag
	}
	tag, _ := ir.ParseTag(t.Tag)
	return tag
}

func (p *parser) doc() error {
	t, err := p.tz.Peek(false)
	if err == io.EOF {
		p.els = append(p.els, ir.Element{Line: 1})
		return nil
	}
	if err != nil {
		return err
	}
	switch t.Type {
	case token.TKey:
		err = p.mapping(t.Indent, 0, ir.Element{Line: t.Line})
	case token.TArrayElt:
		err = p.sequence(t.Indent, 0, ir.Element{Line: t.Line})
	case token.TLSquare:
		p.tz.Next(false)
		err = p.flow(0, ir.Element{Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
	case token.TLCurl:
		p.tz.Next(false)
		err = p.flowMap(0, ir.Element{Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
	case token.TScalar:
		p.tz.Next(false)
		err = p.scalarValue(ir.Element{Line: t.Line}, t, -1)
	default:
		err = errAt(ErrParse, t.Line)
	}
	if err != nil {
		return err
	}
	t2, err := p.tz.Peek(false)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return errAt(ErrUnconsumed, t2.Line)
}

// mapping parses a key/value block whose keys sit at srcIndent; the
// opener goes out at depth, its entries at depth+1.
func (p *parser) mapping(srcIndent, depth int, open ir.Element) error {
	open.Mark = ir.OpenMap
	open.Indent = depth
	if err := p.append(open); err != nil {
		return err
	}
	keys := map[string]int{}
	for {
		t, err := p.tz.Peek(false)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if t.Indent < srcIndent {
			break
		}
		if t.Indent > srcIndent {
			return errAt(ErrIndent, t.Line)
		}
		if t.Type != token.TKey {
			return errAt(ErrExpectedKey, t.Line)
		}
		p.tz.Next(false)
		if !p.opts.allowDup {
			if old, ok := keys[t.Text]; ok {
				return errAt(fmt.Errorf("%w %q (first at line %d)", ErrDuplicatedKey, t.Text, old), t.Line)
			}
		}
		keys[t.Text] = t.Line
		if err := p.value(t, srcIndent, depth); err != nil {
			return err
		}
	}
	return p.append(ir.Element{Mark: ir.CloseMap, Indent: depth, Line: p.lastLine()})
}

// value parses the value of the key token k inside a mapping whose keys
// sit at srcIndent and whose opener is at depth.
func (p *parser) value(k *token.Token, srcIndent, depth int) error {
	entry := ir.Element{Key: k.Text, Indent: depth + 1, Line: k.Line}
	t, err := p.tz.Peek(false)
	if err == io.EOF {
		if k.Text == ir.MergeKey && !k.Literal {
			return errAt(ErrInvalidMerge, k.Line)
		}
		return p.append(entry)
	}
	if err != nil {
		return err
	}
	if k.Text == ir.MergeKey && !k.Literal {
		if t.Type != token.TScalar || t.Line != k.Line || t.Alias == "" {
			return errAt(ErrInvalidMerge, k.Line)
		}
	}
	if t.Line == k.Line {
		switch t.Type {
		case token.TScalar:
			p.tz.Next(false)
			return p.scalarValue(entry, t, srcIndent)
		case token.TKey:
			return errAt(ErrDoubleKey, t.Line)
		case token.TLSquare:
			p.tz.Next(false)
			return p.flow(depth+1, ir.Element{Key: k.Text, Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
		case token.TLCurl:
			p.tz.Next(false)
			return p.flowMap(depth+1, ir.Element{Key: k.Text, Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
		case token.TArrayElt:
			return errAt(ErrCollectionItem, t.Line)
		default:
			return errAt(ErrUnconsumed, t.Line)
		}
	}
	if t.Indent > srcIndent {
		switch t.Type {
		case token.TKey:
			return p.mapping(t.Indent, depth+1, ir.Element{Key: k.Text, Line: k.Line})
		case token.TArrayElt:
			return p.sequence(t.Indent, depth+1, ir.Element{Key: k.Text, Line: k.Line})
		case token.TScalar:
			p.tz.Next(false)
			return p.scalarValue(entry, t, srcIndent)
		case token.TLSquare:
			p.tz.Next(false)
			return p.flow(depth+1, ir.Element{Key: k.Text, Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
		case token.TLCurl:
			p.tz.Next(false)
			return p.flowMap(depth+1, ir.Element{Key: k.Text, Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
		default:
			return errAt(ErrIndent, t.Line)
		}
	}
	// outdent, or a sibling at the key's own indent: the value is null
	return p.append(entry)
}

// scalarValue places a scalar token into entry.  An empty, unquoted,
// unaliased scalar followed by deeper content is a container
// introduction (the scalar carried only an anchor or tag).
func (p *parser) scalarValue(entry ir.Element, t *token.Token, srcIndent int) error {
	entry.Value, entry.Literal = t.Text, t.Literal
	entry.Alias, entry.Anchor = t.Alias, t.Anchor
	entry.Tag = p.tag(t)
	if entry.Value == "" && entry.Alias == "" && !t.Literal {
		nt, err := p.tz.Peek(false)
		if err != nil && err != io.EOF {
			return err
		}
		if err == nil && nt.Line > t.Line && nt.Indent > srcIndent {
			open := ir.Element{Key: entry.Key, Anchor: entry.Anchor, Tag: entry.Tag, Line: entry.Line}
			switch nt.Type {
			case token.TKey:
				return p.mapping(nt.Indent, entry.Indent, open)
			case token.TArrayElt:
				return p.sequence(nt.Indent, entry.Indent, open)
			}
		}
	}
	return p.append(entry)
}

// sequence parses a block collection whose "- " markers sit at
// srcIndent; the opener goes out at depth, items at depth+1.
func (p *parser) sequence(srcIndent, depth int, open ir.Element) error {
	open.Mark = ir.OpenSeq
	open.Indent = depth
	if err := p.append(open); err != nil {
		return err
	}
	for {
		t, err := p.tz.Peek(false)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if t.Type != token.TArrayElt || t.Indent != srcIndent {
			break
		}
		p.tz.Next(false)
		if err := p.item(t, depth); err != nil {
			return err
		}
	}
	return p.append(ir.Element{Mark: ir.CloseSeq, Indent: depth, Line: p.lastLine()})
}

// item parses one collection item's content; the marker has been
// consumed and the item's content is virtually indented past it.
func (p *parser) item(marker *token.Token, depth int) error {
	t, err := p.tz.Peek(false)
	if err == io.EOF {
		return p.append(ir.Element{Indent: depth + 1, Line: marker.Line})
	}
	if err != nil {
		return err
	}
	if t.Line > marker.Line && t.Indent <= marker.Indent {
		return p.append(ir.Element{Indent: depth + 1, Line: marker.Line})
	}
	switch t.Type {
	case token.TScalar:
		if t.Block {
			return errAt(ErrBlockCollection, t.Line)
		}
		p.tz.Next(false)
		return p.scalarValue(ir.Element{Indent: depth + 1, Line: t.Line}, t, marker.Indent)
	case token.TKey:
		if t.Text == ir.MergeKey && !t.Literal {
			return errAt(ErrMergeCollection, t.Line)
		}
		return p.mapping(t.Indent, depth+1, ir.Element{Line: t.Line})
	case token.TArrayElt:
		return p.sequence(t.Indent, depth+1, ir.Element{Line: t.Line})
	case token.TLSquare:
		p.tz.Next(false)
		return p.flow(depth+1, ir.Element{Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
	case token.TLCurl:
		p.tz.Next(false)
		return p.flowMap(depth+1, ir.Element{Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
	default:
		return errAt(ErrCollectionItem, t.Line)
	}
}

// flow parses an inline "[ ... ]" sequence; its opener has been
// consumed by the caller.
func (p *parser) flow(depth int, open ir.Element) error {
	open.Mark = ir.OpenSeq
	open.Indent = depth
	if err := p.append(open); err != nil {
		return err
	}
	first, lastComma, afterVal := true, false, false
	for {
		t, err := p.tz.Next(true)
		if err == io.EOF {
			return errAt(ErrUnclosedArray, open.Line)
		}
		if err != nil {
			return err
		}
		switch t.Type {
		case token.TRSquare:
			return p.append(ir.Element{Mark: ir.CloseSeq, Indent: depth, Line: t.Line})
		case token.TComma:
			if first || lastComma {
				if err := p.append(ir.Element{Indent: depth + 1, Line: t.Line}); err != nil {
					return err
				}
			}
			first, lastComma, afterVal = false, true, false
		case token.TScalar:
			if afterVal {
				return errAt(ErrInvalidArray, t.Line)
			}
			if !t.Literal && (t.Text == "-" || strings.HasPrefix(t.Text, "- ")) {
				return errAt(ErrCollectionItem, t.Line)
			}
			el := ir.Element{
				Value: t.Text, Literal: t.Literal,
				Alias: t.Alias, Anchor: t.Anchor, Tag: p.tag(t),
				Indent: depth + 1, Line: t.Line,
			}
			if err := p.append(el); err != nil {
				return err
			}
			first, lastComma, afterVal = false, false, true
		case token.TLSquare:
			if afterVal {
				return errAt(ErrInvalidArray, t.Line)
			}
			if err := p.flow(depth+1, ir.Element{Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line}); err != nil {
				return err
			}
			first, lastComma, afterVal = false, false, true
		case token.TLCurl:
			if afterVal {
				return errAt(ErrInvalidArray, t.Line)
			}
			if err := p.flowMap(depth+1, ir.Element{Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line}); err != nil {
				return err
			}
			first, lastComma, afterVal = false, false, true
		case token.TKey:
			if afterVal {
				return errAt(ErrInvalidArray, t.Line)
			}
			if t.Text == ir.MergeKey && !t.Literal {
				return errAt(ErrMergeArray, t.Line)
			}
			if err := p.flowPair(depth+1, t); err != nil {
				return err
			}
			first, lastComma, afterVal = false, false, true
		default:
			return errAt(ErrInvalidArray, t.Line)
		}
	}
}

// flowPair emits the one-entry mapping produced by a bare "key: value"
// inside a flow sequence.
func (p *parser) flowPair(depth int, k *token.Token) error {
	if err := p.append(ir.Element{Mark: ir.OpenMap, Indent: depth, Line: k.Line}); err != nil {
		return err
	}
	if err := p.pairValue(depth, k); err != nil {
		return err
	}
	return p.append(ir.Element{Mark: ir.CloseMap, Indent: depth, Line: k.Line})
}

func (p *parser) pairValue(depth int, k *token.Token) error {
	entry := ir.Element{Key: k.Text, Indent: depth + 1, Line: k.Line}
	t, err := p.tz.Peek(true)
	if err == io.EOF {
		return errAt(ErrUnclosedArray, k.Line)
	}
	if err != nil {
		return err
	}
	switch t.Type {
	case token.TComma, token.TRSquare, token.TRCurl:
		return p.append(entry)
	case token.TScalar:
		p.tz.Next(true)
		entry.Value, entry.Literal = t.Text, t.Literal
		entry.Alias, entry.Anchor = t.Alias, t.Anchor
		entry.Tag = p.tag(t)
		return p.append(entry)
	case token.TLSquare:
		p.tz.Next(true)
		return p.flow(depth+1, ir.Element{Key: k.Text, Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
	case token.TLCurl:
		p.tz.Next(true)
		return p.flowMap(depth+1, ir.Element{Key: k.Text, Anchor: t.Anchor, Tag: p.tag(t), Line: t.Line})
	default:
		return errAt(ErrInvalidArray, t.Line)
	}
}

// flowMap parses a braced inline "{ k: v, ... }" mapping; its opener
// has been consumed by the caller.
func (p *parser) flowMap(depth int, open ir.Element) error {
	open.Mark = ir.OpenMap
	open.Indent = depth
	if err := p.append(open); err != nil {
		return err
	}
	keys := map[string]int{}
	needKey := true
	for {
		t, err := p.tz.Next(true)
		if err == io.EOF {
			return errAt(ErrUnclosedArray, open.Line)
		}
		if err != nil {
			return err
		}
		switch t.Type {
		case token.TRCurl:
			return p.append(ir.Element{Mark: ir.CloseMap, Indent: depth, Line: t.Line})
		case token.TComma:
			needKey = true
		case token.TKey:
			if t.Text == ir.MergeKey && !t.Literal {
				return errAt(ErrMergeArray, t.Line)
			}
			if !needKey {
				return errAt(ErrInvalidArray, t.Line)
			}
			if !p.opts.allowDup {
				if old, ok := keys[t.Text]; ok {
					return errAt(fmt.Errorf("%w %q (first at line %d)", ErrDuplicatedKey, t.Text, old), t.Line)
				}
			}
			keys[t.Text] = t.Line
			if err := p.pairValue(depth, t); err != nil {
				return err
			}
			needKey = false
		default:
			return errAt(ErrExpectedKey, t.Line)
		}
	}
}
