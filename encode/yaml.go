package encode

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/yoke-format/go-yoke/token"
)

// EncodeYAML writes a decoded JSON value (objects, arrays, strings,
// numbers, booleans, null) as YAML.  Object keys are sorted; multiline
// strings come out as block literals, long strings folded.
func EncodeYAML(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{width: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.width < 2 || es.width > 8 {
		return fmt.Errorf("%w: yaml indent width %d out of range 2..8", ErrEncoding, es.width)
	}
	b := bufio.NewWriter(w)
	e := &yamlEnc{es: es, b: b}
	if err := e.node(v, 0, ""); err != nil {
		return err
	}
	return b.Flush()
}

type yamlEnc struct {
	es *EncState
	b  *bufio.Writer
}

// node writes one value.  prefix begins the value's first line: a
// "key:" field, a "-" item marker, or nothing at the root.
func (e *yamlEnc) node(v any, col int, prefix string) error {
	pad := strings.Repeat(" ", col)
	switch x := v.(type) {
	case map[string]any:
		if len(x) == 0 {
			e.line(pad + join(prefix, e.color(ObjectKind, SepColor, "{}")))
			return nil
		}
		inner := col
		if prefix != "" {
			e.line(pad + prefix)
			inner = col + e.es.width
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := e.node(x[k], inner, e.field(k)); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if len(x) == 0 {
			e.line(pad + join(prefix, e.color(ArrayKind, SepColor, "[]")))
			return nil
		}
		inner := col
		if prefix != "" {
			e.line(pad + prefix)
			inner = col + e.es.width
		}
		for _, item := range x {
			if err := e.node(item, inner, e.color(ArrayKind, SepColor, "-")); err != nil {
				return err
			}
		}
		return nil
	case string:
		if blockable(x) {
			e.block(x, col, prefix)
			return nil
		}
		if foldable(x) {
			e.fold(x, col, prefix)
			return nil
		}
		e.line(pad + join(prefix, e.scalarString(x)))
		return nil
	default:
		s, err := e.scalar(x)
		if err != nil {
			return err
		}
		e.line(pad + join(prefix, s))
		return nil
	}
}

func (e *yamlEnc) field(k string) string {
	f := k
	if needsQuote(k) {
		f = `"` + token.Expand(token.Escape(k)) + `"`
	}
	return e.color(ObjectKind, FieldColor, f) + e.color(ObjectKind, SepColor, ":")
}

func (e *yamlEnc) scalar(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return e.color(NullKind, ValueColor, "null"), nil
	case bool:
		s := strconv.FormatBool(x)
		if e.es.yesNo {
			s = "no"
			if x {
				s = "yes"
			}
		}
		return e.color(BoolKind, ValueColor, s), nil
	case json.Number:
		return e.color(NumberKind, ValueColor, x.String()), nil
	case float64:
		return e.color(NumberKind, ValueColor, strconv.FormatFloat(x, 'g', -1, 64)), nil
	case int:
		return e.color(NumberKind, ValueColor, strconv.Itoa(x)), nil
	case int64:
		return e.color(NumberKind, ValueColor, strconv.FormatInt(x, 10)), nil
	default:
		return "", fmt.Errorf("%w: cannot encode %T as yaml", ErrEncoding, v)
	}
}

func (e *yamlEnc) scalarString(s string) string {
	if needsQuote(s) {
		return e.color(StringKind, ValueColor, `"`+token.Expand(token.Escape(s))+`"`)
	}
	return e.color(StringKind, ValueColor, s)
}

// block writes a multiline string as a block literal with the chomp
// indicator recovering the original trailing newlines.
func (e *yamlEnc) block(s string, col int, prefix string) {
	header := "|"
	switch {
	case !strings.HasSuffix(s, "\n"):
		header = "|-"
	case strings.HasSuffix(s, "\n\n"):
		header = "|+"
	}
	body := strings.TrimSuffix(s, "\n")
	pad := strings.Repeat(" ", col)
	e.line(pad + join(prefix, e.color(StringKind, SepColor, header)))
	inner := strings.Repeat(" ", col+e.es.width)
	for _, ln := range strings.Split(body, "\n") {
		if ln == "" {
			e.b.WriteByte('\n')
			continue
		}
		// raw write: literal lines keep their trailing spaces
		e.b.WriteString(inner + e.color(StringKind, ValueColor, ln) + "\n")
	}
}

// foldWidth is the wrap target for folded long strings.
const foldWidth = 76

// fold writes a long single-line string as a folded block, wrapping at
// single spaces so the fold re-joins to the original exactly.
func (e *yamlEnc) fold(s string, col int, prefix string) {
	pad := strings.Repeat(" ", col)
	e.line(pad + join(prefix, e.color(StringKind, SepColor, ">-")))
	inner := strings.Repeat(" ", col+e.es.width)
	words := strings.Split(s, " ")
	ln := ""
	for _, w := range words {
		if ln == "" {
			ln = w
			continue
		}
		if len(ln)+1+len(w) > foldWidth {
			e.line(inner + e.color(StringKind, ValueColor, ln))
			ln = w
			continue
		}
		ln += " " + w
	}
	if ln != "" {
		e.line(inner + e.color(StringKind, ValueColor, ln))
	}
}

// foldable reports whether a long string can round-trip through a
// folded block: wrapped only at single spaces, flush margins, nothing
// the fold would normalize away.
func foldable(s string) bool {
	if len(s) <= foldWidth || strings.Contains(s, "\n") {
		return false
	}
	if strings.Contains(s, "  ") {
		return false
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return false
	}
	if !strings.Contains(s, " ") {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == token.Newline {
			return false
		}
	}
	return true
}

// blockable reports whether a string can round-trip through a block
// literal: real newlines, no other control characters, and a flush-left
// margin so de-indentation recovers it exactly.
func blockable(s string) bool {
	if !strings.Contains(s, "\n") {
		return false
	}
	margin := -1
	for _, ln := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		if ln == "" {
			continue
		}
		for _, r := range ln {
			if unicode.IsControl(r) || r == token.Newline {
				return false
			}
		}
		ind := 0
		for ind < len(ln) && ln[ind] == ' ' {
			ind++
		}
		if ind == len(ln) {
			// blank-looking line of spaces would not survive capture
			return false
		}
		if margin < 0 || ind < margin {
			margin = ind
		}
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' {
			return false
		}
	}
	return margin == 0
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	// bare << would read back as a merge key
	if s == "<<" {
		return true
	}
	if k, _ := infer(s, false, true); k != StringKind {
		return true
	}
	switch s[0] {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`', ' ':
		return true
	}
	if s[len(s)-1] == ' ' {
		return true
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return true
	}
	if strings.Contains(s, " #") {
		return true
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == token.Newline {
			return true
		}
	}
	return false
}

func join(prefix, text string) string {
	if prefix == "" {
		return text
	}
	return prefix + " " + text
}

func (e *yamlEnc) line(s string) {
	e.b.WriteString(strings.TrimRight(s, " "))
	e.b.WriteByte('\n')
}

func (e *yamlEnc) color(kind Kind, attr ColorAttr, s string) string {
	if e.es.colors == nil {
		return s
	}
	return e.es.colors.Color(kind, attr, s)
}
