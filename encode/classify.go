package encode

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yoke-format/go-yoke/ir"
	"github.com/yoke-format/go-yoke/token"
)

// Kind is the detected JSON kind of a scalar value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	TimeKind
	BinaryKind
	ObjectKind
	ArrayKind
)

func (k Kind) String() string {
	return map[Kind]string{
		NullKind:   "Null",
		BoolKind:   "Bool",
		NumberKind: "Number",
		StringKind: "String",
		TimeKind:   "Time",
		BinaryKind: "Binary",
		ObjectKind: "Object",
		ArrayKind:  "Array",
	}[k]
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(v string) (time.Time, bool) {
	if len(v) < 10 || v[4] != '-' || v[7] != '-' {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// classify computes the JSON token for a scalar element from its
// (value, literal, tag) triple.  The returned text is ready to write:
// strings arrive quoted with the newline placeholder expanded.
func classify(el *ir.Element, yesNo bool) (Kind, string, error) {
	v := el.Value
	kind, tok := infer(v, el.Literal, yesNo)
	switch el.Tag {
	case ir.NoTag:
		return kind, tok, nil
	case ir.StrTag:
		return StringKind, quoteJSON(v), nil
	case ir.NullTag:
		if kind != NullKind {
			return 0, "", tagErr(el, "null")
		}
		return NullKind, "null", nil
	case ir.BoolTag:
		switch strings.ToLower(v) {
		case "true", "yes":
			return BoolKind, "true", nil
		case "false", "no":
			return BoolKind, "false", nil
		}
		return 0, "", tagErr(el, "bool")
	case ir.IntTag:
		if kind != NumberKind {
			return 0, "", tagErr(el, "int")
		}
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return 0, "", tagErr(el, "int")
		}
		return NumberKind, tok, nil
	case ir.FloatTag:
		if kind != NumberKind {
			return 0, "", tagErr(el, "float")
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, "", tagErr(el, "float")
		}
		return NumberKind, strconv.FormatFloat(f, 'g', -1, 64), nil
	case ir.TimestampTag:
		if kind != TimeKind {
			t, ok := parseTimestamp(v)
			if !ok {
				return 0, "", tagErr(el, "timestamp")
			}
			return TimeKind, timeToken(t), nil
		}
		return TimeKind, tok, nil
	case ir.BinaryTag:
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(v))
		if err != nil {
			return 0, "", tagErr(el, "binary")
		}
		return BinaryKind, binaryToken(raw), nil
	case ir.MapTag:
		if v != "" {
			return 0, "", tagErr(el, "map")
		}
		return ObjectKind, "{}", nil
	case ir.SeqTag:
		if v != "" {
			return 0, "", tagErr(el, "seq")
		}
		return ArrayKind, "[]", nil
	default:
		return 0, "", tagErr(el, el.Tag.String())
	}
}

// infer detects the kind of an untagged scalar; literals never coerce.
func infer(v string, literal, yesNo bool) (Kind, string) {
	if literal {
		return StringKind, quoteJSON(v)
	}
	if v == "" {
		return NullKind, "null"
	}
	if strings.ContainsRune(v, token.Newline) || strings.ContainsRune(v, '\\') {
		return StringKind, quoteJSON(v)
	}
	switch strings.ToLower(v) {
	case "null":
		return NullKind, "null"
	case "true":
		return BoolKind, "true"
	case "false":
		return BoolKind, "false"
	case "yes":
		if yesNo {
			return BoolKind, "true"
		}
	case "no":
		if yesNo {
			return BoolKind, "false"
		}
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return NumberKind, strconv.FormatInt(i, 10)
	}
	if strings.ContainsAny(v, ".eE") && !strings.ContainsAny(v, "xX") {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return NumberKind, strconv.FormatFloat(f, 'g', -1, 64)
		}
	}
	if t, ok := parseTimestamp(v); ok {
		return TimeKind, timeToken(t)
	}
	return StringKind, quoteJSON(v)
}

func timeToken(t time.Time) string {
	return `"` + t.UTC().Format(time.RFC3339Nano) + `"`
}

func binaryToken(raw []byte) string {
	b := &strings.Builder{}
	b.WriteByte('[')
	for i, c := range raw {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(int(c)))
	}
	b.WriteByte(']')
	return b.String()
}

func quoteJSON(v string) string {
	return `"` + token.Expand(v) + `"`
}

func tagErr(el *ir.Element, want string) error {
	return token.ErrAt(fmt.Errorf("%w %s: %q", ErrTagValue, want, el.Value), el.Line)
}
