package token

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// drain collects block-mode tokens until EOF.
func drain(t *testing.T, in string) []*Token {
	t.Helper()
	tz := NewTokenizer(NewSource([]byte(in)))
	res := []*Token{}
	for {
		tok, err := tz.Next(false)
		if err == io.EOF {
			return res
		}
		if err != nil {
			t.Fatalf("tokenize %q: %v", in, err)
		}
		res = append(res, tok)
	}
}

func TestTokenizeMapping(t *testing.T) {
	toks := drain(t, "a: 1\nb: two words\n")
	want := []struct {
		typ  Type
		text string
	}{
		{TKey, "a"},
		{TScalar, "1"},
		{TKey, "b"},
		{TScalar, "two words"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Text != w.text {
			t.Errorf("token %d: got %s %q, want %s %q", i, toks[i].Type, toks[i].Text, w.typ, w.text)
		}
	}
}

func TestTokenizeLines(t *testing.T) {
	toks := drain(t, "a: 1\n\n# comment\nb: 2\n")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens", len(toks))
	}
	if toks[2].Line != 4 {
		t.Errorf("key b at line %d, want 4", toks[2].Line)
	}
}

func TestTokenizeComments(t *testing.T) {
	toks := drain(t, "a: 1 # trailing\n")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens", len(toks))
	}
	if toks[1].Text != "1" {
		t.Errorf("got %q, want %q", toks[1].Text, "1")
	}
}

func TestTokenizeAnchorAlias(t *testing.T) {
	toks := drain(t, "a: &x 42\nb: *x\n")
	if toks[1].Anchor != "x" || toks[1].Text != "42" {
		t.Errorf("anchor token: %s", toks[1])
	}
	if toks[3].Alias != "x" || toks[3].Text != "" {
		t.Errorf("alias token: %s", toks[3])
	}
}

func TestTokenizeTags(t *testing.T) {
	toks := drain(t, "a: !!int 5\n")
	if toks[1].Tag != "!!int" || toks[1].Text != "5" {
		t.Errorf("tag token: %s", toks[1])
	}
}

func TestTokenizeCollection(t *testing.T) {
	toks := drain(t, "- 1\n- two\n")
	want := []Type{TArrayElt, TScalar, TArrayElt, TScalar}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
	if toks[1].Indent != 2 {
		t.Errorf("item content indent %d, want 2", toks[1].Indent)
	}
}

func TestTokenizeBlockScalars(t *testing.T) {
	nl := string(Newline)
	tests := []struct {
		in   string
		want string
	}{
		{"a: |\n  one\n  two\n", "one" + nl + "two" + nl},
		{"a: |-\n  one\n  two\n", "one" + nl + "two"},
		{"a: |+\n  one\n\n\n", "one" + nl + nl + nl},
		{"a: >\n  one\n  two\n", "one two" + nl},
		{"a: >\n  one\n    deep\n  two\n", "one" + nl + "  deep" + nl + "two" + nl},
		{"a: |\n    lead\n  flush\n", "  lead" + nl + "flush" + nl},
	}
	for _, tt := range tests {
		toks := drain(t, tt.in)
		if len(toks) != 2 {
			t.Fatalf("%q: got %d tokens", tt.in, len(toks))
		}
		if !toks[1].Block {
			t.Errorf("%q: not a block scalar", tt.in)
		}
		if toks[1].Text != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, toks[1].Text, tt.want)
		}
	}
}

func TestTokenizeQuoted(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a: "hi"` + "\n", "hi"},
		{`a: " padded "` + "\n", " padded "},
		{`a: "tab\there"` + "\n", `tab\there`},
		{`a: 'it''s'` + "\n", "it's"},
		{`a: "q\"q"` + "\n", `q\"q`},
	}
	for _, tt := range tests {
		toks := drain(t, tt.in)
		if len(toks) != 2 {
			t.Fatalf("%q: got %d tokens", tt.in, len(toks))
		}
		if !toks[1].Literal {
			t.Errorf("%q: not literal", tt.in)
		}
		if toks[1].Text != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, toks[1].Text, tt.want)
		}
	}
}

func TestTokenizeQuotedKey(t *testing.T) {
	toks := drain(t, `"a key": 1`+"\n")
	if toks[0].Type != TKey || toks[0].Text != "a key" {
		t.Fatalf("got %s", toks[0])
	}
}

func TestTokenizeMultilinePlain(t *testing.T) {
	toks := drain(t, "a: one\n  two\nb: 3\n")
	if toks[1].Text != "one two" {
		t.Errorf("got %q, want %q", toks[1].Text, "one two")
	}
	if toks[2].Type != TKey || toks[2].Text != "b" {
		t.Errorf("got %s", toks[2])
	}
}

func TestTokenizeFlow(t *testing.T) {
	tz := NewTokenizer(NewSource([]byte("[1, two, [3]]\n")))
	first, err := tz.Next(false)
	if err != nil || first.Type != TLSquare {
		t.Fatalf("got %v %v", first, err)
	}
	want := []struct {
		typ  Type
		text string
	}{
		{TScalar, "1"},
		{TComma, ""},
		{TScalar, "two"},
		{TComma, ""},
		{TLSquare, ""},
		{TScalar, "3"},
		{TRSquare, ""},
		{TRSquare, ""},
	}
	for i, w := range want {
		tok, err := tz.Next(true)
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tok.Type != w.typ || tok.Text != w.text {
			t.Errorf("token %d: got %s %q, want %s %q", i, tok.Type, tok.Text, w.typ, w.text)
		}
	}
}

func TestTokenizeErrs(t *testing.T) {
	tests := []struct {
		in string
		e  error
	}{
		{`a: "unclosed`, ErrUnclosedLiteral},
		{"a: !!nope 1\n", ErrUnknownTag},
		{"a: & x\n", ErrBadName},
		{"a: *x trailing\n", ErrAliasValue},
		{"*x: 1\n", ErrKeyAliasAnchor},
		{"&x: 1\n", ErrKeyAliasAnchor},
		{"+x: 1\n", ErrKeyStart},
		{"a: |junk\n  x\n", ErrBlockModifier},
		{`a: "bad \q"` + "\n", ErrBadEscape},
		{`a: "bad \u00zz"` + "\n", ErrBadUnicode},
	}
	for _, tt := range tests {
		tz := NewTokenizer(NewSource([]byte(tt.in)))
		var err error
		for err == nil {
			_, err = tz.Next(false)
		}
		if err == io.EOF {
			t.Errorf("%q: no error, want %v", tt.in, tt.e)
			continue
		}
		if !errors.Is(err, tt.e) {
			t.Errorf("%q: got %v, want %v", tt.in, err, tt.e)
		}
	}
}

func TestEscapeExpand(t *testing.T) {
	in := "a\tb\"c\\d\ne"
	esc := Escape(in)
	if strings.Contains(esc, "\n") {
		t.Errorf("escape left a raw newline: %q", esc)
	}
	if got, want := Expand(esc), `a\tb\"c\\d\ne`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFolds(t *testing.T) {
	if got := foldPlain([]string{"one", "", "two"}); got != "one\ntwo" {
		t.Errorf("foldPlain: %q", got)
	}
	if got := foldFolded([]string{"one", "two"}); got != "one two" {
		t.Errorf("foldFolded: %q", got)
	}
	if got := foldLiteral([]string{"one", "two"}); got != "one\ntwo\n" {
		t.Errorf("foldLiteral: %q", got)
	}
	if got := chomp("a\n\n\n", ChompClip); got != "a\n" {
		t.Errorf("chomp clip: %q", got)
	}
	if got := chomp("a\n\n\n", ChompStrip); got != "a" {
		t.Errorf("chomp strip: %q", got)
	}
	if got := chomp("a\n\n\n", ChompKeep); got != "a\n\n\n" {
		t.Errorf("chomp keep: %q", got)
	}
}
