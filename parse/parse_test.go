package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yoke-format/go-yoke/ir"
	"github.com/yoke-format/go-yoke/token"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		in   string
		want []ir.Element
	}{
		{
			in: "a: 1\n",
			want: []ir.Element{
				{Mark: ir.OpenMap, Indent: 0, Line: 1},
				{Key: "a", Value: "1", Indent: 1, Line: 1},
				{Mark: ir.CloseMap, Indent: 0, Line: 1},
			},
		},
		{
			in: "x:\n  - 1\n  - 2\n",
			want: []ir.Element{
				{Mark: ir.OpenMap, Indent: 0, Line: 1},
				{Key: "x", Mark: ir.OpenSeq, Indent: 1, Line: 1},
				{Value: "1", Indent: 2, Line: 2},
				{Value: "2", Indent: 2, Line: 3},
				{Mark: ir.CloseSeq, Indent: 1, Line: 3},
				{Mark: ir.CloseMap, Indent: 0, Line: 3},
			},
		},
		{
			in: "a: &x 1\nb: *x\n",
			want: []ir.Element{
				{Mark: ir.OpenMap, Indent: 0, Line: 1},
				{Key: "a", Value: "1", Anchor: "x", Indent: 1, Line: 1},
				{Key: "b", Value: "1", Indent: 1, Line: 2},
				{Mark: ir.CloseMap, Indent: 0, Line: 2},
			},
		},
		{
			in: "a: &x\n  k: 1\nb: *x\n",
			want: []ir.Element{
				{Mark: ir.OpenMap, Indent: 0, Line: 1},
				{Key: "a", Mark: ir.OpenMap, Anchor: "x", Indent: 1, Line: 1},
				{Key: "k", Value: "1", Indent: 2, Line: 2},
				{Mark: ir.CloseMap, Indent: 1, Line: 2},
				{Key: "b", Mark: ir.OpenMap, Indent: 1, Line: 3},
				{Key: "k", Value: "1", Indent: 2, Line: 2},
				{Mark: ir.CloseMap, Indent: 1, Line: 2},
				{Mark: ir.CloseMap, Indent: 0, Line: 3},
			},
		},
	}
	for _, tt := range tests {
		els, err := Parse([]byte(tt.in))
		if err != nil {
			t.Errorf("parse %q: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, els); diff != "" {
			t.Errorf("parse %q: (-want +got)\n%s", tt.in, diff)
		}
	}
}

func TestParseOK(t *testing.T) {
	ins := []string{
		"",
		"hello\n",
		"a: 1\n",
		"a: [1, 2, 3]\n",
		"a: []\n",
		"a: {}\n",
		"a: {k: v, l: w}\n",
		"- 1\n- 2\n",
		"-\n- x\n",
		"a:\n  b:\n    c: deep\n",
		"a: |\n  block\n",
		"a: >\n  folded\n  text\n",
		"a: 'single'\nb: \"double\"\n",
		"a: !!str 42\n",
		"a: !!map\nb: 1\n",
		"defaults: &d\n  x: 1\nitem:\n  <<: *d\n  y: 2\n",
		"arr: [1, , {k: v}, 3]\n",
		"seq: &s\n  - 1\n  - 2\ncopy: *s\n",
		"# only a comment\na: 1\n",
		"a:\nb: 1\n",
	}
	for _, in := range ins {
		els, err := Parse([]byte(in))
		if err != nil {
			t.Errorf("parse %q: %v", in, err)
			continue
		}
		if err := ir.Check(els); err != nil {
			t.Errorf("check %q: %v", in, err)
		}
		for i := range els {
			if els[i].Alias != "" {
				t.Errorf("parse %q: unresolved alias at %d: %s", in, i, &els[i])
			}
		}
	}
}

func TestParseErrs(t *testing.T) {
	tests := []struct {
		in string
		e  error
	}{
		{"a: 1\na: 2\n", ErrDuplicatedKey},
		{"b: *miss\n", ErrAnchorNotFound},
		{"a: &x 1\nb: &x 2\n", ErrDuplicateAnchor},
		{"<<: 5\n", ErrInvalidMerge},
		{"<<:\n", ErrInvalidMerge},
		{"a: [1, 2\n", ErrUnclosedArray},
		{"a: &x\n  b: *x\n", ErrRecursiveAlias},
		{"s: &v 5\nm:\n  <<: *v\n", ErrMergeScalar},
		{"- <<: *x\n", ErrMergeCollection},
		{"a: [<<: *x]\n", ErrMergeArray},
		{"a:\n    b: 1\n  c: 2\n", ErrIndent},
		{"a: 1\nbare\n", ErrExpectedKey},
		{"22\nmore\n", ErrUnconsumed},
		{"a: b: c\n", ErrDoubleKey},
		{"- |\n  x\n", ErrBlockCollection},
		{"a: - 1\n", ErrCollectionItem},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.in))
		if err == nil {
			t.Errorf("parse %q: no error, want %v", tt.in, tt.e)
			continue
		}
		if !errors.Is(err, tt.e) {
			t.Errorf("parse %q: got %v, want %v", tt.in, err, tt.e)
		}
	}
}

func TestParseErrLines(t *testing.T) {
	_, err := Parse([]byte("a: 1\nb: 2\nb: 3\n"))
	if err == nil {
		t.Fatal("no error")
	}
	if got := token.Line(err); got != 3 {
		t.Errorf("error line %d, want 3: %v", got, err)
	}
}

func TestParseDuplicatesAllowed(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"), DuplicateKeys(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMergeOverride(t *testing.T) {
	els, err := Parse([]byte("defaults: &d\n  a: 1\n  b: 2\nitem:\n  <<: *d\n  b: 99\n"))
	if err != nil {
		t.Fatal(err)
	}
	// the item mapping carries a from the anchor and its own b
	got := map[string]string{}
	inItem := false
	for i := range els {
		e := &els[i]
		if e.Key == "item" {
			inItem = true
			continue
		}
		if inItem && e.IsClose() {
			break
		}
		if inItem {
			got[e.Key] = e.Value
		}
	}
	want := map[string]string{"a": "1", "b": "99"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}
