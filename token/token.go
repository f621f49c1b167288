package token

import (
	"fmt"
	"strings"
)

type Type int

const (
	TKey Type = iota
	TScalar
	TArrayElt
	TLSquare
	TRSquare
	TLCurl
	TRCurl
	TComma
)

func (t Type) String() string {
	return map[Type]string{
		TKey:      "TKey",
		TScalar:   "TScalar",
		TArrayElt: "TArrayElt",
		TLSquare:  "TLSquare",
		TRSquare:  "TRSquare",
		TLCurl:    "TLCurl",
		TRCurl:    "TRCurl",
		TComma:    "TComma",
	}[t]
}

// Token is one logical key or value produced by the tokenizer.  Text is
// stored already JSON-escaped, with logical newlines held as the
// Newline placeholder.  Indent is the leading-space count of the
// token's first physical line (virtual for collection-item content),
// Line its 1-based source line.
type Token struct {
	Type    Type
	Text    string
	Literal bool
	Block   bool
	Anchor  string
	Alias   string
	Tag     string
	Indent  int
	Line    int
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q at line %d", t.Type, t.Text, t.Line)
}

func (t *Token) String() string {
	b := &strings.Builder{}
	b.WriteString(t.Type.String())
	if t.Text != "" {
		fmt.Fprintf(b, " %q", t.Text)
	}
	if t.Anchor != "" {
		fmt.Fprintf(b, " &%s", t.Anchor)
	}
	if t.Alias != "" {
		fmt.Fprintf(b, " *%s", t.Alias)
	}
	if t.Tag != "" {
		fmt.Fprintf(b, " %s", t.Tag)
	}
	return b.String()
}

type Err struct {
	Err  error
	Line int
}

func (e *Err) Unwrap() error {
	return e.Err
}

func (e *Err) Error() string {
	return fmt.Sprintf("%s at line %d", e.Err.Error(), e.Line)
}

// ErrAt wraps err with a 1-based source line.
func ErrAt(err error, line int) error {
	return &Err{Err: err, Line: line}
}

// Line extracts the source line from an error produced by ErrAt, or 0.
func Line(err error) int {
	var e *Err
	if ok := asErr(err, &e); ok {
		return e.Line
	}
	return 0
}
