package token

import (
	"fmt"
	"io"
	"strings"

	"github.com/yoke-format/go-yoke/debug"
)

// Tokenizer produces, on demand, the next key or value token from a
// Source.  It carries a (row, indent) cursor plus the textual remainder
// of the current line, which captures inline splits after ':', ',',
// ']' and friends.
type Tokenizer struct {
	src     *Source
	nextRow int
	curRow  int
	rem     string
	remInd  int

	peeked   *Token
	peekErr  error
	havePeek bool
}

func NewTokenizer(src *Source) *Tokenizer {
	return &Tokenizer{src: src}
}

// Peek returns the next token without consuming it.  The inArray flag
// must match the Next call that consumes it.
func (tz *Tokenizer) Peek(inArray bool) (*Token, error) {
	if !tz.havePeek {
		tz.peeked, tz.peekErr = tz.scan(inArray)
		tz.havePeek = true
	}
	return tz.peeked, tz.peekErr
}

// Next returns the next token, or io.EOF at end of input.
func (tz *Tokenizer) Next(inArray bool) (*Token, error) {
	if tz.havePeek {
		tz.havePeek = false
		return tz.peeked, tz.peekErr
	}
	tok, err := tz.scan(inArray)
	if debug.Tokens() && tok != nil {
		debug.Logf("token: %s\n", tok)
	}
	return tok, err
}

// load advances the cursor to the next line with content, skipping
// blank and comment-only lines.  Mid-line comments are handled by the
// per-style scanners, which know whether a '#' is quoted.
func (tz *Tokenizer) load() bool {
	for tz.rem == "" {
		if tz.nextRow >= tz.src.Len() {
			return false
		}
		ln := tz.src.Line(tz.nextRow)
		tz.curRow = tz.nextRow
		tz.nextRow++
		ind := countIndent(ln)
		text := strings.TrimRight(ln[ind:], " \t")
		if text == "" || text[0] == '#' {
			continue
		}
		tz.rem = text
		tz.remInd = ind
	}
	return true
}

// drop consumes n bytes of the remainder plus any following spaces; a
// '#' at the start of what is left starts a comment running to end of
// line.
func (tz *Tokenizer) drop(n int) {
	tz.rem = tz.rem[n:]
	tz.remInd += n
	tz.skipSpaces()
}

func (tz *Tokenizer) skipSpaces() {
	i := 0
	for i < len(tz.rem) && tz.rem[i] == ' ' {
		i++
	}
	tz.rem = tz.rem[i:]
	tz.remInd += i
	if strings.HasPrefix(tz.rem, "#") {
		tz.rem = ""
	}
}

func (tz *Tokenizer) scan(inArray bool) (*Token, error) {
	if !tz.load() {
		return nil, io.EOF
	}
	tok := &Token{Type: TScalar, Line: tz.curRow + 1, Indent: tz.remInd}

	if !inArray {
		if tz.rem == "-" {
			tok.Type = TArrayElt
			tz.rem = ""
			return tok, nil
		}
		if strings.HasPrefix(tz.rem, "- ") {
			tok.Type = TArrayElt
			tz.drop(2)
			return tok, nil
		}
	}

	// leading tag / anchor / alias attributes
	for {
		if tz.rem[0] == '!' {
			j := strings.IndexByte(tz.rem, ' ')
			if j < 0 {
				j = len(tz.rem)
			}
			word := tz.rem[:j]
			if !validTag(word) {
				return nil, ErrAt(fmt.Errorf("%w %q", ErrUnknownTag, word), tok.Line)
			}
			tok.Tag = word
			tz.drop(j)
			if tz.rem == "" {
				return tok, nil
			}
			continue
		}
		if tz.rem[0] == '&' {
			name, err := tz.refName(tok.Line)
			if err != nil {
				return nil, err
			}
			tok.Anchor = name
			if strings.HasPrefix(tz.rem, ":") {
				return nil, ErrAt(ErrKeyAliasAnchor, tok.Line)
			}
			if tz.rem == "" {
				return tok, nil
			}
			continue
		}
		if tz.rem[0] == '*' {
			name, err := tz.refName(tok.Line)
			if err != nil {
				return nil, err
			}
			tok.Alias = name
			if inArray {
				if tz.rem != "" {
					switch tz.rem[0] {
					case ',', ']', '}':
					default:
						return nil, ErrAt(ErrAliasValue, tok.Line)
					}
				}
				return tok, nil
			}
			if strings.HasPrefix(tz.rem, ":") {
				return nil, ErrAt(ErrKeyAliasAnchor, tok.Line)
			}
			if tz.rem != "" {
				return nil, ErrAt(ErrAliasValue, tok.Line)
			}
			return tok, nil
		}
		break
	}

	c := tz.rem[0]
	switch {
	case c == '[':
		tok.Type = TLSquare
		tz.drop(1)
		return tok, nil
	case inArray && c == ']':
		tok.Type = TRSquare
		tz.drop(1)
		return tok, nil
	case inArray && c == ',':
		tok.Type = TComma
		tz.drop(1)
		return tok, nil
	case c == '{':
		tok.Type = TLCurl
		tz.drop(1)
		return tok, nil
	case inArray && c == '}':
		tok.Type = TRCurl
		tz.drop(1)
		return tok, nil
	case c == '|' || c == '>':
		return tz.blockScalar(tok, c)
	case c == '"' || c == '\'':
		return tz.quoted(tok, c, inArray)
	default:
		return tz.plain(tok, inArray)
	}
}

// refName consumes an '&' or '*' introducer plus its identifier.  A
// space directly after the introducer, an empty name, or a leading
// digit are errors.
func (tz *Tokenizer) refName(line int) (string, error) {
	r := tz.rem[1:]
	i := 0
	for i < len(r) && isNameChar(r[i], i == 0) {
		i++
	}
	if i == 0 {
		return "", ErrAt(fmt.Errorf("%w after %q", ErrBadName, tz.rem[:1]), line)
	}
	name := r[:i]
	tz.rem = r[i:]
	tz.remInd += 1 + i
	tz.skipSpaces()
	return name, nil
}

func isNameChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}

// blockScalar consumes a '|' or '>' introducer with an optional chomp
// indicator and captures every following line indented deeper than the
// introducer's line.
func (tz *Tokenizer) blockScalar(tok *Token, style byte) (*Token, error) {
	rest := tz.rem[1:]
	mod := ChompClip
	if rest != "" && (rest[0] == ChompStrip || rest[0] == ChompKeep) {
		mod = rest[0]
		rest = rest[1:]
	}
	rest = strings.TrimLeft(rest, " ")
	if rest != "" && rest[0] != '#' {
		return nil, ErrAt(fmt.Errorf("%w: %q", ErrBlockModifier, rest), tok.Line)
	}
	lineInd := tz.src.Indent(tz.curRow)
	tz.rem = ""
	segs := []string{}
	r := tz.nextRow
	for r < tz.src.Len() {
		ln := tz.src.Line(r)
		if isBlank(ln) {
			segs = append(segs, "")
			r++
			continue
		}
		if countIndent(ln) <= lineInd {
			break
		}
		segs = append(segs, strings.TrimSuffix(ln, "\r"))
		r++
	}
	tz.nextRow = r
	segs = trimMargin(segs)

	var v string
	if style == '|' {
		v = foldLiteral(segs)
	} else {
		v = foldFolded(segs)
		if v != "" {
			v += "\n"
		}
		if mod == ChompKeep {
			t := 0
			for t < len(segs) && isBlank(segs[len(segs)-1-t]) {
				t++
			}
			v += strings.Repeat("\n", t)
		}
	}
	tok.Text = Escape(chomp(v, mod))
	tok.Block = true
	return tok, nil
}

// quoted consumes a single- or double-quoted literal, possibly spanning
// lines, and may promote it to a key when a ':' follows the closing
// quote.
func (tz *Tokenizer) quoted(tok *Token, qc byte, inArray bool) (*Token, error) {
	body := tz.rem[1:]
	segs := []string{}
	multiline := false
	j := closeQuote(body, qc)
	if j >= 0 {
		segs = append(segs, body[:j])
		tz.rem = body[j+1:]
		tz.remInd += j + 2
	} else {
		multiline = true
		segs = append(segs, body)
		r := tz.nextRow
		for {
			if r >= tz.src.Len() {
				return nil, ErrAt(ErrUnclosedLiteral, tok.Line)
			}
			ln := tz.src.Line(r)
			k := closeQuote(ln, qc)
			if k < 0 {
				segs = append(segs, ln)
				r++
				continue
			}
			segs = append(segs, ln[:k])
			tz.curRow = r
			tz.nextRow = r + 1
			tz.rem = ln[k+1:]
			tz.remInd = k + 1
			break
		}
		rest := trimMargin(segs[1:])
		segs = append(segs[:1], rest...)
	}
	raw := segs[0]
	if multiline {
		raw = foldQuoted(segs, qc == '"')
	}
	var (
		v   string
		err error
	)
	if qc == '"' {
		v, err = decodeDouble(raw, tok.Line)
		if err != nil {
			return nil, err
		}
	} else {
		v = decodeSingle(raw)
	}
	tok.Text = Escape(v)
	tok.Literal = true
	tz.skipSpaces()
	if strings.HasPrefix(tz.rem, ":") && (len(tz.rem) == 1 || tz.rem[1] == ' ') {
		if multiline {
			return nil, ErrAt(ErrMultilineKey, tok.Line)
		}
		if tok.Anchor != "" || tok.Alias != "" {
			return nil, ErrAt(ErrKeyAliasAnchor, tok.Line)
		}
		if tok.Text == "" {
			return nil, ErrAt(ErrEmptyKey, tok.Line)
		}
		tok.Type = TKey
		tz.drop(1)
	}
	return tok, nil
}

// plain collects an unquoted scalar, classifying it as a key when an
// unquoted ': ' (or trailing ':') appears, and folding continuation
// lines in block context.
func (tz *Tokenizer) plain(tok *Token, inArray bool) (*Token, error) {
	lineInd := tz.src.Indent(tz.curRow)
	s := tz.rem
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ':' && (i+1 == len(s) || s[i+1] == ' ') {
			return tz.key(tok, s[:i], s[i+1:])
		}
		if inArray {
			switch c {
			case ',', ']', '[', '{', '}':
				tz.rem = s[i:]
				tz.remInd += i
				tok.Text = Escape(strings.TrimSpace(s[:i]))
				return tok, nil
			}
		}
		if c == '#' && i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
			s = strings.TrimRight(s[:i], " \t")
			break
		}
	}
	tz.rem = ""
	if inArray {
		tok.Text = Escape(strings.TrimSpace(s))
		return tok, nil
	}

	segs := []string{s}
	r := tz.nextRow
	for r < tz.src.Len() {
		ln := tz.src.Line(r)
		if isBlank(ln) {
			segs = append(segs, "")
			r++
			continue
		}
		ind := countIndent(ln)
		text := ln[ind:]
		if ind <= lineInd || text[0] == '#' {
			break
		}
		if text == "-" || strings.HasPrefix(text, "- ") {
			break
		}
		if looksLikeKey(text) {
			break
		}
		segs = append(segs, cutComment(text))
		r++
	}
	tz.nextRow = r
	tok.Text = Escape(foldPlain(segs))
	return tok, nil
}

func (tz *Tokenizer) key(tok *Token, left, rest string) (*Token, error) {
	if tok.Anchor != "" || tok.Alias != "" {
		return nil, ErrAt(ErrKeyAliasAnchor, tok.Line)
	}
	text := strings.TrimSpace(left)
	if text == "" {
		return nil, ErrAt(ErrEmptyKey, tok.Line)
	}
	switch text[0] {
	case '[', ',', ']', '-', '&', '*', '|', '>', '+':
		return nil, ErrAt(fmt.Errorf("%w: %q", ErrKeyStart, text[0]), tok.Line)
	}
	tok.Type = TKey
	tok.Text = Escape(text)
	tz.rem = tz.rem[len(left)+1:]
	tz.remInd += len(left) + 1
	tz.skipSpaces()
	return tok, nil
}

// looksLikeKey reports whether a line's content introduces a mapping
// key, skipping over quoted sections.
func looksLikeKey(s string) bool {
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '"', '\'':
			j := closeQuote(s[i+1:], c)
			if j < 0 {
				return false
			}
			i += j + 2
		case ':':
			if i+1 == len(s) || s[i+1] == ' ' {
				return true
			}
			i++
		case '#':
			if i > 0 && s[i-1] == ' ' {
				return false
			}
			i++
		default:
			i++
		}
	}
	return false
}

func cutComment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '#' {
			continue
		}
		if i == 0 || s[i-1] == ' ' || s[i-1] == '\t' {
			return strings.TrimRight(s[:i], " \t")
		}
	}
	return strings.TrimRight(s, " \t")
}
