package token

import "strings"

// Block-scalar chomping indicators.
const (
	ChompClip  byte = 0
	ChompStrip byte = '-'
	ChompKeep  byte = '+'
)

// trimMargin removes the common leading-space margin of the captured
// lines.  Blank lines do not contribute to the margin and come out
// empty.
func trimMargin(segs []string) []string {
	margin := -1
	for _, s := range segs {
		if isBlank(s) {
			continue
		}
		ind := countIndent(s)
		if margin < 0 || ind < margin {
			margin = ind
		}
	}
	if margin <= 0 {
		margin = 0
	}
	res := make([]string, len(segs))
	for i, s := range segs {
		if isBlank(s) {
			res[i] = ""
			continue
		}
		res[i] = s[margin:]
	}
	return res
}

// foldPlain joins segments the way plain scalars fold: consecutive
// non-blank lines with a single space after trimming, a run of blank
// lines as one line feed.  Leading and trailing blank lines drop.
func foldPlain(segs []string) string {
	b := &strings.Builder{}
	started, blank := false, false
	for _, s := range segs {
		t := strings.TrimSpace(s)
		if t == "" {
			blank = true
			continue
		}
		if started {
			if blank {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t)
		started = true
		blank = false
	}
	return b.String()
}

// foldQuoted folds a quoted scalar's physical lines.  Double-quoted
// scalars keep their leading and trailing blank lines as line feeds;
// other styles clip them.
func foldQuoted(segs []string, keepEdges bool) string {
	if !keepEdges {
		return foldPlain(segs)
	}
	lead, trail := 0, 0
	for lead < len(segs) && isBlank(segs[lead]) {
		lead++
	}
	for trail < len(segs)-lead && isBlank(segs[len(segs)-1-trail]) {
		trail++
	}
	return strings.Repeat("\n", lead) + foldPlain(segs) + strings.Repeat("\n", trail)
}

// foldFolded implements the '>' style: folds like plain, except lines
// still indented after margin removal keep hard breaks around them.
func foldFolded(segs []string) string {
	b := &strings.Builder{}
	started, blank, hard := false, false, false
	for _, s := range segs {
		if isBlank(s) {
			blank = true
			continue
		}
		indented := s[0] == ' '
		if started {
			if blank || indented || hard {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(strings.TrimRight(s, " "))
		started = true
		blank = false
		hard = indented
	}
	return b.String()
}

// foldLiteral implements the '|' style: every captured line verbatim,
// each terminated by a line feed.
func foldLiteral(segs []string) string {
	if len(segs) == 0 {
		return ""
	}
	return strings.Join(segs, "\n") + "\n"
}

// chomp applies the trailing-newline policy of a block scalar: clip
// keeps exactly one trailing line feed, strip removes them all, keep
// leaves every trailing blank line.
func chomp(v string, mod byte) string {
	switch mod {
	case ChompKeep:
		return v
	case ChompStrip:
		return strings.TrimRight(v, "\n")
	default:
		t := strings.TrimRight(v, "\n")
		if t == "" {
			return ""
		}
		return t + "\n"
	}
}
