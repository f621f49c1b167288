package yoke

import (
	"fmt"
	"sort"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Delta is one difference between two documents, addressed by a
// JSONPath-style path.
type Delta struct {
	Path string
	From any
	To   any
}

func (d *Delta) String() string {
	switch {
	case d.From == nil && d.To != nil:
		return fmt.Sprintf("%s: + %v", d.Path, d.To)
	case d.From != nil && d.To == nil:
		return fmt.Sprintf("%s: - %v", d.Path, d.From)
	default:
		return fmt.Sprintf("%s: %v -> %v", d.Path, d.From, d.To)
	}
}

// Diff parses two YAML documents and reports their differences over
// the JSON value model.
func Diff(a, b []byte, opts ...Option) ([]Delta, error) {
	av, err := YAMLToJSONValue(a, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding first document: %w", err)
	}
	bv, err := YAMLToJSONValue(b, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding second document: %w", err)
	}
	return DiffValues(av, bv), nil
}

// DiffValues compares two decoded JSON values.
func DiffValues(a, b any) []Delta {
	res := []Delta{}
	diffValues("$", a, b, &res)
	return res
}

func diffValues(path string, a, b any, res *[]Delta) {
	am, aIsMap := a.(map[string]any)
	bm, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		keys := map[string]bool{}
		for k := range am {
			keys[k] = true
		}
		for k := range bm {
			keys[k] = true
		}
		sorted := make([]string, 0, len(keys))
		for k := range keys {
			sorted = append(sorted, k)
		}
		sort.Strings(sorted)
		for _, k := range sorted {
			av, aOK := am[k]
			bv, bOK := bm[k]
			kp := path + "." + k
			switch {
			case !aOK:
				*res = append(*res, Delta{Path: kp, To: bv})
			case !bOK:
				*res = append(*res, Delta{Path: kp, From: av})
			default:
				diffValues(kp, av, bv, res)
			}
		}
		return
	}
	aa, aIsArr := a.([]any)
	ba, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		n := len(aa)
		if len(ba) > n {
			n = len(ba)
		}
		for i := 0; i < n; i++ {
			ip := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case i >= len(aa):
				*res = append(*res, Delta{Path: ip, To: ba[i]})
			case i >= len(ba):
				*res = append(*res, Delta{Path: ip, From: aa[i]})
			default:
				diffValues(ip, aa[i], ba[i], res)
			}
		}
		return
	}
	if !scalarEqual(a, b) {
		*res = append(*res, Delta{Path: path, From: a, To: b})
	}
}

func scalarEqual(a, b any) bool {
	return fmt.Sprintf("%T %v", a, a) == fmt.Sprintf("%T %v", b, b)
}

// FormatDeltas renders deltas one per line; changed multi-line strings
// get a character-level diff.
func FormatDeltas(deltas []Delta) string {
	b := &strings.Builder{}
	for i := range deltas {
		d := &deltas[i]
		from, fromOK := d.From.(string)
		to, toOK := d.To.(string)
		if fromOK && toOK && strings.Contains(from, "\n") && strings.Contains(to, "\n") {
			dmp := diffpatch.New()
			diffs := dmp.DiffMain(from, to, true)
			fmt.Fprintf(b, "%s:\n%s\n", d.Path, dmp.DiffPrettyText(diffs))
			continue
		}
		fmt.Fprintf(b, "%s\n", d.String())
	}
	return b.String()
}
