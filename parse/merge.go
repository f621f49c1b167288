package parse

import (
	"fmt"

	"github.com/yoke-format/go-yoke/debug"
	"github.com/yoke-format/go-yoke/ir"
)

// Merge semantics: the anchor's entries form the skeleton, in anchor
// order; a local entry with the same key wins and replaces the merged
// entry wholesale — containers never merge partially, so a local key
// shadowing a merged mapping or sequence drops the merged subtree
// entirely.  Locals whose keys the anchor does not carry follow in
// their own order.

// maxMergePasses bounds pathological merge chains; any document this
// deep is cyclic.
const maxMergePasses = 4096

// resolveMerges expands every "<<" entry by splicing the referenced
// anchor's mapping into the surrounding mapping.
func resolveMerges(els *[]ir.Element) error {
	list := *els
	for pass := 0; ; pass++ {
		mi := -1
		for i := range list {
			if list[i].Key == ir.MergeKey && list[i].Alias != "" {
				mi = i
				break
			}
		}
		if mi < 0 {
			*els = list
			return nil
		}
		if pass == maxMergePasses {
			return errAt(ErrRecursiveAlias, list[mi].Line)
		}
		var err error
		list, err = mergeOne(list, mi)
		if err != nil {
			return err
		}
	}
}

func mergeOne(list []ir.Element, mi int) ([]ir.Element, error) {
	m := list[mi]
	// merge parent: the surrounding mapping's opener
	pi := -1
	for j := mi - 1; j >= 0; j-- {
		if list[j].Indent < m.Indent {
			pi = j
			break
		}
	}
	if pi < 0 {
		return nil, errAt(ErrInvalidMerge, m.Line)
	}
	if list[pi].Mark != ir.OpenMap {
		return nil, errAt(ErrMergeCollection, m.Line)
	}
	di := anchorIndex(list, m.Alias)
	if di < 0 {
		return nil, errAt(fmt.Errorf("%w: %s", ErrAnchorNotFound, m.Alias), m.Line)
	}
	d := &list[di]
	if d.Mark == ir.NoMark || d.Mark == ir.OpenSeq {
		return nil, errAt(fmt.Errorf("%w: *%s", ErrMergeScalar, m.Alias), m.Line)
	}
	dEnd := ir.BlockEnd(list, di)
	if di <= mi && mi <= dEnd {
		return nil, errAt(fmt.Errorf("%w: *%s", ErrRecursiveAlias, m.Alias), m.Line)
	}
	if debug.Merges() {
		debug.Logf("merge *%s at line %d into line %d\n", m.Alias, m.Line, list[pi].Line)
	}

	// the anchor's entries, re-indented to the merge site
	delta := m.Indent - (d.Indent + 1)
	src := make([]ir.Element, 0, dEnd-di-1)
	for _, e := range list[di+1 : dEnd] {
		e.Indent += delta
		e.Anchor = ""
		src = append(src, e)
	}

	// the mapping's own entries, minus the merge entry itself
	pEnd := ir.BlockEnd(list, pi)
	local := make([]ir.Element, 0, pEnd-pi-1)
	for j := pi + 1; j < pEnd; j++ {
		if j == mi {
			continue
		}
		local = append(local, list[j])
	}

	used := make([]bool, len(local))
	merged := make([]ir.Element, 0, len(src)+len(local))
	for s := 0; s < len(src); {
		sEnd := entryEnd(src, s)
		if src[s].Key == ir.MergeKey {
			// a nested merge rides along and expands on a later pass
			merged = append(merged, src[s:sEnd]...)
			s = sEnd
			continue
		}
		li := topLevelKey(local, m.Indent, src[s].Key, used)
		if li >= 0 {
			lEnd := entryEnd(local, li)
			merged = append(merged, local[li:lEnd]...)
			for j := li; j < lEnd; j++ {
				used[j] = true
			}
		} else {
			merged = append(merged, src[s:sEnd]...)
		}
		s = sEnd
	}
	for li := 0; li < len(local); {
		lEnd := entryEnd(local, li)
		if !used[li] {
			merged = append(merged, local[li:lEnd]...)
		}
		li = lEnd
	}

	res := make([]ir.Element, 0, pi+1+len(merged)+len(list)-pEnd)
	res = append(res, list[:pi+1]...)
	res = append(res, merged...)
	res = append(res, list[pEnd:]...)
	return res, nil
}

// entryEnd returns the index one past the entry starting at i,
// including its subtree when the entry opens a container.
func entryEnd(list []ir.Element, i int) int {
	if !list[i].IsOpen() {
		return i + 1
	}
	return ir.BlockEnd(list, i) + 1
}

// topLevelKey finds an unused entry with the given key at the mapping's
// entry indent.
func topLevelKey(list []ir.Element, indent int, key string, used []bool) int {
	if key == "" {
		return -1
	}
	for i := 0; i < len(list); {
		end := entryEnd(list, i)
		if !used[i] && list[i].Indent == indent && list[i].Key == key {
			return i
		}
		i = end
	}
	return -1
}
