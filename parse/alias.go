package parse

import (
	"fmt"

	"github.com/yoke-format/go-yoke/debug"
	"github.com/yoke-format/go-yoke/ir"
)

// resolveAliases rewrites every non-merge alias reference in place.  A
// reference to a scalar anchor copies the scalar; a reference to a
// container anchor splices a re-indented copy of the anchor's whole
// block at the alias position.  Passes repeat until no reference
// remains; each pass resolves at least one or fails.
func resolveAliases(els *[]ir.Element) error {
	list := *els
	for {
		i := nextAlias(list)
		if i < 0 {
			*els = list
			return nil
		}
		var err error
		list, err = resolveOne(list, i)
		if err != nil {
			return err
		}
	}
}

func nextAlias(list []ir.Element) int {
	for i := range list {
		if list[i].Alias != "" && list[i].Key != ir.MergeKey {
			return i
		}
	}
	return -1
}

func resolveOne(list []ir.Element, i int) ([]ir.Element, error) {
	a := &list[i]
	di := anchorIndex(list, a.Alias)
	if di < 0 || di >= i {
		return nil, errAt(fmt.Errorf("%w: %s", ErrAnchorNotFound, a.Alias), a.Line)
	}
	d := &list[di]
	if debug.Aliases() {
		debug.Logf("alias *%s at line %d -> line %d\n", a.Alias, a.Line, d.Line)
	}
	if d.Mark == ir.NoMark {
		a.Value, a.Literal, a.Tag = d.Value, d.Literal, d.Tag
		a.Alias = ""
		return list, nil
	}
	end := ir.BlockEnd(list, di)
	delta := a.Indent - d.Indent
	block := make([]ir.Element, end-di+1)
	for bi, src := range list[di : end+1] {
		if src.Alias == a.Alias {
			return nil, errAt(fmt.Errorf("%w: *%s", ErrRecursiveAlias, a.Alias), a.Line)
		}
		src.Indent += delta
		src.Anchor = ""
		block[bi] = src
	}
	block[0].Key = a.Key
	block[0].Line = a.Line
	block[0].Anchor = a.Anchor
	res := make([]ir.Element, 0, len(list)+len(block)-1)
	res = append(res, list[:i]...)
	res = append(res, block...)
	res = append(res, list[i+1:]...)
	return res, nil
}

func anchorIndex(list []ir.Element, name string) int {
	for i := range list {
		if list[i].Anchor == name {
			return i
		}
	}
	return -1
}
