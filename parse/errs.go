package parse

import (
	"errors"

	"github.com/yoke-format/go-yoke/token"
)

var (
	ErrParse = errors.New("parse error")

	ErrCollectionItem  = errors.New("collection item error")
	ErrInvalidArray    = errors.New("invalid array")
	ErrIndent          = errors.New("invalid indentation")
	ErrUnclosedArray   = errors.New("unclosed array")
	ErrUnconsumed      = errors.New("unconsumed content")
	ErrExpectedKey     = errors.New("expected key")
	ErrDoubleKey       = errors.New("double key")
	ErrDuplicatedKey   = errors.New("duplicated key")
	ErrDuplicateAnchor = errors.New("duplicate anchor")
	ErrAnchorNotFound  = errors.New("anchor not found")
	ErrRecursiveAlias  = errors.New("recursive alias")
	ErrMergeArray      = errors.New("merge in array")
	ErrMergeCollection = errors.New("merge in collection")
	ErrMergeScalar     = errors.New("merge on scalar")
	ErrInvalidMerge    = errors.New("invalid merge")
	ErrBlockCollection = errors.New("block modifier on collection item")
)

func errAt(err error, line int) error {
	return token.ErrAt(err, line)
}
