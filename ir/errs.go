package ir

import "errors"

var (
	ErrUnbalanced = errors.New("unbalanced document")
)
