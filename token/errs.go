package token

import "errors"

var (
	ErrUnclosedLiteral = errors.New("unclosed literal")
	ErrBadEscape       = errors.New("bad escape")
	ErrBadUnicode      = errors.New("bad unicode")
	ErrUnknownTag      = errors.New("unknown tag")
	ErrBadName         = errors.New("invalid name")
	ErrAliasValue      = errors.New("alias with value")
	ErrKeyAliasAnchor  = errors.New("alias or anchor on key")
	ErrEmptyKey        = errors.New("empty key")
	ErrMultilineKey    = errors.New("multi-line key")
	ErrKeyStart        = errors.New("invalid initial character in key")
	ErrBlockModifier   = errors.New("invalid block modifier")
)

func asErr(err error, target **Err) bool {
	return errors.As(err, target)
}
