package parse

type parseOpts struct {
	allowDup bool
}

type ParseOption func(*parseOpts)

// DuplicateKeys controls whether two sibling mapping entries may share
// a key.  Off by default; the second occurrence is an error.
func DuplicateKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.allowDup = v }
}
