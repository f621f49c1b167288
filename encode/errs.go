package encode

import "errors"

var (
	ErrEncoding = errors.New("encoding error")
	ErrTagValue = errors.New("invalid value for tag")
)
