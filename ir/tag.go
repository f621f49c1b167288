package ir

import "fmt"

// Tag is an explicit type tag attached to a value.
type Tag int

const (
	NoTag Tag = iota
	MapTag
	SeqTag
	StrTag
	NullTag
	BoolTag
	IntTag
	FloatTag
	BinaryTag
	TimestampTag
)

var tagNames = map[Tag]string{
	MapTag:       "!!map",
	SeqTag:       "!!seq",
	StrTag:       "!!str",
	NullTag:      "!!null",
	BoolTag:      "!!bool",
	IntTag:       "!!int",
	FloatTag:     "!!float",
	BinaryTag:    "!!binary",
	TimestampTag: "!!timestamp",
}

func (t Tag) String() string {
	if t == NoTag {
		return ""
	}
	s, ok := tagNames[t]
	if ok {
		return s
	}
	return fmt.Sprintf("<unknown tag %d>", int(t))
}

// ParseTag maps a "!!name" token to its Tag; ok is false for anything
// outside the supported set.
func ParseTag(v string) (Tag, bool) {
	for t, name := range tagNames {
		if name == v {
			return t, true
		}
	}
	return NoTag, false
}

func Tags() []Tag {
	return []Tag{
		MapTag,
		SeqTag,
		StrTag,
		NullTag,
		BoolTag,
		IntTag,
		FloatTag,
		BinaryTag,
		TimestampTag,
	}
}
