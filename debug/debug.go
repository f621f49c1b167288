package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokens  bool
	Aliases bool
	Merges  bool
	Emit    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("YOKE_DEBUG_TOKENS")
	d.Aliases = boolEnv("YOKE_DEBUG_ALIASES")
	d.Merges = boolEnv("YOKE_DEBUG_MERGES")
	d.Emit = boolEnv("YOKE_DEBUG_EMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Aliases() bool {
	return d.Aliases
}
func Merges() bool {
	return d.Merges
}
func Emit() bool {
	return d.Emit
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
