package token

var tags = map[string]bool{
	"!!map":       true,
	"!!seq":       true,
	"!!str":       true,
	"!!null":      true,
	"!!bool":      true,
	"!!int":       true,
	"!!float":     true,
	"!!binary":    true,
	"!!timestamp": true,
}

func validTag(v string) bool {
	return tags[v]
}
