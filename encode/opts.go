package encode

type EncState struct {
	width  int
	yesNo  bool
	colors *Colors
}

type EncodeOption func(*EncState)

// EncodeIndent sets the indentation width: 0..8 for JSON output (0 is
// compact), 2..8 for YAML output.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.width = n }
}

// EncodeYesNo renders booleans as yes/no in YAML output and accepts
// yes/no as booleans when classifying parsed values.
func EncodeYesNo(v bool) EncodeOption {
	return func(es *EncState) { es.yesNo = v }
}

// EncodeColors attaches a terminal color scheme.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}
