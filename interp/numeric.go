package interp

import "strconv"

// parseNumber parses a JS numeric literal text (as captured verbatim
// by the transformer) into a float64, rejecting anything that is not
// purely numeric so string/boolean/null literals fall through to
// their own branches in literalValue.
func parseNumber(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
