package render

import (
	"strconv"
	"strings"
)

// ParseHexColor converts "#RRGGBB" (or shorthand "#RGB") to 8-bit channel
// values. Unparseable input yields black rather than an error.
func ParseHexColor(hex string) (r, g, b int) {
	clean := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(clean) == 3 {
		var expanded strings.Builder
		for _, c := range clean {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		clean = expanded.String()
	}
	if len(clean) != 6 {
		return 0, 0, 0
	}
	rv, err1 := strconv.ParseUint(clean[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(clean[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(clean[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(rv), int(gv), int(bv)
}
