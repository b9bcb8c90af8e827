package preset

import (
	"strings"
	"time"
)

// Format is a named timestamp pattern offered to the user.
type Format struct {
	Label   string
	Pattern string
}

// Formats is the built-in timestamp format catalog. Patterns use the
// strftime directives preset files have always stored.
var Formats = []Format{
	{"Full Date", "%A, %B %d, %Y"},
	{"Full Date Time", "%A, %B %d, %Y %I:%M %p"},
	{"Long Date Time", "%A, %B %d, %Y %I:%M:%S %p"},
	{"Short Date Time", "%m/%d/%Y %I:%M %p"},
	{"Month Year", "%B %Y"},
}

// strftime directive -> Go reference layout fragment.
var directives = map[byte]string{
	'A': "Monday",
	'a': "Mon",
	'B': "January",
	'b': "Jan",
	'd': "02",
	'm': "01",
	'y': "06",
	'Y': "2006",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
}

// FormatTime renders t using an strftime-style pattern. Each directive is
// formatted on its own so literal pattern text, digits included, is never
// mistaken for a layout token. Unknown directives pass through literally.
func FormatTime(pattern string, t time.Time) string {
	var out strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			out.WriteByte(pattern[i])
			continue
		}
		i++
		if pattern[i] == '%' {
			out.WriteByte('%')
			continue
		}
		if frag, ok := directives[pattern[i]]; ok {
			out.WriteString(t.Format(frag))
			continue
		}
		out.WriteByte('%')
		out.WriteByte(pattern[i])
	}
	return out.String()
}

// BuildTimestamp produces the final inserted string: optional prefix plus
// the formatted time.
func BuildTimestamp(prefix, pattern string, t time.Time) string {
	formatted := FormatTime(pattern, t)
	if prefix == "" {
		return formatted
	}
	return prefix + formatted
}
