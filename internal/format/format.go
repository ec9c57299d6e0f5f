// Package format holds display helpers shared by the HTML templates.
package format

import (
	"strconv"
	"strings"
)

// Money renders a price for display: thousands separated by spaces and whole
// amounts shown without trailing cents, so 48990.00 reads "48 990" and
// 12300.50 reads "12 300.50".
func Money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, cents, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}
	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	out := b.String()
	if cents != "00" {
		out += "." + cents
	}
	if neg {
		out = "-" + out
	}
	return out
}
