package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultNumberFormat is used when no invoice_number_format setting exists.
const DefaultNumberFormat = "{year}-{month:02d}-{day:02d}-{seq:03d}"

// FormatInvoiceNumber renders an invoice number template. The template
// uses {year}, {month}, {day} and {seq} placeholders, each optionally
// zero-padded with a ":0Nd" suffix (e.g. {seq:03d}).
//
// seq is 1 + count of existing invoices for the same store and period
// end: the sequence is scoped per store+period_end, not global.
func FormatInvoiceNumber(format string, periodEnd time.Time, seq int) string {
	if format == "" {
		format = DefaultNumberFormat
	}
	values := map[string]int{
		"year":  periodEnd.Year(),
		"month": int(periodEnd.Month()),
		"day":   periodEnd.Day(),
		"seq":   seq,
	}

	out := format
	for name, value := range values {
		out = replacePlaceholder(out, name, value)
	}
	return out
}

// replacePlaceholder substitutes {name} and {name:0Nd} occurrences.
func replacePlaceholder(s, name string, value int) string {
	for {
		start := strings.Index(s, "{"+name)
		if start < 0 {
			return s
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			return s
		}
		end += start
		token := s[start : end+1]

		rendered := strconv.Itoa(value)
		if colon := strings.Index(token, ":"); colon >= 0 {
			spec := token[colon+1 : len(token)-1]
			if width, ok := parsePadWidth(spec); ok {
				rendered = fmt.Sprintf("%0*d", width, value)
			}
		}
		s = s[:start] + rendered + s[end+1:]
	}
}

// parsePadWidth parses a "0Nd" pad spec, returning N.
func parsePadWidth(spec string) (int, bool) {
	if len(spec) < 3 || spec[0] != '0' || spec[len(spec)-1] != 'd' {
		return 0, false
	}
	width, err := strconv.Atoi(spec[1 : len(spec)-1])
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}
