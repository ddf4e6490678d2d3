package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var monthNames = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// monthLabel turns a "2006-01" key into "jan/2006".
func monthLabel(key string) string {
	if len(key) != 7 {
		return key
	}

	var year, month int
	if _, err := fmt.Sscanf(key, "%04d-%02d", &year, &month); err != nil || month < 1 || month > 12 {
		return key
	}

	return fmt.Sprintf("%s/%04d", monthNames[month-1], year)
}

// FormatAmount renders a decimal amount using the Brazilian convention:
// "R$ 1.234,56".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var sb strings.Builder

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}

		sb.WriteRune(r)
	}

	out := "R$ " + sb.String() + "," + fracPart
	if negative {
		out = "-" + out
	}

	return out
}

// FormatPercent renders a percentage with one decimal place, comma
// separated: "85,7%".
func FormatPercent(v float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.1f%%", v), ".", ",")
}
