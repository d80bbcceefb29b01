// Package currencyutils formats Rupiah amounts for chat and CLI output.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount as "Rp 15,000". Fractions are dropped
// since Rupiah amounts in practice are whole numbers.
func FormatRupiah(amount decimal.Decimal) string {
	return "Rp " + GroupDigits(amount.Round(0).String())
}

// GroupDigits inserts thousands separators into a plain integer string.
func GroupDigits(s string) string {
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}

	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
		if len(s) > lead {
			sb.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		sb.WriteString(s[i : i+3])
		if i+3 < len(s) {
			sb.WriteByte(',')
		}
	}
	return sb.String()
}
