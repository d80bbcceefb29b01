package parser

import (
	"regexp"

	"github.com/shopspring/decimal"

	"cashmate/internal/parsererror"
)

// amountPattern pairs a regular expression with the multiplier its unit
// suffix implies.
type amountPattern struct {
	re         *regexp.Regexp
	multiplier decimal.Decimal
}

// Patterns are tried in order; the first one that matches anywhere in the
// text wins, so "5jt" is never misread as a bare "5".
var amountPatterns = []amountPattern{
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*jt`), decimal.NewFromInt(1_000_000)},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*rb`), decimal.NewFromInt(1_000)},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*k`), decimal.NewFromInt(1_000)},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)`), decimal.NewFromInt(1)},
}

// ExtractAmount pulls the transaction amount out of lowercased text,
// applying the Indonesian shorthand units jt (millions) and rb/k
// (thousands). It fails when no pattern matches or the amount is not
// positive.
func ExtractAmount(text string) (decimal.Decimal, error) {
	for _, pattern := range amountPatterns {
		match := pattern.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		value, err := decimal.NewFromString(match[1])
		if err != nil {
			continue
		}

		amount := value.Mul(pattern.multiplier)
		if !amount.IsPositive() {
			return decimal.Zero, parsererror.ErrNoAmount
		}
		return amount, nil
	}

	return decimal.Zero, parsererror.ErrNoAmount
}
