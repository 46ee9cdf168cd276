package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/julianstephens/ventureboard/internal/constants"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// ParseAmount parses a user-entered amount. Currency symbols, commas and
// surrounding spaces are ignored; anything unparseable yields zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.NewReplacer(",", "", "₹", "", "Rs.", "", "Rs", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ParseAmountStrict is ParseAmount for command-line input: empty, malformed
// and negative amounts are errors instead of zero.
func ParseAmountStrict(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", "Rs.", "", "Rs", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("amount cannot be empty")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative: %s", s)
	}
	return amount, nil
}

// FormatINR renders an amount with zero decimal places and Indian digit
// grouping, e.g. -₹12,34,568.
func FormatINR(amount decimal.Decimal) string {
	return FormatMoney(amount, constants.DefaultCurrencySymbol)
}

// FormatMoney is FormatINR with a custom currency symbol.
func FormatMoney(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + symbol + inrPrinter.Sprintf("%d", rounded.IntPart())
}
