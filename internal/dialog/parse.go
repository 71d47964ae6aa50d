package dialog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// parseCount accepts a non-negative integer.
func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parsePositiveInt accepts an integer greater than zero.
func parsePositiveInt(s string) (int, bool) {
	n, ok := parseCount(s)
	if !ok || n == 0 {
		return 0, false
	}
	return n, true
}

// maxDecimalInput caps areas and window leaves typed by customers.
var maxDecimalInput = decimal.NewFromInt(1000)

var decimalInput = regexp.MustCompile(`^\d+([.,]\d+)?$`)

// parsePositiveDecimal accepts a plain positive number up to maxDecimalInput;
// a comma works as the decimal separator. Exponents and signs are rejected.
func parsePositiveDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !decimalInput.MatchString(s) {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || !v.IsPositive() || v.GreaterThan(maxDecimalInput) {
		return decimal.Zero, false
	}
	return v, true
}

func freeText(in Input) (string, bool) {
	text := strings.TrimSpace(in.Text)
	return text, text != ""
}
