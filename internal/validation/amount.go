package validation

import "github.com/shopspring/decimal"

var maxAmount = decimal.NewFromInt(1_000_000_000)

// ValidateAmount accepts positive amounts with at most two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("amount must be greater than zero")
	}
	if amount.GreaterThan(maxAmount) {
		return invalid("amount is too large")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return invalid("amount has more than two decimal places")
	}
	return nil
}

// ParseAmount reads a user-entered amount such as "12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid("amount %q is not a number", s)
	}
	return d, ValidateAmount(d)
}
