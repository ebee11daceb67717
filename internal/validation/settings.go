package validation

import (
	"strings"
	"time"

	"github.com/mumvest/mumvest/internal/model"
	"golang.org/x/text/currency"
)

// ParseCurrency accepts an ISO 4217 code the app can display.
func ParseCurrency(code string) (model.Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", invalid("%q is not a currency code", code)
	}

	c := model.Currency(unit.String())
	if !c.Supported() {
		return "", invalid("currency %s is not supported", c)
	}
	return c, nil
}

// ValidateNotificationTime expects 24-hour HH:MM.
func ValidateNotificationTime(s string) error {
	if len(s) != 5 {
		return invalid("notification time must be HH:MM")
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return invalid("notification time must be HH:MM")
	}
	return nil
}

func ValidateSituation(s string) error {
	switch s {
	case "", model.SituationJustStarting, model.SituationSomeSavings, model.SituationDebtFocused, model.SituationGrowing:
		return nil
	}
	return invalid("unknown financial situation %q", s)
}
