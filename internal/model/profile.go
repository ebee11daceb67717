package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	Currency            Currency  `db:"currency" json:"currency"`
	FinancialSituation  string    `db:"financial_situation" json:"financialSituation"`
	NotificationTime    string    `db:"notification_time" json:"notificationTime"`
	NotificationEnabled bool      `db:"notification_enabled" json:"notificationEnabled"`
	OnboardingCompleted bool      `db:"onboarding_completed" json:"onboardingCompleted"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// ProfileID is the single local user's row key.
const ProfileID = "local"

const (
	SituationJustStarting = "just_starting"
	SituationSomeSavings  = "some_savings"
	SituationDebtFocused  = "debt_focused"
	SituationGrowing      = "growing_wealth"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
	CurrencyAUD Currency = "AUD"
)

var currencySymbols = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyGBP: "£",
	CurrencyEUR: "€",
	CurrencyAUD: "A$",
}

func (c Currency) Supported() bool {
	_, ok := currencySymbols[c]
	return ok
}

func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return "$"
}

// Format renders amount with two decimals, e.g. -£12.50.
func (c Currency) Format(amount decimal.Decimal) string {
	prefix := ""
	if amount.IsNegative() {
		prefix = "-"
	}
	return fmt.Sprintf("%s%s%s", prefix, c.Symbol(), amount.Abs().StringFixed(2))
}

// FormatShort renders amounts of 1000 or more as e.g. $1.5k.
func (c Currency) FormatShort(amount decimal.Decimal) string {
	if amount.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return fmt.Sprintf("%s%sk", c.Symbol(), amount.Div(decimal.NewFromInt(1000)).StringFixed(1))
	}
	return c.Symbol() + amount.Round(0).String()
}

type OnboardingSelections struct {
	Name                 string   `json:"name"`
	Situation            string   `json:"situation"`
	GoalType             GoalType `json:"goalType"`
	NotificationTime     string   `json:"notificationTime"`
	NotificationsEnabled bool     `json:"notificationsEnabled"`
}
