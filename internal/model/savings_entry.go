package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingsEntry struct {
	ID        string          `db:"id" json:"id"`
	GoalID    string          `db:"goal_id" json:"goalId"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Method    string          `db:"method" json:"method"`
	Note      string          `db:"note" json:"note"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

const MethodOther = "other"

type SavingsMethod struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

var SavingsMethods = []SavingsMethod{
	{"cooked_at_home", "Cooked at home", "🍳"},
	{"cheaper_alternative", "Cheaper alternative", "💡"},
	{"skipped_purchase", "Skipped a purchase", "🚫"},
	{"found_deal", "Found a deal", "🏷️"},
	{"cancelled_subscription", "Cancelled subscription", "📵"},
	{"side_income", "Side income", "💪"},
	{MethodOther, "Other", "✨"},
}

func LookupSavingsMethod(id string) (SavingsMethod, bool) {
	for _, m := range SavingsMethods {
		if m.ID == id {
			return m, true
		}
	}
	return SavingsMethod{}, false
}

type WeeklySummary struct {
	TotalSaved         decimal.Decimal `json:"totalSaved"`
	EntryCount         int             `json:"entryCount"`
	TopGoal            string          `json:"topGoal"`
	ComparedToLastWeek float64         `json:"comparedToLastWeek"`
}
