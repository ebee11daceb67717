package model

import "github.com/shopspring/decimal"

type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type MethodTotal struct {
	Method string          `json:"method"`
	Label  string          `json:"label"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

type GoalTotal struct {
	GoalID string          `json:"goalId"`
	Name   string          `json:"name"`
	Emoji  string          `json:"emoji"`
	Total  decimal.Decimal `json:"total"`
}

type SavingsBreakdown struct {
	ByGoal   []GoalTotal   `json:"byGoal"`
	ByMethod []MethodTotal `json:"byMethod"`
}

type Insights struct {
	MonthlySavings   []MonthlyTotal  `json:"monthlySavings"`
	TotalSaved       decimal.Decimal `json:"totalSaved"`
	AvgMonthly       decimal.Decimal `json:"avgMonthly"`
	BestMonth        *MonthlyTotal   `json:"bestMonth"`
	TopMethod        string          `json:"topMethod"`
	ProjectedAnnual  decimal.Decimal `json:"projectedAnnual"`
	SwapImpact       decimal.Decimal `json:"swapImpact"`
	Trend            float64         `json:"trend"`
	CompletedGoals   int             `json:"completedGoals"`
	AdoptedSwapCount int             `json:"adoptedSwapCount"`
}
