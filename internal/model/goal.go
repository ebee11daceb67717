package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type GoalType string

const (
	GoalTypeHoliday   GoalType = "holiday"
	GoalTypeEmergency GoalType = "emergency"
	GoalTypeEducation GoalType = "education"
	GoalTypeHome      GoalType = "home"
	GoalTypeCar       GoalType = "car"
	GoalTypeBaby      GoalType = "baby"
	GoalTypeChristmas GoalType = "christmas"
	GoalTypeCustom    GoalType = "custom"
)

type GoalPreset struct {
	Type  GoalType `json:"type"`
	Emoji string   `json:"emoji"`
	Label string   `json:"label"`
}

var GoalPresets = []GoalPreset{
	{GoalTypeHoliday, "✈️", "Holiday Fund"},
	{GoalTypeEmergency, "🛡️", "Emergency Fund"},
	{GoalTypeEducation, "📚", "Education"},
	{GoalTypeHome, "🏠", "Home Deposit"},
	{GoalTypeCar, "🚗", "Car Fund"},
	{GoalTypeBaby, "👶", "Baby Fund"},
	{GoalTypeChristmas, "🎄", "Christmas Fund"},
	{GoalTypeCustom, "🎯", "Custom Goal"},
}

func (t GoalType) Valid() bool {
	_, ok := t.preset()
	return ok
}

// Emoji is the preset emoji for the type, used when a goal is created without one.
func (t GoalType) Emoji() string {
	p, _ := t.preset()
	return p.Emoji
}

func (t GoalType) preset() (GoalPreset, bool) {
	for _, p := range GoalPresets {
		if p.Type == t {
			return p, true
		}
	}
	return GoalPreset{}, false
}

type ReminderFrequency string

const (
	ReminderDaily       ReminderFrequency = "daily"
	ReminderWeekly      ReminderFrequency = "weekly"
	ReminderFortnightly ReminderFrequency = "fortnightly"
	ReminderMonthly     ReminderFrequency = "monthly"
)

func (f ReminderFrequency) Valid() bool {
	switch f {
	case ReminderDaily, ReminderWeekly, ReminderFortnightly, ReminderMonthly:
		return true
	}
	return false
}

type Goal struct {
	ID                string            `db:"id" json:"id"`
	Name              string            `db:"name" json:"name"`
	Emoji             string            `db:"emoji" json:"emoji"`
	Type              GoalType          `db:"goal_type" json:"type"`
	TargetAmount      decimal.Decimal   `db:"target_amount" json:"targetAmount"`
	TargetDate        *time.Time        `db:"target_date" json:"targetDate"`
	ReminderFrequency ReminderFrequency `db:"reminder_frequency" json:"reminderFrequency"`
	ReminderDay       *int              `db:"reminder_day" json:"reminderDay"`
	IsArchived        bool              `db:"is_archived" json:"isArchived"`
	IsCompleted       bool              `db:"is_completed" json:"isCompleted"`
	CompletedAt       *time.Time        `db:"completed_at" json:"completedAt"`
	CreatedAt         time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updatedAt"`
}

// IsActive reports whether the goal counts toward the free tier cap.
func (g *Goal) IsActive() bool {
	return !g.IsArchived && !g.IsCompleted
}

type GoalProgress struct {
	Saved      decimal.Decimal `json:"saved"`
	Target     decimal.Decimal `json:"target"`
	Percentage float64         `json:"percentage"`
}

var hundred = decimal.NewFromInt(100)

// NewGoalProgress clamps the percentage to [0, 100].
func NewGoalProgress(saved, target decimal.Decimal) GoalProgress {
	p := GoalProgress{Saved: saved, Target: target}
	if !target.IsPositive() {
		return p
	}

	pct := saved.Div(target).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	if pct.IsNegative() {
		pct = decimal.Zero
	}
	p.Percentage = pct.InexactFloat64()
	return p
}

// Reached reports whether saved meets or exceeds the target.
func (p GoalProgress) Reached() bool {
	return p.Target.IsPositive() && p.Saved.GreaterThanOrEqual(p.Target)
}

type GoalWithProgress struct {
	*Goal
	Progress GoalProgress `json:"progress"`
}
