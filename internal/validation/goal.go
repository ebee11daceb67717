package validation

import (
	"github.com/mumvest/mumvest/internal/model"
)

func ValidateGoalType(t model.GoalType) error {
	if !t.Valid() {
		return invalid("unknown goal type %q", t)
	}
	return nil
}

func ValidateReminderFrequency(f model.ReminderFrequency) error {
	if !f.Valid() {
		return invalid("unknown reminder frequency %q", f)
	}
	return nil
}

// ValidateReminderDay checks day against the frequency: weekday 0-6 for
// weekly and fortnightly, day of month 1-31 for monthly, none for daily.
func ValidateReminderDay(f model.ReminderFrequency, day *int) error {
	if day == nil {
		return nil
	}
	switch f {
	case model.ReminderDaily:
		return invalid("daily reminders take no day")
	case model.ReminderWeekly, model.ReminderFortnightly:
		if *day < 0 || *day > 6 {
			return invalid("reminder weekday must be 0-6")
		}
	case model.ReminderMonthly:
		if *day < 1 || *day > 31 {
			return invalid("reminder day of month must be 1-31")
		}
	}
	return nil
}

// ValidateMethod accepts an empty method or one of the known savings methods.
func ValidateMethod(method string) error {
	if method == "" {
		return nil
	}
	if _, ok := model.LookupSavingsMethod(method); !ok {
		return invalid("unknown savings method %q", method)
	}
	return nil
}

func ValidateNote(note string) error {
	if len([]rune(note)) > 500 {
		return invalid("note is too long (max 500 characters)")
	}
	return nil
}
