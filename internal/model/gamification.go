package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EarnedBadge struct {
	BadgeID  string    `db:"badge_id" json:"badgeId"`
	EarnedAt time.Time `db:"earned_at" json:"earnedAt"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// GamificationState is the in-memory view of streak, XP, score and badges.
type GamificationState struct {
	CurrentStreak     int           `json:"currentStreak"`
	LongestStreak     int           `json:"longestStreak"`
	LastActiveDate    string        `json:"lastActiveDate"`
	TotalXP           int           `json:"totalXp"`
	IndependenceScore int           `json:"independenceScore"`
	EarnedBadges      []EarnedBadge `json:"earnedBadges"`
}

func (s GamificationState) HasBadge(id string) bool {
	for _, b := range s.EarnedBadges {
		if b.BadgeID == id {
			return true
		}
	}
	return false
}

// BadgeContext is the aggregate snapshot badge rules read.
type BadgeContext struct {
	TotalSaved       decimal.Decimal `json:"totalSaved"`
	GoalsCount       int             `json:"goalsCount"`
	CompletedLessons int             `json:"completedLessons"`
	AdoptedSwaps     int             `json:"adoptedSwaps"`
	ReadMoments      int             `json:"readMoments"`
	HasShared        bool            `json:"hasShared"`
	CurrentStreak    int             `json:"currentStreak"`
	LongestStreak    int             `json:"longestStreak"`
}

type ScoreInput struct {
	CurrentStreak            int
	CompletedLessons         int
	GoalsWithPositiveSavings int
	TotalSaved               decimal.Decimal
	AdoptedSwaps             int
	EarnedBadges             int
}
