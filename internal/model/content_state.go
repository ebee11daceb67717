package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type LessonProgress struct {
	LessonID    string     `db:"lesson_id" json:"lessonId"`
	Level       int        `db:"level" json:"level"`
	IsCompleted bool       `db:"is_completed" json:"isCompleted"`
	XPEarned    int        `db:"xp_earned" json:"xpEarned"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt"`
	StartedAt   time.Time  `db:"started_at" json:"startedAt"`
}

type MomentState struct {
	MomentID  string     `db:"moment_id" json:"momentId"`
	IsRead    bool       `db:"is_read" json:"isRead"`
	IsSaved   bool       `db:"is_saved" json:"isSaved"`
	IsHelpful *bool      `db:"is_helpful" json:"isHelpful"`
	ReadAt    *time.Time `db:"read_at" json:"readAt"`
}

type SwapState struct {
	SwapID    string     `db:"swap_id" json:"swapId"`
	IsAdopted bool       `db:"is_adopted" json:"isAdopted"`
	AdoptedAt *time.Time `db:"adopted_at" json:"adoptedAt"`
}

const (
	ChallengeStatusActive    = "active"
	ChallengeStatusCompleted = "completed"
	ChallengeStatusFailed    = "failed"
)

// CheckIns is persisted as a JSON array.
type CheckIns []bool

func (c CheckIns) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]bool(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CheckIns) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = CheckIns{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("check_ins: unsupported type %T", src)
	}
	return json.Unmarshal(raw, (*[]bool)(c))
}

func (c CheckIns) Done() int {
	n := 0
	for _, ok := range c {
		if ok {
			n++
		}
	}
	return n
}

func (c CheckIns) AllDone() bool {
	return len(c) > 0 && c.Done() == len(c)
}

type ChallengeState struct {
	ID          string     `db:"id" json:"id"`
	ChallengeID string     `db:"challenge_id" json:"challengeId"`
	Status      string     `db:"status" json:"status"`
	CheckIns    CheckIns   `db:"check_ins" json:"checkIns"`
	StartedAt   time.Time  `db:"started_at" json:"startedAt"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt"`
}

func (c *ChallengeState) IsActive() bool {
	return c.Status == ChallengeStatusActive
}
