package model

import "time"

// Snapshot is the portable export of everything the user owns.
type Snapshot struct {
	ExportedAt   time.Time         `json:"exportedAt"`
	Profile      *Profile          `json:"profile,omitempty"`
	Goals        []*Goal           `json:"goals"`
	Entries      []*SavingsEntry   `json:"entries"`
	Gamification GamificationState `json:"gamification"`
	Lessons      []*LessonProgress `json:"lessons"`
	Challenges   []*ChallengeState `json:"challenges"`
}
