package model

import (
	"time"
)

// SkillScore is the per-skill slice of a result, computed with the same
// percent formula as the overall score.
type SkillScore struct {
	PointsEarned   float64 `json:"points_earned"`
	PointsPossible float64 `json:"points_possible"`
	Percent        float64 `json:"percent"`
}

// SessionResult is written exactly once, when a session reaches completed or
// timeout. Recomputing from the stored answers must reproduce it bit-for-bit.
type SessionResult struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	SessionID string `json:"session_id" gorm:"size:36;not null;uniqueIndex"`

	FinalScorePercent float64 `json:"final_score_percent"`
	PointsEarned      float64 `json:"points_earned"`
	PointsPossible    float64 `json:"points_possible"`
	Passed            bool    `json:"passed"`
	Grade             string  `json:"grade"` // A, B, C, D, F

	SkillBreakdown map[string]SkillScore `json:"skill_breakdown" gorm:"serializer:json"`

	TotalTimeSpentSeconds int  `json:"total_time_spent_seconds"`
	CertificateEligible   bool `json:"certificate_eligible"`

	CreatedAt time.Time `json:"created_at"`
}
