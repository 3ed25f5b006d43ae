package model

import (
	"time"

	"gorm.io/gorm"
)

type RetakePolicy string

const (
	RetakeImmediate RetakePolicy = "immediate"
	RetakeAfter24h  RetakePolicy = "after_24h"
	RetakeNever     RetakePolicy = "never"
)

// Assessment is the immutable definition a session runs against. Authoring
// happens through the admin API (or the Gemini generator); sessions never
// mutate it.
type Assessment struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `json:"title" gorm:"not null;uniqueIndex"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category" gorm:"index"`
	Difficulty  string     `json:"difficulty"` // "beginner", "intermediate", "advanced"
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`

	// Scoring settings
	TotalPoints          float64 `json:"total_points"`
	PassingScore         float64 `json:"passing_score" gorm:"not null"` // percent, inclusive boundary
	WeightingMethod      string  `json:"weighting_method" gorm:"default:'points'"`
	PartialCreditAllowed bool    `json:"partial_credit_allowed"`

	// Time constraints
	HasTimeLimit       bool `json:"has_time_limit"`
	TotalMinutes       int  `json:"total_minutes"`
	PerQuestionMinutes int  `json:"per_question_minutes"`

	// Attempt settings. MaxAttempts == 0 means unlimited.
	MaxAttempts  int          `json:"max_attempts"`
	RetakePolicy RetakePolicy `json:"retake_policy" gorm:"default:'immediate'"`
	ShowResults  bool         `json:"show_results"`
	AllowReview  bool         `json:"allow_review"`

	// Certification settings
	IssuesCertificate bool    `json:"issues_certificate"`
	RequiredScore     float64 `json:"required_score"` // percent

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuestionByID returns the question with the given id, or nil when the id is
// not part of this assessment.
func (a *Assessment) QuestionByID(questionID uint) *Question {
	for i := range a.Questions {
		if a.Questions[i].ID == questionID {
			return &a.Questions[i]
		}
	}
	return nil
}
