package model

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// Option is one selectable choice of a multiple_choice question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is discriminated by Type; only the answer-key fields of the
// matching variant are set. The evaluator switches exhaustively on Type and
// rejects anything it does not know.
type Question struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	AssessmentID uint         `json:"assessment_id" gorm:"not null;index"`
	Prompt       string       `json:"prompt" gorm:"type:text;not null"`
	Type         QuestionType `json:"type" gorm:"not null"`
	OrderIndex   int          `json:"order_index" gorm:"not null"`
	Points       float64      `json:"points" gorm:"not null"`
	SkillTags    []string     `json:"skill_tags" gorm:"serializer:json"`
	Explanation  string       `json:"explanation,omitempty" gorm:"type:text"`

	// multiple_choice
	Options         []Option `json:"options,omitempty" gorm:"serializer:json"`
	CorrectOptionID *string  `json:"correct_option_id,omitempty"`

	// true_false
	CorrectBoolean *bool `json:"correct_boolean,omitempty"`

	// short_answer
	CorrectText *string `json:"correct_text,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CorrectAnswerString renders the answer key as the snapshot stored alongside
// an evaluated answer. Empty when the variant's key field is missing.
func (q *Question) CorrectAnswerString() string {
	switch q.Type {
	case QuestionTypeMultipleChoice:
		if q.CorrectOptionID != nil {
			return *q.CorrectOptionID
		}
	case QuestionTypeTrueFalse:
		if q.CorrectBoolean != nil {
			return strconv.FormatBool(*q.CorrectBoolean)
		}
	case QuestionTypeShortAnswer:
		if q.CorrectText != nil {
			return *q.CorrectText
		}
	}
	return ""
}

// HasOption reports whether the given option id belongs to this question.
func (q *Question) HasOption(optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
