package model

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusPaused     SessionStatus = "paused"
	SessionStatusTimeout    SessionStatus = "timeout"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusAbandoned  SessionStatus = "abandoned"
)

// Terminal reports whether the status is final. Terminal sessions reject every
// further mutation.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionStatusCompleted, SessionStatusTimeout, SessionStatusAbandoned:
		return true
	}
	return false
}

// AssessmentSession is one user's attempt at one assessment. Version is the
// optimistic-concurrency token: every mutating update is guarded by the
// version the caller read, and bumps it by one. Sessions are never deleted;
// terminated ones stay behind as an audit record.
type AssessmentSession struct {
	ID           string `gorm:"primarykey;size:36" json:"id"`
	UserID       uint   `json:"user_id" gorm:"not null;index:idx_sessions_user_assessment"`
	AssessmentID uint   `json:"assessment_id" gorm:"not null;index:idx_sessions_user_assessment"`

	AttemptNumber int           `json:"attempt_number" gorm:"not null"`
	Status        SessionStatus `json:"status" gorm:"not null;default:'created';index"`

	StartTime                 time.Time  `json:"start_time"`
	LastActivityTime          time.Time  `json:"last_activity_time"`
	PauseStartedAt            *time.Time `json:"pause_started_at,omitempty"`
	TotalPauseDurationSeconds int        `json:"total_pause_duration_seconds"`
	EndedAt                   *time.Time `json:"ended_at,omitempty"`

	Version int `json:"version" gorm:"not null;default:1"`

	Answers []SessionAnswer `json:"answers,omitempty" gorm:"foreignKey:SessionID"`
	Result  *SessionResult  `json:"result,omitempty" gorm:"foreignKey:SessionID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnswerFor returns the stored answer for a question, or nil when the question
// has not been answered yet. At most one answer exists per question.
func (s *AssessmentSession) AnswerFor(questionID uint) *SessionAnswer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

// SessionAnswer is the latest evaluated answer for one question of a session.
// Resubmission overwrites in place and bumps SubmissionCount.
// ClientTimeSpentSeconds is whatever the client reported; it is kept for
// analytics and never feeds scoring or timeout decisions.
type SessionAnswer struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	SessionID  string `json:"session_id" gorm:"size:36;not null;uniqueIndex:idx_answers_session_question"`
	QuestionID uint   `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_session_question"`

	UserAnswer            string  `json:"user_answer" gorm:"type:text;not null"`
	CorrectAnswerSnapshot string  `json:"correct_answer_snapshot" gorm:"type:text"`
	IsCorrect             bool    `json:"is_correct"`
	PointsEarned          float64 `json:"points_earned"`
	MaxPoints             float64 `json:"max_points"`

	ClientTimeSpentSeconds int `json:"client_time_spent_seconds"`
	SubmissionCount        int `json:"submission_count" gorm:"not null;default:1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
