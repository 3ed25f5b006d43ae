package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// OptionResponseDTO never carries correctness; the answer key stays server-side.
type OptionResponseDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponseDTO is the user-facing view of a question. Answer-key fields
// are deliberately absent.
type QuestionResponseDTO struct {
	ID         uint                `json:"id"`
	Prompt     string              `json:"prompt"`
	Type       string              `json:"type"`
	OrderIndex int                 `json:"order_index"`
	Points     float64             `json:"points"`
	SkillTags  []string            `json:"skill_tags,omitempty"`
	Options    []OptionResponseDTO `json:"options,omitempty"`
}

// AssessmentSummaryDTO is used for listing assessments available to users.
type AssessmentSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"`
	QuestionCount int       `json:"question_count"`
	TotalPoints   float64   `json:"total_points"`
	PassingScore  float64   `json:"passing_score"`
	HasTimeLimit  bool      `json:"has_time_limit"`
	TotalMinutes  int       `json:"total_minutes,omitempty"`
	MaxAttempts   int       `json:"max_attempts"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssessmentDetailDTO is the full user-facing definition.
type AssessmentDetailDTO struct {
	ID                uint                  `json:"id"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Category          string                `json:"category,omitempty"`
	Difficulty        string                `json:"difficulty,omitempty"`
	TotalPoints       float64               `json:"total_points"`
	PassingScore      float64               `json:"passing_score"`
	HasTimeLimit      bool                  `json:"has_time_limit"`
	TotalMinutes      int                   `json:"total_minutes,omitempty"`
	MaxAttempts       int                   `json:"max_attempts"`
	RetakePolicy      string                `json:"retake_policy"`
	ShowResults       bool                  `json:"show_results"`
	AllowReview       bool                  `json:"allow_review"`
	IssuesCertificate bool                  `json:"issues_certificate"`
	RequiredScore     float64               `json:"required_score,omitempty"`
	Questions         []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// SessionSummaryDTO is the state snapshot returned by the mutating calls.
type SessionSummaryDTO struct {
	SessionID                 string     `json:"session_id"`
	AssessmentID              uint       `json:"assessment_id"`
	AssessmentTitle           string     `json:"assessment_title,omitempty"`
	UserID                    uint       `json:"user_id"`
	AttemptNumber             int        `json:"attempt_number"`
	Status                    string     `json:"status"`
	StartTime                 time.Time  `json:"start_time"`
	LastActivityTime          time.Time  `json:"last_activity_time"`
	TotalPauseDurationSeconds int        `json:"total_pause_duration_seconds"`
	EndedAt                   *time.Time `json:"ended_at,omitempty"`
	AnsweredCount             int        `json:"answered_count"`
	QuestionCount             int        `json:"question_count"`
}

// SessionStatusDTO extends the summary with live timing and, on terminal
// sessions, the final result.
type SessionStatusDTO struct {
	SessionSummaryDTO
	ElapsedSeconds       int               `json:"elapsed_seconds"`
	TimeRemainingSeconds *int              `json:"time_remaining_seconds,omitempty"`
	Result               *SessionResultDTO `json:"result,omitempty"`
}

// ProgressDTO reports how far through the question set a session is.
type ProgressDTO struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// SubmitAnswerResponseDTO acknowledges one answer submission. IsCorrect and
// PointsEarned are only revealed when the assessment's show_results setting
// allows it; either one would leak the outcome.
type SubmitAnswerResponseDTO struct {
	QuestionID           uint        `json:"question_id"`
	IsCorrect            *bool       `json:"is_correct,omitempty"`
	PointsEarned         *float64    `json:"points_earned,omitempty"`
	SubmissionCount      int         `json:"submission_count"`
	Progress             ProgressDTO `json:"progress"`
	TimeRemainingSeconds *int        `json:"time_remaining_seconds,omitempty"`
}

type SkillScoreDTO struct {
	PointsEarned   float64 `json:"points_earned"`
	PointsPossible float64 `json:"points_possible"`
	Percent        float64 `json:"percent"`
}

// SessionResultDTO is the final, immutable outcome of a session.
type SessionResultDTO struct {
	SessionID             string                   `json:"session_id"`
	FinalScorePercent     float64                  `json:"final_score_percent"`
	PointsEarned          float64                  `json:"points_earned"`
	PointsPossible        float64                  `json:"points_possible"`
	Passed                bool                     `json:"passed"`
	Grade                 string                   `json:"grade"`
	SkillBreakdown        map[string]SkillScoreDTO `json:"skill_breakdown,omitempty"`
	TotalTimeSpentSeconds int                      `json:"total_time_spent_seconds"`
	CertificateEligible   bool                     `json:"certificate_eligible"`
}

// CertificateDTO lists an issued certificate.
type CertificateDTO struct {
	CertificateNumber string    `json:"certificate_number"`
	AssessmentID      uint      `json:"assessment_id"`
	SessionID         string    `json:"session_id"`
	ScorePercent      float64   `json:"score_percent"`
	IssuedAt          time.Time `json:"issued_at"`
}
