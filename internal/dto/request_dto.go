package dto

// StartSessionRequest opens a new attempt at an assessment.
type StartSessionRequest struct {
	UserID uint `json:"user_id" binding:"required"` // Temporary, until auth middleware provides identity
}

// SubmitAnswerRequest submits (or resubmits) the answer for one question.
// Answer is the raw value for the question type: an option id for
// multiple_choice, "true"/"false" for true_false, free text for short_answer.
// TimeSpentSeconds is client-reported and used for analytics only.
type SubmitAnswerRequest struct {
	UserID           *uint  `json:"user_id"`
	QuestionID       uint   `json:"question_id" binding:"required"`
	Answer           string `json:"answer" binding:"required"`
	TimeSpentSeconds int    `json:"time_spent_seconds" binding:"omitempty,min=0"`
}

// FinalAnswerDTO is one answer of an optional final batch on completion.
type FinalAnswerDTO struct {
	QuestionID       uint   `json:"question_id" binding:"required"`
	Answer           string `json:"answer" binding:"required"`
	TimeSpentSeconds int    `json:"time_spent_seconds" binding:"omitempty,min=0"`
}

// CompleteSessionRequest finalizes a session, optionally flushing a last batch
// of answers before scoring.
type CompleteSessionRequest struct {
	UserID       *uint            `json:"user_id"`
	FinalAnswers []FinalAnswerDTO `json:"final_answers" binding:"omitempty,dive"`
}

// SessionActionRequest covers pause, resume and abandon.
type SessionActionRequest struct {
	UserID *uint `json:"user_id"`
}
