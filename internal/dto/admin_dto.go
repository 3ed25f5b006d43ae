package dto

// OptionCreateDTO is one choice of a multiple_choice question.
type OptionCreateDTO struct {
	ID   string `json:"id" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// QuestionCreateDTO is used within AssessmentCreateDTO. Only the answer-key
// fields matching Type are consulted; the service validates the variant.
type QuestionCreateDTO struct {
	Prompt      string   `json:"prompt" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=multiple_choice true_false short_answer"`
	OrderIndex  int      `json:"order_index" binding:"required,min=1"`
	Points      float64  `json:"points" binding:"required,gt=0"`
	SkillTags   []string `json:"skill_tags"`
	Explanation string   `json:"explanation"`

	Options         []OptionCreateDTO `json:"options" binding:"omitempty,dive"`
	CorrectOptionID *string           `json:"correct_option_id"`
	CorrectBoolean  *bool             `json:"correct_boolean"`
	CorrectText     *string           `json:"correct_text"`
}

// AssessmentCreateDTO is for admin to create a complete assessment definition.
type AssessmentCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`

	PassingScore         float64 `json:"passing_score" binding:"required,gte=0,lte=100"`
	WeightingMethod      string  `json:"weighting_method" binding:"omitempty,oneof=points equal"`
	PartialCreditAllowed bool    `json:"partial_credit_allowed"`

	HasTimeLimit       bool `json:"has_time_limit"`
	TotalMinutes       int  `json:"total_minutes" binding:"omitempty,min=1"`
	PerQuestionMinutes int  `json:"per_question_minutes" binding:"omitempty,min=1"`

	MaxAttempts  int    `json:"max_attempts" binding:"omitempty,min=0"`
	RetakePolicy string `json:"retake_policy" binding:"omitempty,oneof=immediate after_24h never"`
	ShowResults  bool   `json:"show_results"`
	AllowReview  bool   `json:"allow_review"`

	IssuesCertificate bool    `json:"issues_certificate"`
	RequiredScore     float64 `json:"required_score" binding:"omitempty,gte=0,lte=100"`

	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// GenerateAssessmentRequest asks the Gemini generator for a draft assessment.
type GenerateAssessmentRequest struct {
	Topic         string `json:"topic" binding:"required"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	QuestionCount int    `json:"question_count" binding:"required,min=1,max=30"`
}
