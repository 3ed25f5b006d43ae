package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/lshigami/Quolls/internal/model"
	"github.com/lshigami/Quolls/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AssessmentService covers definition authoring (admin) and browsing (user).
// User-facing DTOs never carry the answer key.
type AssessmentService interface {
	CreateAssessment(req dto.AssessmentCreateDTO) (*dto.AssessmentDetailDTO, error)
	GetAllAssessments() ([]dto.AssessmentSummaryDTO, error)
	GetAssessmentDetails(id uint) (*dto.AssessmentDetailDTO, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
}

func NewAssessmentService(assessmentRepo repository.AssessmentRepository) AssessmentService {
	return &assessmentService{assessmentRepo: assessmentRepo}
}

func (s *assessmentService) CreateAssessment(req dto.AssessmentCreateDTO) (*dto.AssessmentDetailDTO, error) {
	if req.HasTimeLimit && req.TotalMinutes <= 0 {
		return nil, apperror.Validationf("a time-limited assessment requires total_minutes > 0")
	}
	if req.IssuesCertificate && req.RequiredScore <= 0 {
		return nil, apperror.Validationf("a certificate-issuing assessment requires required_score > 0")
	}

	orderSeen := make(map[int]bool)
	questions := make([]model.Question, 0, len(req.Questions))
	var totalPoints float64

	for _, qDto := range req.Questions {
		if orderSeen[qDto.OrderIndex] {
			return nil, apperror.Validationf("duplicate order_index %d in questions", qDto.OrderIndex)
		}
		orderSeen[qDto.OrderIndex] = true

		question, err := buildQuestion(qDto)
		if err != nil {
			return nil, err
		}
		totalPoints += question.Points
		questions = append(questions, *question)
	}

	retakePolicy := model.RetakePolicy(req.RetakePolicy)
	if req.RetakePolicy == "" {
		retakePolicy = model.RetakeImmediate
	}
	weighting := req.WeightingMethod
	if weighting == "" {
		weighting = "points"
	}

	assessment := model.Assessment{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Difficulty:           req.Difficulty,
		Questions:            questions,
		TotalPoints:          totalPoints,
		PassingScore:         req.PassingScore,
		WeightingMethod:      weighting,
		PartialCreditAllowed: req.PartialCreditAllowed,
		HasTimeLimit:         req.HasTimeLimit,
		TotalMinutes:         req.TotalMinutes,
		PerQuestionMinutes:   req.PerQuestionMinutes,
		MaxAttempts:          req.MaxAttempts,
		RetakePolicy:         retakePolicy,
		ShowResults:          req.ShowResults,
		AllowReview:          req.AllowReview,
		IssuesCertificate:    req.IssuesCertificate,
		RequiredScore:        req.RequiredScore,
	}

	if err := s.assessmentRepo.Create(&assessment); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create assessment")
		return nil, fmt.Errorf("database error creating assessment: %w", err)
	}

	created, err := s.assessmentRepo.FindByIDWithQuestions(assessment.ID)
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessment.ID).Msg("Failed to reload created assessment")
		created = &assessment
	}
	detail := toAssessmentDetailDTO(created)
	return &detail, nil
}

// buildQuestion validates the per-type answer key and converts the DTO.
func buildQuestion(qDto dto.QuestionCreateDTO) (*model.Question, error) {
	question := model.Question{
		Prompt:      qDto.Prompt,
		Type:        model.QuestionType(qDto.Type),
		OrderIndex:  qDto.OrderIndex,
		Points:      qDto.Points,
		SkillTags:   qDto.SkillTags,
		Explanation: qDto.Explanation,
	}

	switch question.Type {
	case model.QuestionTypeMultipleChoice:
		if len(qDto.Options) < 2 {
			return nil, apperror.Validationf("multiple_choice question (order %d) requires at least 2 options", qDto.OrderIndex)
		}
		if qDto.CorrectOptionID == nil || *qDto.CorrectOptionID == "" {
			return nil, apperror.Validationf("multiple_choice question (order %d) requires correct_option_id", qDto.OrderIndex)
		}
		optionIDs := make(map[string]bool, len(qDto.Options))
		for _, opt := range qDto.Options {
			if optionIDs[opt.ID] {
				return nil, apperror.Validationf("duplicate option id %q in question (order %d)", opt.ID, qDto.OrderIndex)
			}
			optionIDs[opt.ID] = true
			question.Options = append(question.Options, model.Option{ID: opt.ID, Text: opt.Text})
		}
		if !optionIDs[*qDto.CorrectOptionID] {
			return nil, apperror.Validationf("correct_option_id %q is not among the options of question (order %d)", *qDto.CorrectOptionID, qDto.OrderIndex)
		}
		question.CorrectOptionID = qDto.CorrectOptionID

	case model.QuestionTypeTrueFalse:
		if qDto.CorrectBoolean == nil {
			return nil, apperror.Validationf("true_false question (order %d) requires correct_boolean", qDto.OrderIndex)
		}
		question.CorrectBoolean = qDto.CorrectBoolean

	case model.QuestionTypeShortAnswer:
		if qDto.CorrectText == nil || *qDto.CorrectText == "" {
			return nil, apperror.Validationf("short_answer question (order %d) requires correct_text", qDto.OrderIndex)
		}
		question.CorrectText = qDto.CorrectText

	default:
		return nil, apperror.Validationf("unknown question type %q (order %d)", qDto.Type, qDto.OrderIndex)
	}

	return &question, nil
}

func (s *assessmentService) GetAllAssessments() ([]dto.AssessmentSummaryDTO, error) {
	withCount, err := s.assessmentRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list assessments")
		return nil, fmt.Errorf("error fetching assessments: %w", err)
	}

	dtos := make([]dto.AssessmentSummaryDTO, 0, len(withCount))
	for _, awc := range withCount {
		dtos = append(dtos, dto.AssessmentSummaryDTO{
			ID:            awc.Assessment.ID,
			Title:         awc.Assessment.Title,
			Description:   awc.Assessment.Description,
			Category:      awc.Assessment.Category,
			Difficulty:    awc.Assessment.Difficulty,
			QuestionCount: awc.QuestionCount,
			TotalPoints:   awc.Assessment.TotalPoints,
			PassingScore:  awc.Assessment.PassingScore,
			HasTimeLimit:  awc.Assessment.HasTimeLimit,
			TotalMinutes:  awc.Assessment.TotalMinutes,
			MaxAttempts:   awc.Assessment.MaxAttempts,
			CreatedAt:     awc.Assessment.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *assessmentService) GetAssessmentDetails(id uint) (*dto.AssessmentDetailDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("assessment not found with ID %d", id)
		}
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to load assessment details")
		return nil, fmt.Errorf("error loading assessment %d: %w", id, err)
	}
	detail := toAssessmentDetailDTO(assessment)
	return &detail, nil
}

// toAssessmentDetailDTO strips the answer key from the user-facing view.
func toAssessmentDetailDTO(assessment *model.Assessment) dto.AssessmentDetailDTO {
	var detail dto.AssessmentDetailDTO
	if err := copier.Copy(&detail, assessment); err != nil {
		log.Error().Err(err).Msg("Failed to copy assessment to DTO")
	}
	detail.RetakePolicy = string(assessment.RetakePolicy)

	detail.Questions = make([]dto.QuestionResponseDTO, 0, len(assessment.Questions))
	for i := range assessment.Questions {
		q := &assessment.Questions[i]
		qDto := dto.QuestionResponseDTO{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Type:       string(q.Type),
			OrderIndex: q.OrderIndex,
			Points:     q.Points,
			SkillTags:  q.SkillTags,
		}
		for _, opt := range q.Options {
			qDto.Options = append(qDto.Options, dto.OptionResponseDTO{ID: opt.ID, Text: opt.Text})
		}
		detail.Questions = append(detail.Questions, qDto)
	}
	return detail
}
