package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Quolls/config"
	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeneratorService drafts a complete assessment definition with Gemini and
// persists it through the regular authoring path, so generated content passes
// the exact same validation as hand-written content.
type GeneratorService interface {
	GenerateAssessment(ctx context.Context, req dto.GenerateAssessmentRequest) (*dto.AssessmentDetailDTO, error)
}

type generatorService struct {
	client            *genai.GenerativeModel
	assessmentService AssessmentService
}

func NewGeneratorService(cfg *config.Config, assessmentService AssessmentService) (GeneratorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeneratorService will be non-functional.")
		return &generatorService{assessmentService: assessmentService}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.ResponseMIMEType = "application/json"
	return &generatorService{client: model, assessmentService: assessmentService}, nil
}

// generatedQuestion mirrors the JSON shape requested from the model.
type generatedQuestion struct {
	Prompt          string            `json:"prompt"`
	Type            string            `json:"type"`
	Points          float64           `json:"points"`
	SkillTags       []string          `json:"skill_tags"`
	Explanation     string            `json:"explanation"`
	Options         []generatedOption `json:"options"`
	CorrectOptionID *string           `json:"correct_option_id"`
	CorrectBoolean  *bool             `json:"correct_boolean"`
	CorrectText     *string           `json:"correct_text"`
}

type generatedOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (s *generatorService) GenerateAssessment(ctx context.Context, req dto.GenerateAssessmentRequest) (*dto.AssessmentDetailDTO, error) {
	if s.client == nil {
		return nil, apperror.Internalf("assessment generation is unavailable: Gemini API key not configured")
	}

	prompt := buildGenerationPrompt(req)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("Gemini generation request failed")
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, apperror.Internalf("gemini returned an empty response")
	}

	raw, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, apperror.Internalf("gemini returned a non-text response part")
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &generated); err != nil {
		log.Error().Err(err).Str("raw", string(raw)).Msg("Failed to parse generated questions")
		return nil, fmt.Errorf("failed to parse generated questions: %w", err)
	}
	if len(generated) == 0 {
		return nil, apperror.Internalf("gemini generated no questions")
	}

	createReq := dto.AssessmentCreateDTO{
		Title:        fmt.Sprintf("%s Assessment", req.Topic),
		Description:  fmt.Sprintf("Auto-generated assessment on %s", req.Topic),
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		PassingScore: 70,
		ShowResults:  true,
		AllowReview:  true,
	}
	for i, gq := range generated {
		qDto := dto.QuestionCreateDTO{
			Prompt:          gq.Prompt,
			Type:            gq.Type,
			OrderIndex:      i + 1,
			Points:          gq.Points,
			SkillTags:       gq.SkillTags,
			Explanation:     gq.Explanation,
			CorrectOptionID: gq.CorrectOptionID,
			CorrectBoolean:  gq.CorrectBoolean,
			CorrectText:     gq.CorrectText,
		}
		if qDto.Points <= 0 {
			qDto.Points = 10
		}
		for _, opt := range gq.Options {
			qDto.Options = append(qDto.Options, dto.OptionCreateDTO{ID: opt.ID, Text: opt.Text})
		}
		createReq.Questions = append(createReq.Questions, qDto)
	}

	// The authoring path validates the draft; a malformed generation surfaces
	// as a Validation error instead of a half-created definition.
	return s.assessmentService.CreateAssessment(createReq)
}

func buildGenerationPrompt(req dto.GenerateAssessmentRequest) string {
	var sb strings.Builder
	sb.WriteString("Generate quiz questions as a JSON array. Each element must have: ")
	sb.WriteString(`"prompt" (string), "type" (one of "multiple_choice", "true_false", "short_answer"), `)
	sb.WriteString(`"points" (number), "skill_tags" (array of short strings), "explanation" (string). `)
	sb.WriteString(`For multiple_choice include "options" (array of {"id","text"}, ids "a"-"d") and "correct_option_id". `)
	sb.WriteString(`For true_false include "correct_boolean". For short_answer include "correct_text" (one or two words). `)
	fmt.Fprintf(&sb, "Topic: %s. ", req.Topic)
	if req.Difficulty != "" {
		fmt.Fprintf(&sb, "Difficulty: %s. ", req.Difficulty)
	}
	fmt.Fprintf(&sb, "Number of questions: %d. ", req.QuestionCount)
	sb.WriteString("Respond with the JSON array only, no surrounding prose.")
	return sb.String()
}
