package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/lshigami/Quolls/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminAssessmentController struct {
	assessmentService service.AssessmentService
	generatorService  service.GeneratorService
}

func NewAdminAssessmentController(assessmentService service.AssessmentService, generatorService service.GeneratorService) *AdminAssessmentController {
	return &AdminAssessmentController{
		assessmentService: assessmentService,
		generatorService:  generatorService,
	}
}

// CreateAssessment godoc
// @Summary (Admin) Create a new assessment with questions
// @Description Creates an assessment, its questions, and its scoring settings in one call.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Param assessment_data body dto.AssessmentCreateDTO true "Assessment definition"
// @Success 201 {object} dto.AssessmentDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/assessments [post]
func (c *AdminAssessmentController) CreateAssessment(ctx *gin.Context) {
	var req dto.AssessmentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateAssessment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	created, err := c.assessmentService.CreateAssessment(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateAssessment: service error")
		ctx.JSON(apperror.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// GenerateAssessment godoc
// @Summary (Admin) Generate an assessment draft with AI
// @Description Generates questions for a topic via Gemini and saves them as a regular assessment.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Param generate_data body dto.GenerateAssessmentRequest true "Topic and question count"
// @Success 201 {object} dto.AssessmentDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Generation failed"
// @Router /admin/assessments/generate [post]
func (c *AdminAssessmentController) GenerateAssessment(ctx *gin.Context) {
	var req dto.GenerateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GenerateAssessment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	created, err := c.generatorService.GenerateAssessment(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("GenerateAssessment: service error")
		ctx.JSON(apperror.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}
