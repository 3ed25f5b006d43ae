package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/lshigami/Quolls/internal/service"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	assessmentService service.AssessmentService
}

func NewAssessmentController(assessmentService service.AssessmentService) *AssessmentController {
	return &AssessmentController{assessmentService: assessmentService}
}

// GetAllAssessments godoc
// @Summary (User) Get all available assessments
// @Description Retrieves summaries of all assessments open for attempts.
// @Tags User - Assessments
// @Produce json
// @Success 200 {array} dto.AssessmentSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assessments [get]
func (c *AssessmentController) GetAllAssessments(ctx *gin.Context) {
	assessments, err := c.assessmentService.GetAllAssessments()
	if err != nil {
		log.Error().Err(err).Msg("GetAllAssessments: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assessments)
}

// GetAssessmentDetails godoc
// @Summary (User) Get assessment details with questions
// @Description Retrieves an assessment and its questions. Answer keys are never included.
// @Tags User - Assessments
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Router /assessments/{assessment_id} [get]
func (c *AssessmentController) GetAssessmentDetails(ctx *gin.Context) {
	assessmentID, err := strconv.ParseUint(ctx.Param("assessment_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assessment ID format"})
		return
	}

	details, err := c.assessmentService.GetAssessmentDetails(uint(assessmentID))
	if err != nil {
		log.Warn().Err(err).Uint64("assessmentID", assessmentID).Msg("GetAssessmentDetails: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, details)
}
