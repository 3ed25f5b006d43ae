package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/lshigami/Quolls/internal/service"
	"github.com/rs/zerolog/log"
)

type CertificateController struct {
	certificateService service.CertificateService
}

func NewCertificateController(certificateService service.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// GetMyCertificates godoc
// @Summary (User) List certificates earned by a user
// @Tags User - Certificates
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.CertificateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing User ID"
// @Router /my-certificates [get]
func (c *CertificateController) GetMyCertificates(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing User ID in query"})
		return
	}

	certificates, err := c.certificateService.GetUserCertificates(uint(userID))
	if err != nil {
		log.Error().Err(err).Uint64("userID", userID).Msg("GetMyCertificates: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, certificates)
}
