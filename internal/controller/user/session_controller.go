package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/lshigami/Quolls/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService service.SessionService
}

func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

func respondError(ctx *gin.Context, err error) {
	ctx.JSON(apperror.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
}

// optionalUserID reads the temporary user_id query param used until auth
// middleware provides identity.
func optionalUserID(ctx *gin.Context) (*uint, bool) {
	raw := ctx.Query("user_id")
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid User ID format in query"})
		return nil, false
	}
	uid := uint(val)
	return &uid, true
}

// StartSession godoc
// @Summary (User) Start a new assessment session
// @Description Opens a new attempt, enforcing max-attempts and the retake policy.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param start_data body dto.StartSessionRequest true "User starting the session"
// @Success 201 {object} dto.SessionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt limit or retake policy violated"
// @Router /assessments/{assessment_id}/sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	assessmentID, err := strconv.ParseUint(ctx.Param("assessment_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assessment ID format"})
		return
	}

	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartSession: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	summary, err := c.sessionService.StartSession(uint(assessmentID), req)
	if err != nil {
		log.Warn().Err(err).Uint64("assessmentID", assessmentID).Msg("StartSession: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, summary)
}

// SubmitAnswer godoc
// @Summary (User) Submit an answer for one question
// @Description Evaluates and stores the answer. Resubmission overwrites while the session is active.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer_data body dto.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} dto.SubmitAnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid answer"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session terminal, paused, or concurrently modified"
// @Failure 410 {object} dto.ErrorResponse "Session timed out"
// @Router /sessions/{session_id}/answers [post]
func (c *SessionController) SubmitAnswer(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.sessionService.SubmitAnswer(sessionID, req)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("SubmitAnswer: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PauseSession godoc
// @Summary (User) Pause an in-progress session
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param action_data body dto.SessionActionRequest false "Acting user"
// @Success 200 {object} dto.SessionSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{session_id}/pause [post]
func (c *SessionController) PauseSession(ctx *gin.Context) {
	c.sessionAction(ctx, c.sessionService.PauseSession)
}

// ResumeSession godoc
// @Summary (User) Resume a paused session
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param action_data body dto.SessionActionRequest false "Acting user"
// @Success 200 {object} dto.SessionSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not paused"
// @Router /sessions/{session_id}/resume [post]
func (c *SessionController) ResumeSession(ctx *gin.Context) {
	c.sessionAction(ctx, c.sessionService.ResumeSession)
}

// AbandonSession godoc
// @Summary (User) Abandon a session explicitly
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param action_data body dto.SessionActionRequest false "Acting user"
// @Success 200 {object} dto.SessionSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already terminal"
// @Router /sessions/{session_id}/abandon [post]
func (c *SessionController) AbandonSession(ctx *gin.Context) {
	c.sessionAction(ctx, c.sessionService.AbandonSession)
}

func (c *SessionController) sessionAction(ctx *gin.Context, action func(string, *uint) (*dto.SessionSummaryDTO, error)) {
	sessionID := ctx.Param("session_id")

	var req dto.SessionActionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
			return
		}
	}

	summary, err := action(sessionID, req.UserID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("Session action: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// CompleteSession godoc
// @Summary (User) Complete a session and receive the final result
// @Description Optionally flushes a final batch of answers, then scores the session once.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param complete_data body dto.CompleteSessionRequest false "Optional final answers"
// @Success 200 {object} dto.SessionResultDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already terminal"
// @Failure 410 {object} dto.ErrorResponse "Session timed out"
// @Router /sessions/{session_id}/complete [post]
func (c *SessionController) CompleteSession(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	var req dto.CompleteSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
			return
		}
	}

	result, err := c.sessionService.CompleteSession(sessionID, req)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("CompleteSession: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetSessionStatus godoc
// @Summary (User) Get the current status of a session
// @Description Returns the session snapshot with elapsed/remaining time. A session past its limit is finalized as timeout by this call.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param user_id query int false "Acting user (ownership check)"
// @Success 200 {object} dto.SessionStatusDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSessionStatus(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	userID, ok := optionalUserID(ctx)
	if !ok {
		return
	}

	status, err := c.sessionService.GetSessionStatus(sessionID, userID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("GetSessionStatus: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// GetUserSessions godoc
// @Summary (User) List a user's sessions for an assessment
// @Tags User - Sessions
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.SessionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Router /assessments/{assessment_id}/my-sessions [get]
func (c *SessionController) GetUserSessions(ctx *gin.Context) {
	assessmentID, err := strconv.ParseUint(ctx.Param("assessment_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assessment ID format"})
		return
	}
	userIDRaw, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing User ID in query"})
		return
	}

	sessions, err := c.sessionService.GetUserSessions(uint(assessmentID), uint(userIDRaw))
	if err != nil {
		log.Warn().Err(err).Uint64("assessmentID", assessmentID).Msg("GetUserSessions: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}
