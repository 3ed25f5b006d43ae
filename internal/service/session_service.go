package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/lshigami/Quolls/internal/model"
	"github.com/lshigami/Quolls/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SessionService owns the session state machine. Every mutating call checks
// for lazy timeout first, evaluates under the version read at load time, and
// persists durably before returning. Terminal sessions reject all mutations.
type SessionService interface {
	StartSession(assessmentID uint, req dto.StartSessionRequest) (*dto.SessionSummaryDTO, error)
	SubmitAnswer(sessionID string, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponseDTO, error)
	PauseSession(sessionID string, userID *uint) (*dto.SessionSummaryDTO, error)
	ResumeSession(sessionID string, userID *uint) (*dto.SessionSummaryDTO, error)
	CompleteSession(sessionID string, req dto.CompleteSessionRequest) (*dto.SessionResultDTO, error)
	AbandonSession(sessionID string, userID *uint) (*dto.SessionSummaryDTO, error)
	GetSessionStatus(sessionID string, userID *uint) (*dto.SessionStatusDTO, error)
	GetUserSessions(assessmentID, userID uint) ([]dto.SessionSummaryDTO, error)
}

type sessionService struct {
	assessmentRepo repository.AssessmentRepository
	sessionRepo    repository.SessionRepository
	evaluator      AnswerEvaluator
	timeTracker    TimeTracker
	aggregator     ScoreAggregator
	attemptGate    AttemptGate
	eligibility    EligibilityGate
	issuer         CertificateIssuer

	now func() time.Time
}

func NewSessionService(
	assessmentRepo repository.AssessmentRepository,
	sessionRepo repository.SessionRepository,
	evaluator AnswerEvaluator,
	timeTracker TimeTracker,
	aggregator ScoreAggregator,
	attemptGate AttemptGate,
	eligibility EligibilityGate,
	issuer CertificateIssuer,
) SessionService {
	return &sessionService{
		assessmentRepo: assessmentRepo,
		sessionRepo:    sessionRepo,
		evaluator:      evaluator,
		timeTracker:    timeTracker,
		aggregator:     aggregator,
		attemptGate:    attemptGate,
		eligibility:    eligibility,
		issuer:         issuer,
		now:            time.Now,
	}
}

func (s *sessionService) StartSession(assessmentID uint, req dto.StartSessionRequest) (*dto.SessionSummaryDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("assessment not found with ID %d", assessmentID)
		}
		return nil, fmt.Errorf("error loading assessment %d: %w", assessmentID, err)
	}
	if len(assessment.Questions) == 0 {
		return nil, apperror.Validationf("assessment %d has no questions, it cannot be attempted", assessmentID)
	}

	past, err := s.sessionRepo.FindAllByUserAndAssessment(req.UserID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("error loading past sessions: %w", err)
	}

	now := s.now()
	decision := s.attemptGate.CanStart(assessment, past, now)
	if !decision.Allowed {
		return nil, apperror.Conflictf("%s", decision.Reason)
	}

	session := model.AssessmentSession{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		AssessmentID:     assessmentID,
		AttemptNumber:    decision.AttemptNumber,
		Status:           model.SessionStatusInProgress,
		StartTime:        now,
		LastActivityTime: now,
		Version:          1,
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Uint("userID", req.UserID).Msg("StartSession: failed to create session")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().
		Str("sessionID", session.ID).
		Uint("userID", req.UserID).
		Uint("assessmentID", assessmentID).
		Int("attemptNumber", session.AttemptNumber).
		Msg("Session started")

	summary := s.summaryDTO(&session, assessment)
	return &summary, nil
}

func (s *sessionService) SubmitAnswer(sessionID string, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponseDTO, error) {
	session, assessment, err := s.loadSession(sessionID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.rejectTerminal(session); err != nil {
		return nil, err
	}
	if session.Status == model.SessionStatusPaused {
		return nil, apperror.Conflictf("session %s is paused; resume it before answering", sessionID)
	}

	answer, err := s.applyAnswer(session, assessment, req.QuestionID, req.Answer, req.TimeSpentSeconds)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := dto.SubmitAnswerResponseDTO{
		QuestionID:      answer.QuestionID,
		SubmissionCount: answer.SubmissionCount,
		Progress: dto.ProgressDTO{
			Answered: len(session.Answers),
			Total:    len(assessment.Questions),
		},
		TimeRemainingSeconds: s.timeTracker.RemainingSeconds(assessment, session, now),
	}
	if assessment.ShowResults {
		correct := answer.IsCorrect
		points := answer.PointsEarned
		resp.IsCorrect = &correct
		resp.PointsEarned = &points
	}
	return &resp, nil
}

func (s *sessionService) PauseSession(sessionID string, userID *uint) (*dto.SessionSummaryDTO, error) {
	session, assessment, err := s.loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rejectTerminal(session); err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusInProgress {
		return nil, apperror.Conflictf("only an in-progress session can be paused, session %s is %s", sessionID, session.Status)
	}

	expected := session.Version
	now := s.now()
	session.Status = model.SessionStatusPaused
	session.PauseStartedAt = &now
	session.LastActivityTime = now

	if err := s.sessionRepo.UpdateWithVersion(session, expected); err != nil {
		return nil, s.mapStoreError(err, sessionID)
	}

	summary := s.summaryDTO(session, assessment)
	return &summary, nil
}

func (s *sessionService) ResumeSession(sessionID string, userID *uint) (*dto.SessionSummaryDTO, error) {
	session, assessment, err := s.loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rejectTerminal(session); err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusPaused {
		return nil, apperror.Conflictf("only a paused session can be resumed, session %s is %s", sessionID, session.Status)
	}

	expected := session.Version
	now := s.now()
	s.foldPause(session, now)
	session.Status = model.SessionStatusInProgress
	session.LastActivityTime = now

	if err := s.sessionRepo.UpdateWithVersion(session, expected); err != nil {
		return nil, s.mapStoreError(err, sessionID)
	}

	summary := s.summaryDTO(session, assessment)
	return &summary, nil
}

func (s *sessionService) CompleteSession(sessionID string, req dto.CompleteSessionRequest) (*dto.SessionResultDTO, error) {
	session, assessment, err := s.loadSession(sessionID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.rejectTerminal(session); err != nil {
		return nil, err
	}

	// Flush the optional final answer batch through the same evaluated,
	// version-guarded path as individual submissions.
	for _, final := range req.FinalAnswers {
		if _, err := s.applyAnswer(session, assessment, final.QuestionID, final.Answer, final.TimeSpentSeconds); err != nil {
			return nil, err
		}
	}

	result, err := s.finalize(session, assessment, model.SessionStatusCompleted)
	if err != nil {
		return nil, err
	}

	resp := s.resultDTO(session, result)
	return &resp, nil
}

func (s *sessionService) AbandonSession(sessionID string, userID *uint) (*dto.SessionSummaryDTO, error) {
	session, assessment, err := s.loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rejectTerminal(session); err != nil {
		return nil, err
	}

	expected := session.Version
	now := s.now()
	s.foldPause(session, now)
	session.Status = model.SessionStatusAbandoned
	session.EndedAt = &now
	session.LastActivityTime = now

	// Abandoned sessions get no result; the record stays behind for audit.
	if err := s.sessionRepo.UpdateWithVersion(session, expected); err != nil {
		return nil, s.mapStoreError(err, sessionID)
	}

	log.Info().Str("sessionID", sessionID).Msg("Session abandoned")
	summary := s.summaryDTO(session, assessment)
	return &summary, nil
}

func (s *sessionService) GetSessionStatus(sessionID string, userID *uint) (*dto.SessionStatusDTO, error) {
	session, assessment, err := s.loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := dto.SessionStatusDTO{
		SessionSummaryDTO:    s.summaryDTO(session, assessment),
		ElapsedSeconds:       s.timeTracker.ElapsedSeconds(session, now),
		TimeRemainingSeconds: s.timeTracker.RemainingSeconds(assessment, session, now),
	}
	if session.Result != nil {
		result := s.resultDTO(session, session.Result)
		status.Result = &result
	}
	return &status, nil
}

func (s *sessionService) GetUserSessions(assessmentID, userID uint) ([]dto.SessionSummaryDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("assessment not found with ID %d", assessmentID)
		}
		return nil, fmt.Errorf("error loading assessment %d: %w", assessmentID, err)
	}

	sessions, err := s.sessionRepo.FindAllByUserAndAssessment(userID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching sessions: %w", err)
	}

	summaries := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for i := range sessions {
		summaries = append(summaries, s.summaryDTO(&sessions[i], assessment))
	}
	return summaries, nil
}

// loadSession fetches the session, enforces ownership, and performs the lazy
// timeout check: an expired session is finalized here, on access, so no call
// ever observes a session past its limit still in progress.
func (s *sessionService) loadSession(sessionID string, userID *uint) (*model.AssessmentSession, *model.Assessment, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFoundf("session not found with ID %s", sessionID)
		}
		return nil, nil, fmt.Errorf("error loading session %s: %w", sessionID, err)
	}
	if userID != nil && *userID != session.UserID {
		return nil, nil, apperror.Authorizationf("session %s does not belong to user %d", sessionID, *userID)
	}

	assessment, err := s.assessmentRepo.FindByIDWithQuestions(session.AssessmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading assessment %d for session %s: %w", session.AssessmentID, sessionID, err)
	}

	if !session.Status.Terminal() && s.timeTracker.ShouldTimeout(assessment, session, s.now()) {
		session, err = s.finalizeTimeout(session, assessment)
		if err != nil {
			return nil, nil, err
		}
	}
	return session, assessment, nil
}

// rejectTerminal turns a mutation on a terminal session into the right error:
// Expired for timed-out sessions, Conflict for the rest.
func (s *sessionService) rejectTerminal(session *model.AssessmentSession) error {
	if !session.Status.Terminal() {
		return nil
	}
	if session.Status == model.SessionStatusTimeout {
		return apperror.Expiredf("session %s has timed out", session.ID)
	}
	return apperror.Conflictf("session %s is already %s", session.ID, session.Status)
}

// applyAnswer evaluates and durably upserts one answer under the session's
// current version, keeping the in-memory answer list in sync.
func (s *sessionService) applyAnswer(session *model.AssessmentSession, assessment *model.Assessment, questionID uint, rawAnswer string, clientTimeSpent int) (*model.SessionAnswer, error) {
	question := assessment.QuestionByID(questionID)
	if question == nil {
		return nil, apperror.Validationf("question %d is not part of assessment %d", questionID, assessment.ID)
	}

	evaluation, err := s.evaluator.Evaluate(question, rawAnswer, assessment.PartialCreditAllowed)
	if err != nil {
		return nil, err
	}

	expected := session.Version
	now := s.now()

	var answer *model.SessionAnswer
	if existing := session.AnswerFor(questionID); existing != nil {
		existing.UserAnswer = rawAnswer
		existing.CorrectAnswerSnapshot = question.CorrectAnswerString()
		existing.IsCorrect = evaluation.IsCorrect
		existing.PointsEarned = evaluation.PointsEarned
		existing.MaxPoints = question.Points
		existing.ClientTimeSpentSeconds = clientTimeSpent
		existing.SubmissionCount++
		answer = existing
	} else {
		session.Answers = append(session.Answers, model.SessionAnswer{
			SessionID:              session.ID,
			QuestionID:             questionID,
			UserAnswer:             rawAnswer,
			CorrectAnswerSnapshot:  question.CorrectAnswerString(),
			IsCorrect:              evaluation.IsCorrect,
			PointsEarned:           evaluation.PointsEarned,
			MaxPoints:              question.Points,
			ClientTimeSpentSeconds: clientTimeSpent,
			SubmissionCount:        1,
		})
		answer = &session.Answers[len(session.Answers)-1]
	}
	session.LastActivityTime = now

	if err := s.sessionRepo.UpdateWithVersionAndAnswer(session, expected, answer); err != nil {
		return nil, s.mapStoreError(err, session.ID)
	}
	return answer, nil
}

// finalize scores the session from whatever answers exist and moves it to the
// given terminal status, writing the result exactly once. Score computation
// failures abort the transition and surface to the caller.
func (s *sessionService) finalize(session *model.AssessmentSession, assessment *model.Assessment, status model.SessionStatus) (*model.SessionResult, error) {
	expected := session.Version
	now := s.now()

	s.foldPause(session, now)

	result, err := s.aggregator.Aggregate(assessment, session.Answers)
	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Score aggregation failed, session left untouched")
		return nil, err
	}

	session.Status = status
	session.EndedAt = &now
	session.LastActivityTime = now

	totalTime := s.timeTracker.ElapsedSeconds(session, now)
	if assessment.HasTimeLimit && assessment.TotalMinutes > 0 {
		if limit := assessment.TotalMinutes * 60; totalTime > limit {
			totalTime = limit
		}
	}

	result.SessionID = session.ID
	result.TotalTimeSpentSeconds = totalTime
	result.CertificateEligible = s.eligibility.CheckEligibility(assessment, result).Eligible

	if err := s.sessionRepo.FinalizeWithVersion(session, expected, result); err != nil {
		return nil, s.mapStoreError(err, session.ID)
	}
	session.Result = result

	log.Info().
		Str("sessionID", session.ID).
		Str("status", string(status)).
		Float64("score", result.FinalScorePercent).
		Bool("passed", result.Passed).
		Msg("Session finalized")

	if result.CertificateEligible && s.issuer != nil {
		// Fire-and-forget: issuance failure must never undo a scored session.
		if _, err := s.issuer.IssueForSession(session, result); err != nil {
			log.Error().Err(err).Str("sessionID", session.ID).Msg("Certificate issuance failed")
		}
	}
	return result, nil
}

// finalizeTimeout forces an expired session into the timeout state. When a
// concurrent request already finalized it, the fresh session is returned
// instead of treating the lost race as an error.
func (s *sessionService) finalizeTimeout(session *model.AssessmentSession, assessment *model.Assessment) (*model.AssessmentSession, error) {
	_, err := s.finalize(session, assessment, model.SessionStatusTimeout)
	if err == nil {
		return session, nil
	}
	if apperror.IsKind(err, apperror.KindConflict) {
		reloaded, reloadErr := s.sessionRepo.FindByID(session.ID)
		if reloadErr != nil {
			return nil, fmt.Errorf("error reloading session %s after concurrent finalization: %w", session.ID, reloadErr)
		}
		return reloaded, nil
	}
	return nil, err
}

// foldPause rolls a pause currently in progress into the accumulated total.
func (s *sessionService) foldPause(session *model.AssessmentSession, now time.Time) {
	if session.PauseStartedAt == nil {
		return
	}
	if delta := int(now.Sub(*session.PauseStartedAt).Seconds()); delta > 0 {
		session.TotalPauseDurationSeconds += delta
	}
	session.PauseStartedAt = nil
}

func (s *sessionService) mapStoreError(err error, sessionID string) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperror.Conflictf("session %s was modified concurrently, reload and retry", sessionID)
	}
	return fmt.Errorf("error persisting session %s: %w", sessionID, err)
}

func (s *sessionService) summaryDTO(session *model.AssessmentSession, assessment *model.Assessment) dto.SessionSummaryDTO {
	return dto.SessionSummaryDTO{
		SessionID:                 session.ID,
		AssessmentID:              session.AssessmentID,
		AssessmentTitle:           assessment.Title,
		UserID:                    session.UserID,
		AttemptNumber:             session.AttemptNumber,
		Status:                    string(session.Status),
		StartTime:                 session.StartTime,
		LastActivityTime:          session.LastActivityTime,
		TotalPauseDurationSeconds: session.TotalPauseDurationSeconds,
		EndedAt:                   session.EndedAt,
		AnsweredCount:             len(session.Answers),
		QuestionCount:             len(assessment.Questions),
	}
}

func (s *sessionService) resultDTO(session *model.AssessmentSession, result *model.SessionResult) dto.SessionResultDTO {
	breakdown := make(map[string]dto.SkillScoreDTO, len(result.SkillBreakdown))
	for tag, score := range result.SkillBreakdown {
		breakdown[tag] = dto.SkillScoreDTO{
			PointsEarned:   score.PointsEarned,
			PointsPossible: score.PointsPossible,
			Percent:        score.Percent,
		}
	}
	return dto.SessionResultDTO{
		SessionID:             session.ID,
		FinalScorePercent:     result.FinalScorePercent,
		PointsEarned:          result.PointsEarned,
		PointsPossible:        result.PointsPossible,
		Passed:                result.Passed,
		Grade:                 result.Grade,
		SkillBreakdown:        breakdown,
		TotalTimeSpentSeconds: result.TotalTimeSpentSeconds,
		CertificateEligible:   result.CertificateEligible,
	}
}
