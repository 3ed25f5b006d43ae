package repository

import (
	"errors"

	"github.com/lshigami/Quolls/internal/model"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a version-guarded update matched no row:
// another writer got there first with the same expected version.
var ErrVersionConflict = errors.New("session version conflict")

// SessionRepository is the session store. Every mutating method takes the
// version the caller read; a mismatch on write yields ErrVersionConflict
// instead of clobbering state. All writes are durable before the call returns.
type SessionRepository interface {
	Create(session *model.AssessmentSession) error
	FindByID(id string) (*model.AssessmentSession, error)
	FindAllByUserAndAssessment(userID, assessmentID uint) ([]model.AssessmentSession, error)
	UpdateWithVersion(session *model.AssessmentSession, expectedVersion int) error
	UpdateWithVersionAndAnswer(session *model.AssessmentSession, expectedVersion int, answer *model.SessionAnswer) error
	FinalizeWithVersion(session *model.AssessmentSession, expectedVersion int, result *model.SessionResult) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.AssessmentSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id string) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.db.
		Preload("Answers").
		Preload("Result").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAllByUserAndAssessment(userID, assessmentID uint) ([]model.AssessmentSession, error) {
	var sessions []model.AssessmentSession
	err := r.db.
		Preload("Answers").
		Preload("Result").
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("attempt_number ASC").
		Find(&sessions).Error
	return sessions, err
}

// guardedUpdate writes the session's mutable columns iff the stored version
// still equals expectedVersion, bumping the version in the same statement.
func guardedUpdate(tx *gorm.DB, session *model.AssessmentSession, expectedVersion int) error {
	res := tx.Model(&model.AssessmentSession{}).
		Where("id = ? AND version = ?", session.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":                       session.Status,
			"last_activity_time":           session.LastActivityTime,
			"pause_started_at":             session.PauseStartedAt,
			"total_pause_duration_seconds": session.TotalPauseDurationSeconds,
			"ended_at":                     session.EndedAt,
			"version":                      expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	session.Version = expectedVersion + 1
	return nil
}

func (r *sessionRepository) UpdateWithVersion(session *model.AssessmentSession, expectedVersion int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return guardedUpdate(tx, session, expectedVersion)
	})
}

func (r *sessionRepository) UpdateWithVersionAndAnswer(session *model.AssessmentSession, expectedVersion int, answer *model.SessionAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := guardedUpdate(tx, session, expectedVersion); err != nil {
			return err
		}
		// Upsert keyed by (session_id, question_id): resubmission overwrites.
		if answer.ID != 0 {
			return tx.Save(answer).Error
		}
		return tx.Create(answer).Error
	})
}

func (r *sessionRepository) FinalizeWithVersion(session *model.AssessmentSession, expectedVersion int, result *model.SessionResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := guardedUpdate(tx, session, expectedVersion); err != nil {
			return err
		}
		if result != nil {
			return tx.Create(result).Error
		}
		return nil
	})
}
