package repository

import (
	"github.com/lshigami/Quolls/internal/model"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	FindByID(id uint) (*model.Assessment, error)
	FindByIDWithQuestions(id uint) (*model.Assessment, error)
	FindAllWithQuestionCount() ([]struct {
		model.Assessment
		QuestionCount int
	}, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	// GORM creates the associated questions when assessment.Questions is populated.
	return r.db.Create(assessment).Error
}

func (r *assessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.First(&assessment, id).Error
	return &assessment, err
}

func (r *assessmentRepository) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&assessment, id).Error
	return &assessment, err
}

func (r *assessmentRepository) FindAllWithQuestionCount() ([]struct {
	model.Assessment
	QuestionCount int
}, error) {
	var results []struct {
		model.Assessment
		QuestionCount int
	}
	err := r.db.Model(&model.Assessment{}).
		Select("assessments.*, (SELECT COUNT(*) FROM questions WHERE questions.assessment_id = assessments.id AND questions.deleted_at IS NULL) as question_count").
		Where("assessments.deleted_at IS NULL").
		Order("assessments.created_at DESC").
		Scan(&results).Error
	return results, err
}
