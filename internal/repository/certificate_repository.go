package repository

import (
	"github.com/lshigami/Quolls/internal/model"
	"gorm.io/gorm"
)

type CertificateRepository interface {
	Create(certificate *model.Certificate) error
	FindAllByUser(userID uint) ([]model.Certificate, error)
	FindBySessionID(sessionID string) (*model.Certificate, error)
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) Create(certificate *model.Certificate) error {
	return r.db.Create(certificate).Error
}

func (r *certificateRepository) FindAllByUser(userID uint) ([]model.Certificate, error) {
	var certificates []model.Certificate
	err := r.db.Where("user_id = ?", userID).Order("issued_at DESC").Find(&certificates).Error
	return certificates, err
}

func (r *certificateRepository) FindBySessionID(sessionID string) (*model.Certificate, error) {
	var certificate model.Certificate
	err := r.db.First(&certificate, "session_id = ?", sessionID).Error
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}
