package model

import (
	"time"

	"gorm.io/gorm"
)

// Certificate records an issued certificate for a passed, eligible session.
// Rendering (PDF etc.) happens elsewhere; this is the issuance record.
type Certificate struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CertificateNumber string    `json:"certificate_number" gorm:"size:36;uniqueIndex;not null"`
	UserID            uint      `json:"user_id" gorm:"not null;index"`
	AssessmentID      uint      `json:"assessment_id" gorm:"not null;index"`
	SessionID         string    `json:"session_id" gorm:"size:36;not null;uniqueIndex"`
	ScorePercent      float64   `json:"score_percent"`
	IssuedAt          time.Time `json:"issued_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
