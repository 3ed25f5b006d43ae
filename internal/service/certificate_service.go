package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Quolls/internal/dto"
	"github.com/lshigami/Quolls/internal/model"
	"github.com/lshigami/Quolls/internal/repository"
	"github.com/rs/zerolog/log"
)

// CertificateIssuer is the issuance collaborator invoked after an eligible
// completion. It records the certificate; rendering is out of scope.
type CertificateIssuer interface {
	IssueForSession(session *model.AssessmentSession, result *model.SessionResult) (*model.Certificate, error)
}

// CertificateService exposes issued certificates to users.
type CertificateService interface {
	CertificateIssuer
	GetUserCertificates(userID uint) ([]dto.CertificateDTO, error)
}

type certificateService struct {
	certificateRepo repository.CertificateRepository
}

func NewCertificateService(certificateRepo repository.CertificateRepository) CertificateService {
	return &certificateService{certificateRepo: certificateRepo}
}

func (s *certificateService) IssueForSession(session *model.AssessmentSession, result *model.SessionResult) (*model.Certificate, error) {
	certificate := model.Certificate{
		CertificateNumber: uuid.NewString(),
		UserID:            session.UserID,
		AssessmentID:      session.AssessmentID,
		SessionID:         session.ID,
		ScorePercent:      result.FinalScorePercent,
		IssuedAt:          time.Now(),
	}

	if err := s.certificateRepo.Create(&certificate); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to persist certificate")
		return nil, fmt.Errorf("failed to issue certificate for session %s: %w", session.ID, err)
	}

	log.Info().
		Str("certificateNumber", certificate.CertificateNumber).
		Uint("userID", session.UserID).
		Uint("assessmentID", session.AssessmentID).
		Msg("Certificate issued")
	return &certificate, nil
}

func (s *certificateService) GetUserCertificates(userID uint) ([]dto.CertificateDTO, error) {
	certificates, err := s.certificateRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch certificates")
		return nil, fmt.Errorf("error fetching certificates for user %d: %w", userID, err)
	}

	dtos := make([]dto.CertificateDTO, 0, len(certificates))
	for i := range certificates {
		var cert dto.CertificateDTO
		if err := copier.Copy(&cert, &certificates[i]); err != nil {
			log.Error().Err(err).Msg("Failed to copy certificate to DTO")
			continue
		}
		dtos = append(dtos, cert)
	}
	return dtos, nil
}
