package service

import (
	"testing"

	"github.com/lshigami/Quolls/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCertificateRepo struct {
	certificates []model.Certificate
}

func (f *fakeCertificateRepo) Create(certificate *model.Certificate) error {
	f.certificates = append(f.certificates, *certificate)
	return nil
}

func (f *fakeCertificateRepo) FindAllByUser(userID uint) ([]model.Certificate, error) {
	var out []model.Certificate
	for _, c := range f.certificates {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCertificateRepo) FindBySessionID(sessionID string) (*model.Certificate, error) {
	for i := range f.certificates {
		if f.certificates[i].SessionID == sessionID {
			return &f.certificates[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestIssueForSession(t *testing.T) {
	repo := &fakeCertificateRepo{}
	svc := NewCertificateService(repo)

	session := &model.AssessmentSession{ID: "sess-1", UserID: 7, AssessmentID: 3}
	result := &model.SessionResult{FinalScorePercent: 92}

	certificate, err := svc.IssueForSession(session, result)
	require.NoError(t, err)

	assert.NotEmpty(t, certificate.CertificateNumber)
	assert.Equal(t, uint(7), certificate.UserID)
	assert.Equal(t, uint(3), certificate.AssessmentID)
	assert.Equal(t, "sess-1", certificate.SessionID)
	assert.Equal(t, 92.0, certificate.ScorePercent)
	assert.False(t, certificate.IssuedAt.IsZero())
	require.Len(t, repo.certificates, 1)
}

func TestGetUserCertificates(t *testing.T) {
	repo := &fakeCertificateRepo{}
	svc := NewCertificateService(repo)

	_, err := svc.IssueForSession(&model.AssessmentSession{ID: "sess-1", UserID: 7}, &model.SessionResult{FinalScorePercent: 85})
	require.NoError(t, err)
	_, err = svc.IssueForSession(&model.AssessmentSession{ID: "sess-2", UserID: 8}, &model.SessionResult{FinalScorePercent: 90})
	require.NoError(t, err)

	certificates, err := svc.GetUserCertificates(7)
	require.NoError(t, err)
	require.Len(t, certificates, 1)
	assert.Equal(t, "sess-1", certificates[0].SessionID)
	assert.Equal(t, 85.0, certificates[0].ScorePercent)
}

func TestGetUserCertificatesEmpty(t *testing.T) {
	svc := NewCertificateService(&fakeCertificateRepo{})

	certificates, err := svc.GetUserCertificates(42)
	require.NoError(t, err)
	assert.Empty(t, certificates)
}
