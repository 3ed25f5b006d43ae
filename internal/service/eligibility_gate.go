package service

import (
	"github.com/lshigami/Quolls/internal/model"
)

// EligibilityDecision signals whether the score qualifies for a certificate.
// Issuing is the certificate collaborator's job, not this gate's.
type EligibilityDecision struct {
	Eligible bool
	Reason   string
}

type EligibilityGate interface {
	CheckEligibility(assessment *model.Assessment, result *model.SessionResult) EligibilityDecision
}

type eligibilityGate struct{}

func NewEligibilityGate() EligibilityGate {
	return &eligibilityGate{}
}

func (g *eligibilityGate) CheckEligibility(assessment *model.Assessment, result *model.SessionResult) EligibilityDecision {
	if !assessment.IssuesCertificate {
		return EligibilityDecision{Reason: "assessment does not issue certificates"}
	}
	if result.FinalScorePercent < assessment.RequiredScore {
		return EligibilityDecision{Reason: "score below the required certification score"}
	}
	return EligibilityDecision{Eligible: true}
}
