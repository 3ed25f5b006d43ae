package service

import (
	"testing"

	"github.com/lshigami/Quolls/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCheckEligibility(t *testing.T) {
	gate := NewEligibilityGate()

	tests := []struct {
		name     string
		issues   bool
		required float64
		score    float64
		eligible bool
	}{
		{"assessment without certification", false, 80, 95, false},
		{"score below required", true, 80, 79, false},
		{"score at required boundary", true, 80, 80, true},
		{"score above required", true, 80, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessment := &model.Assessment{IssuesCertificate: tt.issues, RequiredScore: tt.required}
			result := &model.SessionResult{FinalScorePercent: tt.score}

			decision := gate.CheckEligibility(assessment, result)
			assert.Equal(t, tt.eligible, decision.Eligible)
			if !tt.eligible {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}
