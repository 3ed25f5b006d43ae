package service

import (
	"time"

	"github.com/lshigami/Quolls/internal/model"
)

const retakeCooldown = 24 * time.Hour

// AttemptDecision says whether a new attempt may start and, if so, which
// attempt number it gets.
type AttemptDecision struct {
	Allowed       bool
	AttemptNumber int
	Reason        string
}

// AttemptGate enforces max-attempts and the retake policy before a session is
// created. Only terminal sessions count as spent attempts.
type AttemptGate interface {
	CanStart(assessment *model.Assessment, pastSessions []model.AssessmentSession, now time.Time) AttemptDecision
}

type attemptGate struct{}

func NewAttemptGate() AttemptGate {
	return &attemptGate{}
}

func (g *attemptGate) CanStart(assessment *model.Assessment, pastSessions []model.AssessmentSession, now time.Time) AttemptDecision {
	terminalCount := 0
	var lastEnded *time.Time
	for i := range pastSessions {
		s := &pastSessions[i]
		if !s.Status.Terminal() {
			// A live session blocks a second concurrent attempt.
			return AttemptDecision{Reason: "an attempt is already in progress for this assessment"}
		}
		terminalCount++
		if s.EndedAt != nil && (lastEnded == nil || s.EndedAt.After(*lastEnded)) {
			lastEnded = s.EndedAt
		}
	}

	if assessment.RetakePolicy == model.RetakeNever && terminalCount >= 1 {
		return AttemptDecision{Reason: "retakes are not allowed for this assessment"}
	}

	if assessment.MaxAttempts > 0 && terminalCount >= assessment.MaxAttempts {
		return AttemptDecision{Reason: "maximum number of attempts reached"}
	}

	if assessment.RetakePolicy == model.RetakeAfter24h && lastEnded != nil {
		if now.Sub(*lastEnded) < retakeCooldown {
			return AttemptDecision{Reason: "retake cooldown of 24h has not elapsed"}
		}
	}

	return AttemptDecision{Allowed: true, AttemptNumber: terminalCount + 1}
}
