package service

import (
	"testing"
	"time"

	"github.com/lshigami/Quolls/internal/model"
	"github.com/stretchr/testify/assert"
)

var gateNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func terminalSession(attempt int, endedAgo time.Duration) model.AssessmentSession {
	ended := gateNow.Add(-endedAgo)
	return model.AssessmentSession{
		AttemptNumber: attempt,
		Status:        model.SessionStatusCompleted,
		EndedAt:       &ended,
	}
}

func TestCanStartFirstAttempt(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 3, RetakePolicy: model.RetakeImmediate}

	decision := gate.CanStart(assessment, nil, gateNow)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 1, decision.AttemptNumber)
}

func TestCanStartNumbersAttemptsSequentially(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 5, RetakePolicy: model.RetakeImmediate}
	past := []model.AssessmentSession{
		terminalSession(1, 48*time.Hour),
		terminalSession(2, 24*time.Hour),
	}

	decision := gate.CanStart(assessment, past, gateNow)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 3, decision.AttemptNumber)
}

func TestCanStartBlockedByLiveSession(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 0, RetakePolicy: model.RetakeImmediate}
	past := []model.AssessmentSession{
		{AttemptNumber: 1, Status: model.SessionStatusInProgress},
	}

	decision := gate.CanStart(assessment, past, gateNow)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "in progress")
}

func TestCanStartPausedSessionAlsoBlocks(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{RetakePolicy: model.RetakeImmediate}
	past := []model.AssessmentSession{
		{AttemptNumber: 1, Status: model.SessionStatusPaused},
	}

	assert.False(t, gate.CanStart(assessment, past, gateNow).Allowed)
}

func TestCanStartMaxAttemptsExhausted(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 2, RetakePolicy: model.RetakeImmediate}
	past := []model.AssessmentSession{
		terminalSession(1, 48*time.Hour),
		terminalSession(2, 24*time.Hour),
	}

	decision := gate.CanStart(assessment, past, gateNow)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "maximum")
}

func TestCanStartZeroMaxAttemptsIsUnlimited(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 0, RetakePolicy: model.RetakeImmediate}

	past := make([]model.AssessmentSession, 0, 10)
	for i := 1; i <= 10; i++ {
		past = append(past, terminalSession(i, time.Duration(11-i)*time.Hour))
	}

	decision := gate.CanStart(assessment, past, gateNow)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 11, decision.AttemptNumber)
}

func TestCanStartRetakeNever(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 5, RetakePolicy: model.RetakeNever}
	past := []model.AssessmentSession{terminalSession(1, time.Hour)}

	decision := gate.CanStart(assessment, past, gateNow)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "not allowed")
}

func TestCanStartRetakeCooldown(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 5, RetakePolicy: model.RetakeAfter24h}

	// Last attempt ended 2 hours ago: still cooling down.
	decision := gate.CanStart(assessment, []model.AssessmentSession{terminalSession(1, 2*time.Hour)}, gateNow)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "cooldown")

	// 25 hours ago: allowed again.
	decision = gate.CanStart(assessment, []model.AssessmentSession{terminalSession(1, 25*time.Hour)}, gateNow)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 2, decision.AttemptNumber)
}

func TestCanStartCooldownUsesMostRecentEnd(t *testing.T) {
	gate := NewAttemptGate()
	assessment := &model.Assessment{MaxAttempts: 5, RetakePolicy: model.RetakeAfter24h}
	past := []model.AssessmentSession{
		terminalSession(1, 72*time.Hour),
		terminalSession(2, 3*time.Hour),
	}

	assert.False(t, gate.CanStart(assessment, past, gateNow).Allowed)
}
