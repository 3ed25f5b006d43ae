package service

import (
	"testing"
	"time"

	"github.com/lshigami/Quolls/internal/model"
	"github.com/stretchr/testify/assert"
)

var trackerBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestElapsedSecondsPlainRun(t *testing.T) {
	tracker := NewTimeTracker()
	session := &model.AssessmentSession{StartTime: trackerBase}

	assert.Equal(t, 600, tracker.ElapsedSeconds(session, trackerBase.Add(10*time.Minute)))
}

func TestElapsedSecondsExcludesPauses(t *testing.T) {
	tracker := NewTimeTracker()

	// 5 minutes of accumulated pause from an earlier pause/resume cycle.
	session := &model.AssessmentSession{
		StartTime:                 trackerBase,
		TotalPauseDurationSeconds: 300,
	}
	assert.Equal(t, 900, tracker.ElapsedSeconds(session, trackerBase.Add(20*time.Minute)))

	// A pause currently in progress is excluded as well.
	pausedAt := trackerBase.Add(25 * time.Minute)
	session.PauseStartedAt = &pausedAt
	assert.Equal(t, 1200, tracker.ElapsedSeconds(session, trackerBase.Add(40*time.Minute)))
}

func TestElapsedSecondsFrozenAtEnd(t *testing.T) {
	tracker := NewTimeTracker()
	endedAt := trackerBase.Add(30 * time.Minute)
	session := &model.AssessmentSession{
		StartTime: trackerBase,
		EndedAt:   &endedAt,
	}

	// Time after the end does not keep accruing.
	assert.Equal(t, 1800, tracker.ElapsedSeconds(session, trackerBase.Add(2*time.Hour)))
}

func TestElapsedSecondsNeverNegative(t *testing.T) {
	tracker := NewTimeTracker()
	session := &model.AssessmentSession{
		StartTime:                 trackerBase,
		TotalPauseDurationSeconds: 600,
	}

	assert.Zero(t, tracker.ElapsedSeconds(session, trackerBase.Add(time.Minute)))
}

func TestRemainingSecondsNilWithoutLimit(t *testing.T) {
	tracker := NewTimeTracker()
	assessment := &model.Assessment{HasTimeLimit: false}
	session := &model.AssessmentSession{StartTime: trackerBase}

	assert.Nil(t, tracker.RemainingSeconds(assessment, session, trackerBase.Add(5*time.Hour)))
	assert.False(t, tracker.ShouldTimeout(assessment, session, trackerBase.Add(5*time.Hour)))
}

func TestRemainingSecondsFlooredAtZero(t *testing.T) {
	tracker := NewTimeTracker()
	assessment := &model.Assessment{HasTimeLimit: true, TotalMinutes: 30}
	session := &model.AssessmentSession{StartTime: trackerBase}

	remaining := tracker.RemainingSeconds(assessment, session, trackerBase.Add(10*time.Minute))
	assert.NotNil(t, remaining)
	assert.Equal(t, 1200, *remaining)

	remaining = tracker.RemainingSeconds(assessment, session, trackerBase.Add(45*time.Minute))
	assert.NotNil(t, remaining)
	assert.Zero(t, *remaining)
}

func TestShouldTimeoutAtBoundary(t *testing.T) {
	tracker := NewTimeTracker()
	assessment := &model.Assessment{HasTimeLimit: true, TotalMinutes: 30}
	session := &model.AssessmentSession{StartTime: trackerBase}

	assert.False(t, tracker.ShouldTimeout(assessment, session, trackerBase.Add(30*time.Minute-time.Second)))
	assert.True(t, tracker.ShouldTimeout(assessment, session, trackerBase.Add(30*time.Minute)))
	assert.True(t, tracker.ShouldTimeout(assessment, session, trackerBase.Add(31*time.Minute)))
}

func TestShouldTimeoutRespectsPauses(t *testing.T) {
	tracker := NewTimeTracker()
	assessment := &model.Assessment{HasTimeLimit: true, TotalMinutes: 30}
	session := &model.AssessmentSession{
		StartTime:                 trackerBase,
		TotalPauseDurationSeconds: 600,
	}

	// 35 wall-clock minutes minus 10 paused = 25 active minutes.
	assert.False(t, tracker.ShouldTimeout(assessment, session, trackerBase.Add(35*time.Minute)))
	assert.True(t, tracker.ShouldTimeout(assessment, session, trackerBase.Add(41*time.Minute)))
}
