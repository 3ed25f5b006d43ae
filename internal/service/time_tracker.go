package service

import (
	"time"

	"github.com/lshigami/Quolls/internal/model"
)

// TimeTracker computes authoritative elapsed/remaining time from server
// wall-clock time. Client-reported time never enters these computations.
// Timeout is detected lazily on access, not by a background timer.
type TimeTracker interface {
	ElapsedSeconds(session *model.AssessmentSession, now time.Time) int
	RemainingSeconds(assessment *model.Assessment, session *model.AssessmentSession, now time.Time) *int
	ShouldTimeout(assessment *model.Assessment, session *model.AssessmentSession, now time.Time) bool
}

type timeTracker struct{}

func NewTimeTracker() TimeTracker {
	return &timeTracker{}
}

// ElapsedSeconds is wall-clock time since start, minus accumulated pause time
// and any pause currently in progress. Terminal sessions are frozen at EndedAt.
func (t *timeTracker) ElapsedSeconds(session *model.AssessmentSession, now time.Time) int {
	effective := now
	if session.EndedAt != nil && session.EndedAt.Before(now) {
		effective = *session.EndedAt
	}

	elapsed := effective.Sub(session.StartTime) - time.Duration(session.TotalPauseDurationSeconds)*time.Second
	if session.PauseStartedAt != nil && session.PauseStartedAt.Before(effective) {
		elapsed -= effective.Sub(*session.PauseStartedAt)
	}

	seconds := int(elapsed.Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// RemainingSeconds is nil when the assessment has no time limit, otherwise the
// seconds left, floored at zero.
func (t *timeTracker) RemainingSeconds(assessment *model.Assessment, session *model.AssessmentSession, now time.Time) *int {
	if !assessment.HasTimeLimit || assessment.TotalMinutes <= 0 {
		return nil
	}
	limit := assessment.TotalMinutes * 60
	remaining := limit - t.ElapsedSeconds(session, now)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// ShouldTimeout reports whether the session has exhausted its limit. Without a
// limit it never fires.
func (t *timeTracker) ShouldTimeout(assessment *model.Assessment, session *model.AssessmentSession, now time.Time) bool {
	remaining := t.RemainingSeconds(assessment, session, now)
	return remaining != nil && *remaining <= 0
}
