// internals/features/gigs/online_sessions/model/online_session_model_test.go
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quest4knowledge_backend/internals/apperr"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func meeting(start, end time.Time) *OnlineSessionModel {
	return &OnlineSessionModel{
		OnlineSessionID:             7,
		OnlineSessionGigID:          1,
		OnlineSessionTutorID:        1,
		OnlineSessionMeetingCode:    "ABCD-EFGH-JKLM",
		OnlineSessionPinCode:        "123456",
		OnlineSessionScheduledStart: start,
		OnlineSessionScheduledEnd:   end,
		OnlineSessionStatus:         OnlineStatusScheduled,
	}
}

/* =========================
   Overlap
========================= */

func TestOverlapMatrix(t *testing.T) {
	existing := meeting(at(10, 0), at(11, 0))

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"partial overlap right", at(10, 30), at(11, 30), true},
		{"partial overlap left", at(9, 30), at(10, 30), true},
		{"contained", at(10, 15), at(10, 45), true},
		{"containing", at(9, 0), at(12, 0), true},
		{"identical", at(10, 0), at(11, 0), true},
		{"back-to-back after", at(11, 0), at(12, 0), false},
		{"back-to-back before", at(9, 0), at(10, 0), false},
		{"disjoint after", at(11, 30), at(12, 30), false},
		{"disjoint before", at(8, 0), at(9, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, existing.Overlaps(tc.start, tc.end))
		})
	}
}

func TestOverlapUsesExtendedEnd(t *testing.T) {
	existing := meeting(at(10, 0), at(11, 0))
	require.NoError(t, existing.MarkJoined(JoinRoleTutor, at(10, 0)))
	require.NoError(t, existing.Extend(30)) // effective end 11:30

	assert.True(t, existing.Overlaps(at(11, 0), at(12, 0)))
	assert.False(t, existing.Overlaps(at(11, 30), at(12, 30)))
}

/* =========================
   Join
========================= */

func TestFirstJoinPromotesToActive(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	now := at(10, 2)

	require.NoError(t, m.MarkJoined(JoinRoleClient, now))

	assert.Equal(t, OnlineStatusActive, m.OnlineSessionStatus)
	require.NotNil(t, m.OnlineSessionActualStart)
	assert.Equal(t, now, *m.OnlineSessionActualStart)
	assert.True(t, m.OnlineSessionClientJoined)
	assert.False(t, m.OnlineSessionTutorJoined)
}

func TestRepeatJoinKeepsFirstTimestamp(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	first := at(10, 1)
	require.NoError(t, m.MarkJoined(JoinRoleTutor, first))
	require.NoError(t, m.MarkJoined(JoinRoleTutor, at(10, 20)))

	require.NotNil(t, m.OnlineSessionTutorJoinedAt)
	assert.Equal(t, first, *m.OnlineSessionTutorJoinedAt)
}

func TestSecondRoleJoinDoesNotRestampActualStart(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	require.NoError(t, m.MarkJoined(JoinRoleTutor, at(10, 1)))
	require.NoError(t, m.MarkJoined(JoinRoleClient, at(10, 5)))

	assert.Equal(t, at(10, 1), *m.OnlineSessionActualStart)
	assert.Equal(t, at(10, 5), *m.OnlineSessionClientJoinedAt)
}

func TestJoinRejectedOnClosedMeeting(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	require.NoError(t, m.Cancel())

	err := m.MarkJoined(JoinRoleTutor, at(10, 5))
	assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(err))
}

func TestJoinRejectsUnknownRole(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	err := m.MarkJoined(JoinRole("observer"), at(10, 0))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

/* =========================
   Extend
========================= */

func TestExtendPushesFromEffectiveEnd(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	require.NoError(t, m.MarkJoined(JoinRoleTutor, at(10, 0)))

	require.NoError(t, m.Extend(15))
	assert.Equal(t, at(11, 15), m.EffectiveEnd())

	// A second extension stacks on the already-extended end.
	require.NoError(t, m.Extend(5))
	assert.Equal(t, at(11, 20), m.EffectiveEnd())
}

func TestExtendRejectedUnlessActive(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	err := m.Extend(10)
	assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(err))
}

func TestExtendBounds(t *testing.T) {
	for _, minutes := range []int{0, -5, 3, 7, 125, 121} {
		m := meeting(at(10, 0), at(11, 0))
		_ = m.MarkJoined(JoinRoleTutor, at(10, 0))
		err := m.Extend(minutes)
		assert.Equalf(t, apperr.KindValidation, apperr.KindOf(err), "minutes=%d", minutes)
	}
	for _, minutes := range []int{5, 60, 120} {
		m := meeting(at(10, 0), at(11, 0))
		_ = m.MarkJoined(JoinRoleTutor, at(10, 0))
		assert.NoErrorf(t, m.Extend(minutes), "minutes=%d", minutes)
	}
}

/* =========================
   Forward-only lifecycle
========================= */

func TestCompleteStampsActualEnd(t *testing.T) {
	m := meeting(at(10, 0), at(11, 0))
	require.NoError(t, m.MarkJoined(JoinRoleTutor, at(10, 0)))

	now := at(11, 5)
	require.NoError(t, m.Complete(now))
	assert.Equal(t, OnlineStatusCompleted, m.OnlineSessionStatus)
	assert.Equal(t, now, *m.OnlineSessionActualEnd)
}

func TestNoTransitionsOutOfTerminal(t *testing.T) {
	completed := meeting(at(10, 0), at(11, 0))
	require.NoError(t, completed.Complete(at(11, 0)))

	cancelled := meeting(at(10, 0), at(11, 0))
	require.NoError(t, cancelled.Cancel())

	for _, m := range []*OnlineSessionModel{completed, cancelled} {
		assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(m.Complete(at(12, 0))))
		assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(m.Cancel()))
		assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(m.MarkJoined(JoinRoleClient, at(12, 0))))
	}
}

func TestValidateRejectsInvertedWindow(t *testing.T) {
	m := meeting(at(11, 0), at(10, 0))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(m.Validate()))

	zero := meeting(at(10, 0), at(10, 0))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(zero.Validate()))
}
