// internals/features/gigs/gig_sessions/dto/gig_session_dto_test.go
package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quest4knowledge_backend/internals/apperr"
)

func TestParseClockZeroPads(t *testing.T) {
	got, err := parseClock("gig_session_start_time", "9:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", got)

	got, err = parseClock("gig_session_start_time", " 09:05 ")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)
}

func TestParseClockRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "25:00", "12:61", "noon", "12h30"} {
		_, err := parseClock("gig_session_start_time", raw)
		assert.Equalf(t, apperr.KindValidation, apperr.KindOf(err), "raw=%q", raw)
	}
}

// A morning session entered without the leading zero must survive the
// ordered-times check, and an inverted window must not sneak past it.
func TestToModelNormalizesClockOrdering(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)

	ok := CreateGigSessionRequest{
		Date:        "2026-03-10",
		StartTime:   "9:00",
		EndTime:     "16:00",
		HoursLogged: decimal.RequireFromString("7.00"),
	}
	s, err := ok.ToModel(1)
	require.NoError(t, err)
	assert.Equal(t, "09:00", s.GigSessionStartTime)
	require.NoError(t, s.Validate(now))

	inverted := CreateGigSessionRequest{
		Date:        "2026-03-10",
		StartTime:   "17:00",
		EndTime:     "9:00",
		HoursLogged: decimal.RequireFromString("2.00"),
	}
	s, err = inverted.ToModel(1)
	require.NoError(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(s.Validate(now)))
}

func TestToPatchNormalizesClocks(t *testing.T) {
	start, end := "8:30", "9:45"
	patch, err := (&UpdateGigSessionRequest{StartTime: &start, EndTime: &end}).ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.StartTime)
	require.NotNil(t, patch.EndTime)
	assert.Equal(t, "08:30", *patch.StartTime)
	assert.Equal(t, "09:45", *patch.EndTime)
}
