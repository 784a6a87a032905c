package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quest4knowledge_backend/internals/apperr"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var now = time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

const admin = "admin@quest4knowledge.co.za"

func newGig(totalHours string) *gigModel.GigModel {
	return &gigModel.GigModel{
		GigID:                  1,
		GigStatus:              gigModel.GigStatusActive,
		GigTotalHours:          d(totalHours),
		GigTotalHoursRemaining: d(totalHours),
	}
}

func newSession(hours string) *GigSessionModel {
	return &GigSessionModel{
		GigSessionID:          1,
		GigSessionGigID:       1,
		GigSessionDate:        now.AddDate(0, 0, -1),
		GigSessionStartTime:   "14:00",
		GigSessionEndTime:     "16:00",
		GigSessionHoursLogged: d(hours),
	}
}

func TestValidate(t *testing.T) {
	s := newSession("2.00")
	require.NoError(t, s.Validate(now))

	bad := newSession("2.00")
	bad.GigSessionStartTime = "16:00"
	bad.GigSessionEndTime = "14:00"
	assert.True(t, apperr.Is(bad.Validate(now), apperr.KindValidation))

	bad = newSession("2.00")
	bad.GigSessionDate = now.AddDate(0, 0, 2)
	assert.True(t, apperr.Is(bad.Validate(now), apperr.KindValidation))

	for _, h := range []string{"0", "-1.00", "24.25"} {
		bad = newSession(h)
		assert.True(t, apperr.Is(bad.Validate(now), apperr.KindValidation), h)
	}
}

// Creating a session is ledger-neutral; verify subtracts; unverify restores.
func TestEndToEndLedgerFlow(t *testing.T) {
	g := newGig("10.00")
	s := newSession("2.00")

	// unverified session: no ledger effect
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("10.00")))

	require.NoError(t, s.ApplyVerify(g, admin, now))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("8.00")))
	require.NotNil(t, s.Verification())
	assert.Equal(t, admin, s.Verification().By)

	require.NoError(t, s.ApplyUnverify(g))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("10.00")))
	assert.Nil(t, s.Verification())
}

// verify;unverify is an involution on the ledger — no drift over N cycles.
func TestVerifyUnverifyInvolution(t *testing.T) {
	g := newGig("7.75")
	s := newSession("1.55")

	for i := 0; i < 100; i++ {
		require.NoError(t, s.ApplyVerify(g, admin, now))
		require.NoError(t, s.ApplyUnverify(g))
	}
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("7.75")))
}

func TestDoubleVerifyRejected(t *testing.T) {
	g := newGig("10.00")
	s := newSession("2.00")

	require.NoError(t, s.ApplyVerify(g, admin, now))
	err := s.ApplyVerify(g, admin, now)
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("8.00")), "ledger unchanged after rejection")
}

func TestUnverifyUnverifiedRejected(t *testing.T) {
	g := newGig("10.00")
	s := newSession("2.00")

	err := s.ApplyUnverify(g)
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("10.00")))
}

func TestVerifyCannotDriveLedgerNegative(t *testing.T) {
	g := newGig("10.00")
	g.GigTotalHoursRemaining = d("1.50")
	s := newSession("2.00")

	err := s.ApplyVerify(g, admin, now)
	assert.True(t, apperr.Is(err, apperr.KindInsufficientLedger))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("1.50")))
	assert.Nil(t, s.Verification())
}

func TestVerifyRejectedOnClosedGig(t *testing.T) {
	for _, status := range []gigModel.GigStatus{
		gigModel.GigStatusCompleted, gigModel.GigStatusCancelled, gigModel.GigStatusExpired,
	} {
		g := newGig("10.00")
		g.GigStatus = status
		s := newSession("2.00")

		assert.True(t, apperr.Is(s.ApplyVerify(g, admin, now), apperr.KindStateConflict), string(status))

		// and a session verified before closure cannot be unverified either
		g2 := newGig("10.00")
		s2 := newSession("2.00")
		require.NoError(t, s2.ApplyVerify(g2, admin, now))
		g2.GigStatus = status
		assert.True(t, apperr.Is(s2.ApplyUnverify(g2), apperr.KindStateConflict), string(status))
	}
}

// Editing a verified session adjusts by exactly the delta.
func TestEditDeltaOnVerifiedSession(t *testing.T) {
	g := newGig("10.00")
	g.GigTotalHoursRemaining = d("5.00")
	s := newSession("2.00")
	s.GigSessionIsVerified = true
	by := admin
	at := now
	s.GigSessionVerifiedBy = &by
	s.GigSessionVerifiedAt = &at

	require.NoError(t, s.ApplyHoursEdit(g, d("3.50")))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("3.50")), "5.00 - (3.50-2.00)")
	assert.True(t, s.GigSessionHoursLogged.Equal(d("3.50")))
	require.NotNil(t, s.Verification(), "edit must not disturb the verification record")

	// shrinking gives hours back
	require.NoError(t, s.ApplyHoursEdit(g, d("1.00")))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("6.00")))
}

func TestEditDeltaCannotOverdraw(t *testing.T) {
	g := newGig("10.00")
	g.GigTotalHoursRemaining = d("3.00")
	s := newSession("2.00")
	require.NoError(t, s.ApplyVerify(g, admin, now))
	// remaining is now 1.00

	err := s.ApplyHoursEdit(g, d("3.50")) // needs 1.50 more
	assert.True(t, apperr.Is(err, apperr.KindInsufficientLedger))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("1.00")))
	assert.True(t, s.GigSessionHoursLogged.Equal(d("2.00")))
}

func TestEditUnverifiedNeverTouchesLedger(t *testing.T) {
	g := newGig("10.00")
	s := newSession("2.00")

	require.NoError(t, s.ApplyHoursEdit(g, d("23.75")))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("10.00")))
	assert.True(t, s.GigSessionHoursLogged.Equal(d("23.75")))
}

func TestDeleteRestoresOnlyVerifiedHours(t *testing.T) {
	// verified: hours restored
	g := newGig("10.00")
	g.GigTotalHoursRemaining = d("2.00")
	s := newSession("1.50")
	s.GigSessionIsVerified = true
	by := admin
	at := now
	s.GigSessionVerifiedBy = &by
	s.GigSessionVerifiedAt = &at
	s.ApplyDelete(g)
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("3.50")))

	// unverified: no effect
	g2 := newGig("10.00")
	s2 := newSession("1.50")
	s2.ApplyDelete(g2)
	assert.True(t, g2.GigTotalHoursRemaining.Equal(d("10.00")))
}

// Ledger conservation: remaining always equals
// total − Σ(hours of currently-verified sessions), across a mixed sequence.
func TestLedgerConservation(t *testing.T) {
	g := newGig("20.00")
	sessions := []*GigSessionModel{
		newSession("2.00"), newSession("3.25"), newSession("1.50"), newSession("4.00"),
	}
	for i, s := range sessions {
		s.GigSessionID = uint(i + 1)
	}

	verifiedSum := func() decimal.Decimal {
		sum := decimal.Zero
		for _, s := range sessions {
			if s.Verification() != nil {
				sum = sum.Add(s.GigSessionHoursLogged)
			}
		}
		return sum
	}
	check := func() {
		t.Helper()
		want := d("20.00").Sub(verifiedSum())
		assert.True(t, g.GigTotalHoursRemaining.Equal(want),
			"remaining %s, want %s", g.GigTotalHoursRemaining, want)
	}

	require.NoError(t, sessions[0].ApplyVerify(g, admin, now))
	check()
	require.NoError(t, sessions[1].ApplyVerify(g, admin, now))
	check()
	require.NoError(t, sessions[1].ApplyHoursEdit(g, d("2.75")))
	check()
	require.NoError(t, sessions[0].ApplyUnverify(g))
	check()
	require.NoError(t, sessions[2].ApplyVerify(g, admin, now))
	check()
	sessions[2].ApplyDelete(g)
	sessions = append(sessions[:2], sessions[3:]...)
	check()
	require.NoError(t, sessions[2].ApplyVerify(g, admin, now)) // the 4.00h session
	check()
}

func TestVerificationAccessorHidesMixedState(t *testing.T) {
	s := newSession("2.00")
	s.GigSessionIsVerified = false
	by := admin
	s.GigSessionVerifiedBy = &by // stale column, e.g. bad import
	assert.Nil(t, s.Verification())
}
