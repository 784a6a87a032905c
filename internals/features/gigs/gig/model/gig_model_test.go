package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quest4knowledge_backend/internals/apperr"
	tutorModel "quest4knowledge_backend/internals/features/tutors/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var today = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newGig() *GigModel {
	return &GigModel{
		GigID:                     1,
		GigTitle:                  "Matric maths catch-up",
		GigSubjectName:            "Mathematics",
		GigLevel:                  GigLevelHighSchool,
		GigTotalTutorRemuneration: d("3000.00"),
		GigTotalClientFee:         d("4500.00"),
		GigTotalHours:             d("10.00"),
		GigTotalHoursRemaining:    d("10.00"),
		GigStatus:                 GigStatusPending,
		GigPriority:               GigPriorityMedium,
		GigClientName:             "A Client",
		GigClientEmail:            "client@example.com",
		GigStartDate:              today.AddDate(0, 0, -7),
		GigEndDate:                today.AddDate(0, 1, 0),
	}
}

func newTutor() *tutorModel.TutorModel {
	return &tutorModel.TutorModel{
		TutorID:        9,
		TutorFirstName: "Thandi",
		TutorLastName:  "Ngcobo",
		TutorIsActive:  true,
	}
}

func TestValidate(t *testing.T) {
	g := newGig()
	require.NoError(t, g.Validate())

	bad := newGig()
	bad.GigTotalClientFee = d("2000.00") // below remuneration
	assert.True(t, apperr.Is(bad.Validate(), apperr.KindValidation))

	bad = newGig()
	bad.GigTotalHoursRemaining = d("11.00")
	assert.True(t, apperr.Is(bad.Validate(), apperr.KindValidation))

	bad = newGig()
	bad.GigStartDate = bad.GigEndDate.AddDate(0, 0, 1)
	assert.True(t, apperr.Is(bad.Validate(), apperr.KindValidation))
}

func TestAssignPreconditions(t *testing.T) {
	g := newGig()
	tut := newTutor()

	require.NoError(t, g.Assign(tut))
	assert.Equal(t, uint(9), *g.GigTutorID)

	// already assigned
	err := g.Assign(newTutor())
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))

	// blocked tutor is never assignable
	g2 := newGig()
	blocked := newTutor()
	blocked.Block()
	assert.True(t, apperr.Is(g2.Assign(blocked), apperr.KindValidation))

	// inactive tutor likewise
	g3 := newGig()
	inactive := newTutor()
	inactive.Deactivate()
	assert.True(t, apperr.Is(g3.Assign(inactive), apperr.KindValidation))
}

func TestStartRequiresPendingAndTutor(t *testing.T) {
	g := newGig()

	// no tutor yet
	err := g.Start(today)
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))

	require.NoError(t, g.Assign(newTutor()))
	require.NoError(t, g.Start(today))
	assert.Equal(t, GigStatusActive, g.GigStatus)
	require.NotNil(t, g.GigActualStartDate)

	// starting twice is rejected
	assert.True(t, apperr.Is(g.Start(today), apperr.KindStateConflict))
}

func TestPendingRejectsOtherTransitions(t *testing.T) {
	for name, op := range map[string]func(g *GigModel) error{
		"complete": func(g *GigModel) error { return g.Complete(today) },
		"hold":     func(g *GigModel) error { return g.PutOnHold() },
		"resume":   func(g *GigModel) error { return g.Resume() },
	} {
		g := newGig()
		assert.True(t, apperr.Is(op(g), apperr.KindStateConflict), name)
		assert.Equal(t, GigStatusPending, g.GigStatus, name)
	}
}

func TestHoldResumeCycle(t *testing.T) {
	g := activeGig(t)

	require.NoError(t, g.PutOnHold())
	assert.Equal(t, GigStatusOnHold, g.GigStatus)

	// hold is not re-entrant
	assert.True(t, apperr.Is(g.PutOnHold(), apperr.KindStateConflict))

	require.NoError(t, g.Resume())
	assert.Equal(t, GigStatusActive, g.GigStatus)
}

func TestUnassignBlockedWhileActive(t *testing.T) {
	g := activeGig(t)
	assert.True(t, apperr.Is(g.Unassign(), apperr.KindStateConflict))

	require.NoError(t, g.PutOnHold())
	require.NoError(t, g.Unassign())
	assert.Nil(t, g.GigTutorID)
}

func TestCompleteForcesLedgerToZero(t *testing.T) {
	g := activeGig(t)
	g.GigTotalHoursRemaining = d("3.25")

	require.NoError(t, g.Complete(today))
	assert.Equal(t, GigStatusCompleted, g.GigStatus)
	assert.True(t, g.GigTotalHoursRemaining.IsZero())
	require.NotNil(t, g.GigActualEndDate)
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	for _, status := range []GigStatus{GigStatusCompleted, GigStatusCancelled} {
		g := newGig()
		g.GigStatus = status

		assert.True(t, apperr.Is(g.Start(today), apperr.KindStateConflict))
		assert.True(t, apperr.Is(g.PutOnHold(), apperr.KindStateConflict))
		assert.True(t, apperr.Is(g.Resume(), apperr.KindStateConflict))
		assert.True(t, apperr.Is(g.Complete(today), apperr.KindStateConflict))
		assert.True(t, apperr.Is(g.Cancel(), apperr.KindStateConflict))
		assert.True(t, apperr.Is(g.Assign(newTutor()), apperr.KindStateConflict))
		assert.True(t, apperr.Is(g.AdjustHoursManually(d("1.00")), apperr.KindStateConflict))
		assert.True(t, apperr.Is(g.ResizeTotalHours(d("20.00")), apperr.KindStateConflict))
	}
}

func TestCancelFromAnyNonClosedState(t *testing.T) {
	g := newGig()
	require.NoError(t, g.Cancel())
	assert.Equal(t, GigStatusCancelled, g.GigStatus)

	// an expired gig may still be cancelled to close it out
	g2 := newGig()
	g2.GigStatus = GigStatusExpired
	require.NoError(t, g2.Cancel())
}

func TestAdjustHoursManually(t *testing.T) {
	g := activeGig(t)
	g.GigTotalHoursRemaining = d("5.00")

	require.NoError(t, g.AdjustHoursManually(d("1.50")))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("3.50")))

	// zero and negative amounts rejected
	assert.True(t, apperr.Is(g.AdjustHoursManually(d("0")), apperr.KindValidation))
	assert.True(t, apperr.Is(g.AdjustHoursManually(d("-1")), apperr.KindValidation))

	// cannot exceed the remaining balance
	err := g.AdjustHoursManually(d("3.51"))
	assert.True(t, apperr.Is(err, apperr.KindInsufficientLedger))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("3.50")), "rejected adjustment must not touch the ledger")
}

func TestResizePreservesCompletedHours(t *testing.T) {
	g := activeGig(t)
	g.GigTotalHours = d("10.00")
	g.GigTotalHoursRemaining = d("6.00") // 4 completed

	require.NoError(t, g.ResizeTotalHours(d("12.00")))
	assert.True(t, g.GigTotalHours.Equal(d("12.00")))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("8.00")))

	// shrink below completed is rejected, ledger untouched
	err := g.ResizeTotalHours(d("3.00"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.True(t, g.GigTotalHoursRemaining.Equal(d("8.00")))
}

func TestDeletableBlocksOnlyActiveGigs(t *testing.T) {
	for _, status := range []GigStatus{
		GigStatusPending, GigStatusOnHold, GigStatusCompleted,
		GigStatusCancelled, GigStatusExpired,
	} {
		g := newGig()
		g.GigStatus = status
		assert.Truef(t, g.Deletable(), "status=%s", status)
	}

	assert.False(t, activeGig(t).Deletable())
}

func TestMarkExpired(t *testing.T) {
	g := activeGig(t)
	g.GigEndDate = today.AddDate(0, 0, -1)
	require.NoError(t, g.MarkExpired(today))
	assert.Equal(t, GigStatusExpired, g.GigStatus)

	// not yet overdue
	g2 := activeGig(t)
	g2.GigEndDate = today.AddDate(0, 0, 1)
	assert.True(t, apperr.Is(g2.MarkExpired(today), apperr.KindValidation))
}

func activeGig(t *testing.T) *GigModel {
	t.Helper()
	g := newGig()
	if err := g.Assign(newTutor()); err != nil {
		t.Fatal(err)
	}
	if err := g.Start(today); err != nil {
		t.Fatal(err)
	}
	return g
}
