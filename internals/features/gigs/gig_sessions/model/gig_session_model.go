// internals/features/gigs/gig_sessions/model/gig_session_model.go
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"quest4knowledge_backend/internals/apperr"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	"quest4knowledge_backend/internals/helpers/hourledger"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================================================
   Model: gig_sessions

   One logged tutoring occurrence. Hours only count against
   the parent gig's ledger once an admin verifies the
   session; the Apply* methods below are the only code that
   may move hours between a session and its gig, and each
   performs exactly one compensating adjustment.
========================================================= */

type GigSessionModel struct {
	GigSessionID uint `gorm:"primaryKey;column:gig_session_id" json:"gig_session_id"`

	GigSessionGigID uint               `gorm:"not null;index:idx_gig_sessions_gig_date;column:gig_session_gig_id" json:"gig_session_gig_id"`
	GigSessionGig   *gigModel.GigModel `gorm:"foreignKey:GigSessionGigID;references:GigID" json:"-"`

	GigSessionDate      time.Time `gorm:"type:date;not null;index:idx_gig_sessions_gig_date;column:gig_session_date" json:"gig_session_date"`
	GigSessionStartTime string    `gorm:"type:time;not null;column:gig_session_start_time" json:"gig_session_start_time"`
	GigSessionEndTime   string    `gorm:"type:time;not null;column:gig_session_end_time" json:"gig_session_end_time"`

	GigSessionHoursLogged decimal.Decimal `gorm:"type:numeric(4,2);not null;column:gig_session_hours_logged" json:"gig_session_hours_logged"`

	GigSessionNotes             string `gorm:"type:text;not null;default:'';column:gig_session_notes" json:"gig_session_notes"`
	GigSessionStudentAttendance bool   `gorm:"not null;default:true;column:gig_session_student_attendance" json:"gig_session_student_attendance"`

	// Verification sub-record. The three columns move together: either all
	// unset (unverified) or all set (verified). Use Verification()/the Apply
	// methods, never the fields directly.
	GigSessionIsVerified bool       `gorm:"not null;default:false;index;column:gig_session_is_verified" json:"gig_session_is_verified"`
	GigSessionVerifiedBy *string    `gorm:"type:varchar(254);column:gig_session_verified_by" json:"gig_session_verified_by,omitempty"`
	GigSessionVerifiedAt *time.Time `gorm:"type:timestamptz;column:gig_session_verified_at" json:"gig_session_verified_at,omitempty"`

	GigSessionCreatedAt time.Time `gorm:"autoCreateTime;column:gig_session_created_at" json:"gig_session_created_at"`
	GigSessionUpdatedAt time.Time `gorm:"autoUpdateTime;column:gig_session_updated_at" json:"gig_session_updated_at"`
}

func (GigSessionModel) TableName() string { return "gig_sessions" }

func (s *GigSessionModel) RefCode() string { return refcode.Session(s.GigSessionID) }

/* =========================
   Verification variant
========================= */

type Verification struct {
	By string
	At time.Time
}

// Verification returns the verified sub-record, or nil when unverified.
// The tagged accessor keeps the mixed state (verified flag without actor)
// out of reach of callers.
func (s *GigSessionModel) Verification() *Verification {
	if !s.GigSessionIsVerified || s.GigSessionVerifiedBy == nil || s.GigSessionVerifiedAt == nil {
		return nil
	}
	return &Verification{By: *s.GigSessionVerifiedBy, At: *s.GigSessionVerifiedAt}
}

/* =========================
   Validation
========================= */

func (s *GigSessionModel) Validate(now time.Time) error {
	if s.GigSessionStartTime >= s.GigSessionEndTime {
		return apperr.Validation("start time must be before end time")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s.GigSessionDate.After(today) {
		return apperr.Validation("session date cannot be in the future")
	}
	if !hourledger.ValidSessionHours(s.GigSessionHoursLogged) {
		return apperr.Validation("hours logged must be above 0 and at most 24")
	}
	return nil
}

/* =========================================================
   Ledger transitions (exactly-once adjustment each)
========================================================= */

// ApplyVerify subtracts the session's hours from the gig ledger and stamps
// the verification record. The ledger check is a precondition, not a clamp:
// a rejected verify leaves both rows untouched.
func (s *GigSessionModel) ApplyVerify(g *gigModel.GigModel, verifiedBy string, now time.Time) error {
	if s.Verification() != nil {
		return apperr.StateConflict(string(g.GigStatus), "session %s is already verified", s.RefCode())
	}
	if !g.AcceptsVerification() {
		return apperr.StateConflict(string(g.GigStatus), "sessions of a closed gig cannot be verified")
	}
	if !hourledger.WithinLedger(s.GigSessionHoursLogged, g.GigTotalHoursRemaining) {
		return apperr.InsufficientLedger(
			"cannot verify %s hours, gig %s has only %s remaining",
			s.GigSessionHoursLogged, g.RefCode(), g.GigTotalHoursRemaining)
	}

	g.GigTotalHoursRemaining = g.GigTotalHoursRemaining.Sub(s.GigSessionHoursLogged)
	s.GigSessionIsVerified = true
	s.GigSessionVerifiedBy = &verifiedBy
	at := now
	s.GigSessionVerifiedAt = &at
	return nil
}

// ApplyUnverify restores the session's hours and clears the record.
func (s *GigSessionModel) ApplyUnverify(g *gigModel.GigModel) error {
	if s.Verification() == nil {
		return apperr.StateConflict(string(g.GigStatus), "session %s is not currently verified", s.RefCode())
	}
	if !g.AcceptsVerification() {
		return apperr.StateConflict(string(g.GigStatus), "sessions of a closed gig cannot be unverified")
	}

	g.GigTotalHoursRemaining = g.GigTotalHoursRemaining.Add(s.GigSessionHoursLogged)
	s.GigSessionIsVerified = false
	s.GigSessionVerifiedBy = nil
	s.GigSessionVerifiedAt = nil
	return nil
}

// ApplyHoursEdit changes hours_logged. For a verified session the ledger is
// adjusted by exactly the delta (new − old) — not by an unverify/verify
// round-trip, which would double-run validation and expose a transient
// inconsistent state. Unverified edits never touch the ledger.
func (s *GigSessionModel) ApplyHoursEdit(g *gigModel.GigModel, newHours decimal.Decimal) error {
	if !hourledger.ValidSessionHours(newHours) {
		return apperr.Validation("hours logged must be above 0 and at most 24")
	}
	if s.Verification() == nil {
		s.GigSessionHoursLogged = newHours
		return nil
	}

	delta := newHours.Sub(s.GigSessionHoursLogged)
	if !hourledger.WithinLedger(delta, g.GigTotalHoursRemaining) {
		return apperr.InsufficientLedger(
			"editing to %s hours needs %s more than gig %s has remaining (%s)",
			newHours, delta, g.RefCode(), g.GigTotalHoursRemaining)
	}
	g.GigTotalHoursRemaining = g.GigTotalHoursRemaining.Sub(delta)
	s.GigSessionHoursLogged = newHours
	return nil
}

// ApplyDelete releases a verified session's hours back to the gig before
// removal; deleting an unverified session has no ledger effect.
func (s *GigSessionModel) ApplyDelete(g *gigModel.GigModel) {
	if s.Verification() != nil {
		g.GigTotalHoursRemaining = g.GigTotalHoursRemaining.Add(s.GigSessionHoursLogged)
	}
}
