// internals/features/gigs/gig/model/gig_model.go
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"quest4knowledge_backend/internals/apperr"
	tutorModel "quest4knowledge_backend/internals/features/tutors/model"
	"quest4knowledge_backend/internals/helpers/hourledger"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================
   Enums
========================= */

type GigStatus string

const (
	GigStatusPending   GigStatus = "pending"
	GigStatusActive    GigStatus = "active"
	GigStatusOnHold    GigStatus = "on_hold"
	GigStatusCompleted GigStatus = "completed"
	GigStatusCancelled GigStatus = "cancelled"
	GigStatusExpired   GigStatus = "expired"
)

type GigPriority string

const (
	GigPriorityLow    GigPriority = "low"
	GigPriorityMedium GigPriority = "medium"
	GigPriorityHigh   GigPriority = "high"
	GigPriorityUrgent GigPriority = "urgent"
)

type GigLevel string

const (
	GigLevelPrimary        GigLevel = "primary"
	GigLevelMiddle         GigLevel = "middle"
	GigLevelHighSchool     GigLevel = "high_school"
	GigLevelCollegePrep    GigLevel = "college_prep"
	GigLevelUndergraduate  GigLevel = "undergraduate"
	GigLevelGraduate       GigLevel = "graduate"
	GigLevelProfessional   GigLevel = "professional"
	GigLevelAdultEducation GigLevel = "adult_education"
	GigLevelOther          GigLevel = "other"
)

/* =========================================================
   Model: gigs

   The contract unit. The hour ledger (total_hours_remaining)
   is mutated only through the lifecycle methods below and
   the session verification engine; both run inside a
   FOR UPDATE transaction on this row.
========================================================= */

type GigModel struct {
	GigID uint `gorm:"primaryKey;column:gig_id" json:"gig_id"`

	GigTutorID *uint                  `gorm:"index:idx_gigs_tutor_status;column:gig_tutor_id" json:"gig_tutor_id,omitempty"`
	GigTutor   *tutorModel.TutorModel `gorm:"foreignKey:GigTutorID;references:TutorID" json:"gig_tutor,omitempty"`

	GigTitle       string   `gorm:"type:varchar(200);not null;column:gig_title" json:"gig_title"`
	GigSubjectName string   `gorm:"type:varchar(100);not null;column:gig_subject_name" json:"gig_subject_name"`
	GigLevel       GigLevel `gorm:"type:varchar(20);not null;column:gig_level" json:"gig_level"`

	// Money (client fee must cover the tutor's remuneration)
	GigTotalTutorRemuneration decimal.Decimal `gorm:"type:numeric(10,2);not null;column:gig_total_tutor_remuneration" json:"gig_total_tutor_remuneration"`
	GigTotalClientFee         decimal.Decimal `gorm:"type:numeric(10,2);not null;column:gig_total_client_fee" json:"gig_total_client_fee"`

	// Hour ledger: 0 <= remaining <= total
	GigTotalHours          decimal.Decimal `gorm:"type:numeric(6,2);not null;column:gig_total_hours" json:"gig_total_hours"`
	GigTotalHoursRemaining decimal.Decimal `gorm:"type:numeric(6,2);not null;column:gig_total_hours_remaining" json:"gig_total_hours_remaining"`

	GigDescription string      `gorm:"type:text;not null;default:'';column:gig_description" json:"gig_description"`
	GigStatus      GigStatus   `gorm:"type:varchar(15);not null;default:'pending';index:idx_gigs_tutor_status;index;column:gig_status" json:"gig_status"`
	GigPriority    GigPriority `gorm:"type:varchar(10);not null;default:'medium';column:gig_priority" json:"gig_priority"`

	// Client contact (no separate client entity yet)
	GigClientName  string `gorm:"type:varchar(100);not null;column:gig_client_name" json:"gig_client_name"`
	GigClientEmail string `gorm:"type:varchar(254);not null;column:gig_client_email" json:"gig_client_email"`
	GigClientPhone string `gorm:"type:varchar(17);not null;default:'';column:gig_client_phone" json:"gig_client_phone"`

	// Dates
	GigStartDate       time.Time  `gorm:"type:date;not null;column:gig_start_date" json:"gig_start_date"`
	GigEndDate         time.Time  `gorm:"type:date;not null;column:gig_end_date" json:"gig_end_date"`
	GigActualStartDate *time.Time `gorm:"type:date;column:gig_actual_start_date" json:"gig_actual_start_date,omitempty"`
	GigActualEndDate   *time.Time `gorm:"type:date;column:gig_actual_end_date" json:"gig_actual_end_date,omitempty"`

	GigNotes string `gorm:"type:text;not null;default:'';column:gig_notes" json:"gig_notes"`

	GigCreatedAt time.Time `gorm:"autoCreateTime;column:gig_created_at" json:"gig_created_at"`
	GigUpdatedAt time.Time `gorm:"autoUpdateTime;column:gig_updated_at" json:"gig_updated_at"`
}

func (GigModel) TableName() string { return "gigs" }

func (g *GigModel) RefCode() string { return refcode.Gig(g.GigID) }

/* =========================
   Derived state
========================= */

// IsTerminal: completed/cancelled/expired gigs reject mutation. The one
// exception is Cancel, which may still close out an expired gig.
func (g *GigModel) IsTerminal() bool {
	return g.GigStatus == GigStatusCompleted ||
		g.GigStatus == GigStatusCancelled ||
		g.GigStatus == GigStatusExpired
}

// AcceptsSessions: sessions may be logged while the work can still happen.
func (g *GigModel) AcceptsSessions() bool {
	return g.GigStatus == GigStatusActive || g.GigStatus == GigStatusOnHold
}

// AcceptsVerification: verify/unverify is rejected once the gig reached a
// state where the ledger has been force-zeroed or abandoned. Keeping this
// strict preserves the non-negative ledger invariant.
func (g *GigModel) AcceptsVerification() bool {
	switch g.GigStatus {
	case GigStatusActive, GigStatusOnHold, GigStatusPending:
		return true
	}
	return false
}

// Deletable: only an active gig resists outright removal; everything else
// (pending, on hold, or closed) may be purged by an administrator.
func (g *GigModel) Deletable() bool {
	return g.GigStatus != GigStatusActive
}

func (g *GigModel) HoursCompleted() decimal.Decimal {
	return g.GigTotalHours.Sub(g.GigTotalHoursRemaining)
}

/* =========================
   Validation
========================= */

func (g *GigModel) Validate() error {
	if g.GigTotalHours.LessThan(hourledger.MinGig) {
		return apperr.Validation("total hours must be at least %s", hourledger.MinGig)
	}
	if g.GigTotalHoursRemaining.IsNegative() {
		return apperr.Validation("hours remaining cannot be negative")
	}
	if g.GigTotalHoursRemaining.GreaterThan(g.GigTotalHours) {
		return apperr.Validation("hours remaining cannot exceed total hours")
	}
	if g.GigTotalTutorRemuneration.IsNegative() || g.GigTotalClientFee.IsNegative() {
		return apperr.Validation("money amounts cannot be negative")
	}
	if g.GigTotalClientFee.LessThan(g.GigTotalTutorRemuneration) {
		return apperr.Validation("client fee cannot be less than tutor remuneration")
	}
	if g.GigStartDate.After(g.GigEndDate) {
		return apperr.Validation("start date cannot be after end date")
	}
	if g.GigActualStartDate != nil && g.GigActualEndDate != nil &&
		g.GigActualStartDate.After(*g.GigActualEndDate) {
		return apperr.Validation("actual start date cannot be after actual end date")
	}
	return nil
}

/* =========================================================
   Lifecycle operations

   pending → active → {on_hold ⇄ active} → {completed | cancelled}

   Each method checks its precondition, mutates status and
   the guarded date fields together, and returns an apperr
   on a rejected transition. Persistence is the caller's job
   (inside a locked transaction).
========================================================= */

func (g *GigModel) Assign(tutor *tutorModel.TutorModel) error {
	if g.IsTerminal() {
		return apperr.StateConflict(string(g.GigStatus), "cannot assign a tutor to a closed gig")
	}
	if g.GigTutorID != nil {
		return apperr.StateConflict(string(g.GigStatus), "gig is already assigned")
	}
	if !tutor.Assignable() {
		return apperr.Validation("tutor %s is not available for assignment (%s)", tutor.RefCode(), tutor.StatusLabel())
	}
	id := tutor.TutorID
	g.GigTutorID = &id
	g.GigTutor = tutor
	return nil
}

func (g *GigModel) Unassign() error {
	if g.GigTutorID == nil {
		return apperr.StateConflict(string(g.GigStatus), "gig has no tutor assigned")
	}
	if g.GigStatus == GigStatusActive {
		return apperr.StateConflict(string(g.GigStatus), "cannot unassign the tutor of an active gig; put it on hold first")
	}
	if g.IsTerminal() {
		return apperr.StateConflict(string(g.GigStatus), "cannot unassign a closed gig")
	}
	g.GigTutorID = nil
	g.GigTutor = nil
	return nil
}

func (g *GigModel) Start(today time.Time) error {
	if g.GigStatus != GigStatusPending {
		return apperr.StateConflict(string(g.GigStatus), "only a pending gig can be started")
	}
	if g.GigTutorID == nil {
		return apperr.StateConflict(string(g.GigStatus), "gig must have a tutor before it can start")
	}
	d := dateOnly(today)
	g.GigStatus = GigStatusActive
	g.GigActualStartDate = &d
	return nil
}

func (g *GigModel) PutOnHold() error {
	if g.GigStatus != GigStatusActive {
		return apperr.StateConflict(string(g.GigStatus), "only an active gig can be put on hold")
	}
	g.GigStatus = GigStatusOnHold
	return nil
}

func (g *GigModel) Resume() error {
	if g.GigStatus != GigStatusOnHold {
		return apperr.StateConflict(string(g.GigStatus), "only a gig on hold can be resumed")
	}
	g.GigStatus = GigStatusActive
	return nil
}

// Complete force-zeroes the ledger: whatever is still unverified at this
// point will never count against the budget.
func (g *GigModel) Complete(today time.Time) error {
	if g.GigStatus != GigStatusActive && g.GigStatus != GigStatusOnHold {
		return apperr.StateConflict(string(g.GigStatus), "only an active or on-hold gig can be completed")
	}
	d := dateOnly(today)
	g.GigStatus = GigStatusCompleted
	g.GigActualEndDate = &d
	g.GigTotalHoursRemaining = decimal.Zero
	return nil
}

func (g *GigModel) Cancel() error {
	if g.GigStatus == GigStatusCompleted || g.GigStatus == GigStatusCancelled {
		return apperr.StateConflict(string(g.GigStatus), "gig is already closed")
	}
	g.GigStatus = GigStatusCancelled
	return nil
}

// MarkExpired is the administrative overdue sweep, not a normal transition.
func (g *GigModel) MarkExpired(today time.Time) error {
	if g.GigStatus != GigStatusActive {
		return apperr.StateConflict(string(g.GigStatus), "only an active gig can expire")
	}
	if !g.GigEndDate.Before(dateOnly(today)) {
		return apperr.Validation("gig %s has not passed its end date", g.RefCode())
	}
	g.GigStatus = GigStatusExpired
	return nil
}

/* =========================
   Ledger operations
========================= */

// AdjustHoursManually subtracts hours outside the verification flow.
// Always audited by the caller with the supplied reason.
func (g *GigModel) AdjustHoursManually(amount decimal.Decimal) error {
	if g.IsTerminal() {
		return apperr.StateConflict(string(g.GigStatus), "cannot adjust hours of a closed gig")
	}
	if !amount.GreaterThan(decimal.Zero) {
		return apperr.Validation("adjustment must be a positive number of hours")
	}
	if amount.GreaterThan(g.GigTotalHoursRemaining) {
		return apperr.InsufficientLedger(
			"cannot subtract %s hours, only %s remaining",
			amount, g.GigTotalHoursRemaining)
	}
	g.GigTotalHoursRemaining = g.GigTotalHoursRemaining.Sub(amount)
	return nil
}

// ResizeTotalHours changes the budget while preserving the hours already
// consumed verbatim: remaining = newTotal - completed.
func (g *GigModel) ResizeTotalHours(newTotal decimal.Decimal) error {
	if g.IsTerminal() {
		return apperr.StateConflict(string(g.GigStatus), "cannot resize a closed gig")
	}
	if newTotal.LessThan(hourledger.MinGig) {
		return apperr.Validation("total hours must be at least %s", hourledger.MinGig)
	}
	completed := g.HoursCompleted()
	if completed.GreaterThan(newTotal) {
		return apperr.Validation(
			"%s hours are already completed; total cannot shrink below that", completed)
	}
	g.GigTotalHours = newTotal
	g.GigTotalHoursRemaining = newTotal.Sub(completed)
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
