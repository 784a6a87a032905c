// internals/features/tutors/model/tutor_model.go
package model

import (
	"strings"
	"time"

	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================
   Enums
========================= */

type Qualification string

const (
	QualificationHighSchool  Qualification = "high_school"
	QualificationCertificate Qualification = "certificate"
	QualificationDiploma     Qualification = "diploma"
	QualificationBachelors   Qualification = "bachelors"
	QualificationMasters     Qualification = "masters"
	QualificationPhD         Qualification = "phd"
	QualificationOther       Qualification = "other"
)

func (q Qualification) Valid() bool {
	switch q {
	case QualificationHighSchool, QualificationCertificate, QualificationDiploma,
		QualificationBachelors, QualificationMasters, QualificationPhD, QualificationOther:
		return true
	}
	return false
}

/* =========================================================
   Model: tutors
========================================================= */

type TutorModel struct {
	TutorID uint `gorm:"primaryKey;column:tutor_id" json:"tutor_id"`

	TutorFirstName string `gorm:"type:varchar(50);not null;column:tutor_first_name" json:"tutor_first_name"`
	TutorLastName  string `gorm:"type:varchar(50);not null;column:tutor_last_name" json:"tutor_last_name"`

	TutorPhoneNumber     string `gorm:"type:varchar(17);not null;uniqueIndex;column:tutor_phone_number" json:"tutor_phone_number"`
	TutorEmailAddress    string `gorm:"type:varchar(254);not null;uniqueIndex;column:tutor_email_address" json:"tutor_email_address"`
	TutorPhysicalAddress string `gorm:"type:text;not null;column:tutor_physical_address" json:"tutor_physical_address"`

	TutorHighestQualification Qualification `gorm:"type:varchar(20);not null;default:'bachelors';column:tutor_highest_qualification" json:"tutor_highest_qualification"`
	TutorSubjects             string        `gorm:"type:text;not null;default:'';column:tutor_subjects" json:"tutor_subjects"`

	// Gating flags for new assignments
	TutorIsActive  bool `gorm:"not null;default:true;index:idx_tutors_active_blocked;column:tutor_is_active" json:"tutor_is_active"`
	TutorIsBlocked bool `gorm:"not null;default:false;index:idx_tutors_active_blocked;column:tutor_is_blocked" json:"tutor_is_blocked"`

	TutorCreatedAt time.Time `gorm:"autoCreateTime;column:tutor_created_at" json:"tutor_created_at"`
	TutorUpdatedAt time.Time `gorm:"autoUpdateTime;column:tutor_updated_at" json:"tutor_updated_at"`
}

func (TutorModel) TableName() string { return "tutors" }

func (t *TutorModel) RefCode() string { return refcode.Tutor(t.TutorID) }

func (t *TutorModel) FullName() string {
	return strings.TrimSpace(t.TutorFirstName + " " + t.TutorLastName)
}

// Assignable reports whether the tutor may receive new gigs.
func (t *TutorModel) Assignable() bool {
	return t.TutorIsActive && !t.TutorIsBlocked
}

// StatusLabel: Blocked wins over Active/Inactive.
func (t *TutorModel) StatusLabel() string {
	switch {
	case t.TutorIsBlocked:
		return "Blocked"
	case t.TutorIsActive:
		return "Active"
	}
	return "Inactive"
}

func (t *TutorModel) Deactivate() { t.TutorIsActive = false }
func (t *TutorModel) Activate()  { t.TutorIsActive = true }

// Block also deactivates; an unblock does not reactivate by itself.
func (t *TutorModel) Block() {
	t.TutorIsBlocked = true
	t.TutorIsActive = false
}

func (t *TutorModel) Unblock() { t.TutorIsBlocked = false }
