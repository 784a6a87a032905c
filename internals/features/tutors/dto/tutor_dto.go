// internals/features/tutors/dto/tutor_dto.go
package dto

import (
	"strings"
	"time"

	m "quest4knowledge_backend/internals/features/tutors/model"
)

/* =========================
   CREATE / UPDATE
========================= */

type CreateTutorRequest struct {
	FirstName string `json:"tutor_first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"tutor_last_name" validate:"required,min=1,max=50"`

	PhoneNumber     string `json:"tutor_phone_number" validate:"required,min=9,max=17"`
	EmailAddress    string `json:"tutor_email_address" validate:"required,email"`
	PhysicalAddress string `json:"tutor_physical_address" validate:"required,max=300"`

	HighestQualification *string `json:"tutor_highest_qualification" validate:"omitempty,oneof=high_school certificate diploma bachelors masters phd other"`
	Subjects             *string `json:"tutor_subjects"`
}

func (r *CreateTutorRequest) Normalize() {
	r.FirstName = strings.Title(strings.ToLower(strings.TrimSpace(r.FirstName)))
	r.LastName = strings.Title(strings.ToLower(strings.TrimSpace(r.LastName)))
	r.EmailAddress = strings.ToLower(strings.TrimSpace(r.EmailAddress))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.PhysicalAddress = strings.TrimSpace(r.PhysicalAddress)
}

func (r *CreateTutorRequest) ToModel() *m.TutorModel {
	t := &m.TutorModel{
		TutorFirstName:            r.FirstName,
		TutorLastName:             r.LastName,
		TutorPhoneNumber:          r.PhoneNumber,
		TutorEmailAddress:         r.EmailAddress,
		TutorPhysicalAddress:      r.PhysicalAddress,
		TutorHighestQualification: m.QualificationBachelors,
	}
	if r.HighestQualification != nil {
		t.TutorHighestQualification = m.Qualification(*r.HighestQualification)
	}
	if r.Subjects != nil {
		t.TutorSubjects = strings.TrimSpace(*r.Subjects)
	}
	return t
}

type UpdateTutorRequest struct {
	FirstName *string `json:"tutor_first_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"tutor_last_name" validate:"omitempty,min=1,max=50"`

	PhoneNumber     *string `json:"tutor_phone_number" validate:"omitempty,min=9,max=17"`
	EmailAddress    *string `json:"tutor_email_address" validate:"omitempty,email"`
	PhysicalAddress *string `json:"tutor_physical_address" validate:"omitempty,max=300"`

	HighestQualification *string `json:"tutor_highest_qualification" validate:"omitempty,oneof=high_school certificate diploma bachelors masters phd other"`
	Subjects             *string `json:"tutor_subjects"`

	IsActive  *bool `json:"tutor_is_active"`
	IsBlocked *bool `json:"tutor_is_blocked"`
}

func (r *UpdateTutorRequest) Apply(t *m.TutorModel) {
	if r.FirstName != nil {
		t.TutorFirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		t.TutorLastName = strings.TrimSpace(*r.LastName)
	}
	if r.PhoneNumber != nil {
		t.TutorPhoneNumber = strings.TrimSpace(*r.PhoneNumber)
	}
	if r.EmailAddress != nil {
		t.TutorEmailAddress = strings.ToLower(strings.TrimSpace(*r.EmailAddress))
	}
	if r.PhysicalAddress != nil {
		t.TutorPhysicalAddress = strings.TrimSpace(*r.PhysicalAddress)
	}
	if r.HighestQualification != nil {
		t.TutorHighestQualification = m.Qualification(*r.HighestQualification)
	}
	if r.Subjects != nil {
		t.TutorSubjects = strings.TrimSpace(*r.Subjects)
	}
	if r.IsActive != nil {
		t.TutorIsActive = *r.IsActive
	}
	if r.IsBlocked != nil {
		if *r.IsBlocked {
			t.Block()
		} else {
			t.Unblock()
		}
	}
}

/* =========================
   RESPONSE
========================= */

type TutorResponse struct {
	TutorID              uint      `json:"tutor_id"`
	TutorRefCode         string    `json:"tutor_ref_code"`
	FirstName            string    `json:"tutor_first_name"`
	LastName             string    `json:"tutor_last_name"`
	FullName             string    `json:"tutor_full_name"`
	PhoneNumber          string    `json:"tutor_phone_number"`
	EmailAddress         string    `json:"tutor_email_address"`
	PhysicalAddress      string    `json:"tutor_physical_address"`
	HighestQualification string    `json:"tutor_highest_qualification"`
	Subjects             string    `json:"tutor_subjects"`
	IsActive             bool      `json:"tutor_is_active"`
	IsBlocked            bool      `json:"tutor_is_blocked"`
	StatusLabel          string    `json:"tutor_status"`
	CreatedAt            time.Time `json:"tutor_created_at"`
	UpdatedAt            time.Time `json:"tutor_updated_at"`
}

func NewTutorResponse(t *m.TutorModel) *TutorResponse {
	return &TutorResponse{
		TutorID:              t.TutorID,
		TutorRefCode:         t.RefCode(),
		FirstName:            t.TutorFirstName,
		LastName:             t.TutorLastName,
		FullName:             t.FullName(),
		PhoneNumber:          t.TutorPhoneNumber,
		EmailAddress:         t.TutorEmailAddress,
		PhysicalAddress:      t.TutorPhysicalAddress,
		HighestQualification: string(t.TutorHighestQualification),
		Subjects:             t.TutorSubjects,
		IsActive:             t.TutorIsActive,
		IsBlocked:            t.TutorIsBlocked,
		StatusLabel:          t.StatusLabel(),
		CreatedAt:            t.TutorCreatedAt,
		UpdatedAt:            t.TutorUpdatedAt,
	}
}
