// internals/features/gigs/gig/dto/gig_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quest4knowledge_backend/internals/apperr"
	m "quest4knowledge_backend/internals/features/gigs/gig/model"
	tutorDTO "quest4knowledge_backend/internals/features/tutors/dto"
)

const dateLayout = "2006-01-02"

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}

/* =========================
   CREATE
========================= */

type CreateGigRequest struct {
	Title       string `json:"gig_title" validate:"required,min=1,max=200"`
	SubjectName string `json:"gig_subject_name" validate:"required,min=1,max=100"`
	Level       string `json:"gig_level" validate:"required,oneof=primary middle high_school college_prep undergraduate graduate professional adult_education other"`

	TotalTutorRemuneration decimal.Decimal `json:"gig_total_tutor_remuneration" validate:"required"`
	TotalClientFee         decimal.Decimal `json:"gig_total_client_fee" validate:"required"`
	TotalHours             decimal.Decimal `json:"gig_total_hours" validate:"required"`

	Description string  `json:"gig_description"`
	Priority    *string `json:"gig_priority" validate:"omitempty,oneof=low medium high urgent"`

	ClientName  string `json:"gig_client_name" validate:"required,min=1,max=100"`
	ClientEmail string `json:"gig_client_email" validate:"required,email"`
	ClientPhone string `json:"gig_client_phone" validate:"omitempty,max=17"`

	StartDate string `json:"gig_start_date" validate:"required"`
	EndDate   string `json:"gig_end_date" validate:"required"`

	Notes string `json:"gig_notes"`
}

// ToModel builds a pending, unassigned gig with a full ledger.
func (r *CreateGigRequest) ToModel() (*m.GigModel, error) {
	start, err := parseDate("gig_start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("gig_end_date", r.EndDate)
	if err != nil {
		return nil, err
	}

	g := &m.GigModel{
		GigTitle:                  strings.TrimSpace(r.Title),
		GigSubjectName:            strings.TrimSpace(r.SubjectName),
		GigLevel:                  m.GigLevel(r.Level),
		GigTotalTutorRemuneration: r.TotalTutorRemuneration,
		GigTotalClientFee:         r.TotalClientFee,
		GigTotalHours:             r.TotalHours,
		GigTotalHoursRemaining:    r.TotalHours,
		GigDescription:            strings.TrimSpace(r.Description),
		GigStatus:                 m.GigStatusPending,
		GigPriority:               m.GigPriorityMedium,
		GigClientName:             strings.TrimSpace(r.ClientName),
		GigClientEmail:            strings.ToLower(strings.TrimSpace(r.ClientEmail)),
		GigClientPhone:            strings.TrimSpace(r.ClientPhone),
		GigStartDate:              start,
		GigEndDate:                end,
		GigNotes:                  strings.TrimSpace(r.Notes),
	}
	if r.Priority != nil {
		g.GigPriority = m.GigPriority(*r.Priority)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

/* =========================
   UPDATE
========================= */

type UpdateGigRequest struct {
	Title       *string `json:"gig_title" validate:"omitempty,min=1,max=200"`
	SubjectName *string `json:"gig_subject_name" validate:"omitempty,min=1,max=100"`
	Level       *string `json:"gig_level" validate:"omitempty,oneof=primary middle high_school college_prep undergraduate graduate professional adult_education other"`

	TotalTutorRemuneration *decimal.Decimal `json:"gig_total_tutor_remuneration"`
	TotalClientFee         *decimal.Decimal `json:"gig_total_client_fee"`

	// Resizing the budget recomputes the ledger (completed hours preserved).
	TotalHours *decimal.Decimal `json:"gig_total_hours"`

	Description *string `json:"gig_description"`
	Priority    *string `json:"gig_priority" validate:"omitempty,oneof=low medium high urgent"`

	ClientName  *string `json:"gig_client_name" validate:"omitempty,min=1,max=100"`
	ClientEmail *string `json:"gig_client_email" validate:"omitempty,email"`
	ClientPhone *string `json:"gig_client_phone" validate:"omitempty,max=17"`

	StartDate *string `json:"gig_start_date"`
	EndDate   *string `json:"gig_end_date"`

	Notes *string `json:"gig_notes"`
}

// Apply mutates the gig in place; the caller validates and persists under
// the row lock. Resize goes through the model so the ledger rule holds.
func (r *UpdateGigRequest) Apply(g *m.GigModel) error {
	if r.Title != nil {
		g.GigTitle = strings.TrimSpace(*r.Title)
	}
	if r.SubjectName != nil {
		g.GigSubjectName = strings.TrimSpace(*r.SubjectName)
	}
	if r.Level != nil {
		g.GigLevel = m.GigLevel(*r.Level)
	}
	if r.TotalTutorRemuneration != nil {
		g.GigTotalTutorRemuneration = *r.TotalTutorRemuneration
	}
	if r.TotalClientFee != nil {
		g.GigTotalClientFee = *r.TotalClientFee
	}
	if r.TotalHours != nil && !r.TotalHours.Equal(g.GigTotalHours) {
		if err := g.ResizeTotalHours(*r.TotalHours); err != nil {
			return err
		}
	}
	if r.Description != nil {
		g.GigDescription = strings.TrimSpace(*r.Description)
	}
	if r.Priority != nil {
		g.GigPriority = m.GigPriority(*r.Priority)
	}
	if r.ClientName != nil {
		g.GigClientName = strings.TrimSpace(*r.ClientName)
	}
	if r.ClientEmail != nil {
		g.GigClientEmail = strings.ToLower(strings.TrimSpace(*r.ClientEmail))
	}
	if r.ClientPhone != nil {
		g.GigClientPhone = strings.TrimSpace(*r.ClientPhone)
	}
	if r.StartDate != nil {
		t, err := parseDate("gig_start_date", *r.StartDate)
		if err != nil {
			return err
		}
		g.GigStartDate = t
	}
	if r.EndDate != nil {
		t, err := parseDate("gig_end_date", *r.EndDate)
		if err != nil {
			return err
		}
		g.GigEndDate = t
	}
	if r.Notes != nil {
		g.GigNotes = strings.TrimSpace(*r.Notes)
	}
	return g.Validate()
}

/* =========================
   Action payloads
========================= */

type AssignGigRequest struct {
	TutorID string `json:"tutor_id" validate:"required"` // TUT-0001 or bare numeric
	Notes   string `json:"notes"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type AdjustHoursRequest struct {
	Hours  decimal.Decimal `json:"hours_to_subtract" validate:"required"`
	Reason string          `json:"reason"`
}

/* =========================
   RESPONSE
========================= */

type GigResponse struct {
	GigID      uint   `json:"gig_id"`
	GigRefCode string `json:"gig_ref_code"`

	Tutor *tutorDTO.TutorResponse `json:"gig_tutor,omitempty"`

	Title       string `json:"gig_title"`
	SubjectName string `json:"gig_subject_name"`
	Level       string `json:"gig_level"`

	TotalTutorRemuneration decimal.Decimal `json:"gig_total_tutor_remuneration"`
	TotalClientFee         decimal.Decimal `json:"gig_total_client_fee"`
	TotalHours             decimal.Decimal `json:"gig_total_hours"`
	TotalHoursRemaining    decimal.Decimal `json:"gig_total_hours_remaining"`

	Description string `json:"gig_description"`
	Status      string `json:"gig_status"`
	Priority    string `json:"gig_priority"`

	ClientName  string `json:"gig_client_name"`
	ClientEmail string `json:"gig_client_email"`
	ClientPhone string `json:"gig_client_phone"`

	StartDate       string  `json:"gig_start_date"`
	EndDate         string  `json:"gig_end_date"`
	ActualStartDate *string `json:"gig_actual_start_date,omitempty"`
	ActualEndDate   *string `json:"gig_actual_end_date,omitempty"`

	Notes     string    `json:"gig_notes"`
	CreatedAt time.Time `json:"gig_created_at"`
	UpdatedAt time.Time `json:"gig_updated_at"`
}

func NewGigResponse(g *m.GigModel) *GigResponse {
	resp := &GigResponse{
		GigID:                  g.GigID,
		GigRefCode:             g.RefCode(),
		Title:                  g.GigTitle,
		SubjectName:            g.GigSubjectName,
		Level:                  string(g.GigLevel),
		TotalTutorRemuneration: g.GigTotalTutorRemuneration,
		TotalClientFee:         g.GigTotalClientFee,
		TotalHours:             g.GigTotalHours,
		TotalHoursRemaining:    g.GigTotalHoursRemaining,
		Description:            g.GigDescription,
		Status:                 string(g.GigStatus),
		Priority:               string(g.GigPriority),
		ClientName:             g.GigClientName,
		ClientEmail:            g.GigClientEmail,
		ClientPhone:            g.GigClientPhone,
		StartDate:              g.GigStartDate.Format(dateLayout),
		EndDate:                g.GigEndDate.Format(dateLayout),
		Notes:                  g.GigNotes,
		CreatedAt:              g.GigCreatedAt,
		UpdatedAt:              g.GigUpdatedAt,
	}
	if g.GigTutor != nil {
		resp.Tutor = tutorDTO.NewTutorResponse(g.GigTutor)
	}
	if g.GigActualStartDate != nil {
		s := g.GigActualStartDate.Format(dateLayout)
		resp.ActualStartDate = &s
	}
	if g.GigActualEndDate != nil {
		s := g.GigActualEndDate.Format(dateLayout)
		resp.ActualEndDate = &s
	}
	return resp
}
