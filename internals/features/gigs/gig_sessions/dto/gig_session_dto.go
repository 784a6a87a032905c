// internals/features/gigs/gig_sessions/dto/gig_session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quest4knowledge_backend/internals/apperr"
	m "quest4knowledge_backend/internals/features/gigs/gig_sessions/model"
	sessionService "quest4knowledge_backend/internals/features/gigs/gig_sessions/service"
	"quest4knowledge_backend/internals/helpers/refcode"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}

// parseClock returns the zero-padded HH:MM form. Normalizing here matters:
// clock strings are compared lexicographically downstream, so "9:00" must
// become "09:00" before it is stored.
func parseClock(field, raw string) (string, error) {
	t, err := time.Parse(timeLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", apperr.Validation("%s must be an HH:MM time", field)
	}
	return t.Format(timeLayout), nil
}

/* =========================
   CREATE
========================= */

type CreateGigSessionRequest struct {
	Date      string `json:"gig_session_date" validate:"required"`
	StartTime string `json:"gig_session_start_time" validate:"required"`
	EndTime   string `json:"gig_session_end_time" validate:"required"`

	HoursLogged decimal.Decimal `json:"gig_session_hours_logged" validate:"required"`

	Notes             string `json:"gig_session_notes"`
	StudentAttendance *bool  `json:"gig_session_student_attendance"`
}

// ToModel builds an unverified session for the given gig.
func (r *CreateGigSessionRequest) ToModel(gigID uint) (*m.GigSessionModel, error) {
	date, err := parseDate("gig_session_date", r.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseClock("gig_session_start_time", r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock("gig_session_end_time", r.EndTime)
	if err != nil {
		return nil, err
	}

	s := &m.GigSessionModel{
		GigSessionGigID:             gigID,
		GigSessionDate:              date,
		GigSessionStartTime:         start,
		GigSessionEndTime:           end,
		GigSessionHoursLogged:       r.HoursLogged,
		GigSessionNotes:             strings.TrimSpace(r.Notes),
		GigSessionStudentAttendance: true,
	}
	if r.StudentAttendance != nil {
		s.GigSessionStudentAttendance = *r.StudentAttendance
	}
	return s, nil
}

/* =========================
   UPDATE
========================= */

type UpdateGigSessionRequest struct {
	Date      *string `json:"gig_session_date"`
	StartTime *string `json:"gig_session_start_time"`
	EndTime   *string `json:"gig_session_end_time"`

	HoursLogged *decimal.Decimal `json:"gig_session_hours_logged"`

	Notes             *string `json:"gig_session_notes"`
	StudentAttendance *bool   `json:"gig_session_student_attendance"`
}

// ToPatch translates the request into the service-level patch, parsing
// dates and clock strings up front so the locked transaction never fails
// on a malformed field.
func (r *UpdateGigSessionRequest) ToPatch() (sessionService.SessionPatch, error) {
	var p sessionService.SessionPatch
	if r.Date != nil {
		d, err := parseDate("gig_session_date", *r.Date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	if r.StartTime != nil {
		s, err := parseClock("gig_session_start_time", *r.StartTime)
		if err != nil {
			return p, err
		}
		p.StartTime = &s
	}
	if r.EndTime != nil {
		e, err := parseClock("gig_session_end_time", *r.EndTime)
		if err != nil {
			return p, err
		}
		p.EndTime = &e
	}
	p.HoursLogged = r.HoursLogged
	if r.Notes != nil {
		n := strings.TrimSpace(*r.Notes)
		p.Notes = &n
	}
	p.StudentAttendance = r.StudentAttendance
	return p, nil
}

/* =========================
   VERIFY
========================= */

// VerifySessionRequest toggles the verification flag: true verifies,
// false reverses a prior verification.
type VerifySessionRequest struct {
	Verified bool   `json:"verified"`
	Notes    string `json:"notes"`
}

/* =========================
   RESPONSE
========================= */

type GigSessionResponse struct {
	GigSessionID      uint   `json:"gig_session_id"`
	GigSessionRefCode string `json:"gig_session_ref_code"`
	GigRefCode        string `json:"gig_ref_code"`

	Date      string `json:"gig_session_date"`
	StartTime string `json:"gig_session_start_time"`
	EndTime   string `json:"gig_session_end_time"`

	HoursLogged decimal.Decimal `json:"gig_session_hours_logged"`

	Notes             string `json:"gig_session_notes"`
	StudentAttendance bool   `json:"gig_session_student_attendance"`

	IsVerified bool       `json:"gig_session_is_verified"`
	VerifiedBy *string    `json:"gig_session_verified_by,omitempty"`
	VerifiedAt *time.Time `json:"gig_session_verified_at,omitempty"`

	CreatedAt time.Time `json:"gig_session_created_at"`
	UpdatedAt time.Time `json:"gig_session_updated_at"`
}

func NewGigSessionResponse(s *m.GigSessionModel) *GigSessionResponse {
	resp := &GigSessionResponse{
		GigSessionID:      s.GigSessionID,
		GigSessionRefCode: s.RefCode(),
		GigRefCode:        refcode.Gig(s.GigSessionGigID),
		Date:              s.GigSessionDate.Format(dateLayout),
		StartTime:         s.GigSessionStartTime,
		EndTime:           s.GigSessionEndTime,
		HoursLogged:       s.GigSessionHoursLogged,
		Notes:             s.GigSessionNotes,
		StudentAttendance: s.GigSessionStudentAttendance,
		CreatedAt:         s.GigSessionCreatedAt,
		UpdatedAt:         s.GigSessionUpdatedAt,
	}
	if v := s.Verification(); v != nil {
		resp.IsVerified = true
		by, at := v.By, v.At
		resp.VerifiedBy = &by
		resp.VerifiedAt = &at
	}
	return resp
}
