// internals/features/gigs/online_sessions/model/online_session_model.go
package model

import (
	"time"

	"quest4knowledge_backend/internals/apperr"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	tutorModel "quest4knowledge_backend/internals/features/tutors/model"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================
   Enums
========================= */

type OnlineSessionStatus string

const (
	OnlineStatusScheduled OnlineSessionStatus = "scheduled"
	OnlineStatusActive    OnlineSessionStatus = "active"
	OnlineStatusCompleted OnlineSessionStatus = "completed"
	OnlineStatusCancelled OnlineSessionStatus = "cancelled"
)

type JoinRole string

const (
	JoinRoleTutor  JoinRole = "tutor"
	JoinRoleClient JoinRole = "client"
)

func (r JoinRole) Valid() bool {
	return r == JoinRoleTutor || r == JoinRoleClient
}

/* =========================
   Extension limits
========================= */

const (
	MinExtendMinutes  = 5
	MaxExtendMinutes  = 120
	ExtendStepMinutes = 5
)

/* =========================================================
   Model: online_sessions

   A scheduled video meeting for a gig. Status only moves
   forward: scheduled → active → completed, or → cancelled
   from either non-terminal state. The external room fields
   stay nil when provisioning fails; the meeting still works
   by code + pin.
========================================================= */

type OnlineSessionModel struct {
	OnlineSessionID uint `gorm:"primaryKey;column:online_session_id" json:"online_session_id"`

	OnlineSessionGigID uint               `gorm:"not null;index;column:online_session_gig_id" json:"online_session_gig_id"`
	OnlineSessionGig   *gigModel.GigModel `gorm:"foreignKey:OnlineSessionGigID;references:GigID" json:"-"`

	OnlineSessionTutorID uint                   `gorm:"not null;index:idx_online_sessions_tutor_status;column:online_session_tutor_id" json:"online_session_tutor_id"`
	OnlineSessionTutor   *tutorModel.TutorModel `gorm:"foreignKey:OnlineSessionTutorID;references:TutorID" json:"-"`

	// Join credentials. The code is public-ish (it is in the invite), the
	// pin is the secret.
	OnlineSessionMeetingCode string `gorm:"type:varchar(14);not null;uniqueIndex;column:online_session_meeting_code" json:"online_session_meeting_code"`
	OnlineSessionPinCode     string `gorm:"type:varchar(6);not null;column:online_session_pin_code" json:"-"`

	OnlineSessionScheduledStart time.Time  `gorm:"type:timestamptz;not null;column:online_session_scheduled_start" json:"online_session_scheduled_start"`
	OnlineSessionScheduledEnd   time.Time  `gorm:"type:timestamptz;not null;column:online_session_scheduled_end" json:"online_session_scheduled_end"`
	OnlineSessionActualStart    *time.Time `gorm:"type:timestamptz;column:online_session_actual_start" json:"online_session_actual_start,omitempty"`
	OnlineSessionActualEnd      *time.Time `gorm:"type:timestamptz;column:online_session_actual_end" json:"online_session_actual_end,omitempty"`
	OnlineSessionExtendedEnd    *time.Time `gorm:"type:timestamptz;column:online_session_extended_end" json:"online_session_extended_end,omitempty"`

	OnlineSessionStatus OnlineSessionStatus `gorm:"type:varchar(10);not null;default:'scheduled';index:idx_online_sessions_tutor_status;column:online_session_status" json:"online_session_status"`

	OnlineSessionTutorJoined   bool       `gorm:"not null;default:false;column:online_session_tutor_joined" json:"online_session_tutor_joined"`
	OnlineSessionTutorJoinedAt *time.Time `gorm:"type:timestamptz;column:online_session_tutor_joined_at" json:"online_session_tutor_joined_at,omitempty"`

	OnlineSessionClientJoined   bool       `gorm:"not null;default:false;column:online_session_client_joined" json:"online_session_client_joined"`
	OnlineSessionClientJoinedAt *time.Time `gorm:"type:timestamptz;column:online_session_client_joined_at" json:"online_session_client_joined_at,omitempty"`

	// External room (Digital Samba). Nullable: provisioning is best-effort.
	OnlineSessionExternalRoomID  *string `gorm:"type:varchar(100);column:online_session_external_room_id" json:"online_session_external_room_id,omitempty"`
	OnlineSessionExternalRoomURL *string `gorm:"type:text;column:online_session_external_room_url" json:"online_session_external_room_url,omitempty"`

	OnlineSessionCreatedAt time.Time `gorm:"autoCreateTime;column:online_session_created_at" json:"online_session_created_at"`
	OnlineSessionUpdatedAt time.Time `gorm:"autoUpdateTime;column:online_session_updated_at" json:"online_session_updated_at"`
}

func (OnlineSessionModel) TableName() string { return "online_sessions" }

func (m *OnlineSessionModel) RefCode() string { return refcode.Online(m.OnlineSessionID) }

/* =========================
   Derived state
========================= */

func (m *OnlineSessionModel) IsTerminal() bool {
	return m.OnlineSessionStatus == OnlineStatusCompleted ||
		m.OnlineSessionStatus == OnlineStatusCancelled
}

// EffectiveEnd is the scheduled end, pushed out by any extension.
func (m *OnlineSessionModel) EffectiveEnd() time.Time {
	if m.OnlineSessionExtendedEnd != nil && m.OnlineSessionExtendedEnd.After(m.OnlineSessionScheduledEnd) {
		return *m.OnlineSessionExtendedEnd
	}
	return m.OnlineSessionScheduledEnd
}

// Overlaps uses the half-open interval test: two meetings clash when
// existing.start < new.end && existing.end > new.start. Back-to-back
// meetings (one ends exactly when the next starts) do not overlap.
func (m *OnlineSessionModel) Overlaps(start, end time.Time) bool {
	return m.OnlineSessionScheduledStart.Before(end) && m.EffectiveEnd().After(start)
}

/* =========================
   Validation
========================= */

func (m *OnlineSessionModel) Validate() error {
	if !m.OnlineSessionScheduledStart.Before(m.OnlineSessionScheduledEnd) {
		return apperr.Validation("scheduled start must be before scheduled end")
	}
	return nil
}

/* =========================================================
   Transitions (forward-only)
========================================================= */

// MarkJoined records a join for the role. Idempotent: a repeat join keeps
// the first timestamp. The first join of any role promotes a scheduled
// meeting to active and stamps the actual start.
func (m *OnlineSessionModel) MarkJoined(role JoinRole, now time.Time) error {
	if !role.Valid() {
		return apperr.Validation("unknown join role %q", role)
	}
	if m.IsTerminal() {
		return apperr.StateConflict(string(m.OnlineSessionStatus), "meeting %s has ended", m.RefCode())
	}

	if m.OnlineSessionStatus == OnlineStatusScheduled {
		m.OnlineSessionStatus = OnlineStatusActive
		at := now
		m.OnlineSessionActualStart = &at
	}

	switch role {
	case JoinRoleTutor:
		if !m.OnlineSessionTutorJoined {
			m.OnlineSessionTutorJoined = true
			at := now
			m.OnlineSessionTutorJoinedAt = &at
		}
	case JoinRoleClient:
		if !m.OnlineSessionClientJoined {
			m.OnlineSessionClientJoined = true
			at := now
			m.OnlineSessionClientJoinedAt = &at
		}
	}
	return nil
}

// Extend pushes the effective end out by the given minutes. Only an active
// meeting can be extended, in 5-minute steps up to 2 hours per call.
func (m *OnlineSessionModel) Extend(minutes int) error {
	if m.OnlineSessionStatus != OnlineStatusActive {
		return apperr.StateConflict(string(m.OnlineSessionStatus), "only an active meeting can be extended")
	}
	if minutes < MinExtendMinutes || minutes > MaxExtendMinutes || minutes%ExtendStepMinutes != 0 {
		return apperr.Validation("extension must be a multiple of %d minutes between %d and %d",
			ExtendStepMinutes, MinExtendMinutes, MaxExtendMinutes)
	}
	newEnd := m.EffectiveEnd().Add(time.Duration(minutes) * time.Minute)
	m.OnlineSessionExtendedEnd = &newEnd
	return nil
}

func (m *OnlineSessionModel) Complete(now time.Time) error {
	if m.IsTerminal() {
		return apperr.StateConflict(string(m.OnlineSessionStatus), "meeting %s is already closed", m.RefCode())
	}
	m.OnlineSessionStatus = OnlineStatusCompleted
	at := now
	m.OnlineSessionActualEnd = &at
	return nil
}

func (m *OnlineSessionModel) Cancel() error {
	if m.IsTerminal() {
		return apperr.StateConflict(string(m.OnlineSessionStatus), "meeting %s is already closed", m.RefCode())
	}
	m.OnlineSessionStatus = OnlineStatusCancelled
	return nil
}
