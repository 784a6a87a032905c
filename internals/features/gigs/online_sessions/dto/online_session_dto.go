// internals/features/gigs/online_sessions/dto/online_session_dto.go
package dto

import (
	"strings"
	"time"

	"quest4knowledge_backend/internals/apperr"
	m "quest4knowledge_backend/internals/features/gigs/online_sessions/model"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================
   Requests
========================= */

type ScheduleMeetingRequest struct {
	GigID          string `json:"gig_id" validate:"required"`
	ScheduledStart string `json:"scheduled_start" validate:"required"` // RFC 3339
	ScheduledEnd   string `json:"scheduled_end" validate:"required"`
}

func (r *ScheduleMeetingRequest) Window() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, strings.TrimSpace(r.ScheduledStart))
	if err != nil {
		return start, end, apperr.Validation("scheduled_start must be an RFC 3339 timestamp")
	}
	end, err = time.Parse(time.RFC3339, strings.TrimSpace(r.ScheduledEnd))
	if err != nil {
		return start, end, apperr.Validation("scheduled_end must be an RFC 3339 timestamp")
	}
	return start, end, nil
}

type ExtendMeetingRequest struct {
	Minutes int `json:"minutes" validate:"required"`
}

type ValidateAccessRequest struct {
	MeetingCode string `json:"meeting_code" validate:"required"`
	PinCode     string `json:"pin_code" validate:"required,len=6"`
	Role        string `json:"role" validate:"required,oneof=tutor client"`
}

/* =========================
   Responses
========================= */

// OnlineSessionResponse is the admin view; it includes the pin so staff
// can read it out to a participant who lost the invite.
type OnlineSessionResponse struct {
	OnlineSessionID uint   `json:"online_session_id"`
	RefCode         string `json:"online_session_ref_code"`
	GigRefCode      string `json:"gig_ref_code"`
	TutorRefCode    string `json:"tutor_ref_code"`

	MeetingCode string `json:"online_session_meeting_code"`
	PinCode     string `json:"online_session_pin_code"`

	ScheduledStart time.Time  `json:"online_session_scheduled_start"`
	ScheduledEnd   time.Time  `json:"online_session_scheduled_end"`
	ExtendedEnd    *time.Time `json:"online_session_extended_end,omitempty"`
	ActualStart    *time.Time `json:"online_session_actual_start,omitempty"`
	ActualEnd      *time.Time `json:"online_session_actual_end,omitempty"`

	Status string `json:"online_session_status"`

	TutorJoined    bool       `json:"online_session_tutor_joined"`
	TutorJoinedAt  *time.Time `json:"online_session_tutor_joined_at,omitempty"`
	ClientJoined   bool       `json:"online_session_client_joined"`
	ClientJoinedAt *time.Time `json:"online_session_client_joined_at,omitempty"`

	ExternalRoomURL *string `json:"online_session_external_room_url,omitempty"`

	CreatedAt time.Time `json:"online_session_created_at"`
}

func NewOnlineSessionResponse(s *m.OnlineSessionModel) *OnlineSessionResponse {
	return &OnlineSessionResponse{
		OnlineSessionID: s.OnlineSessionID,
		RefCode:         s.RefCode(),
		GigRefCode:      refcode.Gig(s.OnlineSessionGigID),
		TutorRefCode:    refcode.Tutor(s.OnlineSessionTutorID),
		MeetingCode:     s.OnlineSessionMeetingCode,
		PinCode:         s.OnlineSessionPinCode,
		ScheduledStart:  s.OnlineSessionScheduledStart,
		ScheduledEnd:    s.OnlineSessionScheduledEnd,
		ExtendedEnd:     s.OnlineSessionExtendedEnd,
		ActualStart:     s.OnlineSessionActualStart,
		ActualEnd:       s.OnlineSessionActualEnd,
		Status:          string(s.OnlineSessionStatus),
		TutorJoined:     s.OnlineSessionTutorJoined,
		TutorJoinedAt:   s.OnlineSessionTutorJoinedAt,
		ClientJoined:    s.OnlineSessionClientJoined,
		ClientJoinedAt:  s.OnlineSessionClientJoinedAt,
		ExternalRoomURL: s.OnlineSessionExternalRoomURL,
		CreatedAt:       s.OnlineSessionCreatedAt,
	}
}

// PublicMeetingResponse is what the join page sees before entering a pin:
// no pin, no internal ids, just enough to render the lobby.
type PublicMeetingResponse struct {
	MeetingCode    string     `json:"meeting_code"`
	Status         string     `json:"status"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end"`
	ExtendedEnd    *time.Time `json:"extended_end,omitempty"`
}

func NewPublicMeetingResponse(s *m.OnlineSessionModel) *PublicMeetingResponse {
	return &PublicMeetingResponse{
		MeetingCode:    s.OnlineSessionMeetingCode,
		Status:         string(s.OnlineSessionStatus),
		ScheduledStart: s.OnlineSessionScheduledStart,
		ScheduledEnd:   s.OnlineSessionScheduledEnd,
		ExtendedEnd:    s.OnlineSessionExtendedEnd,
	}
}

// JoinGrantedResponse is returned after a successful pin check; it carries
// the external room URL when one exists.
type JoinGrantedResponse struct {
	MeetingCode     string     `json:"meeting_code"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	EffectiveEnd    time.Time  `json:"effective_end"`
	ActualStart     *time.Time `json:"actual_start,omitempty"`
	ExternalRoomURL *string    `json:"external_room_url,omitempty"`
}

func NewJoinGrantedResponse(s *m.OnlineSessionModel, role string) *JoinGrantedResponse {
	return &JoinGrantedResponse{
		MeetingCode:     s.OnlineSessionMeetingCode,
		Role:            role,
		Status:          string(s.OnlineSessionStatus),
		EffectiveEnd:    s.EffectiveEnd(),
		ActualStart:     s.OnlineSessionActualStart,
		ExternalRoomURL: s.OnlineSessionExternalRoomURL,
	}
}
