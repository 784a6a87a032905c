// internals/features/gigs/online_sessions/service/scheduler_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"quest4knowledge_backend/internals/apperr"
	auditModel "quest4knowledge_backend/internals/features/audit/model"
	auditService "quest4knowledge_backend/internals/features/audit/service"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	gigService "quest4knowledge_backend/internals/features/gigs/gig/service"
	onlineModel "quest4knowledge_backend/internals/features/gigs/online_sessions/model"
	notifService "quest4knowledge_backend/internals/features/notifications/service"
	tutorModel "quest4knowledge_backend/internals/features/tutors/model"
	helper "quest4knowledge_backend/internals/helpers"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================================================
   Online meeting scheduler.

   Scheduling locks the gig row so the tutor-overlap check
   and the insert happen atomically against concurrent
   schedule calls for the same gig. Room provisioning and
   invitations run after commit; neither can fail a booking.
========================================================= */

const maxCodeAttempts = 5

type SchedulerService struct {
	DB          *gorm.DB
	Provisioner RoomProvisioner
	Notifier    notifService.Notifier
	FrontendURL string
}

func NewSchedulerService(db *gorm.DB, provisioner RoomProvisioner, notifier notifService.Notifier, frontendURL string) *SchedulerService {
	return &SchedulerService{DB: db, Provisioner: provisioner, Notifier: notifier, FrontendURL: frontendURL}
}

/* =========================
   Schedule
========================= */

func (svc *SchedulerService) Schedule(ctx context.Context, gigID uint, actor string, start, end time.Time) (*onlineModel.OnlineSessionModel, error) {
	var (
		meeting *onlineModel.OnlineSessionModel
		note    notifService.MeetingScheduledNote
	)

	err := gigService.WithGigLock(ctx, svc.DB, gigID, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		if gig.GigTutorID == nil {
			return apperr.StateConflict(string(gig.GigStatus), "gig %s has no tutor to meet with", gig.RefCode())
		}
		if !gig.AcceptsSessions() {
			return apperr.StateConflict(string(gig.GigStatus), "meetings can only be scheduled for an active or on-hold gig")
		}

		m := &onlineModel.OnlineSessionModel{
			OnlineSessionGigID:          gig.GigID,
			OnlineSessionTutorID:        *gig.GigTutorID,
			OnlineSessionScheduledStart: start.UTC(),
			OnlineSessionScheduledEnd:   end.UTC(),
			OnlineSessionStatus:         onlineModel.OnlineStatusScheduled,
		}
		if err := m.Validate(); err != nil {
			return err
		}

		if err := svc.rejectTutorOverlap(tx, *gig.GigTutorID, m); err != nil {
			return err
		}

		pin, err := NewPinCode()
		if err != nil {
			return err
		}
		m.OnlineSessionPinCode = pin

		if err := svc.insertWithFreshCode(tx, m); err != nil {
			return err
		}

		if err := auditService.Append(tx, gig.GigID, actor, auditModel.ActionMeetingScheduled, map[string]interface{}{
			"meeting":      m.RefCode(),
			"meeting_code": m.OnlineSessionMeetingCode,
			"starts_at":    m.OnlineSessionScheduledStart.Format(time.RFC3339),
			"ends_at":      m.OnlineSessionScheduledEnd.Format(time.RFC3339),
		}); err != nil {
			return err
		}

		var tutor tutorModel.TutorModel
		if err := tx.First(&tutor, *gig.GigTutorID).Error; err != nil {
			return err
		}
		note = notifService.MeetingScheduledNote{
			OnlineRefCode: m.RefCode(),
			GigRefCode:    gig.RefCode(),
			SubjectName:   gig.GigSubjectName,
			TutorName:     tutor.FullName(),
			TutorEmail:    tutor.TutorEmailAddress,
			ClientName:    gig.GigClientName,
			ClientEmail:   gig.GigClientEmail,
			MeetingCode:   m.OnlineSessionMeetingCode,
			PinCode:       m.OnlineSessionPinCode,
			StartsAt:      m.OnlineSessionScheduledStart.Format(time.RFC3339),
			EndsAt:        m.OnlineSessionScheduledEnd.Format(time.RFC3339),
			JoinURL:       svc.joinURL(m.OnlineSessionMeetingCode),
		}
		meeting = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit work: best-effort room, fire-and-forget invitations.
	// Detached from the request context so a slow provisioner cannot
	// block or fail the booking response.
	go svc.provisionRoom(context.Background(), meeting)
	go svc.Notifier.MeetingScheduled(note)

	return meeting, nil
}

// rejectTutorOverlap compares the new window against every open meeting of
// the tutor. Half-open intervals: back-to-back bookings are allowed.
func (svc *SchedulerService) rejectTutorOverlap(tx *gorm.DB, tutorID uint, m *onlineModel.OnlineSessionModel) error {
	var existing []onlineModel.OnlineSessionModel
	err := tx.
		Where("online_session_tutor_id = ? AND online_session_status IN ?",
			tutorID, []onlineModel.OnlineSessionStatus{onlineModel.OnlineStatusScheduled, onlineModel.OnlineStatusActive}).
		Find(&existing).Error
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].Overlaps(m.OnlineSessionScheduledStart, m.OnlineSessionScheduledEnd) {
			return apperr.StateConflict(string(existing[i].OnlineSessionStatus),
				"tutor already has meeting %s from %s to %s",
				existing[i].RefCode(),
				existing[i].OnlineSessionScheduledStart.Format(time.RFC3339),
				existing[i].EffectiveEnd().Format(time.RFC3339))
		}
	}
	return nil
}

// insertWithFreshCode regenerates the meeting code on a unique violation.
func (svc *SchedulerService) insertWithFreshCode(tx *gorm.DB, m *onlineModel.OnlineSessionModel) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := NewMeetingCode()
		if err != nil {
			return err
		}
		m.OnlineSessionMeetingCode = code
		err = tx.Create(m).Error
		if err == nil {
			return nil
		}
		if !helper.IsUniqueViolation(err) {
			return err
		}
		m.OnlineSessionID = 0
	}
	return fmt.Errorf("could not find a free meeting code after %d attempts", maxCodeAttempts)
}

func (svc *SchedulerService) provisionRoom(ctx context.Context, m *onlineModel.OnlineSessionModel) {
	friendly := strings.ToLower(strings.ReplaceAll(m.OnlineSessionMeetingCode, "-", ""))
	id, url, err := svc.Provisioner.CreateRoom(ctx, friendly)
	if err != nil {
		log.Printf("⚠️ room provisioning failed for %s: %v", m.RefCode(), err)
		return
	}
	if id == "" {
		return
	}
	m.OnlineSessionExternalRoomID = &id
	m.OnlineSessionExternalRoomURL = &url
	if err := svc.DB.WithContext(ctx).Model(m).Updates(map[string]interface{}{
		"online_session_external_room_id":  id,
		"online_session_external_room_url": url,
	}).Error; err != nil {
		log.Printf("⚠️ could not store room details for %s: %v", m.RefCode(), err)
	}
}

func (svc *SchedulerService) joinURL(meetingCode string) string {
	return svc.FrontendURL + "/join/" + meetingCode
}

/* =========================
   Join / validate
========================= */

// ValidateAccess checks code + pin and marks the role joined. The first
// join of a scheduled meeting promotes it to active.
func (svc *SchedulerService) ValidateAccess(ctx context.Context, meetingCode, pin string, role onlineModel.JoinRole) (*onlineModel.OnlineSessionModel, error) {
	var out *onlineModel.OnlineSessionModel
	err := svc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockedByCode(tx, meetingCode)
		if err != nil {
			return err
		}
		if m.OnlineSessionPinCode != strings.TrimSpace(pin) {
			// Same message as an unknown code so guessing reveals nothing.
			return apperr.PermissionDenied("invalid meeting code or PIN")
		}
		if err := m.MarkJoined(role, time.Now().UTC()); err != nil {
			return err
		}
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

/* =========================
   Extend / complete / cancel
========================= */

func (svc *SchedulerService) Extend(ctx context.Context, sessionID uint, actor string, minutes int) (*onlineModel.OnlineSessionModel, error) {
	return svc.mutate(ctx, sessionID, func(m *onlineModel.OnlineSessionModel) error {
		return m.Extend(minutes)
	}, "", actor, nil)
}

func (svc *SchedulerService) Complete(ctx context.Context, sessionID uint, actor string) (*onlineModel.OnlineSessionModel, error) {
	return svc.mutate(ctx, sessionID, func(m *onlineModel.OnlineSessionModel) error {
		return m.Complete(time.Now().UTC())
	}, "", actor, nil)
}

// Cancel closes the meeting and tears down the external room best-effort.
func (svc *SchedulerService) Cancel(ctx context.Context, sessionID uint, actor string) (*onlineModel.OnlineSessionModel, error) {
	var roomID string
	m, err := svc.mutate(ctx, sessionID, func(m *onlineModel.OnlineSessionModel) error {
		if err := m.Cancel(); err != nil {
			return err
		}
		if m.OnlineSessionExternalRoomID != nil {
			roomID = *m.OnlineSessionExternalRoomID
		}
		return nil
	}, auditModel.ActionMeetingCancelled, actor, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	if roomID != "" {
		go func() {
			if err := svc.Provisioner.DeleteRoom(context.Background(), roomID); err != nil {
				log.Printf("⚠️ room teardown failed for %s: %v", m.RefCode(), err)
			}
		}()
	}
	return m, nil
}

// mutate loads the meeting, applies op, saves, and optionally audits.
func (svc *SchedulerService) mutate(ctx context.Context, sessionID uint, op func(*onlineModel.OnlineSessionModel) error, auditAction, actor string, detail map[string]interface{}) (*onlineModel.OnlineSessionModel, error) {
	var out *onlineModel.OnlineSessionModel
	err := svc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m onlineModel.OnlineSessionModel
		if err := tx.First(&m, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("online session %s not found", refcode.Online(sessionID))
			}
			return err
		}
		if err := op(&m); err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if auditAction != "" {
			if detail == nil {
				detail = map[string]interface{}{}
			}
			detail["meeting"] = m.RefCode()
			if err := auditService.Append(tx, m.OnlineSessionGigID, actor, auditAction, detail); err != nil {
				return err
			}
		}
		out = &m
		return nil
	})
	return out, err
}

/* =========================
   Lookups
========================= */

func lockedByCode(tx *gorm.DB, meetingCode string) (*onlineModel.OnlineSessionModel, error) {
	var m onlineModel.OnlineSessionModel
	code := strings.ToUpper(strings.TrimSpace(meetingCode))
	if err := tx.Where("online_session_meeting_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.PermissionDenied("invalid meeting code or PIN")
		}
		return nil, err
	}
	return &m, nil
}

// FindByCode is the public lookup: never exposes the pin (the DTO layer
// strips it, the json tag hides it too).
func (svc *SchedulerService) FindByCode(ctx context.Context, meetingCode string) (*onlineModel.OnlineSessionModel, error) {
	return lockedByCode(svc.DB.WithContext(ctx), meetingCode)
}
