// internals/features/gigs/gig_sessions/service/verification_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"quest4knowledge_backend/internals/apperr"
	auditModel "quest4knowledge_backend/internals/features/audit/model"
	auditService "quest4knowledge_backend/internals/features/audit/service"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	gigService "quest4knowledge_backend/internals/features/gigs/gig/service"
	sessionModel "quest4knowledge_backend/internals/features/gigs/gig_sessions/model"
	notifService "quest4knowledge_backend/internals/features/notifications/service"
	tutorModel "quest4knowledge_backend/internals/features/tutors/model"
	"quest4knowledge_backend/internals/helpers/hourledger"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================================================
   Verification engine.

   Every session mutation that can touch the gig's hour
   ledger runs here: one locked transaction per operation,
   session row and gig row persisted together, audit entry in
   the same commit. Notifications go out only after the
   transaction committed.
========================================================= */

type VerificationService struct {
	DB       *gorm.DB
	Notifier notifService.Notifier
	Currency string
}

func NewVerificationService(db *gorm.DB, notifier notifService.Notifier, currency string) *VerificationService {
	return &VerificationService{DB: db, Notifier: notifier, Currency: currency}
}

// SessionPatch carries pre-parsed field updates for UpdateSession.
type SessionPatch struct {
	Date              *time.Time
	StartTime         *string
	EndTime           *string
	HoursLogged       *decimal.Decimal
	Notes             *string
	StudentAttendance *bool
}

/* =========================
   Create
========================= */

// CreateSession logs a new unverified session against the gig. Never
// touches the ledger.
func (svc *VerificationService) CreateSession(ctx context.Context, actor string, s *sessionModel.GigSessionModel) error {
	return gigService.WithGigLock(ctx, svc.DB, s.GigSessionGigID, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		if !gig.AcceptsSessions() {
			return apperr.StateConflict(string(gig.GigStatus), "sessions can only be logged against an active or on-hold gig")
		}
		if err := s.Validate(time.Now().UTC()); err != nil {
			return err
		}
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		return auditService.Append(tx, gig.GigID, actor, auditModel.ActionSessionCreated, map[string]interface{}{
			"session":      s.RefCode(),
			"date":         s.GigSessionDate.Format("2006-01-02"),
			"hours_logged": s.GigSessionHoursLogged.String(),
		})
	})
}

/* =========================
   Update
========================= */

// UpdateSession applies the patch under the gig lock. An hours change on a
// verified session adjusts the ledger by the delta; everything else is a
// plain field edit.
func (svc *VerificationService) UpdateSession(ctx context.Context, sessionID uint, actor string, patch SessionPatch) (*sessionModel.GigSessionModel, error) {
	gigID, err := svc.gigIDOf(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var out *sessionModel.GigSessionModel
	err = gigService.WithGigLock(ctx, svc.DB, gigID, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		s, err := svc.lockedSession(tx, sessionID, gig.GigID)
		if err != nil {
			return err
		}

		if patch.Date != nil {
			s.GigSessionDate = *patch.Date
		}
		if patch.StartTime != nil {
			s.GigSessionStartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			s.GigSessionEndTime = *patch.EndTime
		}
		if patch.Notes != nil {
			s.GigSessionNotes = *patch.Notes
		}
		if patch.StudentAttendance != nil {
			s.GigSessionStudentAttendance = *patch.StudentAttendance
		}
		if patch.HoursLogged != nil && !patch.HoursLogged.Equal(s.GigSessionHoursLogged) {
			if err := s.ApplyHoursEdit(gig, *patch.HoursLogged); err != nil {
				return err
			}
		}
		if err := s.Validate(time.Now().UTC()); err != nil {
			return err
		}

		if err := tx.Save(s).Error; err != nil {
			return err
		}
		if err := tx.Save(gig).Error; err != nil {
			return err
		}
		if err := auditService.Append(tx, gig.GigID, actor, auditModel.ActionSessionUpdated, map[string]interface{}{
			"session":         s.RefCode(),
			"hours_logged":    s.GigSessionHoursLogged.String(),
			"hours_remaining": gig.GigTotalHoursRemaining.String(),
		}); err != nil {
			return err
		}
		out = s
		return nil
	})
	return out, err
}

/* =========================
   Delete
========================= */

// DeleteSession removes the session, restoring its hours to the gig first
// when it was verified.
func (svc *VerificationService) DeleteSession(ctx context.Context, sessionID uint, actor string) error {
	gigID, err := svc.gigIDOf(ctx, sessionID)
	if err != nil {
		return err
	}

	return gigService.WithGigLock(ctx, svc.DB, gigID, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		s, err := svc.lockedSession(tx, sessionID, gig.GigID)
		if err != nil {
			return err
		}

		wasVerified := s.Verification() != nil
		s.ApplyDelete(gig)

		if err := tx.Delete(s).Error; err != nil {
			return err
		}
		if err := tx.Save(gig).Error; err != nil {
			return err
		}
		return auditService.Append(tx, gig.GigID, actor, auditModel.ActionSessionDeleted, map[string]interface{}{
			"session":         s.RefCode(),
			"was_verified":    wasVerified,
			"hours_released":  s.GigSessionHoursLogged.String(),
			"hours_remaining": gig.GigTotalHoursRemaining.String(),
		})
	})
}

/* =========================
   Verify / unverify
========================= */

// SetVerified toggles the verification state. Verifying subtracts the
// session's hours from the gig ledger; unverifying restores them. The
// tutor is notified after a successful verification commits.
func (svc *VerificationService) SetVerified(ctx context.Context, sessionID uint, actor string, verified bool) (*sessionModel.GigSessionModel, error) {
	gigID, err := svc.gigIDOf(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var (
		out  *sessionModel.GigSessionModel
		note *notifService.SessionVerifiedNote
	)
	err = gigService.WithGigLock(ctx, svc.DB, gigID, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		s, err := svc.lockedSession(tx, sessionID, gig.GigID)
		if err != nil {
			return err
		}

		action := auditModel.ActionSessionUnverified
		if verified {
			if err := s.ApplyVerify(gig, actor, time.Now().UTC()); err != nil {
				return err
			}
			action = auditModel.ActionSessionVerified
		} else {
			if err := s.ApplyUnverify(gig); err != nil {
				return err
			}
		}

		if err := tx.Save(s).Error; err != nil {
			return err
		}
		if err := tx.Save(gig).Error; err != nil {
			return err
		}
		if err := auditService.Append(tx, gig.GigID, actor, action, map[string]interface{}{
			"session":         s.RefCode(),
			"hours_logged":    s.GigSessionHoursLogged.String(),
			"hours_remaining": gig.GigTotalHoursRemaining.String(),
		}); err != nil {
			return err
		}

		if verified && gig.GigTutorID != nil {
			var tutor tutorModel.TutorModel
			if err := tx.First(&tutor, *gig.GigTutorID).Error; err != nil {
				return err
			}
			rate := hourledger.PerHour(gig.GigTotalTutorRemuneration, gig.GigTotalHours)
			note = &notifService.SessionVerifiedNote{
				SessionRefCode: s.RefCode(),
				GigRefCode:     gig.RefCode(),
				SubjectName:    gig.GigSubjectName,
				TutorName:      tutor.FullName(),
				TutorEmail:     tutor.TutorEmailAddress,
				SessionDate:    s.GigSessionDate.Format("2006-01-02"),
				HoursLogged:    s.GigSessionHoursLogged.String(),
				Remuneration:   svc.Currency + hourledger.Round2(rate.Mul(s.GigSessionHoursLogged)).StringFixed(2),
				VerifiedBy:     actor,
			}
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	if note != nil {
		go svc.Notifier.SessionVerified(*note)
	}
	return out, nil
}

/* =========================
   Lookups
========================= */

// gigIDOf resolves the parent gig before taking the lock. The session row
// is re-read inside the transaction; this read only finds the lock target.
func (svc *VerificationService) gigIDOf(ctx context.Context, sessionID uint) (uint, error) {
	var s sessionModel.GigSessionModel
	err := svc.DB.WithContext(ctx).
		Select("gig_session_id", "gig_session_gig_id").
		First(&s, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("session %s not found", refcode.Session(sessionID))
		}
		return 0, err
	}
	return s.GigSessionGigID, nil
}

// lockedSession re-reads the session inside the gig-locked transaction and
// confirms it still belongs to the locked gig.
func (svc *VerificationService) lockedSession(tx *gorm.DB, sessionID, gigID uint) (*sessionModel.GigSessionModel, error) {
	var s sessionModel.GigSessionModel
	if err := tx.First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session %s not found", refcode.Session(sessionID))
		}
		return nil, err
	}
	if s.GigSessionGigID != gigID {
		return nil, apperr.NotFound("session %s not found", refcode.Session(sessionID))
	}
	return &s, nil
}
