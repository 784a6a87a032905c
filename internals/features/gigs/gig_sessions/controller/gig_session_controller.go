// internals/features/gigs/gig_sessions/controller/gig_session_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quest4knowledge_backend/internals/apperr"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	sessionDTO "quest4knowledge_backend/internals/features/gigs/gig_sessions/dto"
	sessionModel "quest4knowledge_backend/internals/features/gigs/gig_sessions/model"
	sessionService "quest4knowledge_backend/internals/features/gigs/gig_sessions/service"
	helper "quest4knowledge_backend/internals/helpers"
	helperAuth "quest4knowledge_backend/internals/helpers/auth"
	"quest4knowledge_backend/internals/helpers/refcode"
)

type GigSessionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *sessionService.VerificationService
}

func NewGigSessionController(db *gorm.DB, svc *sessionService.VerificationService) *GigSessionController {
	return &GigSessionController{DB: db, Validate: validator.New(), Service: svc}
}

/* =========================
   Create / list (admin and tutor)
========================= */

// POST /api/a/gigs/:gig_id/sessions and /api/u/gigs/:gig_id/sessions
func (ctl *GigSessionController) CreateSession(c *fiber.Ctx) error {
	gigID, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctl.requireGigAccess(c, gigID); err != nil {
		return helper.FromError(c, err)
	}

	var req sessionDTO.CreateGigSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	s, err := req.ToModel(gigID)
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctl.Service.CreateSession(c.Context(), helperAuth.ActorLabel(c), s); err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session logged", sessionDTO.NewGigSessionResponse(s))
}

// GET /api/a/gigs/:gig_id/sessions and /api/u/gigs/:gig_id/sessions
func (ctl *GigSessionController) ListSessions(c *fiber.Ctx) error {
	gigID, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctl.requireGigAccess(c, gigID); err != nil {
		return helper.FromError(c, err)
	}

	q := ctl.DB.WithContext(c.Context()).
		Where("gig_session_gig_id = ?", gigID).
		Order("gig_session_date DESC, gig_session_start_time DESC")
	if v := c.Query("verified"); v == "true" || v == "false" {
		q = q.Where("gig_session_is_verified = ?", v == "true")
	}

	var sessions []sessionModel.GigSessionModel
	if err := q.Find(&sessions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list sessions")
	}

	out := make([]*sessionDTO.GigSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessionDTO.NewGigSessionResponse(&sessions[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /api/u/sessions — all sessions across the tutor's gigs.
func (ctl *GigSessionController) ListMySessions(c *fiber.Ctx) error {
	tutorID, err := helperAuth.GetTutorID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	q := ctl.DB.WithContext(c.Context()).
		Joins("JOIN gigs ON gigs.gig_id = gig_sessions.gig_session_gig_id").
		Where("gigs.gig_tutor_id = ?", tutorID).
		Order("gig_session_date DESC, gig_session_start_time DESC")
	if v := c.Query("verified"); v == "true" || v == "false" {
		q = q.Where("gig_session_is_verified = ?", v == "true")
	}

	var sessions []sessionModel.GigSessionModel
	if err := q.Find(&sessions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list sessions")
	}

	out := make([]*sessionDTO.GigSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessionDTO.NewGigSessionResponse(&sessions[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /api/a/sessions/:session_id and /api/u/sessions/:session_id
func (ctl *GigSessionController) GetSession(c *fiber.Ctx) error {
	s, err := ctl.findSession(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctl.requireGigAccess(c, s.GigSessionGigID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", sessionDTO.NewGigSessionResponse(s))
}

/* =========================
   Update / delete
========================= */

// PUT /api/a/sessions/:session_id and /api/u/sessions/:session_id
func (ctl *GigSessionController) UpdateSession(c *fiber.Ctx) error {
	s, err := ctl.findSession(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctl.requireSessionMutable(c, s); err != nil {
		return helper.FromError(c, err)
	}

	var req sessionDTO.UpdateGigSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	patch, err := req.ToPatch()
	if err != nil {
		return helper.FromError(c, err)
	}

	updated, err := ctl.Service.UpdateSession(c.Context(), s.GigSessionID, helperAuth.ActorLabel(c), patch)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Session updated", sessionDTO.NewGigSessionResponse(updated))
}

// DELETE /api/a/sessions/:session_id and /api/u/sessions/:session_id
func (ctl *GigSessionController) DeleteSession(c *fiber.Ctx) error {
	s, err := ctl.findSession(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctl.requireSessionMutable(c, s); err != nil {
		return helper.FromError(c, err)
	}

	if err := ctl.Service.DeleteSession(c.Context(), s.GigSessionID, helperAuth.ActorLabel(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Session deleted", nil)
}

/* =========================
   Verify (admin only; route-guarded)
========================= */

// POST /api/a/sessions/:session_id/verify
func (ctl *GigSessionController) VerifySession(c *fiber.Ctx) error {
	s, err := ctl.findSession(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req sessionDTO.VerifySessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}

	updated, err := ctl.Service.SetVerified(c.Context(), s.GigSessionID, helperAuth.ActorLabel(c), req.Verified)
	if err != nil {
		return helper.FromError(c, err)
	}

	msg := "Session unverified, hours restored"
	if req.Verified {
		msg = "Session verified, hours deducted"
	}
	return helper.Success(c, msg, sessionDTO.NewGigSessionResponse(updated))
}

/* =========================
   Access checks
========================= */

// requireGigAccess: admins see everything; a tutor only their own gigs.
func (ctl *GigSessionController) requireGigAccess(c *fiber.Ctx, gigID uint) error {
	if helperAuth.IsAdmin(c) {
		return nil
	}
	tutorID, err := helperAuth.GetTutorID(c)
	if err != nil {
		return err
	}
	var gig gigModel.GigModel
	if err := ctl.DB.WithContext(c.Context()).
		Select("gig_id", "gig_tutor_id").
		First(&gig, gigID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("gig %s not found", refcode.Gig(gigID))
		}
		return err
	}
	if gig.GigTutorID == nil || *gig.GigTutorID != tutorID {
		return apperr.PermissionDenied("gig %s is not assigned to you", refcode.Gig(gigID))
	}
	return nil
}

// requireSessionMutable: tutors may only touch their own unverified
// sessions; verified ones are frozen until an admin unverifies.
func (ctl *GigSessionController) requireSessionMutable(c *fiber.Ctx, s *sessionModel.GigSessionModel) error {
	if err := ctl.requireGigAccess(c, s.GigSessionGigID); err != nil {
		return err
	}
	if !helperAuth.IsAdmin(c) && s.Verification() != nil {
		return apperr.PermissionDenied("session %s is verified; contact an administrator to change it", s.RefCode())
	}
	return nil
}

func (ctl *GigSessionController) findSession(c *fiber.Ctx) (*sessionModel.GigSessionModel, error) {
	id, err := refcode.ParseSession(c.Params("session_id"))
	if err != nil {
		return nil, err
	}
	var s sessionModel.GigSessionModel
	if err := ctl.DB.WithContext(c.Context()).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session %s not found", refcode.Session(id))
		}
		return nil, err
	}
	return &s, nil
}
