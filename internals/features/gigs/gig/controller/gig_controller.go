// internals/features/gigs/gig/controller/gig_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditModel "quest4knowledge_backend/internals/features/audit/model"
	auditService "quest4knowledge_backend/internals/features/audit/service"
	gigDTO "quest4knowledge_backend/internals/features/gigs/gig/dto"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	gigService "quest4knowledge_backend/internals/features/gigs/gig/service"
	notifService "quest4knowledge_backend/internals/features/notifications/service"
	tutorModel "quest4knowledge_backend/internals/features/tutors/model"
	helper "quest4knowledge_backend/internals/helpers"
	helperAuth "quest4knowledge_backend/internals/helpers/auth"
	"quest4knowledge_backend/internals/helpers/refcode"
)

type GigController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Notifier notifService.Notifier
	Currency string
}

func NewGigController(db *gorm.DB, notifier notifService.Notifier, currency string) *GigController {
	return &GigController{
		DB:       db,
		Validate: validator.New(),
		Notifier: notifier,
		Currency: currency,
	}
}

/* =========================
   CRUD
========================= */

// POST /api/a/gigs
func (ctl *GigController) CreateGig(c *fiber.Ctx) error {
	var req gigDTO.CreateGigRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	gig, err := req.ToModel()
	if err != nil {
		return helper.FromError(c, err)
	}

	actor := helperAuth.ActorLabel(c)
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(gig).Error; err != nil {
			return err
		}
		return auditService.Append(tx, gig.GigID, actor, auditModel.ActionGigCreated, map[string]interface{}{
			"title":       gig.GigTitle,
			"total_hours": gig.GigTotalHours.String(),
		})
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Gig created", gigDTO.NewGigResponse(gig))
}

var gigSortColumns = map[string]string{
	"created_at": "gig_created_at",
	"start_date": "gig_start_date",
	"end_date":   "gig_end_date",
	"priority":   "gig_priority",
	"status":     "gig_status",
	"title":      "gig_title",
}

// GET /api/a/gigs?status=active&page=1&per_page=50&sort_by=start_date
func (ctl *GigController) ListGigs(c *fiber.Ctx) error {
	params := helper.ParsePage(c, "created_at", helper.AdminPageOpts)
	order, err := params.OrderClause(gigSortColumns, "created_at")
	if err != nil {
		return helper.FromError(c, err)
	}

	q := ctl.DB.WithContext(c.Context()).Model(&gigModel.GigModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("gig_status = ?", status)
	}
	if tutor := c.Query("tutor_id"); tutor != "" {
		id, err := refcode.ParseTutor(tutor)
		if err != nil {
			return helper.FromError(c, err)
		}
		q = q.Where("gig_tutor_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list gigs")
	}

	var gigs []gigModel.GigModel
	if err := q.Preload("GigTutor").
		Order(order).
		Limit(params.Limit()).
		Offset(params.Offset()).
		Find(&gigs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list gigs")
	}

	out := make([]*gigDTO.GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, gigDTO.NewGigResponse(&gigs[i]))
	}
	return helper.SuccessPaged(c, "OK", out, helper.BuildPageMeta(total, params))
}

// GET /api/a/gigs/unassigned
func (ctl *GigController) ListUnassignedGigs(c *fiber.Ctx) error {
	var gigs []gigModel.GigModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("gig_tutor_id IS NULL AND gig_status NOT IN ?",
			[]gigModel.GigStatus{gigModel.GigStatusCompleted, gigModel.GigStatusCancelled, gigModel.GigStatusExpired}).
		Order("gig_priority DESC, gig_start_date").
		Find(&gigs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list gigs")
	}

	out := make([]*gigDTO.GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, gigDTO.NewGigResponse(&gigs[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /api/a/gigs/:gig_id
func (ctl *GigController) GetGig(c *fiber.Ctx) error {
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	var gig gigModel.GigModel
	if err := ctl.DB.WithContext(c.Context()).Preload("GigTutor").First(&gig, id).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", gigDTO.NewGigResponse(&gig))
}

// PUT /api/a/gigs/:gig_id
func (ctl *GigController) UpdateGig(c *fiber.Ctx) error {
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}

	var req gigDTO.UpdateGigRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helperAuth.ActorLabel(c)
	var updated *gigModel.GigModel
	err = gigService.WithGigLock(c.Context(), ctl.DB, id, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		resized := req.TotalHours != nil && !req.TotalHours.Equal(gig.GigTotalHours)
		if err := req.Apply(gig); err != nil {
			return err
		}
		if err := tx.Save(gig).Error; err != nil {
			return err
		}
		if resized {
			if err := auditService.Append(tx, gig.GigID, actor, auditModel.ActionGigResized, map[string]interface{}{
				"total_hours":     gig.GigTotalHours.String(),
				"hours_remaining": gig.GigTotalHoursRemaining.String(),
			}); err != nil {
				return err
			}
		}
		updated = gig
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Gig updated", gigDTO.NewGigResponse(updated))
}

// DELETE /api/a/gigs/:gig_id — any non-active gig.
func (ctl *GigController) DeleteGig(c *fiber.Ctx) error {
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}

	err = gigService.WithGigLock(c.Context(), ctl.DB, id, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		if !gig.Deletable() {
			return fiber.NewError(fiber.StatusConflict, "An active gig cannot be deleted; cancel or complete it first")
		}
		return tx.Delete(gig).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Gig deleted", nil)
}

/* =========================
   Tutor self-service reads
========================= */

// GET /api/u/gigs
func (ctl *GigController) ListMyGigs(c *fiber.Ctx) error {
	tutorID, err := helperAuth.GetTutorID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	q := ctl.DB.WithContext(c.Context()).
		Where("gig_tutor_id = ?", tutorID).
		Order("gig_start_date DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("gig_status = ?", status)
	}

	var gigs []gigModel.GigModel
	if err := q.Find(&gigs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list gigs")
	}

	out := make([]*gigDTO.GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, gigDTO.NewGigResponse(&gigs[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /api/u/gigs/:gig_id
func (ctl *GigController) GetMyGig(c *fiber.Ctx) error {
	tutorID, err := helperAuth.GetTutorID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}

	var gig gigModel.GigModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("gig_id = ? AND gig_tutor_id = ?", id, tutorID).
		First(&gig).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", gigDTO.NewGigResponse(&gig))
}

/* =========================
   Lifecycle
========================= */

// POST /api/a/gigs/:gig_id/assign
func (ctl *GigController) AssignGig(c *fiber.Ctx) error {
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}

	var req gigDTO.AssignGigRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	tutorID, err := refcode.ParseTutor(req.TutorID)
	if err != nil {
		return helper.FromError(c, err)
	}

	actor := helperAuth.ActorLabel(c)
	var (
		updated *gigModel.GigModel
		note    notifService.GigAssignedNote
	)
	err = gigService.WithGigLock(c.Context(), ctl.DB, id, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		var tutor tutorModel.TutorModel
		if err := tx.First(&tutor, tutorID).Error; err != nil {
			return err
		}
		if err := gig.Assign(&tutor); err != nil {
			return err
		}
		if err := tx.Save(gig).Error; err != nil {
			return err
		}
		if err := auditService.Append(tx, gig.GigID, actor, auditModel.ActionGigAssigned, map[string]interface{}{
			"tutor": tutor.RefCode(),
			"notes": req.Notes,
		}); err != nil {
			return err
		}
		updated = gig
		note = notifService.GigAssignedNote{
			GigRefCode:   gig.RefCode(),
			GigTitle:     gig.GigTitle,
			SubjectName:  gig.GigSubjectName,
			TutorName:    tutor.FullName(),
			TutorEmail:   tutor.TutorEmailAddress,
			ClientName:   gig.GigClientName,
			ClientEmail:  gig.GigClientEmail,
			TotalHours:   gig.GigTotalHours.String(),
			Remuneration: ctl.Currency + gig.GigTotalTutorRemuneration.StringFixed(2),
			ClientFee:    ctl.Currency + gig.GigTotalClientFee.StringFixed(2),
			StartDate:    gig.GigStartDate.Format("2006-01-02"),
			EndDate:      gig.GigEndDate.Format("2006-01-02"),
			Notes:        req.Notes,
		}
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	// Post-commit only: an email must never hold the row lock.
	go ctl.Notifier.GigAssigned(note)

	return helper.Success(c, "Tutor assigned", gigDTO.NewGigResponse(updated))
}

// POST /api/a/gigs/:gig_id/unassign
func (ctl *GigController) UnassignGig(c *fiber.Ctx) error {
	return ctl.transition(c, auditModel.ActionGigUnassigned, "Tutor unassigned",
		func(gig *gigModel.GigModel) error { return gig.Unassign() })
}

// POST /api/a/gigs/:gig_id/start
func (ctl *GigController) StartGig(c *fiber.Ctx) error {
	return ctl.transition(c, auditModel.ActionGigStarted, "Gig started",
		func(gig *gigModel.GigModel) error { return gig.Start(time.Now().UTC()) })
}

// POST /api/a/gigs/:gig_id/hold
func (ctl *GigController) HoldGig(c *fiber.Ctx) error {
	return ctl.transition(c, auditModel.ActionGigOnHold, "Gig put on hold",
		func(gig *gigModel.GigModel) error { return gig.PutOnHold() })
}

// POST /api/a/gigs/:gig_id/resume
func (ctl *GigController) ResumeGig(c *fiber.Ctx) error {
	return ctl.transition(c, auditModel.ActionGigResumed, "Gig resumed",
		func(gig *gigModel.GigModel) error { return gig.Resume() })
}

// POST /api/a/gigs/:gig_id/complete
func (ctl *GigController) CompleteGig(c *fiber.Ctx) error {
	return ctl.transition(c, auditModel.ActionGigCompleted, "Gig completed",
		func(gig *gigModel.GigModel) error { return gig.Complete(time.Now().UTC()) })
}

// POST /api/a/gigs/:gig_id/cancel
func (ctl *GigController) CancelGig(c *fiber.Ctx) error {
	var req gigDTO.ReasonRequest
	_ = c.BodyParser(&req) // reason is optional

	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}

	actor := helperAuth.ActorLabel(c)
	var updated *gigModel.GigModel
	err = gigService.WithGigLock(c.Context(), ctl.DB, id, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		if err := gig.Cancel(); err != nil {
			return err
		}
		if err := tx.Save(gig).Error; err != nil {
			return err
		}
		if err := auditService.Append(tx, gig.GigID, actor, auditModel.ActionGigCancelled, map[string]interface{}{
			"reason": req.Reason,
		}); err != nil {
			return err
		}
		updated = gig
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Gig cancelled", gigDTO.NewGigResponse(updated))
}

// POST /api/a/gigs/:gig_id/adjust-hours
func (ctl *GigController) AdjustGigHours(c *fiber.Ctx) error {
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}

	var req gigDTO.AdjustHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := helperAuth.ActorLabel(c)
	var updated *gigModel.GigModel
	err = gigService.WithGigLock(c.Context(), ctl.DB, id, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		if err := gig.AdjustHoursManually(req.Hours); err != nil {
			return err
		}
		if err := tx.Save(gig).Error; err != nil {
			return err
		}
		if err := auditService.Append(tx, gig.GigID, actor, auditModel.ActionHoursAdjusted, map[string]interface{}{
			"hours_subtracted": req.Hours.String(),
			"hours_remaining":  gig.GigTotalHoursRemaining.String(),
			"reason":           req.Reason,
		}); err != nil {
			return err
		}
		updated = gig
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Hours adjusted", gigDTO.NewGigResponse(updated))
}

// POST /api/a/gigs/expire-overdue — sweep active gigs past their end date.
func (ctl *GigController) ExpireOverdueGigs(c *fiber.Ctx) error {
	var ids []uint
	today := time.Now().UTC().Format("2006-01-02")
	if err := ctl.DB.WithContext(c.Context()).
		Model(&gigModel.GigModel{}).
		Where("gig_status = ? AND gig_end_date < ?", gigModel.GigStatusActive, today).
		Pluck("gig_id", &ids).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to find overdue gigs")
	}

	actor := helperAuth.ActorLabel(c)
	expired := make([]string, 0, len(ids))
	for _, id := range ids {
		err := gigService.WithGigLock(c.Context(), ctl.DB, id, func(tx *gorm.DB, gig *gigModel.GigModel) error {
			if err := gig.MarkExpired(time.Now().UTC()); err != nil {
				return err
			}
			if err := tx.Save(gig).Error; err != nil {
				return err
			}
			return auditService.Append(tx, gig.GigID, actor, auditModel.ActionGigExpired, nil)
		})
		if err != nil {
			// Another admin may have raced the sweep; skip and continue.
			continue
		}
		expired = append(expired, refcode.Gig(id))
	}
	return helper.Success(c, "Overdue sweep finished", fiber.Map{
		"expired_count": len(expired),
		"expired_gigs":  expired,
	})
}

// transition runs a status-only lifecycle change under the row lock.
func (ctl *GigController) transition(c *fiber.Ctx, action, message string, op func(g *gigModel.GigModel) error) error {
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}

	actor := helperAuth.ActorLabel(c)
	var updated *gigModel.GigModel
	err = gigService.WithGigLock(c.Context(), ctl.DB, id, func(tx *gorm.DB, gig *gigModel.GigModel) error {
		if err := op(gig); err != nil {
			return err
		}
		// Save with Select("*") so a cleared tutor FK is written as NULL.
		if err := tx.Model(gig).Select("*").Omit("gig_created_at").Updates(gig).Error; err != nil {
			return err
		}
		if err := auditService.Append(tx, gig.GigID, actor, action, nil); err != nil {
			return err
		}
		updated = gig
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, message, gigDTO.NewGigResponse(updated))
}
