// internals/features/gigs/online_sessions/controller/online_session_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	onlineDTO "quest4knowledge_backend/internals/features/gigs/online_sessions/dto"
	onlineModel "quest4knowledge_backend/internals/features/gigs/online_sessions/model"
	onlineService "quest4knowledge_backend/internals/features/gigs/online_sessions/service"
	helper "quest4knowledge_backend/internals/helpers"
	helperAuth "quest4knowledge_backend/internals/helpers/auth"
	"quest4knowledge_backend/internals/helpers/refcode"
)

type OnlineSessionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *onlineService.SchedulerService
}

func NewOnlineSessionController(db *gorm.DB, svc *onlineService.SchedulerService) *OnlineSessionController {
	return &OnlineSessionController{DB: db, Validate: validator.New(), Service: svc}
}

/* =========================
   Admin
========================= */

// POST /api/a/online-sessions
func (ctl *OnlineSessionController) ScheduleMeeting(c *fiber.Ctx) error {
	var req onlineDTO.ScheduleMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	gigID, err := refcode.ParseGig(req.GigID)
	if err != nil {
		return helper.FromError(c, err)
	}
	start, end, err := req.Window()
	if err != nil {
		return helper.FromError(c, err)
	}

	meeting, err := ctl.Service.Schedule(c.Context(), gigID, helperAuth.ActorLabel(c), start, end)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Meeting scheduled", onlineDTO.NewOnlineSessionResponse(meeting))
}

var meetingSortColumns = map[string]string{
	"scheduled_start": "online_session_scheduled_start",
	"created_at":      "online_session_created_at",
	"status":          "online_session_status",
}

// GET /api/a/online-sessions?status=scheduled&gig_id=GIG-0001
func (ctl *OnlineSessionController) ListMeetings(c *fiber.Ctx) error {
	params := helper.ParsePage(c, "scheduled_start", helper.AdminPageOpts)
	order, err := params.OrderClause(meetingSortColumns, "scheduled_start")
	if err != nil {
		return helper.FromError(c, err)
	}

	q := ctl.DB.WithContext(c.Context()).Model(&onlineModel.OnlineSessionModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("online_session_status = ?", status)
	}
	if gig := c.Query("gig_id"); gig != "" {
		id, err := refcode.ParseGig(gig)
		if err != nil {
			return helper.FromError(c, err)
		}
		q = q.Where("online_session_gig_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list meetings")
	}

	var meetings []onlineModel.OnlineSessionModel
	if err := q.Order(order).
		Limit(params.Limit()).
		Offset(params.Offset()).
		Find(&meetings).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list meetings")
	}

	out := make([]*onlineDTO.OnlineSessionResponse, 0, len(meetings))
	for i := range meetings {
		out = append(out, onlineDTO.NewOnlineSessionResponse(&meetings[i]))
	}
	return helper.SuccessPaged(c, "OK", out, helper.BuildPageMeta(total, params))
}

// GET /api/a/online-sessions/:session_id
func (ctl *OnlineSessionController) GetMeeting(c *fiber.Ctx) error {
	id, err := refcode.ParseOnline(c.Params("session_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	var m onlineModel.OnlineSessionModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, id).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", onlineDTO.NewOnlineSessionResponse(&m))
}

// POST /api/a/online-sessions/:session_id/extend
func (ctl *OnlineSessionController) ExtendMeeting(c *fiber.Ctx) error {
	id, err := refcode.ParseOnline(c.Params("session_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	var req onlineDTO.ExtendMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}

	m, err := ctl.Service.Extend(c.Context(), id, helperAuth.ActorLabel(c), req.Minutes)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Meeting extended", onlineDTO.NewOnlineSessionResponse(m))
}

// POST /api/a/online-sessions/:session_id/complete
func (ctl *OnlineSessionController) CompleteMeeting(c *fiber.Ctx) error {
	id, err := refcode.ParseOnline(c.Params("session_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := ctl.Service.Complete(c.Context(), id, helperAuth.ActorLabel(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Meeting completed", onlineDTO.NewOnlineSessionResponse(m))
}

// POST /api/a/online-sessions/:session_id/cancel
func (ctl *OnlineSessionController) CancelMeeting(c *fiber.Ctx) error {
	id, err := refcode.ParseOnline(c.Params("session_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := ctl.Service.Cancel(c.Context(), id, helperAuth.ActorLabel(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Meeting cancelled", onlineDTO.NewOnlineSessionResponse(m))
}

/* =========================
   Public join endpoints
========================= */

// POST /api/online-sessions/validate
func (ctl *OnlineSessionController) ValidateAccess(c *fiber.Ctx) error {
	var req onlineDTO.ValidateAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Service.ValidateAccess(c.Context(), req.MeetingCode, req.PinCode, onlineModel.JoinRole(req.Role))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Access granted", onlineDTO.NewJoinGrantedResponse(m, req.Role))
}

// GET /api/online-sessions/code/:meeting_code
func (ctl *OnlineSessionController) GetMeetingByCode(c *fiber.Ctx) error {
	m, err := ctl.Service.FindByCode(c.Context(), c.Params("meeting_code"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", onlineDTO.NewPublicMeetingResponse(m))
}
