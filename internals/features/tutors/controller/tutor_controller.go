// internals/features/tutors/controller/tutor_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tutorDTO "quest4knowledge_backend/internals/features/tutors/dto"
	tutorModel "quest4knowledge_backend/internals/features/tutors/model"
	helper "quest4knowledge_backend/internals/helpers"
	"quest4knowledge_backend/internals/helpers/refcode"
)

type TutorController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTutorController(db *gorm.DB) *TutorController {
	return &TutorController{DB: db, Validate: validator.New()}
}

// POST /api/a/tutors
func (ctl *TutorController) CreateTutor(c *fiber.Ctx) error {
	var req tutorDTO.CreateTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()

	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	tutor := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(tutor).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "A tutor with this phone number or email already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create tutor")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tutor created", tutorDTO.NewTutorResponse(tutor))
}

// GET /api/a/tutors
func (ctl *TutorController) ListTutors(c *fiber.Ctx) error {
	var tutors []tutorModel.TutorModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("tutor_last_name, tutor_first_name").
		Find(&tutors).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list tutors")
	}

	out := make([]*tutorDTO.TutorResponse, 0, len(tutors))
	for i := range tutors {
		out = append(out, tutorDTO.NewTutorResponse(&tutors[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /api/a/tutors/:tutor_id
func (ctl *TutorController) GetTutor(c *fiber.Ctx) error {
	tutor, err := ctl.findTutor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", tutorDTO.NewTutorResponse(tutor))
}

// PUT /api/a/tutors/:tutor_id
func (ctl *TutorController) UpdateTutor(c *fiber.Ctx) error {
	tutor, err := ctl.findTutor(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req tutorDTO.UpdateTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Apply(tutor)
	if err := ctl.DB.WithContext(c.Context()).Save(tutor).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "A tutor with this phone number or email already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update tutor")
	}
	return helper.Success(c, "Tutor updated", tutorDTO.NewTutorResponse(tutor))
}

// POST /api/a/tutors/:tutor_id/block and /unblock
func (ctl *TutorController) BlockTutor(c *fiber.Ctx) error {
	return ctl.setBlocked(c, true)
}

func (ctl *TutorController) UnblockTutor(c *fiber.Ctx) error {
	return ctl.setBlocked(c, false)
}

func (ctl *TutorController) setBlocked(c *fiber.Ctx, blocked bool) error {
	tutor, err := ctl.findTutor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if blocked {
		tutor.Block()
	} else {
		tutor.Unblock()
	}
	if err := ctl.DB.WithContext(c.Context()).Save(tutor).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update tutor")
	}
	msg := "Tutor unblocked"
	if blocked {
		msg = "Tutor blocked"
	}
	return helper.Success(c, msg, tutorDTO.NewTutorResponse(tutor))
}

func (ctl *TutorController) findTutor(c *fiber.Ctx) (*tutorModel.TutorModel, error) {
	id, err := refcode.ParseTutor(c.Params("tutor_id"))
	if err != nil {
		return nil, err
	}
	var tutor tutorModel.TutorModel
	if err := ctl.DB.WithContext(c.Context()).First(&tutor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tutor not found")
		}
		return nil, err
	}
	return &tutor, nil
}
