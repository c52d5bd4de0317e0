package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"prepmaster_backend/internals/features/tutors/dto"
	"prepmaster_backend/internals/features/tutors/model"
	helper "prepmaster_backend/internals/helpers"
	authmw "prepmaster_backend/internals/middlewares/auth"
)

type TutorProfileController struct {
	DB *gorm.DB
}

func NewTutorProfileController(db *gorm.DB) *TutorProfileController {
	return &TutorProfileController{DB: db}
}

var validate = validator.New()

// =============================
// Request tutor access (public)
// =============================
func (ctrl *TutorProfileController) RequestAccess(c *fiber.Ctx) error {
	var body dto.RequestAccessRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	profile := model.TutorProfileModel{
		TutorProfileName:         body.Name,
		TutorProfileEmail:        body.Email,
		TutorProfilePasswordHash: string(hash),
		TutorProfileStatus:       model.TutorProfileStatusPending,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.ErrorWithCode(c, fiber.StatusConflict, "email_taken", "Email already registered")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Access requested, pending approval",
		dto.ToTutorProfileDTO(profile))
}

// =============================
// Current tutor profile
// =============================
func (ctrl *TutorProfileController) Me(c *fiber.Ctx) error {
	tutorID, err := authmw.GetTutorID(c)
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid tutor identity")
	}

	var profile model.TutorProfileModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&profile, "tutor_profile_id = ?", tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrorWithCode(c, fiber.StatusNotFound, "not_found", "Tutor profile not found")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "OK", dto.ToTutorProfileDTO(profile))
}

// =============================
// Review (internal approval surface)
// =============================
// Fronts the back-office approval process; status moves through the
// validated transition only.
func (ctrl *TutorProfileController) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid tutor id")
	}

	var body dto.ReviewTutorRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	var profile model.TutorProfileModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&profile, "tutor_profile_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrorWithCode(c, fiber.StatusNotFound, "not_found", "Tutor profile not found")
		}
		return helper.FromFiberError(c, err)
	}

	next := model.TutorProfileStatus(body.Decision)
	if !profile.TutorProfileStatus.CanTransitionTo(next) {
		return helper.ErrorWithCode(c, fiber.StatusConflict, "invalid_status",
			"Tutor profile already reviewed")
	}

	updates := map[string]interface{}{"tutor_profile_status": next}
	if body.StudentQuota != nil {
		updates["tutor_profile_student_quota"] = *body.StudentQuota
	}
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&profile).Updates(updates).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Tutor reviewed", dto.ToTutorProfileDTO(profile))
}
