package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepmaster_backend/internals/features/questions/dto"
	"prepmaster_backend/internals/features/questions/model"
	helper "prepmaster_backend/internals/helpers"
)

type QuestionController struct {
	DB *gorm.DB
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{DB: db}
}

var validate = validator.New()

// =============================
// Create Question (with options)
// =============================
func (ctrl *QuestionController) CreateQuestion(c *fiber.Ctx) error {
	var body dto.CreateQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.CorrectCount() != 1 {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request",
			"Exactly one option must be marked correct")
	}

	status := model.QuestionStatusDraft
	if body.Publish {
		status = model.QuestionStatusLive
	}

	question := model.QuestionModel{
		QuestionSubjectID:  body.SubjectID,
		QuestionExamBodyID: body.ExamBodyID,
		QuestionCategoryID: body.CategoryID,
		QuestionText:       body.Text,
		QuestionStatus:     status,
	}
	for _, o := range body.Options {
		question.Options = append(question.Options, model.QuestionOptionModel{
			QuestionOptionText:      o.Text,
			QuestionOptionIsCorrect: o.IsCorrect,
		})
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&question).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Question created", dto.ToQuestionDTO(question))
}

// =============================
// List Questions (by subject / status)
// =============================
func (ctrl *QuestionController) ListQuestions(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, helper.TutorOpts)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.QuestionModel{})
	if raw := c.Query("subject_id"); raw != "" {
		subjectID, err := uuid.Parse(raw)
		if err != nil {
			return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid subject_id")
		}
		q = q.Where("question_subject_id = ?", subjectID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("question_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var questions []model.QuestionModel
	if err := q.Preload("Options").
		Order("question_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&questions).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	result := make([]dto.QuestionDTO, 0, len(questions))
	for _, question := range questions {
		result = append(result, dto.ToQuestionDTO(question))
	}

	return helper.Success(c, "OK", fiber.Map{
		"questions": result,
		"meta":      helper.BuildMeta(total, p),
	})
}

// =============================
// Publish / Retire (status transitions)
// =============================
func (ctrl *QuestionController) PublishQuestion(c *fiber.Ctx) error {
	return ctrl.setStatus(c, model.QuestionStatusDraft, model.QuestionStatusLive)
}

func (ctrl *QuestionController) RetireQuestion(c *fiber.Ctx) error {
	return ctrl.setStatus(c, model.QuestionStatusLive, model.QuestionStatusRetired)
}

func (ctrl *QuestionController) setStatus(c *fiber.Ctx, from, to model.QuestionStatus) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid question id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.QuestionModel{}).
		Where("question_id = ? AND question_status = ?", id, from).
		Update("question_status", to)
	if res.Error != nil {
		return helper.FromFiberError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		var question model.QuestionModel
		if err := ctrl.DB.WithContext(c.UserContext()).
			First(&question, "question_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.ErrorWithCode(c, fiber.StatusNotFound, "not_found", "Question not found")
			}
			return helper.FromFiberError(c, err)
		}
		return helper.ErrorWithCode(c, fiber.StatusConflict, "invalid_status",
			"Question is not in the required status")
	}

	return helper.Success(c, "Question status updated", fiber.Map{"question_id": id, "status": to})
}
