package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepmaster_backend/internals/features/candidate_sessions/dto"
	"prepmaster_backend/internals/features/candidate_sessions/service"
	helper "prepmaster_backend/internals/helpers"
)

// CandidateController is the anonymous-facing surface: exam summary,
// start, submit. Scores never come back through here.
type CandidateController struct {
	Admission *service.AdmissionService
	Grading   *service.GradingService
}

func NewCandidateController(db *gorm.DB) *CandidateController {
	return &CandidateController{
		Admission: service.NewAdmissionService(db),
		Grading:   service.NewGradingService(db),
	}
}

var validate = validator.New()

// =============================
// Fetch exam summary
// =============================
func (ctrl *CandidateController) GetExam(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid exam id")
	}

	exam, err := ctrl.Admission.ExamSummary(c.UserContext(), examID)
	if err != nil {
		return ctrl.mapAdmissionError(c, err)
	}

	return helper.Success(c, "OK", dto.ToExamSummaryDTO(exam))
}

// =============================
// Start exam (admission)
// =============================
func (ctrl *CandidateController) StartExam(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid exam id")
	}

	var body dto.StartExamRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "missing_candidate_info", "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationErrorWithCode(c, "missing_candidate_info", err)
	}

	session, questions, err := ctrl.Admission.StartExam(c.UserContext(), examID, service.StartExamInput{
		CandidateName:   body.CandidateName,
		CandidateClass:  body.CandidateClass,
		CandidateSchool: body.CandidateSchool,
	})
	if err != nil {
		return ctrl.mapAdmissionError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session created", fiber.Map{
		"session":   dto.ToCandidateSessionDTO(session),
		"questions": questions,
	})
}

// =============================
// Submit session (grading)
// =============================
func (ctrl *CandidateController) SubmitSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid session id")
	}

	var body dto.SubmitSessionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	responses := make(map[uuid.UUID]uuid.UUID, len(body.Responses))
	for qRaw, oRaw := range body.Responses {
		questionID, err := uuid.Parse(qRaw)
		if err != nil {
			return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid question id in responses")
		}
		optionID, err := uuid.Parse(oRaw)
		if err != nil {
			return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid option id in responses")
		}
		responses[questionID] = optionID
	}

	if _, err := ctrl.Grading.SubmitSession(c.UserContext(), sessionID, responses); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return helper.ErrorWithCode(c, fiber.StatusNotFound, "not_found", "Session not found")
		case errors.Is(err, service.ErrAlreadySubmitted):
			return helper.ErrorWithCode(c, fiber.StatusConflict, "already_submitted", "Session already submitted")
		default:
			return helper.FromFiberError(c, err)
		}
	}

	return helper.Success(c, "Submitted", fiber.Map{"status": "submitted"})
}

func (ctrl *CandidateController) mapAdmissionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		return helper.ErrorWithCode(c, fiber.StatusNotFound, "not_found", "Exam not found")
	case errors.Is(err, service.ErrExamNotAvailable):
		return helper.ErrorWithCode(c, fiber.StatusConflict, "not_available", "Exam is not open for admission")
	case errors.Is(err, service.ErrExamExpired):
		return helper.ErrorWithCode(c, fiber.StatusGone, "expired", "Exam has expired")
	case errors.Is(err, service.ErrCapacityReached):
		return helper.ErrorWithCode(c, fiber.StatusConflict, "capacity_reached", "Exam candidate capacity reached")
	case errors.Is(err, service.ErrDuplicateCandidate):
		return helper.ErrorWithCode(c, fiber.StatusConflict, "duplicate_candidate", "Candidate already started this exam")
	default:
		return helper.FromFiberError(c, err)
	}
}
