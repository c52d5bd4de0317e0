package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "prepmaster_backend/internals/features/candidate_sessions/model"
	"prepmaster_backend/internals/features/tutor_exams/dto"
	"prepmaster_backend/internals/features/tutor_exams/model"
	"prepmaster_backend/internals/features/tutor_exams/service"
	tutorService "prepmaster_backend/internals/features/tutors/service"
	helper "prepmaster_backend/internals/helpers"
	authmw "prepmaster_backend/internals/middlewares/auth"
)

type TutorExamController struct {
	DB          *gorm.DB
	Sampler     *service.SamplerService
	Publication *service.PublicationService
}

func NewTutorExamController(db *gorm.DB, renderer service.ResultRenderer) *TutorExamController {
	return &TutorExamController{
		DB:          db,
		Sampler:     service.NewSamplerService(db),
		Publication: service.NewPublicationService(db, renderer),
	}
}

var validate = validator.New()

// =============================
// Create exam (sampler & lock)
// =============================
func (ctrl *TutorExamController) CreateExam(c *fiber.Ctx) error {
	tutorID, err := authmw.GetTutorID(c)
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid tutor identity")
	}

	var body dto.CreateTutorExamRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	in := service.CreateExamInput{
		Title:            body.Title,
		ExamBodyID:       body.ExamBodyID,
		CategoryID:       body.CategoryID,
		TimeLimitMinutes: body.TimeLimitMinutes,
		ExpiresAt:        body.ExpiresAt,
		MaxCandidates:    body.MaxCandidates,
	}
	for _, w := range body.SubjectWeights {
		in.Weights = append(in.Weights, service.SubjectWeightInput{
			SubjectID: w.SubjectID,
			Count:     w.Count,
		})
	}

	exam, err := ctrl.Sampler.CreateExam(c.UserContext(), tutorID, in)
	if err != nil {
		var poolErr *service.InsufficientPoolError
		switch {
		case errors.As(err, &poolErr):
			return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, "insufficient_pool",
				"Not enough live questions for subject", fiber.Map{
					"subject_id": poolErr.SubjectID,
					"requested":  poolErr.Requested,
					"available":  poolErr.Available,
					"deficit":    poolErr.Deficit(),
				})
		case errors.Is(err, tutorService.ErrTutorNotApproved),
			errors.Is(err, tutorService.ErrTutorNotFound):
			return helper.ErrorWithCode(c, fiber.StatusForbidden, "forbidden", "Tutor account not approved")
		case errors.Is(err, service.ErrDuplicateSubjectWeight):
			return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request",
				"Subject listed more than once in subject_weights")
		default:
			return helper.FromFiberError(c, err)
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Exam created", dto.ToTutorExamDTO(exam))
}

// =============================
// List exams (with submission counts)
// =============================
func (ctrl *TutorExamController) ListExams(c *fiber.Ctx) error {
	tutorID, err := authmw.GetTutorID(c)
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid tutor identity")
	}

	p := helper.ParseFiber(c, helper.TutorOpts)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TutorExamModel{}).
		Where("tutor_exam_tutor_id = ?", tutorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var exams []model.TutorExamModel
	if err := q.Order("tutor_exam_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&exams).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	counts, err := ctrl.submittedCounts(c, exams)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]dto.TutorExamListItemDTO, 0, len(exams))
	for i := range exams {
		items = append(items, dto.TutorExamListItemDTO{
			TutorExamDTO:   dto.ToTutorExamDTO(&exams[i]),
			SubmittedCount: counts[exams[i].TutorExamID],
		})
	}

	return helper.Success(c, "OK", fiber.Map{
		"exams": items,
		"meta":  helper.BuildMeta(total, p),
	})
}

func (ctrl *TutorExamController) submittedCounts(c *fiber.Ctx, exams []model.TutorExamModel) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(exams))
	if len(exams) == 0 {
		return counts, nil
	}
	ids := make([]uuid.UUID, 0, len(exams))
	for i := range exams {
		ids = append(ids, exams[i].TutorExamID)
	}

	type row struct {
		ExamID uuid.UUID
		N      int64
	}
	var rows []row
	err := ctrl.DB.WithContext(c.UserContext()).
		Model(&sessionModel.CandidateSessionModel{}).
		Select("candidate_session_exam_id AS exam_id, COUNT(*) AS n").
		Where("candidate_session_exam_id IN ? AND candidate_session_status = ?",
			ids, sessionModel.CandidateSessionStatusSubmitted).
		Group("candidate_session_exam_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.ExamID] = r.N
	}
	return counts, nil
}

// =============================
// Exam stats
// =============================
func (ctrl *TutorExamController) GetExamStats(c *fiber.Ctx) error {
	tutorID, err := authmw.GetTutorID(c)
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid tutor identity")
	}
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid exam id")
	}

	var exam model.TutorExamModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&exam, "tutor_exam_id = ? AND tutor_exam_tutor_id = ?", examID, tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrorWithCode(c, fiber.StatusNotFound, "not_found", "Exam not found")
		}
		return helper.FromFiberError(c, err)
	}

	var sessions []sessionModel.CandidateSessionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("candidate_session_exam_id = ?", examID).
		Order("candidate_session_started_at").
		Find(&sessions).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	stats := dto.ExamStatsDTO{Total: int64(len(sessions))}
	var scoreSum int64
	for _, s := range sessions {
		if s.CandidateSessionStatus == sessionModel.CandidateSessionStatusSubmitted {
			stats.Submitted++
			if s.CandidateSessionScore != nil {
				scoreSum += int64(*s.CandidateSessionScore)
			}
		} else {
			stats.InProgress++
		}
	}
	if stats.Submitted > 0 {
		stats.AverageScore = float64(scoreSum) / float64(stats.Submitted)
	}

	return helper.Success(c, "OK", fiber.Map{
		"exam":     dto.ToTutorExamDTO(&exam),
		"sessions": sessions,
		"stats":    stats,
	})
}

// =============================
// Publish results (closes the exam)
// =============================
func (ctrl *TutorExamController) PublishResults(c *fiber.Ctx) error {
	tutorID, err := authmw.GetTutorID(c)
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid tutor identity")
	}
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid exam id")
	}

	result, err := ctrl.Publication.PublishResults(c.UserContext(), tutorID, examID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			return helper.ErrorWithCode(c, fiber.StatusNotFound, "not_found", "Exam not found")
		case errors.Is(err, service.ErrNothingToPublish):
			return helper.ErrorWithCode(c, fiber.StatusConflict, "nothing_to_publish", "No submitted sessions to publish")
		case errors.Is(err, model.ErrExamAlreadyClosed):
			return helper.ErrorWithCode(c, fiber.StatusConflict, "not_available", "Exam already closed")
		default:
			return helper.FromFiberError(c, err)
		}
	}

	return helper.Success(c, "Results published", fiber.Map{
		"master_artifact_ref":     result.MasterArtifactRef,
		"individual_artifact_ref": result.IndividualArtifactRef,
		"exam":                    dto.ToTutorExamDTO(result.Exam),
	})
}
