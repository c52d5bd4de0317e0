package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessioncontroller "prepmaster_backend/internals/features/candidate_sessions/controller"
)

// CandidatePublicRoutes mounts the anonymous candidate flow.
func CandidatePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sessioncontroller.NewCandidateController(db)

	r.Get("/exams/:id", ctrl.GetExam)
	r.Post("/exams/:id/start", ctrl.StartExam)
	r.Post("/sessions/:id/submit", ctrl.SubmitSession)
}
