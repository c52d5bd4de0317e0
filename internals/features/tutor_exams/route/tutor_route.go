package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	examcontroller "prepmaster_backend/internals/features/tutor_exams/controller"
	examservice "prepmaster_backend/internals/features/tutor_exams/service"
)

// TutorExamRoutes mounts the tutor-authenticated exam surface.
func TutorExamRoutes(r fiber.Router, db *gorm.DB, renderer examservice.ResultRenderer) {
	ctrl := examcontroller.NewTutorExamController(db, renderer)

	exams := r.Group("/exams")
	exams.Post("/", ctrl.CreateExam)
	exams.Get("/", ctrl.ListExams)
	exams.Get("/:id/stats", ctrl.GetExamStats)
	exams.Post("/:id/publish", ctrl.PublishResults)
}
