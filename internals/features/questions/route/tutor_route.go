package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	questioncontroller "prepmaster_backend/internals/features/questions/controller"
)

// QuestionTutorRoutes mounts the question-bank upkeep surface
// (tutor-authenticated group).
func QuestionTutorRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := questioncontroller.NewQuestionController(db)

	questions := r.Group("/questions")
	questions.Post("/", ctrl.CreateQuestion)
	questions.Get("/", ctrl.ListQuestions)
	questions.Post("/:id/publish", ctrl.PublishQuestion)
	questions.Post("/:id/retire", ctrl.RetireQuestion)
}
