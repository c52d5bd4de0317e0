// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prepmaster_backend/internals/configs"
	sessionRoute "prepmaster_backend/internals/features/candidate_sessions/route"
	questionRoute "prepmaster_backend/internals/features/questions/route"
	examRoute "prepmaster_backend/internals/features/tutor_exams/route"
	examService "prepmaster_backend/internals/features/tutor_exams/service"
	tutorRoute "prepmaster_backend/internals/features/tutors/route"
	helper "prepmaster_backend/internals/helpers"
	"prepmaster_backend/internals/middlewares"
	authmw "prepmaster_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	renderer := examService.NewFileResultRenderer(configs.ArtifactsDir)

	// ===================== PUBLIC (anonymous candidates) =====================
	log.Println("[INFO] Setting up PUBLIC routes...")
	public := app.Group("/api", middlewares.CandidateRateLimiter())
	sessionRoute.CandidatePublicRoutes(public, db)
	tutorRoute.TutorPublicRoutes(public, db)

	// ===================== TUTOR (JWT) =====================
	log.Println("[INFO] Setting up TUTOR routes...")
	tutor := app.Group("/api/t", authmw.TutorAuth())
	tutorRoute.TutorPrivateRoutes(tutor, db)
	questionRoute.QuestionTutorRoutes(tutor, db)
	examRoute.TutorExamRoutes(tutor, db, renderer)

	// ===================== INTERNAL (back-office) =====================
	log.Println("[INFO] Setting up INTERNAL routes...")
	internal := app.Group("/api/internal", internalKeyGuard())
	tutorRoute.TutorInternalRoutes(internal, db)
}

// internalKeyGuard fronts the back-office approval process with a
// shared-key header check.
func internalKeyGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := configs.GetEnv("INTERNAL_API_KEY")
		if key == "" || c.Get("X-Internal-Key") != key {
			return helper.ErrorWithCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid internal key")
		}
		return c.Next()
	}
}
