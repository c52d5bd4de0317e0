package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tutorcontroller "prepmaster_backend/internals/features/tutors/controller"
)

// TutorPublicRoutes: the access-request entry point.
func TutorPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := tutorcontroller.NewTutorProfileController(db)
	r.Post("/tutors/request-access", ctrl.RequestAccess)
}

// TutorPrivateRoutes: tutor-authenticated profile surface.
func TutorPrivateRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := tutorcontroller.NewTutorProfileController(db)
	r.Get("/me", ctrl.Me)
}

// TutorInternalRoutes: back-office approval surface.
func TutorInternalRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := tutorcontroller.NewTutorProfileController(db)
	r.Post("/tutors/:id/review", ctrl.Review)
}
