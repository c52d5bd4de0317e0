package dto

import (
	"time"

	"github.com/google/uuid"

	"prepmaster_backend/internals/features/tutors/model"
)

// ============================
// Response DTO
// ============================
type TutorProfileDTO struct {
	TutorProfileID           uuid.UUID                `json:"tutor_profile_id"`
	TutorProfileName         string                   `json:"tutor_profile_name"`
	TutorProfileEmail        string                   `json:"tutor_profile_email"`
	TutorProfileStatus       model.TutorProfileStatus `json:"tutor_profile_status"`
	TutorProfileStudentQuota int                      `json:"tutor_profile_student_quota"`
	TutorProfileCreatedAt    time.Time                `json:"tutor_profile_created_at"`
}

// ============================
// Request DTOs
// ============================
type RequestAccessRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ReviewTutorRequest struct {
	Decision     string `json:"decision" validate:"required,oneof=approved rejected"`
	StudentQuota *int   `json:"student_quota" validate:"omitempty,min=1"`
}

// ============================
// Converter
// ============================
func ToTutorProfileDTO(m model.TutorProfileModel) TutorProfileDTO {
	return TutorProfileDTO{
		TutorProfileID:           m.TutorProfileID,
		TutorProfileName:         m.TutorProfileName,
		TutorProfileEmail:        m.TutorProfileEmail,
		TutorProfileStatus:       m.TutorProfileStatus,
		TutorProfileStudentQuota: m.TutorProfileStudentQuota,
		TutorProfileCreatedAt:    m.TutorProfileCreatedAt,
	}
}
