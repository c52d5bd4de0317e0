package dto

import (
	"time"

	"github.com/google/uuid"

	"prepmaster_backend/internals/features/tutor_exams/model"
)

// ============================
// Response DTOs
// ============================
type TutorExamDTO struct {
	TutorExamID               uuid.UUID             `json:"tutor_exam_id"`
	TutorExamTutorID          uuid.UUID             `json:"tutor_exam_tutor_id"`
	TutorExamExamBodyID       uuid.UUID             `json:"tutor_exam_exam_body_id"`
	TutorExamCategoryID       uuid.UUID             `json:"tutor_exam_category_id"`
	TutorExamTitle            string                `json:"tutor_exam_title"`
	TutorExamTotalQuestions   int                   `json:"tutor_exam_total_questions"`
	TutorExamTimeLimitMinutes int                   `json:"tutor_exam_time_limit_minutes"`
	TutorExamExpiresAt        time.Time             `json:"tutor_exam_expires_at"`
	TutorExamMaxCandidates    int                   `json:"tutor_exam_max_candidates"`
	TutorExamStatus           model.TutorExamStatus `json:"tutor_exam_status"`
	TutorExamCreatedAt        time.Time             `json:"tutor_exam_created_at"`
}

type TutorExamListItemDTO struct {
	TutorExamDTO
	SubmittedCount int64 `json:"submitted_count"`
}

type ExamStatsDTO struct {
	Total        int64   `json:"total"`
	Submitted    int64   `json:"submitted"`
	InProgress   int64   `json:"in_progress"`
	AverageScore float64 `json:"average_score"`
}

// ============================
// Request DTOs
// ============================
type SubjectWeightRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Count     int       `json:"count" validate:"required,min=1"`
}

type CreateTutorExamRequest struct {
	Title            string                 `json:"title" validate:"required,max=255"`
	ExamBodyID       uuid.UUID              `json:"exam_body_id" validate:"required"`
	CategoryID       uuid.UUID              `json:"category_id" validate:"required"`
	TimeLimitMinutes int                    `json:"time_limit_minutes" validate:"required,min=1"`
	ExpiresAt        time.Time              `json:"expires_at" validate:"required"`
	MaxCandidates    *int                   `json:"max_candidates" validate:"omitempty,min=1"`
	SubjectWeights   []SubjectWeightRequest `json:"subject_weights" validate:"required,min=1,unique=SubjectID,dive"`
}

// ============================
// Converter
// ============================
func ToTutorExamDTO(m *model.TutorExamModel) TutorExamDTO {
	return TutorExamDTO{
		TutorExamID:               m.TutorExamID,
		TutorExamTutorID:          m.TutorExamTutorID,
		TutorExamExamBodyID:       m.TutorExamExamBodyID,
		TutorExamCategoryID:       m.TutorExamCategoryID,
		TutorExamTitle:            m.TutorExamTitle,
		TutorExamTotalQuestions:   m.TutorExamTotalQuestions,
		TutorExamTimeLimitMinutes: m.TutorExamTimeLimitMinutes,
		TutorExamExpiresAt:        m.TutorExamExpiresAt,
		TutorExamMaxCandidates:    m.TutorExamMaxCandidates,
		TutorExamStatus:           m.TutorExamStatus,
		TutorExamCreatedAt:        m.TutorExamCreatedAt,
	}
}
