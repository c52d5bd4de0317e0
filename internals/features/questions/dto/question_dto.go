package dto

import (
	"time"

	"github.com/google/uuid"

	"prepmaster_backend/internals/features/questions/model"
)

// ============================
// Response DTO
// ============================
type QuestionOptionDTO struct {
	QuestionOptionID        uuid.UUID `json:"question_option_id"`
	QuestionOptionText      string    `json:"question_option_text"`
	QuestionOptionIsCorrect bool      `json:"question_option_is_correct"`
}

type QuestionDTO struct {
	QuestionID         uuid.UUID            `json:"question_id"`
	QuestionSubjectID  uuid.UUID            `json:"question_subject_id"`
	QuestionExamBodyID uuid.UUID            `json:"question_exam_body_id"`
	QuestionCategoryID uuid.UUID            `json:"question_category_id"`
	QuestionText       string               `json:"question_text"`
	QuestionStatus     model.QuestionStatus `json:"question_status"`
	QuestionCreatedAt  time.Time            `json:"question_created_at"`
	Options            []QuestionOptionDTO  `json:"options"`
}

// ============================
// Create Request DTO
// ============================
type CreateQuestionOptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type CreateQuestionRequest struct {
	SubjectID  uuid.UUID                     `json:"subject_id" validate:"required"`
	ExamBodyID uuid.UUID                     `json:"exam_body_id" validate:"required"`
	CategoryID uuid.UUID                     `json:"category_id" validate:"required"`
	Text       string                        `json:"text" validate:"required"`
	Publish    bool                          `json:"publish"`
	Options    []CreateQuestionOptionRequest `json:"options" validate:"required,min=2,dive"`
}

// CorrectCount counts options flagged correct (must be exactly one).
func (r CreateQuestionRequest) CorrectCount() int {
	n := 0
	for _, o := range r.Options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

// ============================
// Converter
// ============================
func ToQuestionDTO(m model.QuestionModel) QuestionDTO {
	out := QuestionDTO{
		QuestionID:         m.QuestionID,
		QuestionSubjectID:  m.QuestionSubjectID,
		QuestionExamBodyID: m.QuestionExamBodyID,
		QuestionCategoryID: m.QuestionCategoryID,
		QuestionText:       m.QuestionText,
		QuestionStatus:     m.QuestionStatus,
		QuestionCreatedAt:  m.QuestionCreatedAt,
	}
	for _, o := range m.Options {
		out.Options = append(out.Options, QuestionOptionDTO{
			QuestionOptionID:        o.QuestionOptionID,
			QuestionOptionText:      o.QuestionOptionText,
			QuestionOptionIsCorrect: o.QuestionOptionIsCorrect,
		})
	}
	return out
}
