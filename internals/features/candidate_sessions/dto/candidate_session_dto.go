package dto

import (
	"time"

	"github.com/google/uuid"

	"prepmaster_backend/internals/features/candidate_sessions/model"
	examModel "prepmaster_backend/internals/features/tutor_exams/model"
)

// ============================
// Response DTOs
// ============================
type ExamSummaryDTO struct {
	ExamID           uuid.UUID                 `json:"exam_id"`
	Title            string                    `json:"title"`
	TotalQuestions   int                       `json:"total_questions"`
	TimeLimitMinutes int                       `json:"time_limit_minutes"`
	Status           examModel.TutorExamStatus `json:"status"`
	ExpiresAt        time.Time                 `json:"expires_at"`
}

type CandidateSessionDTO struct {
	SessionID       uuid.UUID                    `json:"session_id"`
	ExamID          uuid.UUID                    `json:"exam_id"`
	CandidateName   string                       `json:"candidate_name"`
	CandidateClass  string                       `json:"candidate_class"`
	CandidateSchool string                       `json:"candidate_school"`
	Status          model.CandidateSessionStatus `json:"status"`
	StartedAt       time.Time                    `json:"started_at"`
}

// ============================
// Request DTOs
// ============================
type StartExamRequest struct {
	CandidateName   string `json:"candidate_name" validate:"required,max=120"`
	CandidateClass  string `json:"candidate_class" validate:"required,max=50"`
	CandidateSchool string `json:"candidate_school" validate:"required,max=120"`
}

type SubmitSessionRequest struct {
	// question id -> selected option id; skipped questions may be omitted
	Responses map[string]string `json:"responses"`
}

// ============================
// Converters
// ============================
func ToExamSummaryDTO(m *examModel.TutorExamModel) ExamSummaryDTO {
	return ExamSummaryDTO{
		ExamID:           m.TutorExamID,
		Title:            m.TutorExamTitle,
		TotalQuestions:   m.TutorExamTotalQuestions,
		TimeLimitMinutes: m.TutorExamTimeLimitMinutes,
		Status:           m.TutorExamStatus,
		ExpiresAt:        m.TutorExamExpiresAt,
	}
}

func ToCandidateSessionDTO(m *model.CandidateSessionModel) CandidateSessionDTO {
	return CandidateSessionDTO{
		SessionID:       m.CandidateSessionID,
		ExamID:          m.CandidateSessionExamID,
		CandidateName:   m.CandidateSessionCandidateName,
		CandidateClass:  m.CandidateSessionCandidateClass,
		CandidateSchool: m.CandidateSessionCandidateSchool,
		Status:          m.CandidateSessionStatus,
		StartedAt:       m.CandidateSessionStartedAt,
	}
}
