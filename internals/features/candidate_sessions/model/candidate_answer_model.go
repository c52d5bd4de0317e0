package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CandidateAnswerModel: one row per locked question per session, written
// exactly once by the grading transaction. A nil selected option means
// the candidate skipped the question (always graded incorrect).
type CandidateAnswerModel struct {
	CandidateAnswerID               uuid.UUID  `gorm:"column:candidate_answer_id;type:uuid;primaryKey" json:"candidate_answer_id"`
	CandidateAnswerSessionID        uuid.UUID  `gorm:"column:candidate_answer_session_id;type:uuid;not null;index;uniqueIndex:uq_answer_session_question" json:"candidate_answer_session_id"`
	CandidateAnswerQuestionID       uuid.UUID  `gorm:"column:candidate_answer_question_id;type:uuid;not null;uniqueIndex:uq_answer_session_question" json:"candidate_answer_question_id"`
	CandidateAnswerSelectedOptionID *uuid.UUID `gorm:"column:candidate_answer_selected_option_id;type:uuid" json:"candidate_answer_selected_option_id,omitempty"`
	CandidateAnswerIsCorrect        bool       `gorm:"column:candidate_answer_is_correct;not null;default:false" json:"candidate_answer_is_correct"`
}

func (m *CandidateAnswerModel) BeforeCreate(tx *gorm.DB) error {
	if m.CandidateAnswerID == uuid.Nil {
		m.CandidateAnswerID = uuid.New()
	}
	return nil
}

func (CandidateAnswerModel) TableName() string {
	return "candidate_answers"
}
