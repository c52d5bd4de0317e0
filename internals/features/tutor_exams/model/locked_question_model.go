package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LockedQuestionModel is the frozen answer-key membership. Rows are
// written once at exam creation and never touched again. The correct
// option id is snapshotted here so later edits to the question bank
// cannot drift the key of an issued exam.
type LockedQuestionModel struct {
	LockedQuestionID              uuid.UUID `gorm:"column:locked_question_id;type:uuid;primaryKey" json:"locked_question_id"`
	LockedQuestionExamID          uuid.UUID `gorm:"column:locked_question_exam_id;type:uuid;not null;uniqueIndex:uq_locked_exam_question;index" json:"locked_question_exam_id"`
	LockedQuestionQuestionID      uuid.UUID `gorm:"column:locked_question_question_id;type:uuid;not null;uniqueIndex:uq_locked_exam_question" json:"locked_question_question_id"`
	LockedQuestionSubjectID       uuid.UUID `gorm:"column:locked_question_subject_id;type:uuid;not null" json:"locked_question_subject_id"`
	LockedQuestionCorrectOptionID uuid.UUID `gorm:"column:locked_question_correct_option_id;type:uuid;not null" json:"-"`
}

func (m *LockedQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.LockedQuestionID == uuid.Nil {
		m.LockedQuestionID = uuid.New()
	}
	return nil
}

func (LockedQuestionModel) TableName() string {
	return "tutor_exam_locked_questions"
}
