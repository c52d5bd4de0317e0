package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubjectWeightModel is the persisted sampling request, kept for audit.
type SubjectWeightModel struct {
	SubjectWeightID            uuid.UUID `gorm:"column:subject_weight_id;type:uuid;primaryKey" json:"subject_weight_id"`
	SubjectWeightExamID        uuid.UUID `gorm:"column:subject_weight_exam_id;type:uuid;not null;index" json:"subject_weight_exam_id"`
	SubjectWeightSubjectID     uuid.UUID `gorm:"column:subject_weight_subject_id;type:uuid;not null" json:"subject_weight_subject_id"`
	SubjectWeightQuestionCount int       `gorm:"column:subject_weight_question_count;not null" json:"subject_weight_question_count"`
}

func (m *SubjectWeightModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectWeightID == uuid.Nil {
		m.SubjectWeightID = uuid.New()
	}
	return nil
}

func (SubjectWeightModel) TableName() string {
	return "tutor_exam_subject_weights"
}
