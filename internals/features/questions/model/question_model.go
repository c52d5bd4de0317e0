package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question lifecycle. Only live questions are visible to the sampler.
type QuestionStatus string

const (
	QuestionStatusDraft   QuestionStatus = "draft"
	QuestionStatusLive    QuestionStatus = "live"
	QuestionStatusRetired QuestionStatus = "retired"
)

type QuestionModel struct {
	QuestionID         uuid.UUID      `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionSubjectID  uuid.UUID      `gorm:"column:question_subject_id;type:uuid;not null;index" json:"question_subject_id"`
	QuestionExamBodyID uuid.UUID      `gorm:"column:question_exam_body_id;type:uuid;not null" json:"question_exam_body_id"`
	QuestionCategoryID uuid.UUID      `gorm:"column:question_category_id;type:uuid;not null" json:"question_category_id"`
	QuestionText       string         `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionStatus     QuestionStatus `gorm:"column:question_status;type:varchar(20);not null;default:'draft'" json:"question_status"`

	QuestionCreatedAt time.Time `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`

	Options []QuestionOptionModel `gorm:"foreignKey:QuestionOptionQuestionID;references:QuestionID" json:"options,omitempty"`
}

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

func (QuestionModel) TableName() string {
	return "questions"
}

// CorrectOption returns the single option flagged correct, or nil.
func (m *QuestionModel) CorrectOption() *QuestionOptionModel {
	for i := range m.Options {
		if m.Options[i].QuestionOptionIsCorrect {
			return &m.Options[i]
		}
	}
	return nil
}

type QuestionOptionModel struct {
	QuestionOptionID         uuid.UUID `gorm:"column:question_option_id;type:uuid;primaryKey" json:"question_option_id"`
	QuestionOptionQuestionID uuid.UUID `gorm:"column:question_option_question_id;type:uuid;not null;index" json:"question_option_question_id"`
	QuestionOptionText       string    `gorm:"column:question_option_text;type:text;not null" json:"question_option_text"`
	QuestionOptionIsCorrect  bool      `gorm:"column:question_option_is_correct;not null;default:false" json:"question_option_is_correct"`

	QuestionOptionCreatedAt time.Time `gorm:"column:question_option_created_at;autoCreateTime" json:"question_option_created_at"`
}

func (m *QuestionOptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionOptionID == uuid.Nil {
		m.QuestionOptionID = uuid.New()
	}
	return nil
}

func (QuestionOptionModel) TableName() string {
	return "question_options"
}
