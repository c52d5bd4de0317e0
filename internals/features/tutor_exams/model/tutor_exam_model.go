package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TutorExamStatus string

const (
	TutorExamStatusActive TutorExamStatus = "active"
	TutorExamStatusClosed TutorExamStatus = "closed"
)

// CanTransitionTo: active→closed is the only edge; closed is terminal.
func (s TutorExamStatus) CanTransitionTo(next TutorExamStatus) bool {
	return s == TutorExamStatusActive && next == TutorExamStatusClosed
}

var ErrExamAlreadyClosed = errors.New("exam already closed")

// PublishedArtifacts is stored as JSONB once publication succeeds.
type PublishedArtifacts struct {
	MasterSheet     string    `json:"master_sheet"`
	IndividualSlips string    `json:"individual_slips"`
	PublishedAt     time.Time `json:"published_at"`
}

type TutorExamModel struct {
	TutorExamID                 uuid.UUID       `gorm:"column:tutor_exam_id;type:uuid;primaryKey" json:"tutor_exam_id"`
	TutorExamTutorID            uuid.UUID       `gorm:"column:tutor_exam_tutor_id;type:uuid;not null;index" json:"tutor_exam_tutor_id"`
	TutorExamExamBodyID         uuid.UUID       `gorm:"column:tutor_exam_exam_body_id;type:uuid;not null" json:"tutor_exam_exam_body_id"`
	TutorExamCategoryID         uuid.UUID       `gorm:"column:tutor_exam_category_id;type:uuid;not null" json:"tutor_exam_category_id"`
	TutorExamTitle              string          `gorm:"column:tutor_exam_title;type:varchar(255);not null" json:"tutor_exam_title"`
	TutorExamTotalQuestions     int             `gorm:"column:tutor_exam_total_questions;not null" json:"tutor_exam_total_questions"`
	TutorExamTimeLimitMinutes   int             `gorm:"column:tutor_exam_time_limit_minutes;not null" json:"tutor_exam_time_limit_minutes"`
	TutorExamExpiresAt          time.Time       `gorm:"column:tutor_exam_expires_at;not null" json:"tutor_exam_expires_at"`
	TutorExamMaxCandidates      int             `gorm:"column:tutor_exam_max_candidates;not null" json:"tutor_exam_max_candidates"`
	TutorExamStatus             TutorExamStatus `gorm:"column:tutor_exam_status;type:varchar(20);not null;default:'active'" json:"tutor_exam_status"`
	TutorExamPublishedArtifacts datatypes.JSON  `gorm:"column:tutor_exam_published_artifacts;type:jsonb" json:"tutor_exam_published_artifacts,omitempty"`

	TutorExamCreatedAt time.Time `gorm:"column:tutor_exam_created_at;autoCreateTime" json:"tutor_exam_created_at"`
	TutorExamUpdatedAt time.Time `gorm:"column:tutor_exam_updated_at;autoUpdateTime" json:"tutor_exam_updated_at"`
}

func (m *TutorExamModel) BeforeCreate(tx *gorm.DB) error {
	if m.TutorExamID == uuid.Nil {
		m.TutorExamID = uuid.New()
	}
	return nil
}

func (TutorExamModel) TableName() string {
	return "tutor_exams"
}

// Close performs the validated active→closed transition in memory.
func (m *TutorExamModel) Close() error {
	if !m.TutorExamStatus.CanTransitionTo(TutorExamStatusClosed) {
		return ErrExamAlreadyClosed
	}
	m.TutorExamStatus = TutorExamStatusClosed
	return nil
}

// MarshalArtifacts serializes the publication refs for the JSONB column.
func MarshalArtifacts(a PublishedArtifacts) (datatypes.JSON, error) {
	buf, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(buf), nil
}
