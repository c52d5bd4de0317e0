package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TutorProfileStatus string

const (
	TutorProfileStatusPending  TutorProfileStatus = "pending"
	TutorProfileStatusApproved TutorProfileStatus = "approved"
	TutorProfileStatusRejected TutorProfileStatus = "rejected"
)

// CanTransitionTo: profiles only move out of pending, never back.
func (s TutorProfileStatus) CanTransitionTo(next TutorProfileStatus) bool {
	return s == TutorProfileStatusPending &&
		(next == TutorProfileStatusApproved || next == TutorProfileStatusRejected)
}

const DefaultStudentQuota = 50

type TutorProfileModel struct {
	TutorProfileID           uuid.UUID          `gorm:"column:tutor_profile_id;type:uuid;primaryKey" json:"tutor_profile_id"`
	TutorProfileName         string             `gorm:"column:tutor_profile_name;type:varchar(80);not null" json:"tutor_profile_name"`
	TutorProfileEmail        string             `gorm:"column:tutor_profile_email;type:varchar(120);not null;uniqueIndex" json:"tutor_profile_email"`
	TutorProfilePasswordHash string             `gorm:"column:tutor_profile_password_hash;type:varchar(100);not null" json:"-"`
	TutorProfileStatus       TutorProfileStatus `gorm:"column:tutor_profile_status;type:varchar(20);not null;default:'pending'" json:"tutor_profile_status"`
	TutorProfileStudentQuota int                `gorm:"column:tutor_profile_student_quota;not null;default:50" json:"tutor_profile_student_quota"`

	TutorProfileCreatedAt time.Time `gorm:"column:tutor_profile_created_at;autoCreateTime" json:"tutor_profile_created_at"`
	TutorProfileUpdatedAt time.Time `gorm:"column:tutor_profile_updated_at;autoUpdateTime" json:"tutor_profile_updated_at"`
}

func (m *TutorProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.TutorProfileID == uuid.Nil {
		m.TutorProfileID = uuid.New()
	}
	if m.TutorProfileStudentQuota <= 0 {
		m.TutorProfileStudentQuota = DefaultStudentQuota
	}
	return nil
}

func (TutorProfileModel) TableName() string {
	return "tutor_profiles"
}
