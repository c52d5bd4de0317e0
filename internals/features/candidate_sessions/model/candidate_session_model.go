package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateSessionStatus string

const (
	CandidateSessionStatusInProgress CandidateSessionStatus = "in_progress"
	CandidateSessionStatusSubmitted  CandidateSessionStatus = "submitted"
)

// CanTransitionTo: in_progress→submitted only; submitted is terminal.
func (s CandidateSessionStatus) CanTransitionTo(next CandidateSessionStatus) bool {
	return s == CandidateSessionStatusInProgress && next == CandidateSessionStatusSubmitted
}

// CandidateSessionModel: candidates have no account; the self-reported
// (name, class, school) triple is the identity, unique per exam at the
// storage layer. That index is the anti-duplicate invariant — do not
// remove it.
type CandidateSessionModel struct {
	CandidateSessionID              uuid.UUID              `gorm:"column:candidate_session_id;type:uuid;primaryKey" json:"candidate_session_id"`
	CandidateSessionExamID          uuid.UUID              `gorm:"column:candidate_session_exam_id;type:uuid;not null;index;uniqueIndex:uq_candidate_session_identity" json:"candidate_session_exam_id"`
	CandidateSessionCandidateName   string                 `gorm:"column:candidate_session_candidate_name;type:varchar(120);not null;uniqueIndex:uq_candidate_session_identity" json:"candidate_session_candidate_name"`
	CandidateSessionCandidateClass  string                 `gorm:"column:candidate_session_candidate_class;type:varchar(50);not null;uniqueIndex:uq_candidate_session_identity" json:"candidate_session_candidate_class"`
	CandidateSessionCandidateSchool string                 `gorm:"column:candidate_session_candidate_school;type:varchar(120);not null;uniqueIndex:uq_candidate_session_identity" json:"candidate_session_candidate_school"`
	CandidateSessionStatus          CandidateSessionStatus `gorm:"column:candidate_session_status;type:varchar(20);not null;default:'in_progress'" json:"candidate_session_status"`
	CandidateSessionScore           *int                   `gorm:"column:candidate_session_score" json:"candidate_session_score,omitempty"`
	CandidateSessionSubmittedAt     *time.Time             `gorm:"column:candidate_session_submitted_at" json:"candidate_session_submitted_at,omitempty"`

	CandidateSessionStartedAt time.Time `gorm:"column:candidate_session_started_at;autoCreateTime" json:"candidate_session_started_at"`
}

func (m *CandidateSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.CandidateSessionID == uuid.Nil {
		m.CandidateSessionID = uuid.New()
	}
	return nil
}

func (CandidateSessionModel) TableName() string {
	return "candidate_sessions"
}
