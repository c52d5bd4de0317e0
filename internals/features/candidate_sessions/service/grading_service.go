package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepmaster_backend/internals/features/candidate_sessions/model"
	examModel "prepmaster_backend/internals/features/tutor_exams/model"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadySubmitted = errors.New("session already submitted")
)

// GradingService consumes a candidate's answer set and persists the
// outcome atomically. Resubmission is rejected, never silently ignored.
type GradingService struct {
	DB *gorm.DB
}

func NewGradingService(db *gorm.DB) *GradingService {
	return &GradingService{DB: db}
}

// SubmitSession grades every locked question of the session's exam
// against the locked correct-option snapshot. Questions missing from
// responses are graded incorrect with a null selection. Answer rows and
// the session update commit together or not at all.
func (s *GradingService) SubmitSession(ctx context.Context, sessionID uuid.UUID, responses map[uuid.UUID]uuid.UUID) (*model.CandidateSessionModel, error) {
	var session model.CandidateSessionModel
	if err := s.DB.WithContext(ctx).
		First(&session, "candidate_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.CandidateSessionStatus != model.CandidateSessionStatusInProgress {
		return nil, ErrAlreadySubmitted
	}

	var locked []examModel.LockedQuestionModel
	if err := s.DB.WithContext(ctx).
		Where("locked_question_exam_id = ?", session.CandidateSessionExamID).
		Find(&locked).Error; err != nil {
		return nil, err
	}

	score := 0
	answers := make([]model.CandidateAnswerModel, 0, len(locked))
	for _, l := range locked {
		answer := model.CandidateAnswerModel{
			CandidateAnswerSessionID:  sessionID,
			CandidateAnswerQuestionID: l.LockedQuestionQuestionID,
		}
		if selected, ok := responses[l.LockedQuestionQuestionID]; ok {
			sel := selected
			answer.CandidateAnswerSelectedOptionID = &sel
			answer.CandidateAnswerIsCorrect = selected == l.LockedQuestionCorrectOptionID
		}
		if answer.CandidateAnswerIsCorrect {
			score++
		}
		answers = append(answers, answer)
	}

	now := time.Now().UTC()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// guarded status flip: a concurrent submit loses here and the
		// whole transaction (answers included) rolls back
		res := tx.Model(&model.CandidateSessionModel{}).
			Where("candidate_session_id = ? AND candidate_session_status = ?",
				sessionID, model.CandidateSessionStatusInProgress).
			Updates(map[string]interface{}{
				"candidate_session_status":       model.CandidateSessionStatusSubmitted,
				"candidate_session_score":        score,
				"candidate_session_submitted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySubmitted
		}
		if len(answers) == 0 {
			return nil
		}
		return tx.CreateInBatches(answers, 100).Error
	})
	if err != nil {
		return nil, err
	}

	session.CandidateSessionStatus = model.CandidateSessionStatusSubmitted
	session.CandidateSessionScore = &score
	session.CandidateSessionSubmittedAt = &now
	return &session, nil
}
