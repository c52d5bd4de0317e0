package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "prepmaster_backend/internals/features/candidate_sessions/model"
	"prepmaster_backend/internals/features/tutor_exams/model"
)

var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrNothingToPublish = errors.New("no submitted sessions to publish")
)

// ResultRow is one ranked, submitted candidate.
type ResultRow struct {
	Rank            int
	SessionID       uuid.UUID
	CandidateName   string
	CandidateClass  string
	CandidateSchool string
	Score           int
	SubmittedAt     time.Time
}

// ResultRenderer is the external rendering collaborator: it turns an
// exam plus its ranked rows into downloadable artifacts.
type ResultRenderer interface {
	RenderMasterSheet(exam *model.TutorExamModel, rows []ResultRow) (string, error)
	RenderIndividualSlips(exam *model.TutorExamModel, rows []ResultRow) (string, error)
}

type PublishResult struct {
	MasterArtifactRef     string
	IndividualArtifactRef string
	Exam                  *model.TutorExamModel
}

// PublicationService aggregates submitted sessions, renders artifacts,
// and closes the exam. Closing only happens after both renders succeed,
// so a failed publication leaves the exam active and retryable.
type PublicationService struct {
	DB       *gorm.DB
	Renderer ResultRenderer
}

func NewPublicationService(db *gorm.DB, renderer ResultRenderer) *PublicationService {
	return &PublicationService{DB: db, Renderer: renderer}
}

func (s *PublicationService) PublishResults(ctx context.Context, tutorID, examID uuid.UUID) (*PublishResult, error) {
	var exam model.TutorExamModel
	if err := s.DB.WithContext(ctx).
		First(&exam, "tutor_exam_id = ? AND tutor_exam_tutor_id = ?", examID, tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	if exam.TutorExamStatus != model.TutorExamStatusActive {
		return nil, model.ErrExamAlreadyClosed
	}

	// all sessions are loaded for the audit trail; only submitted ones rank
	var sessions []sessionModel.CandidateSessionModel
	if err := s.DB.WithContext(ctx).
		Where("candidate_session_exam_id = ?", examID).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	rows := rankSubmitted(sessions)
	if len(rows) == 0 {
		return nil, ErrNothingToPublish
	}
	log.Printf("[INFO] publishing exam %s: %d sessions, %d submitted", examID, len(sessions), len(rows))

	masterRef, err := s.Renderer.RenderMasterSheet(&exam, rows)
	if err != nil {
		return nil, err
	}
	slipsRef, err := s.Renderer.RenderIndividualSlips(&exam, rows)
	if err != nil {
		return nil, err
	}

	artifacts, err := model.MarshalArtifacts(model.PublishedArtifacts{
		MasterSheet:     masterRef,
		IndividualSlips: slipsRef,
		PublishedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	// guarded transition: only an active exam may close, even under a
	// concurrent publish
	res := s.DB.WithContext(ctx).
		Model(&model.TutorExamModel{}).
		Where("tutor_exam_id = ? AND tutor_exam_status = ?", examID, model.TutorExamStatusActive).
		Updates(map[string]interface{}{
			"tutor_exam_status":              model.TutorExamStatusClosed,
			"tutor_exam_published_artifacts": artifacts,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrExamAlreadyClosed
	}

	exam.TutorExamStatus = model.TutorExamStatusClosed
	exam.TutorExamPublishedArtifacts = artifacts

	return &PublishResult{
		MasterArtifactRef:     masterRef,
		IndividualArtifactRef: slipsRef,
		Exam:                  &exam,
	}, nil
}

// rankSubmitted orders submitted sessions by score desc, earlier
// submission breaking ties.
func rankSubmitted(sessions []sessionModel.CandidateSessionModel) []ResultRow {
	var rows []ResultRow
	for _, sess := range sessions {
		if sess.CandidateSessionStatus != sessionModel.CandidateSessionStatusSubmitted {
			continue
		}
		score := 0
		if sess.CandidateSessionScore != nil {
			score = *sess.CandidateSessionScore
		}
		submittedAt := time.Time{}
		if sess.CandidateSessionSubmittedAt != nil {
			submittedAt = *sess.CandidateSessionSubmittedAt
		}
		rows = append(rows, ResultRow{
			SessionID:       sess.CandidateSessionID,
			CandidateName:   sess.CandidateSessionCandidateName,
			CandidateClass:  sess.CandidateSessionCandidateClass,
			CandidateSchool: sess.CandidateSessionCandidateSchool,
			Score:           score,
			SubmittedAt:     submittedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].SubmittedAt.Before(rows[j].SubmittedAt)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
