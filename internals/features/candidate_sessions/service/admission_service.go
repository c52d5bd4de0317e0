package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prepmaster_backend/internals/features/candidate_sessions/model"
	questionRepo "prepmaster_backend/internals/features/questions/repository"
	examModel "prepmaster_backend/internals/features/tutor_exams/model"
)

var (
	ErrExamNotFound       = errors.New("exam not found")
	ErrExamNotAvailable   = errors.New("exam is not open for admission")
	ErrExamExpired        = errors.New("exam has expired")
	ErrCapacityReached    = errors.New("exam candidate capacity reached")
	ErrDuplicateCandidate = errors.New("candidate already started this exam")
)

type StartExamInput struct {
	CandidateName   string
	CandidateClass  string
	CandidateSchool string
}

// CandidateOptionView and CandidateQuestionView are what the candidate
// sees: current text and options of the locked identities, correctness
// never included.
type CandidateOptionView struct {
	OptionID uuid.UUID `json:"option_id"`
	Text     string    `json:"text"`
}

type CandidateQuestionView struct {
	QuestionID uuid.UUID             `json:"question_id"`
	SubjectID  uuid.UUID             `json:"subject_id"`
	Text       string                `json:"text"`
	Options    []CandidateOptionView `json:"options"`
}

// AdmissionService gates candidate entry: capacity and duplicate checks
// collapse into a single atomic admit-or-reject decision.
type AdmissionService struct {
	DB *gorm.DB
}

func NewAdmissionService(db *gorm.DB) *AdmissionService {
	return &AdmissionService{DB: db}
}

// ExamSummary returns the exam if it is open for admission.
func (s *AdmissionService) ExamSummary(ctx context.Context, examID uuid.UUID) (*examModel.TutorExamModel, error) {
	var exam examModel.TutorExamModel
	if err := s.DB.WithContext(ctx).
		First(&exam, "tutor_exam_id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	if err := admissible(&exam, time.Now()); err != nil {
		return nil, err
	}
	return &exam, nil
}

// StartExam runs the admission decision in one transaction: the exam row
// is locked (Postgres) so concurrent starts for the same exam serialize,
// then capacity and duplicate are checked, the session inserted, and the
// question views loaded. The view load stays inside the transaction so a
// failed read rolls the admission back and a retry is not a duplicate.
// The composite unique index backstops the duplicate check against races.
func (s *AdmissionService) StartExam(ctx context.Context, examID uuid.UUID, in StartExamInput) (*model.CandidateSessionModel, []CandidateQuestionView, error) {
	session := model.CandidateSessionModel{
		CandidateSessionExamID:          examID,
		CandidateSessionCandidateName:   in.CandidateName,
		CandidateSessionCandidateClass:  in.CandidateClass,
		CandidateSessionCandidateSchool: in.CandidateSchool,
		CandidateSessionStatus:          model.CandidateSessionStatusInProgress,
	}

	var questions []CandidateQuestionView
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exam examModel.TutorExamModel
		q := tx
		// sqlite (tests) has no row locks but serializes writers anyway
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&exam, "tutor_exam_id = ?", examID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExamNotFound
			}
			return err
		}
		if err := admissible(&exam, time.Now()); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.CandidateSessionModel{}).
			Where("candidate_session_exam_id = ?", examID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(exam.TutorExamMaxCandidates) {
			return ErrCapacityReached
		}

		var existing model.CandidateSessionModel
		err := tx.Where(
			"candidate_session_exam_id = ? AND candidate_session_candidate_name = ? AND candidate_session_candidate_class = ? AND candidate_session_candidate_school = ?",
			examID, in.CandidateName, in.CandidateClass, in.CandidateSchool,
		).First(&existing).Error
		if err == nil {
			return ErrDuplicateCandidate
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCandidate
			}
			return err
		}

		questions, err = lockedQuestionViews(ctx, tx, examID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &session, questions, nil
}

// lockedQuestionViews joins the frozen membership to live question data.
func lockedQuestionViews(ctx context.Context, tx *gorm.DB, examID uuid.UUID) ([]CandidateQuestionView, error) {
	var locked []examModel.LockedQuestionModel
	if err := tx.WithContext(ctx).
		Where("locked_question_exam_id = ?", examID).
		Order("locked_question_subject_id").
		Find(&locked).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(locked))
	for _, l := range locked {
		ids = append(ids, l.LockedQuestionQuestionID)
	}
	byID, err := questionRepo.NewQuestionRepository(tx).QuestionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]CandidateQuestionView, 0, len(locked))
	for _, l := range locked {
		q, ok := byID[l.LockedQuestionQuestionID]
		if !ok {
			continue
		}
		view := CandidateQuestionView{
			QuestionID: q.QuestionID,
			SubjectID:  l.LockedQuestionSubjectID,
			Text:       q.QuestionText,
		}
		for _, o := range q.Options {
			view.Options = append(view.Options, CandidateOptionView{
				OptionID: o.QuestionOptionID,
				Text:     o.QuestionOptionText,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

func admissible(exam *examModel.TutorExamModel, now time.Time) error {
	if exam.TutorExamStatus != examModel.TutorExamStatusActive {
		return ErrExamNotAvailable
	}
	if !now.Before(exam.TutorExamExpiresAt) {
		return ErrExamExpired
	}
	return nil
}
