package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	questionModel "prepmaster_backend/internals/features/questions/model"
	questionRepo "prepmaster_backend/internals/features/questions/repository"
	"prepmaster_backend/internals/features/tutor_exams/model"
	tutorService "prepmaster_backend/internals/features/tutors/service"
)

// InsufficientPoolError names the short subject and the deficit.
type InsufficientPoolError struct {
	SubjectID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("subject %s has %d live questions, %d requested (short by %d)",
		e.SubjectID, e.Available, e.Requested, e.Deficit())
}

func (e *InsufficientPoolError) Deficit() int {
	return e.Requested - e.Available
}

var ErrDuplicateSubjectWeight = errors.New("subject listed more than once in weights")

type SubjectWeightInput struct {
	SubjectID uuid.UUID
	Count     int
}

type CreateExamInput struct {
	Title            string
	ExamBodyID       uuid.UUID
	CategoryID       uuid.UUID
	TimeLimitMinutes int
	ExpiresAt        time.Time
	MaxCandidates    *int
	Weights          []SubjectWeightInput
}

// SamplerService draws the locked question set and creates the exam.
type SamplerService struct {
	DB        *gorm.DB
	Questions *questionRepo.QuestionRepository
	Gate      *tutorService.EligibilityService
}

func NewSamplerService(db *gorm.DB) *SamplerService {
	return &SamplerService{
		DB:        db,
		Questions: questionRepo.NewQuestionRepository(db),
		Gate:      tutorService.NewEligibilityService(db),
	}
}

// CreateExam runs the eligibility gate, samples every subject quota, and
// persists exam + weights + locked questions in one transaction.
// All-or-nothing: a short subject aborts before anything is written.
func (s *SamplerService) CreateExam(ctx context.Context, tutorID uuid.UUID, in CreateExamInput) (*model.TutorExamModel, error) {
	profile, err := s.Gate.EnsureApprovedTutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	maxCandidates := tutorService.ResolveMaxCandidates(profile, in.MaxCandidates)

	total := 0
	var locked []model.LockedQuestionModel
	seen := make(map[uuid.UUID]struct{}, len(in.Weights))
	for _, w := range in.Weights {
		// a repeated subject would sample the same pool twice and trip
		// the locked-set unique index mid-transaction
		if _, dup := seen[w.SubjectID]; dup {
			return nil, ErrDuplicateSubjectWeight
		}
		seen[w.SubjectID] = struct{}{}

		pool, err := s.Questions.LiveQuestionsBySubject(ctx, w.SubjectID)
		if err != nil {
			return nil, err
		}
		if len(pool) < w.Count {
			return nil, &InsufficientPoolError{
				SubjectID: w.SubjectID,
				Requested: w.Count,
				Available: len(pool),
			}
		}
		drawn, err := sampleWithoutReplacement(pool, w.Count)
		if err != nil {
			return nil, err
		}
		for _, q := range drawn {
			correct := q.CorrectOption()
			if correct == nil {
				return nil, fmt.Errorf("question %s has no correct option", q.QuestionID)
			}
			locked = append(locked, model.LockedQuestionModel{
				LockedQuestionQuestionID:      q.QuestionID,
				LockedQuestionSubjectID:       w.SubjectID,
				LockedQuestionCorrectOptionID: correct.QuestionOptionID,
			})
		}
		total += w.Count
	}

	exam := model.TutorExamModel{
		TutorExamTutorID:          tutorID,
		TutorExamExamBodyID:       in.ExamBodyID,
		TutorExamCategoryID:       in.CategoryID,
		TutorExamTitle:            in.Title,
		TutorExamTotalQuestions:   total,
		TutorExamTimeLimitMinutes: in.TimeLimitMinutes,
		TutorExamExpiresAt:        in.ExpiresAt,
		TutorExamMaxCandidates:    maxCandidates,
		TutorExamStatus:           model.TutorExamStatusActive,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&exam).Error; err != nil {
			return err
		}
		for _, w := range in.Weights {
			weight := model.SubjectWeightModel{
				SubjectWeightExamID:        exam.TutorExamID,
				SubjectWeightSubjectID:     w.SubjectID,
				SubjectWeightQuestionCount: w.Count,
			}
			if err := tx.Create(&weight).Error; err != nil {
				return err
			}
		}
		for i := range locked {
			locked[i].LockedQuestionExamID = exam.TutorExamID
		}
		return tx.CreateInBatches(locked, 100).Error
	})
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// sampleWithoutReplacement draws count questions uniformly. Intentionally
// unweighted: no difficulty or recency bias.
func sampleWithoutReplacement(pool []questionModel.QuestionModel, count int) ([]questionModel.QuestionModel, error) {
	if count > len(pool) {
		return nil, fmt.Errorf("sample size %d exceeds pool %d", count, len(pool))
	}
	shuffled := make([]questionModel.QuestionModel, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count], nil
}
