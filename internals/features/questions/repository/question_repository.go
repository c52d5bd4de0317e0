package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepmaster_backend/internals/features/questions/model"
)

// QuestionRepository is the read contract the assessment core consumes
// from the question pool. The sampler and the candidate view go through
// here; neither ever writes to the pool.
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// LiveQuestionsBySubject returns every live question for a subject,
// options preloaded.
func (r *QuestionRepository) LiveQuestionsBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.QuestionModel, error) {
	var questions []model.QuestionModel
	err := r.DB.WithContext(ctx).
		Preload("Options").
		Where("question_subject_id = ? AND question_status = ?", subjectID, model.QuestionStatusLive).
		Find(&questions).Error
	return questions, err
}

// QuestionsByIDs loads questions (any status) with options, keyed for
// joining against a locked set. Locked membership never re-samples;
// candidates see the current text/options of the locked identities.
func (r *QuestionRepository) QuestionsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.QuestionModel, error) {
	var questions []model.QuestionModel
	if len(ids) == 0 {
		return map[uuid.UUID]model.QuestionModel{}, nil
	}
	err := r.DB.WithContext(ctx).
		Preload("Options").
		Where("question_id IN ?", ids).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.QuestionModel, len(questions))
	for _, q := range questions {
		byID[q.QuestionID] = q
	}
	return byID, nil
}
