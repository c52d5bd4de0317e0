package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"prepmaster_backend/internals/features/questions/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.QuestionModel{}, &model.QuestionOptionModel{}))
	return db
}

func seedQuestion(t *testing.T, db *gorm.DB, subjectID uuid.UUID, status model.QuestionStatus) model.QuestionModel {
	t.Helper()
	q := model.QuestionModel{
		QuestionSubjectID:  subjectID,
		QuestionExamBodyID: uuid.New(),
		QuestionCategoryID: uuid.New(),
		QuestionText:       "What is 2 + 2?",
		QuestionStatus:     status,
		Options: []model.QuestionOptionModel{
			{QuestionOptionText: "4", QuestionOptionIsCorrect: true},
			{QuestionOptionText: "5"},
		},
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}

func TestLiveQuestionsBySubjectFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	subject := uuid.New()
	live := seedQuestion(t, db, subject, model.QuestionStatusLive)
	seedQuestion(t, db, subject, model.QuestionStatusDraft)
	seedQuestion(t, db, subject, model.QuestionStatusRetired)
	seedQuestion(t, db, uuid.New(), model.QuestionStatusLive) // other subject

	got, err := repo.LiveQuestionsBySubject(ctx, subject)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, live.QuestionID, got[0].QuestionID)
	require.Len(t, got[0].Options, 2, "options must come preloaded")
	require.NotNil(t, got[0].CorrectOption())
}

func TestQuestionsByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	subject := uuid.New()
	live := seedQuestion(t, db, subject, model.QuestionStatusLive)
	retired := seedQuestion(t, db, subject, model.QuestionStatusRetired)

	byID, err := repo.QuestionsByIDs(ctx, []uuid.UUID{live.QuestionID, retired.QuestionID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, byID, 2)
	// retired questions stay visible here so locked exams keep working
	require.Contains(t, byID, retired.QuestionID)

	empty, err := repo.QuestionsByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}
