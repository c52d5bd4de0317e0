package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"prepmaster_backend/internals/features/candidate_sessions/model"
	questionModel "prepmaster_backend/internals/features/questions/model"
	examModel "prepmaster_backend/internals/features/tutor_exams/model"
	tutorModel "prepmaster_backend/internals/features/tutors/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&tutorModel.TutorProfileModel{},
		&questionModel.QuestionModel{},
		&questionModel.QuestionOptionModel{},
		&examModel.TutorExamModel{},
		&examModel.SubjectWeightModel{},
		&examModel.LockedQuestionModel{},
		&model.CandidateSessionModel{},
		&model.CandidateAnswerModel{},
	))
	return db
}

// seededExam bundles the fixture an admission or grading test needs: an
// open exam with a locked question set and the correct option per
// question.
type seededExam struct {
	Exam        examModel.TutorExamModel
	QuestionIDs []uuid.UUID
	CorrectByQ  map[uuid.UUID]uuid.UUID
	WrongByQ    map[uuid.UUID]uuid.UUID
}

func seedOpenExam(t *testing.T, db *gorm.DB, questionCount, maxCandidates int) seededExam {
	t.Helper()
	subjectID := uuid.New()
	exam := examModel.TutorExamModel{
		TutorExamTutorID:          uuid.New(),
		TutorExamExamBodyID:       uuid.New(),
		TutorExamCategoryID:       uuid.New(),
		TutorExamTitle:            "Mock NECO",
		TutorExamTotalQuestions:   questionCount,
		TutorExamTimeLimitMinutes: 30,
		TutorExamExpiresAt:        time.Now().Add(24 * time.Hour),
		TutorExamMaxCandidates:    maxCandidates,
		TutorExamStatus:           examModel.TutorExamStatusActive,
	}
	require.NoError(t, db.Create(&exam).Error)

	out := seededExam{
		Exam:       exam,
		CorrectByQ: map[uuid.UUID]uuid.UUID{},
		WrongByQ:   map[uuid.UUID]uuid.UUID{},
	}
	for i := 0; i < questionCount; i++ {
		q := questionModel.QuestionModel{
			QuestionSubjectID:  subjectID,
			QuestionExamBodyID: exam.TutorExamExamBodyID,
			QuestionCategoryID: exam.TutorExamCategoryID,
			QuestionText:       fmt.Sprintf("Question %d", i+1),
			QuestionStatus:     questionModel.QuestionStatusLive,
			Options: []questionModel.QuestionOptionModel{
				{QuestionOptionText: "A", QuestionOptionIsCorrect: true},
				{QuestionOptionText: "B"},
				{QuestionOptionText: "C"},
				{QuestionOptionText: "D"},
			},
		}
		require.NoError(t, db.Create(&q).Error)

		locked := examModel.LockedQuestionModel{
			LockedQuestionExamID:          exam.TutorExamID,
			LockedQuestionQuestionID:      q.QuestionID,
			LockedQuestionSubjectID:       subjectID,
			LockedQuestionCorrectOptionID: q.Options[0].QuestionOptionID,
		}
		require.NoError(t, db.Create(&locked).Error)

		out.QuestionIDs = append(out.QuestionIDs, q.QuestionID)
		out.CorrectByQ[q.QuestionID] = q.Options[0].QuestionOptionID
		out.WrongByQ[q.QuestionID] = q.Options[1].QuestionOptionID
	}
	return out
}

func startInput(name, class, school string) StartExamInput {
	return StartExamInput{
		CandidateName:   name,
		CandidateClass:  class,
		CandidateSchool: school,
	}
}
