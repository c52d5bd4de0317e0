package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	sessionModel "prepmaster_backend/internals/features/candidate_sessions/model"
	questionModel "prepmaster_backend/internals/features/questions/model"
	"prepmaster_backend/internals/features/tutor_exams/model"
	tutorModel "prepmaster_backend/internals/features/tutors/model"
	tutorService "prepmaster_backend/internals/features/tutors/service"
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
	// one connection: serializes writers like the real deployment's
	// row lock does, and avoids SQLITE_BUSY in concurrent tests
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&tutorModel.TutorProfileModel{},
		&questionModel.QuestionModel{},
		&questionModel.QuestionOptionModel{},
		&model.TutorExamModel{},
		&model.SubjectWeightModel{},
		&model.LockedQuestionModel{},
		&sessionModel.CandidateSessionModel{},
		&sessionModel.CandidateAnswerModel{},
	))
	return db
}

func seedTutor(t *testing.T, db *gorm.DB, status tutorModel.TutorProfileStatus, quota int) tutorModel.TutorProfileModel {
	t.Helper()
	profile := tutorModel.TutorProfileModel{
		TutorProfileName:         "Mrs. Adeyemi",
		TutorProfileEmail:        fmt.Sprintf("%s@prepmaster.test", uuid.NewString()[:8]),
		TutorProfilePasswordHash: "x",
		TutorProfileStatus:       status,
		TutorProfileStudentQuota: quota,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

// seedLiveQuestions creates n live questions for a subject, each with
// four options and one correct. Returns the subject id.
func seedLiveQuestions(t *testing.T, db *gorm.DB, n int) uuid.UUID {
	t.Helper()
	subjectID := uuid.New()
	for i := 0; i < n; i++ {
		q := questionModel.QuestionModel{
			QuestionSubjectID:  subjectID,
			QuestionExamBodyID: uuid.New(),
			QuestionCategoryID: uuid.New(),
			QuestionText:       fmt.Sprintf("Question %d", i+1),
			QuestionStatus:     questionModel.QuestionStatusLive,
		}
		for j := 0; j < 4; j++ {
			q.Options = append(q.Options, questionModel.QuestionOptionModel{
				QuestionOptionText:      fmt.Sprintf("Option %d", j+1),
				QuestionOptionIsCorrect: j == 0,
			})
		}
		require.NoError(t, db.Create(&q).Error)
	}
	return subjectID
}

func examInput(weights []SubjectWeightInput) CreateExamInput {
	return CreateExamInput{
		Title:            "Mock WAEC",
		ExamBodyID:       uuid.New(),
		CategoryID:       uuid.New(),
		TimeLimitMinutes: 60,
		ExpiresAt:        time.Now().Add(24 * time.Hour),
		Weights:          weights,
	}
}

func TestCreateExamSamplesEachSubjectExactly(t *testing.T) {
	db := newTestDB(t)
	tutor := seedTutor(t, db, tutorModel.TutorProfileStatusApproved, 50)
	math := seedLiveQuestions(t, db, 10)
	english := seedLiveQuestions(t, db, 5)

	svc := NewSamplerService(db)
	exam, err := svc.CreateExam(context.Background(), tutor.TutorProfileID, examInput([]SubjectWeightInput{
		{SubjectID: math, Count: 4},
		{SubjectID: english, Count: 3},
	}))
	require.NoError(t, err)
	require.Equal(t, 7, exam.TutorExamTotalQuestions)
	require.Equal(t, model.TutorExamStatusActive, exam.TutorExamStatus)
	require.Equal(t, 50, exam.TutorExamMaxCandidates)

	var locked []model.LockedQuestionModel
	require.NoError(t, db.Where("locked_question_exam_id = ?", exam.TutorExamID).Find(&locked).Error)
	require.Len(t, locked, 7)

	perSubject := map[uuid.UUID]int{}
	seen := map[uuid.UUID]bool{}
	for _, l := range locked {
		perSubject[l.LockedQuestionSubjectID]++
		require.False(t, seen[l.LockedQuestionQuestionID], "question locked twice")
		seen[l.LockedQuestionQuestionID] = true
		require.NotEqual(t, uuid.Nil, l.LockedQuestionCorrectOptionID)
	}
	require.Equal(t, 4, perSubject[math])
	require.Equal(t, 3, perSubject[english])

	var weights []model.SubjectWeightModel
	require.NoError(t, db.Where("subject_weight_exam_id = ?", exam.TutorExamID).Find(&weights).Error)
	require.Len(t, weights, 2)
}

func TestCreateExamSnapshotsCorrectOption(t *testing.T) {
	db := newTestDB(t)
	tutor := seedTutor(t, db, tutorModel.TutorProfileStatusApproved, 50)
	subject := seedLiveQuestions(t, db, 3)

	svc := NewSamplerService(db)
	exam, err := svc.CreateExam(context.Background(), tutor.TutorProfileID, examInput([]SubjectWeightInput{
		{SubjectID: subject, Count: 3},
	}))
	require.NoError(t, err)

	var locked []model.LockedQuestionModel
	require.NoError(t, db.Where("locked_question_exam_id = ?", exam.TutorExamID).Find(&locked).Error)
	for _, l := range locked {
		var opt questionModel.QuestionOptionModel
		require.NoError(t, db.First(&opt, "question_option_id = ?", l.LockedQuestionCorrectOptionID).Error)
		require.True(t, opt.QuestionOptionIsCorrect)
		require.Equal(t, l.LockedQuestionQuestionID, opt.QuestionOptionQuestionID)
	}
}

func TestCreateExamInsufficientPoolWritesNothing(t *testing.T) {
	db := newTestDB(t)
	tutor := seedTutor(t, db, tutorModel.TutorProfileStatusApproved, 50)
	math := seedLiveQuestions(t, db, 10)
	short := seedLiveQuestions(t, db, 2)

	svc := NewSamplerService(db)
	_, err := svc.CreateExam(context.Background(), tutor.TutorProfileID, examInput([]SubjectWeightInput{
		{SubjectID: math, Count: 5},
		{SubjectID: short, Count: 3},
	}))

	var poolErr *InsufficientPoolError
	require.ErrorAs(t, err, &poolErr)
	require.Equal(t, short, poolErr.SubjectID)
	require.Equal(t, 3, poolErr.Requested)
	require.Equal(t, 2, poolErr.Available)
	require.Equal(t, 1, poolErr.Deficit())

	// all-or-nothing: the store must be untouched
	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"exams", &model.TutorExamModel{}},
		{"weights", &model.SubjectWeightModel{}},
		{"locked", &model.LockedQuestionModel{}},
	} {
		var count int64
		require.NoError(t, db.Model(probe.model).Count(&count).Error)
		require.Zero(t, count, "unexpected %s rows", probe.name)
	}
}

func TestCreateExamIgnoresNonLiveQuestions(t *testing.T) {
	db := newTestDB(t)
	tutor := seedTutor(t, db, tutorModel.TutorProfileStatusApproved, 50)
	subject := seedLiveQuestions(t, db, 2)

	draft := questionModel.QuestionModel{
		QuestionSubjectID:  subject,
		QuestionExamBodyID: uuid.New(),
		QuestionCategoryID: uuid.New(),
		QuestionText:       "Draft question",
		QuestionStatus:     questionModel.QuestionStatusDraft,
		Options: []questionModel.QuestionOptionModel{
			{QuestionOptionText: "A", QuestionOptionIsCorrect: true},
			{QuestionOptionText: "B"},
		},
	}
	require.NoError(t, db.Create(&draft).Error)

	svc := NewSamplerService(db)
	_, err := svc.CreateExam(context.Background(), tutor.TutorProfileID, examInput([]SubjectWeightInput{
		{SubjectID: subject, Count: 3},
	}))

	var poolErr *InsufficientPoolError
	require.ErrorAs(t, err, &poolErr)
	require.Equal(t, 2, poolErr.Available)
}

func TestCreateExamRejectsRepeatedSubject(t *testing.T) {
	db := newTestDB(t)
	tutor := seedTutor(t, db, tutorModel.TutorProfileStatusApproved, 50)
	subject := seedLiveQuestions(t, db, 10)

	svc := NewSamplerService(db)
	_, err := svc.CreateExam(context.Background(), tutor.TutorProfileID, examInput([]SubjectWeightInput{
		{SubjectID: subject, Count: 3},
		{SubjectID: subject, Count: 2},
	}))
	require.ErrorIs(t, err, ErrDuplicateSubjectWeight)

	var count int64
	require.NoError(t, db.Model(&model.TutorExamModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateExamRequiresApprovedTutor(t *testing.T) {
	db := newTestDB(t)
	subject := seedLiveQuestions(t, db, 5)
	svc := NewSamplerService(db)

	pending := seedTutor(t, db, tutorModel.TutorProfileStatusPending, 50)
	_, err := svc.CreateExam(context.Background(), pending.TutorProfileID, examInput([]SubjectWeightInput{
		{SubjectID: subject, Count: 1},
	}))
	require.ErrorIs(t, err, tutorService.ErrTutorNotApproved)

	_, err = svc.CreateExam(context.Background(), uuid.New(), examInput([]SubjectWeightInput{
		{SubjectID: subject, Count: 1},
	}))
	require.ErrorIs(t, err, tutorService.ErrTutorNotFound)
}

func TestCreateExamMaxCandidatesFallsBackToQuota(t *testing.T) {
	db := newTestDB(t)
	tutor := seedTutor(t, db, tutorModel.TutorProfileStatusApproved, 17)
	subject := seedLiveQuestions(t, db, 3)
	svc := NewSamplerService(db)

	in := examInput([]SubjectWeightInput{{SubjectID: subject, Count: 1}})
	exam, err := svc.CreateExam(context.Background(), tutor.TutorProfileID, in)
	require.NoError(t, err)
	require.Equal(t, 17, exam.TutorExamMaxCandidates)

	requested := 3
	in.MaxCandidates = &requested
	exam, err = svc.CreateExam(context.Background(), tutor.TutorProfileID, in)
	require.NoError(t, err)
	require.Equal(t, 3, exam.TutorExamMaxCandidates)
}
