package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	sessionService "prepmaster_backend/internals/features/candidate_sessions/service"
	"prepmaster_backend/internals/features/tutor_exams/model"
	tutorModel "prepmaster_backend/internals/features/tutors/model"
)

// Walks the whole lifecycle: an approved tutor samples a 2+1 exam capped
// at two candidates, one candidate sits it and scores 1/3, a third
// admission bounces on capacity, results publish, and the closed exam
// admits nobody.
func TestExamLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tutor := seedTutor(t, db, tutorModel.TutorProfileStatusApproved, 50)
	math := seedLiveQuestions(t, db, 5)
	english := seedLiveQuestions(t, db, 3)

	maxCandidates := 2
	in := examInput([]SubjectWeightInput{
		{SubjectID: math, Count: 2},
		{SubjectID: english, Count: 1},
	})
	in.MaxCandidates = &maxCandidates

	exam, err := NewSamplerService(db).CreateExam(ctx, tutor.TutorProfileID, in)
	require.NoError(t, err)
	require.Equal(t, 3, exam.TutorExamTotalQuestions)

	admission := sessionService.NewAdmissionService(db)
	ada := sessionService.StartExamInput{
		CandidateName:   "Ada Obi",
		CandidateClass:  "SS2",
		CandidateSchool: "Hope High",
	}
	session, questions, err := admission.StartExam(ctx, exam.TutorExamID, ada)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	// Ada answers the first question right, the second wrong, and skips
	// the third
	var locked []model.LockedQuestionModel
	require.NoError(t, db.Where("locked_question_exam_id = ?", exam.TutorExamID).Find(&locked).Error)
	require.Len(t, locked, 3)

	wrongOption := func(l model.LockedQuestionModel) uuid.UUID {
		var opts []struct {
			QuestionOptionID uuid.UUID
		}
		require.NoError(t, db.Table("question_options").
			Where("question_option_question_id = ? AND question_option_id <> ?",
				l.LockedQuestionQuestionID, l.LockedQuestionCorrectOptionID).
			Limit(1).Scan(&opts).Error)
		require.NotEmpty(t, opts)
		return opts[0].QuestionOptionID
	}
	responses := map[uuid.UUID]uuid.UUID{
		locked[0].LockedQuestionQuestionID: locked[0].LockedQuestionCorrectOptionID,
		locked[1].LockedQuestionQuestionID: wrongOption(locked[1]),
	}

	graded, err := sessionService.NewGradingService(db).SubmitSession(ctx, session.CandidateSessionID, responses)
	require.NoError(t, err)
	require.Equal(t, 1, *graded.CandidateSessionScore)

	// capacity: a second candidate fits, a third does not
	bisi := sessionService.StartExamInput{CandidateName: "Bisi Ade", CandidateClass: "SS2", CandidateSchool: "Hope High"}
	_, _, err = admission.StartExam(ctx, exam.TutorExamID, bisi)
	require.NoError(t, err)

	chidi := sessionService.StartExamInput{CandidateName: "Chidi Eze", CandidateClass: "SS2", CandidateSchool: "Hope High"}
	_, _, err = admission.StartExam(ctx, exam.TutorExamID, chidi)
	require.ErrorIs(t, err, sessionService.ErrCapacityReached)

	out, err := NewPublicationService(db, NewFileResultRenderer(t.TempDir())).
		PublishResults(ctx, tutor.TutorProfileID, exam.TutorExamID)
	require.NoError(t, err)
	require.NotEmpty(t, out.MasterArtifactRef)
	require.NotEmpty(t, out.IndividualArtifactRef)

	// closed exams admit nobody, capacity notwithstanding — Chidi's
	// retry now fails on availability
	_, _, err = admission.StartExam(ctx, exam.TutorExamID, chidi)
	require.ErrorIs(t, err, sessionService.ErrExamNotAvailable)

	_, err = admission.ExamSummary(ctx, exam.TutorExamID)
	require.ErrorIs(t, err, sessionService.ErrExamNotAvailable)
}
