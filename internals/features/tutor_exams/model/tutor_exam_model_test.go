package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorExamStatusTransitions(t *testing.T) {
	assert.True(t, TutorExamStatusActive.CanTransitionTo(TutorExamStatusClosed))
	assert.False(t, TutorExamStatusClosed.CanTransitionTo(TutorExamStatusActive))
	assert.False(t, TutorExamStatusClosed.CanTransitionTo(TutorExamStatusClosed))
	assert.False(t, TutorExamStatusActive.CanTransitionTo(TutorExamStatusActive))
}

func TestCloseIsTerminal(t *testing.T) {
	exam := TutorExamModel{TutorExamStatus: TutorExamStatusActive}
	require.NoError(t, exam.Close())
	require.Equal(t, TutorExamStatusClosed, exam.TutorExamStatus)
	require.ErrorIs(t, exam.Close(), ErrExamAlreadyClosed)
}

func TestMarshalArtifacts(t *testing.T) {
	published := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	buf, err := MarshalArtifacts(PublishedArtifacts{
		MasterSheet:     "/artifacts/master.csv",
		IndividualSlips: "/artifacts/slips.json",
		PublishedAt:     published,
	})
	require.NoError(t, err)

	var got PublishedArtifacts
	require.NoError(t, json.Unmarshal(buf, &got))
	assert.Equal(t, "/artifacts/master.csv", got.MasterSheet)
	assert.Equal(t, "/artifacts/slips.json", got.IndividualSlips)
	assert.True(t, got.PublishedAt.Equal(published))
}
