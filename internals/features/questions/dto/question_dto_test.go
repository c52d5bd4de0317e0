package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectCount(t *testing.T) {
	req := CreateQuestionRequest{
		Options: []CreateQuestionOptionRequest{
			{Text: "A", IsCorrect: true},
			{Text: "B"},
			{Text: "C"},
		},
	}
	assert.Equal(t, 1, req.CorrectCount())

	req.Options[1].IsCorrect = true
	assert.Equal(t, 2, req.CorrectCount())

	req.Options[0].IsCorrect = false
	req.Options[1].IsCorrect = false
	assert.Equal(t, 0, req.CorrectCount())
}
