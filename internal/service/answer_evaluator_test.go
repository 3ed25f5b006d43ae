package service

import (
	"testing"

	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func multipleChoiceQuestion(correctOption string) *model.Question {
	return &model.Question{
		ID:     1,
		Type:   model.QuestionTypeMultipleChoice,
		Points: 10,
		Options: []model.Option{
			{ID: "a", Text: "First"},
			{ID: "b", Text: "Second"},
			{ID: "c", Text: "Third"},
		},
		CorrectOptionID: strPtr(correctOption),
	}
}

func TestEvaluateMultipleChoice(t *testing.T) {
	evaluator := NewAnswerEvaluator()
	question := multipleChoiceQuestion("b")

	tests := []struct {
		name    string
		answer  string
		correct bool
		points  float64
	}{
		{"correct option", "b", true, 10},
		{"wrong option", "a", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := evaluator.Evaluate(question, tt.answer, false)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, eval.IsCorrect)
			assert.Equal(t, tt.points, eval.PointsEarned)
		})
	}
}

func TestEvaluateMultipleChoiceRejectsNonOption(t *testing.T) {
	evaluator := NewAnswerEvaluator()
	question := multipleChoiceQuestion("b")

	_, err := evaluator.Evaluate(question, "z", false)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestEvaluateMultipleChoiceMissingKeyIsInternal(t *testing.T) {
	evaluator := NewAnswerEvaluator()
	question := multipleChoiceQuestion("b")
	question.CorrectOptionID = nil

	_, err := evaluator.Evaluate(question, "a", false)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}

func TestEvaluateTrueFalse(t *testing.T) {
	evaluator := NewAnswerEvaluator()
	question := &model.Question{
		ID:             2,
		Type:           model.QuestionTypeTrueFalse,
		Points:         5,
		CorrectBoolean: boolPtr(true),
	}

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"lowercase true", "true", true},
		{"uppercase with spaces", " TRUE ", true},
		{"numeric form", "1", true},
		{"false answer", "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := evaluator.Evaluate(question, tt.answer, false)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, eval.IsCorrect)
		})
	}

	_, err := evaluator.Evaluate(question, "maybe", false)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestEvaluateShortAnswer(t *testing.T) {
	evaluator := NewAnswerEvaluator()
	question := &model.Question{
		ID:          3,
		Type:        model.QuestionTypeShortAnswer,
		Points:      8,
		CorrectText: strPtr("Photosynthesis"),
	}

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"exact", "Photosynthesis", true},
		{"case-insensitive", "photosynthesis", true},
		{"surrounding whitespace", "  photosynthesis  ", true},
		{"different word", "respiration", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := evaluator.Evaluate(question, tt.answer, false)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, eval.IsCorrect)
			if tt.correct {
				assert.Equal(t, 8.0, eval.PointsEarned)
			} else {
				assert.Zero(t, eval.PointsEarned)
			}
		})
	}
}

func TestEvaluateUnknownTypeRejected(t *testing.T) {
	evaluator := NewAnswerEvaluator()
	question := &model.Question{ID: 4, Type: "essay", Points: 10}

	_, err := evaluator.Evaluate(question, "anything", false)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
