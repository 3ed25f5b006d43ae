package service

import (
	"testing"

	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourQuestionAssessment() *model.Assessment {
	return &model.Assessment{
		ID:           1,
		PassingScore: 70,
		Questions: []model.Question{
			{ID: 1, Type: model.QuestionTypeMultipleChoice, Points: 10, SkillTags: []string{"algebra"}},
			{ID: 2, Type: model.QuestionTypeMultipleChoice, Points: 10, SkillTags: []string{"algebra"}},
			{ID: 3, Type: model.QuestionTypeMultipleChoice, Points: 10, SkillTags: []string{"geometry"}},
			{ID: 4, Type: model.QuestionTypeMultipleChoice, Points: 10, SkillTags: []string{"geometry"}},
		},
	}
}

func correctAnswer(questionID uint, points float64) model.SessionAnswer {
	return model.SessionAnswer{QuestionID: questionID, IsCorrect: true, PointsEarned: points, MaxPoints: points}
}

func wrongAnswer(questionID uint, points float64) model.SessionAnswer {
	return model.SessionAnswer{QuestionID: questionID, IsCorrect: false, PointsEarned: 0, MaxPoints: points}
}

func TestAggregateThreeOfFourCorrect(t *testing.T) {
	aggregator := NewScoreAggregator()
	assessment := fourQuestionAssessment()
	answers := []model.SessionAnswer{
		correctAnswer(1, 10),
		correctAnswer(2, 10),
		correctAnswer(3, 10),
		wrongAnswer(4, 10),
	}

	result, err := aggregator.Aggregate(assessment, answers)
	require.NoError(t, err)

	assert.Equal(t, 30.0, result.PointsEarned)
	assert.Equal(t, 40.0, result.PointsPossible)
	assert.Equal(t, 75.0, result.FinalScorePercent)
	assert.Equal(t, "C", result.Grade)
	assert.True(t, result.Passed)

	require.Contains(t, result.SkillBreakdown, "algebra")
	require.Contains(t, result.SkillBreakdown, "geometry")
	assert.Equal(t, 100.0, result.SkillBreakdown["algebra"].Percent)
	assert.Equal(t, 50.0, result.SkillBreakdown["geometry"].Percent)
}

func TestAggregatePerfectScore(t *testing.T) {
	aggregator := NewScoreAggregator()
	assessment := fourQuestionAssessment()
	answers := []model.SessionAnswer{
		correctAnswer(1, 10),
		correctAnswer(2, 10),
		correctAnswer(3, 10),
		correctAnswer(4, 10),
	}

	result, err := aggregator.Aggregate(assessment, answers)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.FinalScorePercent)
	assert.Equal(t, "A", result.Grade)
	assert.True(t, result.Passed)
}

func TestAggregateIsDeterministic(t *testing.T) {
	aggregator := NewScoreAggregator()
	assessment := fourQuestionAssessment()
	answers := []model.SessionAnswer{correctAnswer(1, 10), wrongAnswer(2, 10)}

	first, err := aggregator.Aggregate(assessment, answers)
	require.NoError(t, err)
	second, err := aggregator.Aggregate(assessment, answers)
	require.NoError(t, err)

	assert.Equal(t, first.FinalScorePercent, second.FinalScorePercent)
	assert.Equal(t, first.Grade, second.Grade)
	assert.Equal(t, first.SkillBreakdown, second.SkillBreakdown)
}

func TestAggregateUnansweredCountAsZero(t *testing.T) {
	aggregator := NewScoreAggregator()
	assessment := fourQuestionAssessment()

	// Only one of four questions answered.
	result, err := aggregator.Aggregate(assessment, []model.SessionAnswer{correctAnswer(1, 10)})
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.PointsEarned)
	assert.Equal(t, 40.0, result.PointsPossible)
	assert.Equal(t, 25.0, result.FinalScorePercent)
	assert.Equal(t, "F", result.Grade)
	assert.False(t, result.Passed)
}

func TestAggregateNoAnswersAtAll(t *testing.T) {
	aggregator := NewScoreAggregator()
	assessment := fourQuestionAssessment()

	result, err := aggregator.Aggregate(assessment, nil)
	require.NoError(t, err)
	assert.Zero(t, result.FinalScorePercent)
	assert.False(t, result.Passed)
}

func TestAggregatePassingBoundaryIsInclusive(t *testing.T) {
	aggregator := NewScoreAggregator()
	assessment := fourQuestionAssessment() // passing score 70
	answers := []model.SessionAnswer{
		correctAnswer(1, 10),
		correctAnswer(2, 10),
		{QuestionID: 3, IsCorrect: false, PointsEarned: 8, MaxPoints: 10},
		wrongAnswer(4, 10),
	}

	// 28/40 = 70% exactly.
	result, err := aggregator.Aggregate(assessment, answers)
	require.NoError(t, err)
	assert.Equal(t, 70.0, result.FinalScorePercent)
	assert.True(t, result.Passed)
	assert.Equal(t, "C", result.Grade)
}

func TestAggregateGradeBands(t *testing.T) {
	tests := []struct {
		percent float64
		grade   string
	}{
		{95, "A"}, {90, "A"}, {89, "B"}, {80, "B"},
		{79, "C"}, {70, "C"}, {69, "D"}, {60, "D"}, {59, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.grade, gradeFor(tt.percent), "percent %v", tt.percent)
	}
}

func TestAggregateRejectsForeignAnswer(t *testing.T) {
	aggregator := NewScoreAggregator()
	assessment := fourQuestionAssessment()
	answers := []model.SessionAnswer{correctAnswer(99, 10)}

	_, err := aggregator.Aggregate(assessment, answers)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}

func TestAggregateRejectsEmptyAssessment(t *testing.T) {
	aggregator := NewScoreAggregator()

	_, err := aggregator.Aggregate(&model.Assessment{ID: 2}, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}
