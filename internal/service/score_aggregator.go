package service

import (
	"math"

	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/model"
)

// ScoreAggregator combines graded answers into the final result. It is a pure
// function of (assessment, answers): identical inputs reproduce the identical
// result, which is what makes the stored result re-verifiable.
type ScoreAggregator interface {
	Aggregate(assessment *model.Assessment, answers []model.SessionAnswer) (*model.SessionResult, error)
}

type scoreAggregator struct{}

func NewScoreAggregator() ScoreAggregator {
	return &scoreAggregator{}
}

func (s *scoreAggregator) Aggregate(assessment *model.Assessment, answers []model.SessionAnswer) (*model.SessionResult, error) {
	if len(assessment.Questions) == 0 {
		return nil, apperror.Internalf("assessment %d has no questions to score", assessment.ID)
	}

	answerByQuestion := make(map[uint]*model.SessionAnswer, len(answers))
	for i := range answers {
		ans := &answers[i]
		// An answer referencing a question outside the assessment means the
		// stored session is corrupt; surface it instead of scoring partially.
		if assessment.QuestionByID(ans.QuestionID) == nil {
			return nil, apperror.Internalf("answer references question %d which is not part of assessment %d", ans.QuestionID, assessment.ID)
		}
		answerByQuestion[ans.QuestionID] = ans
	}

	var pointsEarned, pointsPossible float64
	skillEarned := make(map[string]float64)
	skillPossible := make(map[string]float64)

	// Unanswered questions contribute 0 earned and full points possible.
	for i := range assessment.Questions {
		q := &assessment.Questions[i]
		pointsPossible += q.Points

		var earned float64
		if ans, ok := answerByQuestion[q.ID]; ok {
			earned = ans.PointsEarned
		}
		pointsEarned += earned

		for _, tag := range q.SkillTags {
			skillPossible[tag] += q.Points
			skillEarned[tag] += earned
		}
	}

	if pointsPossible <= 0 {
		return nil, apperror.Internalf("assessment %d has zero total points", assessment.ID)
	}

	percent := math.Round(pointsEarned / pointsPossible * 100)

	breakdown := make(map[string]model.SkillScore, len(skillPossible))
	for tag, possible := range skillPossible {
		score := model.SkillScore{
			PointsEarned:   skillEarned[tag],
			PointsPossible: possible,
		}
		if possible > 0 {
			score.Percent = math.Round(skillEarned[tag] / possible * 100)
		}
		breakdown[tag] = score
	}

	return &model.SessionResult{
		FinalScorePercent: percent,
		PointsEarned:      pointsEarned,
		PointsPossible:    pointsPossible,
		Passed:            percent >= assessment.PassingScore,
		Grade:             gradeFor(percent),
		SkillBreakdown:    breakdown,
	}, nil
}

// gradeFor applies the fixed A/B/C/D/F bands to the rounded percent.
func gradeFor(percent float64) string {
	switch {
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 70:
		return "C"
	case percent >= 60:
		return "D"
	default:
		return "F"
	}
}
