package service

import (
	"strconv"
	"strings"

	"github.com/lshigami/Quolls/internal/apperror"
	"github.com/lshigami/Quolls/internal/model"
)

// Evaluation is the graded outcome of one answer. CreditFraction is reserved
// for question types with partial-credit semantics; the current three types
// only ever yield 0 or 1.
type Evaluation struct {
	IsCorrect      bool
	CreditFraction float64
	PointsEarned   float64
}

// AnswerEvaluator grades one answer against a question definition. Pure and
// deterministic: no I/O, no clock.
type AnswerEvaluator interface {
	Evaluate(question *model.Question, userAnswer string, partialCreditAllowed bool) (Evaluation, error)
}

type answerEvaluator struct{}

func NewAnswerEvaluator() AnswerEvaluator {
	return &answerEvaluator{}
}

func (e *answerEvaluator) Evaluate(question *model.Question, userAnswer string, partialCreditAllowed bool) (Evaluation, error) {
	var correct bool

	switch question.Type {
	case model.QuestionTypeMultipleChoice:
		if question.CorrectOptionID == nil {
			return Evaluation{}, apperror.Internalf("question %d has no correct option configured", question.ID)
		}
		if !question.HasOption(userAnswer) {
			return Evaluation{}, apperror.Validationf("answer %q is not an option of question %d", userAnswer, question.ID)
		}
		correct = userAnswer == *question.CorrectOptionID

	case model.QuestionTypeTrueFalse:
		if question.CorrectBoolean == nil {
			return Evaluation{}, apperror.Internalf("question %d has no correct boolean configured", question.ID)
		}
		value, err := strconv.ParseBool(strings.TrimSpace(userAnswer))
		if err != nil {
			return Evaluation{}, apperror.Validationf("answer %q is not a boolean for question %d", userAnswer, question.ID)
		}
		correct = value == *question.CorrectBoolean

	case model.QuestionTypeShortAnswer:
		if question.CorrectText == nil {
			return Evaluation{}, apperror.Internalf("question %d has no correct text configured", question.ID)
		}
		// Strict match is the documented contract here: case-insensitive,
		// whitespace-trimmed equality. AI-assisted free-text grading is a
		// separate collaborator and stays out of this path.
		correct = strings.EqualFold(
			strings.TrimSpace(userAnswer),
			strings.TrimSpace(*question.CorrectText),
		)

	default:
		return Evaluation{}, apperror.Validationf("unknown question type %q", question.Type)
	}

	// partialCreditAllowed is a no-op for these types; the fraction stays
	// binary until a type with partial-credit semantics exists.
	_ = partialCreditAllowed

	fraction := 0.0
	if correct {
		fraction = 1.0
	}
	return Evaluation{
		IsCorrect:      correct,
		CreditFraction: fraction,
		PointsEarned:   fraction * question.Points,
	}, nil
}
