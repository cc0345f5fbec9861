package service

import (
	"strings"

	"github.com/samora254/KitabuNew/internal/model"
)

// Grader decides whether a submitted answer earns the question's marks.
// One implementation per question type keeps the grading rules explicit
// instead of buried in call-site comparisons.
type Grader interface {
	Grade(question model.QuizQuestion, answer string) bool
}

// ExactMatchGrader grades multiple_choice and true_false questions:
// the submitted option must equal the stored answer exactly, since the
// client submits one of the stored option strings verbatim.
type ExactMatchGrader struct{}

func (ExactMatchGrader) Grade(question model.QuizQuestion, answer string) bool {
	return answer == question.CorrectAnswer
}

// ShortAnswerGrader grades free-text answers leniently: case and
// surrounding/internal whitespace runs do not count against the student.
type ShortAnswerGrader struct{}

func (ShortAnswerGrader) Grade(question model.QuizQuestion, answer string) bool {
	return normalizeAnswer(answer) == normalizeAnswer(question.CorrectAnswer)
}

func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// GraderFor picks the grading strategy for a question type. Unknown
// types fall back to exact matching.
func GraderFor(questionType string) Grader {
	switch questionType {
	case model.QuestionShortAnswer:
		return ShortAnswerGrader{}
	default:
		return ExactMatchGrader{}
	}
}
