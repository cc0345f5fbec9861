package service

import (
	"testing"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGraderFor(t *testing.T) {
	assert.IsType(t, ShortAnswerGrader{}, GraderFor(model.QuestionShortAnswer))
	assert.IsType(t, ExactMatchGrader{}, GraderFor(model.QuestionMultipleChoice))
	assert.IsType(t, ExactMatchGrader{}, GraderFor(model.QuestionTrueFalse))
	assert.IsType(t, ExactMatchGrader{}, GraderFor("something_new"))
}

func TestExactMatchGrader(t *testing.T) {
	q := model.QuizQuestion{CorrectAnswer: "Nairobi"}
	g := ExactMatchGrader{}

	assert.True(t, g.Grade(q, "Nairobi"))
	assert.False(t, g.Grade(q, "nairobi"), "choices are submitted verbatim, so case matters")
	assert.False(t, g.Grade(q, "Mombasa"))
}

func TestShortAnswerGrader(t *testing.T) {
	q := model.QuizQuestion{CorrectAnswer: "The Great Rift Valley"}
	g := ShortAnswerGrader{}

	cases := []struct {
		answer string
		want   bool
	}{
		{"The Great Rift Valley", true},
		{"the great rift valley", true},
		{"  The   Great Rift\tValley ", true},
		{"Rift Valley", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.Grade(q, tc.answer), "answer=%q", tc.answer)
	}
}
