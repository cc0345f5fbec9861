package model

import (
	"time"
)

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	TopicID      uint   `gorm:"index;not null" json:"topicId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	TimeLimit    *int   `json:"timeLimit"` // minutes
	PassingScore int    `gorm:"default:70" json:"passingScore"`
	MaxAttempts  int    `gorm:"default:3" json:"maxAttempts"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID        uint     `gorm:"index;not null" json:"quizId"`
	Question      string   `gorm:"type:text;not null" json:"question"`
	QuestionType  string   `gorm:"size:30;not null" json:"questionType"`
	Options       []string `gorm:"type:json;serializer:json" json:"options"` // multiple_choice only
	CorrectAnswer string   `gorm:"type:text;not null" json:"correctAnswer"`
	Explanation   string   `gorm:"type:text" json:"explanation"`
	Points        int      `gorm:"default:1" json:"points"`
	OrderIndex    int      `gorm:"not null" json:"orderIndex"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// AnswerMap holds a submission's answers keyed by question ID (decimal string).
type AnswerMap map[string]string

// UserQuizAttempt is always inserted, never upserted: every submission
// is its own attempt record, bounded by Quiz.MaxAttempts.
// swagger:model UserQuizAttempt
type UserQuizAttempt struct {
	BaseModel
	UserID      uint       `gorm:"index;not null" json:"userId"`
	QuizID      uint       `gorm:"index;not null" json:"quizId"`
	Score       int        `json:"score"` // percentage
	Answers     AnswerMap  `gorm:"type:json;serializer:json" json:"answers"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	TimeSpent   int        `json:"timeSpent"` // seconds
}

func (UserQuizAttempt) TableName() string {
	return "user_quiz_attempts"
}
