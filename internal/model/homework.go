package model

import (
	"time"
)

// swagger:model HomeworkAssignment
type HomeworkAssignment struct {
	BaseModel
	TopicID             uint       `gorm:"index;not null" json:"topicId"`
	Title               string     `gorm:"size:255;not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	DueDate             *time.Time `json:"dueDate"`
	MaxScore            int        `gorm:"default:100" json:"maxScore"`
	TeacherInstructions string     `gorm:"type:text" json:"teacherInstructions"`
	CreatedBy           uint       `gorm:"index" json:"createdBy"`
	IsActive            bool       `gorm:"default:true" json:"isActive"`
	AttachmentURL       string     `gorm:"size:255" json:"attachmentUrl"`
}

func (HomeworkAssignment) TableName() string {
	return "homework_assignments"
}

// swagger:model HomeworkQuestion
type HomeworkQuestion struct {
	BaseModel
	HomeworkID    uint     `gorm:"index;not null" json:"homeworkId"`
	Question      string   `gorm:"type:text;not null" json:"question"`
	QuestionType  string   `gorm:"size:30;not null" json:"questionType"`
	Options       []string `gorm:"type:json;serializer:json" json:"options"`
	CorrectAnswer string   `gorm:"type:text" json:"correctAnswer"`
	Rubric        string   `gorm:"type:text" json:"rubric"` // scoring guidelines
	Points        int      `gorm:"default:10" json:"points"`
	OrderIndex    int      `gorm:"not null" json:"orderIndex"`
}

func (HomeworkQuestion) TableName() string {
	return "homework_questions"
}

// UserHomeworkSubmission is unique per (user, homework); resubmission
// replaces the previous answers instead of inserting a second row.
// Score/Feedback stay null until a teacher grades it.
// swagger:model UserHomeworkSubmission
type UserHomeworkSubmission struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_homework;not null" json:"userId"`
	HomeworkID  uint       `gorm:"uniqueIndex:idx_user_homework;not null" json:"homeworkId"`
	Answers     AnswerMap  `gorm:"type:json;serializer:json" json:"answers"`
	Score       *int       `json:"score"`
	Feedback    string     `gorm:"type:text" json:"feedback"`
	SubmittedAt time.Time  `json:"submittedAt"`
	GradedAt    *time.Time `json:"gradedAt"`
	IsLate      bool       `gorm:"default:false" json:"isLate"`
}

func (UserHomeworkSubmission) TableName() string {
	return "user_homework_submissions"
}
