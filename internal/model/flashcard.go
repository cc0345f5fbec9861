package model

import (
	"time"
)

// swagger:model Flashcard
type Flashcard struct {
	BaseModel
	TopicID     uint   `gorm:"index;not null" json:"topicId"`
	Question    string `gorm:"type:text;not null" json:"question"`
	Answer      string `gorm:"type:text;not null" json:"answer"`
	Explanation string `gorm:"type:text" json:"explanation"`
	Difficulty  string `gorm:"size:20;default:'medium'" json:"difficulty"` // easy, medium, hard
	OrderIndex  int    `gorm:"not null" json:"orderIndex"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}

// UserFlashcardProgress is unique per (user, flashcard). ReviewCount is
// "times reviewed", not "times correct": it increments on every update
// even when IsKnown flips back and forth.
// swagger:model UserFlashcardProgress
type UserFlashcardProgress struct {
	BaseModel
	UserID       uint      `gorm:"uniqueIndex:idx_user_flashcard;not null" json:"userId"`
	FlashcardID  uint      `gorm:"uniqueIndex:idx_user_flashcard;not null" json:"flashcardId"`
	IsKnown      bool      `gorm:"default:false" json:"isKnown"`
	ReviewCount  int       `gorm:"default:0" json:"reviewCount"`
	LastReviewed time.Time `json:"lastReviewed"`
}

func (UserFlashcardProgress) TableName() string {
	return "user_flashcard_progress"
}
