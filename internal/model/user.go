package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email         string     `gorm:"size:100;unique;not null" json:"email"`
	Password      string     `gorm:"size:100;not null" json:"-"`
	FirstName     string     `gorm:"size:100" json:"firstName"`
	LastName      string     `gorm:"size:100" json:"lastName"`
	Role          UserRole   `gorm:"size:20;default:'student'" json:"role"`
	Grade         string     `gorm:"size:10;default:'8'" json:"grade"`
	Avatar        string     `gorm:"size:255" json:"avatar"`
	TotalXP       int        `gorm:"column:total_xp;default:0" json:"totalXp"`
	CurrentLevel  int        `gorm:"default:1" json:"currentLevel"`
	StudyStreak   int        `gorm:"default:0" json:"studyStreak"`
	LastStudyDate *time.Time `json:"lastStudyDate"`
}

func (User) TableName() string {
	return "users"
}
