package model

// Subject is a top-level CBC learning area (Mathematics, English, ...).
// Reference data: seeded once, never mutated by user activity.
// swagger:model Subject
type Subject struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Code         string `gorm:"size:20;unique;not null" json:"code"`
	Description  string `gorm:"type:text" json:"description"`
	IconColor    string `gorm:"size:20;default:'#4A90E2'" json:"iconColor"`
	TotalStrands int    `gorm:"default:20" json:"totalStrands"`
}

func (Subject) TableName() string {
	return "subjects"
}

// Strand is an ordered thematic unit within a subject.
// swagger:model Strand
type Strand struct {
	BaseModel
	SubjectID   uint   `gorm:"index;not null" json:"subjectId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OrderIndex  int    `gorm:"not null" json:"orderIndex"`
	TotalTopics int    `gorm:"default:5" json:"totalTopics"`
}

func (Strand) TableName() string {
	return "strands"
}

// Topic is the leaf content unit; completing one awards XP.
// swagger:model Topic
type Topic struct {
	BaseModel
	StrandID    uint   `gorm:"index;not null" json:"strandId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OrderIndex  int    `gorm:"not null" json:"orderIndex"`
	XPReward    int    `gorm:"column:xp_reward;default:25" json:"xpReward"`
}

func (Topic) TableName() string {
	return "topics"
}
