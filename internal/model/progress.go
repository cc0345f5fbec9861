package model

import (
	"time"
)

// UserProgress records one user's state for one topic. Unique per
// (user, topic); writes go through an upsert so re-submission never
// creates duplicates. SubjectID/StrandID are denormalized copies of the
// content hierarchy for cheap per-subject queries.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID       uint       `gorm:"uniqueIndex:idx_user_topic;not null" json:"userId"`
	SubjectID    uint       `gorm:"index" json:"subjectId"`
	StrandID     uint       `gorm:"index" json:"strandId"`
	TopicID      uint       `gorm:"uniqueIndex:idx_user_topic;not null" json:"topicId"`
	IsCompleted  bool       `gorm:"default:false" json:"isCompleted"`
	Score        *int       `json:"score"`
	CompletedAt  *time.Time `json:"completedAt"`
	LastAccessed time.Time  `json:"lastAccessed"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

const XPReasonTopicCompleted = "topic_completed"

// XPEvent is an append-only ledger entry. A user's total XP is the sum
// of their events; the unique (user, topic, reason) key means a topic
// can award its XP at most once no matter how often it is re-completed.
// swagger:model XPEvent
type XPEvent struct {
	BaseModel
	UserID  uint   `gorm:"uniqueIndex:idx_xp_user_topic_reason;index;not null" json:"userId"`
	TopicID uint   `gorm:"uniqueIndex:idx_xp_user_topic_reason;not null" json:"topicId"`
	Amount  int    `gorm:"not null" json:"amount"`
	Reason  string `gorm:"uniqueIndex:idx_xp_user_topic_reason;size:50;not null" json:"reason"`
}

func (XPEvent) TableName() string {
	return "xp_events"
}
