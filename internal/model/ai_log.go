package model

import "time"

type AILog struct {
	UUIDBase
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Query     string    `gorm:"type:text;not null" json:"query"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	Fallback  bool      `gorm:"default:false" json:"fallback"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (AILog) TableName() string {
	return "ai_logs"
}
