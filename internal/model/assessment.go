package model

import (
	"encoding/json"
	"time"
)

type TestType string

const (
	TestPersonality TestType = "personality"
	TestSkill       TestType = "skill"
)

// AssessmentResult is append-only: one row per submission, never updated.
type AssessmentResult struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	TestType        TestType        `gorm:"size:20;not null" json:"test_type"`
	Answers         json.RawMessage `gorm:"type:json" json:"answers"`
	Score           float64         `json:"score"`
	PersonalityType string          `gorm:"size:32" json:"personality_type,omitempty"`
	SkillCategory   string          `gorm:"size:32" json:"skill_category,omitempty"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
}

func (AssessmentResult) TableName() string {
	return "assessments"
}
