package model

import (
	"sort"
	"time"
)

type TopicResult struct {
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

// SkillEnrollment is unique per (user, path). Version guards read-merge-write updates.
type SkillEnrollment struct {
	BaseModel
	UserID            uint                   `gorm:"uniqueIndex:idx_enrollment_user_path;not null" json:"user_id"`
	PathID            string                 `gorm:"uniqueIndex:idx_enrollment_user_path;size:32;not null" json:"path_id"`
	Progress          float64                `gorm:"default:0" json:"progress"`
	CompletedTopics   []string               `gorm:"type:text;serializer:json" json:"completed_topics"`
	AssessmentResults map[string]TopicResult `gorm:"type:text;serializer:json" json:"assessment_results"`
	Version           int                    `gorm:"not null;default:1" json:"-"`
}

func (SkillEnrollment) TableName() string {
	return "skill_enrollments"
}

// ApplyTopicResult merges one topic result and recomputes progress from scratch.
func (e *SkillEnrollment) ApplyTopicResult(topic string, res TopicResult, totalTopics int) {
	if e.AssessmentResults == nil {
		e.AssessmentResults = make(map[string]TopicResult)
	}
	e.AssessmentResults[topic] = res

	completed := make([]string, 0, len(e.AssessmentResults))
	for t := range e.AssessmentResults {
		completed = append(completed, t)
	}
	sort.Strings(completed)
	e.CompletedTopics = completed

	e.Progress = 0
	if totalTopics > 0 {
		e.Progress = float64(len(e.AssessmentResults)) * 100 / float64(totalTopics)
	}
}
