package model

import "time"

type PodType string

const (
	PodSkill         PodType = "skill"
	PodCompany       PodType = "company"
	PodHealth        PodType = "health"
	PodBabyMonitor   PodType = "baby_monitor"
	PodMentalHealth  PodType = "mental_health"
	PodPostPlacement PodType = "post_placement"
)

var PodTypes = []PodType{PodSkill, PodCompany, PodHealth, PodBabyMonitor, PodMentalHealth, PodPostPlacement}

func IsPodType(s string) bool {
	for _, p := range PodTypes {
		if string(p) == s {
			return true
		}
	}
	return false
}

type PodEnrollment struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_pod_user_type;not null" json:"user_id"`
	PodType     PodType    `gorm:"uniqueIndex:idx_pod_user_type;size:32;not null" json:"pod_type"`
	Progress    int        `gorm:"default:0" json:"progress"`
	BadgeEarned bool       `gorm:"default:false" json:"badge_earned"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (PodEnrollment) TableName() string {
	return "pods"
}

// PodTaskCompletion marks one catalog task of a pod as done for a user.
type PodTaskCompletion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_task_user_pod_task;not null" json:"-"`
	PodType   PodType   `gorm:"uniqueIndex:idx_task_user_pod_task;size:32;not null" json:"pod_type"`
	TaskID    int       `gorm:"uniqueIndex:idx_task_user_pod_task;not null" json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PodTaskCompletion) TableName() string {
	return "pod_task_completions"
}

type HealthLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Mood      string    `gorm:"size:32" json:"mood"`
	Sleep     int       `json:"sleep"`
	Energy    int       `json:"energy"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (HealthLog) TableName() string {
	return "health_logs"
}

type JournalEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Entry     string    `gorm:"type:text" json:"entry"`
	Emotion   string    `gorm:"size:32" json:"emotion"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
