package model

import "time"

type BabyReading struct {
	UUIDBase
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Temperature float64   `json:"temperature"`
	Motion      string    `gorm:"size:20" json:"motion"`
	SleepStatus string    `gorm:"size:20" json:"sleep_status"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

func (BabyReading) TableName() string {
	return "baby_monitor_data"
}

type BabyProfile struct {
	BaseModel
	UserID    uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string  `gorm:"size:100" json:"name"`
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	CameraURL string  `gorm:"size:255" json:"camera_url"`
}

func (BabyProfile) TableName() string {
	return "baby_profiles"
}
