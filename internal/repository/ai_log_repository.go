package repository

import (
	"context"
	"skillbloom_backend/internal/model"

	"gorm.io/gorm"
)

type AILogRepository struct {
	DB *gorm.DB
}

func NewAILogRepository(db *gorm.DB) *AILogRepository {
	return &AILogRepository{DB: db}
}

func (r *AILogRepository) Create(ctx context.Context, entry *model.AILog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

// ListRecent 最近的对话记录，按时间倒序
func (r *AILogRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]model.AILog, error) {
	var logs []model.AILog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
