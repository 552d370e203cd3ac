package repository

import (
	"context"
	"skillbloom_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, result *model.AssessmentResult) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

// ListByUser 按提交时间倒序
func (r *AssessmentRepository) ListByUser(ctx context.Context, userID uint) ([]model.AssessmentResult, error) {
	var results []model.AssessmentResult
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&results).Error
	return results, err
}
