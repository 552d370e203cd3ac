package repository

import (
	"context"
	"skillbloom_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BabyRepository struct {
	DB *gorm.DB
}

func NewBabyRepository(db *gorm.DB) *BabyRepository {
	return &BabyRepository{DB: db}
}

func (r *BabyRepository) CreateReadings(ctx context.Context, readings ...*model.BabyReading) error {
	if len(readings) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(readings).Error
}

func (r *BabyRepository) ListReadings(ctx context.Context, userID uint, limit int) ([]model.BabyReading, error) {
	var readings []model.BabyReading
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&readings).Error
	return readings, err
}

func (r *BabyRepository) ReadingsSince(ctx context.Context, userID uint, since time.Time) ([]model.BabyReading, error) {
	var readings []model.BabyReading
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Order("timestamp DESC").
		Find(&readings).Error
	return readings, err
}

func (r *BabyRepository) FindProfile(ctx context.Context, userID uint) (*model.BabyProfile, error) {
	var profile model.BabyProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *BabyRepository) UpsertProfile(ctx context.Context, profile *model.BabyProfile) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "weight", "height", "camera_url", "updated_at"}),
	}).Create(profile).Error
}
