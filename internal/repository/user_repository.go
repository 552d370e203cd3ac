package repository

import (
	"context"
	"skillbloom_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// UpdateFields 只更新指定列，skills 走 json serializer 所以用结构体而不是 map
func (r *UserRepository) UpdateFields(ctx context.Context, user *model.User, columns ...string) error {
	return r.DB.WithContext(ctx).Model(user).Select(columns).Updates(user).Error
}

func (r *UserRepository) UpdatePersonality(ctx context.Context, userID uint, personality string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("personality", personality).
		Error
}
