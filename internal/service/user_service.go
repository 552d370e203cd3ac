package service

import (
	"context"
	"errors"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// ProfileUpdate 指针字段为 nil 表示不修改
type ProfileUpdate struct {
	Skills      []string `json:"skills"`
	Personality *string  `json:"personality"`
	CareerGap   *int     `json:"career_gap"`
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("user")
	}
	if err != nil {
		return nil, util.WrapStorage("find user", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var columns []string
	if in.Skills != nil {
		skills := make([]string, 0, len(in.Skills))
		for _, sk := range in.Skills {
			if sk = strings.TrimSpace(sk); sk != "" {
				skills = append(skills, sk)
			}
		}
		user.Skills = skills
		columns = append(columns, "skills")
	}
	if in.Personality != nil {
		user.Personality = strings.TrimSpace(*in.Personality)
		columns = append(columns, "personality")
	}
	if in.CareerGap != nil {
		if *in.CareerGap < 0 {
			return nil, util.NewValidationError("career_gap", "Career gap must not be negative")
		}
		user.CareerGap = *in.CareerGap
		columns = append(columns, "career_gap")
	}
	if len(columns) == 0 {
		return user, nil
	}

	if err := s.UserRepo.UpdateFields(ctx, user, columns...); err != nil {
		return nil, util.WrapStorage("update profile", err)
	}
	return user, nil
}
