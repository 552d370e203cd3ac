package service

import (
	"context"
	"errors"
	"net/mail"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthResult struct {
	User  *model.User
	Token string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, util.NewValidationError("", "Missing required fields")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, util.NewValidationError("email", "Invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, util.NewValidationError("password", "Password must be at least 6 characters")
	}
	role := model.RoleUser
	if in.Role != "" {
		role = model.UserRole(in.Role)
		if !role.Valid() {
			return nil, util.NewValidationError("role", "Invalid role")
		}
	}

	_, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.WrapStorage("find user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Skills:   []string{},
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, util.WrapStorage("create user", err)
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, util.NewValidationError("", "Missing email or password")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, util.WrapStorage("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
