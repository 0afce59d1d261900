package service

import (
	"context"
	"errors"
	"strings"

	"travelog/internal/apperr"
	"travelog/internal/auth"
	"travelog/internal/entity"
	"travelog/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserService 用户注册与认证相关的业务逻辑
type UserService struct {
	repo model.Repository
}

// NewUserService 创建用户服务实例
func NewUserService(repo model.Repository) *UserService {
	return &UserService{repo: repo}
}

// Signup registers a new account. Username and email uniqueness is checked
// up front for friendly errors; the unique indexes backstop concurrent
// signups, which are re-probed to report the same field-specific error.
func (s *UserService) Signup(ctx context.Context, req entity.SignUpRequest) (*entity.DbUser, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	taken, err := s.repo.ExistsUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrDuplicateUsername
	}

	taken, err = s.repo.ExistsUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.DbUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 两个并发注册挤过了上面的预检查
			logrus.WithField("username", username).Warn("signup lost uniqueness race")
			return nil, s.duplicateSignupError(ctx, username, email)
		}
		return nil, err
	}
	return user, nil
}

// duplicateSignupError resolves which unique constraint a racing signup hit,
// so the caller sees the same error the pre-check would have produced.
func (s *UserService) duplicateSignupError(ctx context.Context, username, email string) error {
	if taken, err := s.repo.ExistsUserByUsername(ctx, username); err == nil && taken {
		return apperr.ErrDuplicateUsername
	}
	if taken, err := s.repo.ExistsUserByEmail(ctx, email); err == nil && taken {
		return apperr.ErrDuplicateEmail
	}
	return apperr.ErrDuplicateResource
}

// Authenticate verifies credentials. The identifier may be a username or an
// email address.
func (s *UserService) Authenticate(ctx context.Context, usernameOrEmail, password string) (*entity.DbUser, error) {
	identifier := strings.TrimSpace(usernameOrEmail)

	user, err := s.repo.GetUserByUsername(ctx, identifier)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user, err = s.repo.GetUserByEmail(ctx, identifier)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.ErrUserNotFound
			}
			return nil, err
		}
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, apperr.ErrInvalidPassword
	}
	return user, nil
}

// GetByUsername loads the account behind an authenticated request.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UsernameExists reports whether the username is already taken.
func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsUserByUsername(ctx, strings.TrimSpace(username))
}

// EmailExists reports whether the email is already taken.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsUserByEmail(ctx, strings.TrimSpace(email))
}
