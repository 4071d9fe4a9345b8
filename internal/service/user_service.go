package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-enroll/internal/dto"
	"school-enroll/internal/repository"
	pkgerrors "school-enroll/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound = pkgerrors.NotFound("user", "User not found")
)

// UserService 用户查询接口
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	// ListCourses 用户已选课程
	ListCourses(ctx context.Context, userID uint) ([]dto.CourseResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── ListCourses ──────────────────────

func (s *userService) ListCourses(ctx context.Context, userID uint) ([]dto.CourseResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	enrollments, err := s.repo.Enrollment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户选课失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(enrollments))
	for i := range enrollments {
		if enrollments[i].Course == nil {
			continue
		}
		result = append(result, toCourseResponse(enrollments[i].Course))
	}
	return result, nil
}
