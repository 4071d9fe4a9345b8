package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-enroll/internal/dto"
	"school-enroll/internal/repository"
	pkgerrors "school-enroll/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound     = pkgerrors.NotFound("course", "Course not found")
	ErrCapacityRequired   = pkgerrors.InvalidInput("capacity", "Capacity value is required")
	ErrInvalidCapacity    = pkgerrors.InvalidInput("capacity", "Capacity cannot be negative")
	ErrCapacityOutOfRange = pkgerrors.InvalidInput("capacity", "Capacity must be a whole number within range")
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	// UpdateCapacity 修改容量；不与当前人数比较，缩容不会移除已选学生
	UpdateCapacity(ctx context.Context, courseID uint, req *dto.UpdateCapacityRequest) (*dto.CourseResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── UpdateCapacity ──────────────────────

func (s *courseService) UpdateCapacity(ctx context.Context, courseID uint, req *dto.UpdateCapacityRequest) (*dto.CourseResponse, error) {
	var resp dto.CourseResponse

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		course, err := tx.Course.GetByIDForUpdate(ctx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		capacity, err := parseCapacity(req.Capacity)
		if err != nil {
			return err
		}

		if err := tx.Course.UpdateCapacity(ctx, courseID, capacity); err != nil {
			return err
		}

		course.Capacity = capacity
		resp = toCourseResponse(course)
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("修改课程容量失败", zap.Uint("course_id", courseID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("课程容量已修改",
		zap.Uint("course_id", courseID),
		zap.Int("capacity", resp.Capacity),
		zap.Int("nofstudents", resp.NofStudents),
	)
	return &resp, nil
}

// parseCapacity 容量必须是 [0, MaxInt32] 内的整数（courses.capacity 为 INTEGER 列）
func parseCapacity(v *float64) (int, error) {
	if v == nil {
		return 0, ErrCapacityRequired
	}
	f := *v
	if f < 0 {
		return 0, ErrInvalidCapacity
	}
	if f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, ErrCapacityOutOfRange
	}
	return int(f), nil
}

// isBusinessError 是否为可预期的业务错误（不需要按系统错误记录日志）
func isBusinessError(err error) bool {
	var e *pkgerrors.Error
	return errors.As(err, &e)
}
