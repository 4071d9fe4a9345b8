package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-enroll/internal/dto"
	"school-enroll/internal/model"
	"school-enroll/internal/repository"
	pkgerrors "school-enroll/pkg/errors"
)

// ── 选课模块业务错误 ──

var (
	ErrEnrollmentNotFound = pkgerrors.NotFound("enrollment", "Enrollment not found")
	ErrCourseFull         = pkgerrors.Conflict("course_full", "Course is full")
	ErrTimeConflict       = pkgerrors.Conflict("time_conflict", "Time conflict with another enrolled course")
	ErrAlreadyEnrolled    = pkgerrors.Conflict("already_enrolled", "User is already enrolled in this course")
	ErrGradeRequired      = pkgerrors.InvalidInput("grade", "Grade value is required")
	ErrInvalidGrade       = pkgerrors.InvalidInput("grade", "Invalid grade value")
)

// EnrollmentService 选课业务接口
//
// 约束：
//   - 选课记录只由 Enroll 创建、只由 Withdraw 删除
//   - 两者都在同一事务内同步修改课程的 nofstudents
type EnrollmentService interface {
	List(ctx context.Context) ([]dto.EnrollmentResponse, error)
	Enroll(ctx context.Context, userID, courseID uint) (*dto.EnrollmentResponse, error)
	Withdraw(ctx context.Context, userID, courseID uint) error
	UpdateGrade(ctx context.Context, enrollmentID uint, req *dto.UpdateGradeRequest) (*dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *enrollmentService) List(ctx context.Context) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.repo.Enrollment.ListWithRelations(ctx)
	if err != nil {
		s.logger.Error("列出选课记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		result = append(result, toEnrollmentResponse(&enrollments[i]))
	}
	return result, nil
}

// ═══════════════════════════════════════════════════════════
// Enroll — 选课
// ═══════════════════════════════════════════════════════════
//
// 校验顺序（首个失败即返回，不做部分写入）：
//  1. 用户存在
//  2. 课程存在
//  3. 当前选课人数 < 容量
//  4. 未重复选同一门课
//  5. 与已选课程无时间冲突
//
// 用户行与课程行按此顺序加 FOR UPDATE 锁，并发选课在锁上串行。

func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*dto.EnrollmentResponse, error) {
	var created *model.Enrollment

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		user, err := tx.User.GetByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		course, err := tx.Course.GetByIDForUpdate(ctx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		occupied, err := tx.Enrollment.CountByCourse(ctx, course.ID)
		if err != nil {
			return err
		}
		if occupied >= int64(course.Capacity) {
			return ErrCourseFull
		}

		exists, err := tx.Enrollment.ExistsByUserAndCourse(ctx, user.ID, course.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyEnrolled
		}

		conflict, err := NewConflictChecker(tx).HasConflict(ctx, user.ID, course)
		if err != nil {
			return err
		}
		if conflict {
			return ErrTimeConflict
		}

		enrollment := &model.Enrollment{UserID: user.ID, CourseID: course.ID}
		if err := tx.Enrollment.Create(ctx, enrollment); err != nil {
			return err
		}
		if err := tx.Course.IncrementStudents(ctx, course.ID); err != nil {
			return err
		}

		course.NofStudents++
		enrollment.User = user
		enrollment.Course = course
		created = enrollment
		return nil
	})
	if err != nil {
		if isBusinessError(err) {
			s.logger.Info("选课被拒绝",
				zap.Uint("user_id", userID),
				zap.Uint("course_id", courseID),
				zap.String("reason", err.Error()),
			)
		} else {
			s.logger.Error("选课失败", zap.Uint("user_id", userID), zap.Uint("course_id", courseID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("选课成功",
		zap.Uint("enrollment_id", created.ID),
		zap.Uint("user_id", userID),
		zap.Uint("course_id", courseID),
		zap.Int("nofstudents", created.Course.NofStudents),
	)

	resp := toEnrollmentResponse(created)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// Withdraw — 退课
// ═══════════════════════════════════════════════════════════
//
// 只有确实删除了选课记录才扣减 nofstudents；计数不会小于 0。

func (s *enrollmentService) Withdraw(ctx context.Context, userID, courseID uint) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		enrollment, err := tx.Enrollment.GetByUserAndCourseForUpdate(ctx, userID, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		if _, err := tx.Course.GetByIDForUpdate(ctx, enrollment.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		if err := tx.Enrollment.Delete(ctx, enrollment.ID); err != nil {
			return err
		}

		decremented, err := tx.Course.DecrementStudents(ctx, enrollment.CourseID)
		if err != nil {
			return err
		}
		if !decremented {
			s.logger.Warn("课程人数已为 0，跳过扣减",
				zap.Uint("course_id", enrollment.CourseID),
				zap.Uint("enrollment_id", enrollment.ID),
			)
		}
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("退课失败", zap.Uint("user_id", userID), zap.Uint("course_id", courseID), zap.Error(err))
		}
		return err
	}

	s.logger.Info("退课成功", zap.Uint("user_id", userID), zap.Uint("course_id", courseID))
	return nil
}

// ────────────────────── UpdateGrade ──────────────────────

func (s *enrollmentService) UpdateGrade(ctx context.Context, enrollmentID uint, req *dto.UpdateGradeRequest) (*dto.EnrollmentResponse, error) {
	var updated *model.Enrollment

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Enrollment.GetByIDForUpdate(ctx, enrollmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		grade, err := ParseGrade(req.Grade)
		if err != nil {
			return err
		}

		if err := tx.Enrollment.UpdateGrade(ctx, enrollmentID, grade); err != nil {
			return err
		}

		updated, err = tx.Enrollment.GetByID(ctx, enrollmentID)
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("修改成绩失败", zap.Uint("enrollment_id", enrollmentID), zap.Error(err))
		}
		return nil, err
	}

	resp := toEnrollmentResponse(updated)
	return &resp, nil
}

// ParseGrade 将请求中的成绩解析为有限浮点数
// 接受 JSON 数字、json.Number 与数字字符串；不做取值范围校验
func ParseGrade(v interface{}) (float64, error) {
	var f float64
	switch g := v.(type) {
	case nil:
		return 0, ErrGradeRequired
	case float64:
		f = g
	case json.Number:
		parsed, err := g.Float64()
		if err != nil {
			return 0, ErrInvalidGrade
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(g), 64)
		if err != nil {
			return 0, ErrInvalidGrade
		}
		f = parsed
	default:
		return 0, ErrInvalidGrade
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidGrade
	}
	return f, nil
}
