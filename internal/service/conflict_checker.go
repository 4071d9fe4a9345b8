package service

import (
	"context"

	"school-enroll/internal/model"
	"school-enroll/internal/repository"
)

// ConflictChecker 课表时间冲突检测
type ConflictChecker interface {
	// HasConflict 候选课程的时间窗是否与用户当前已选任一课程相交
	HasConflict(ctx context.Context, userID uint, candidate *model.Course) (bool, error)
}

type conflictChecker struct {
	repo *repository.Repository
}

// NewConflictChecker 创建 ConflictChecker
// 在事务内使用时传入事务 Repository，保证读取的是当前事务可见的选课集合
func NewConflictChecker(repo *repository.Repository) ConflictChecker {
	return &conflictChecker{repo: repo}
}

func (c *conflictChecker) HasConflict(ctx context.Context, userID uint, candidate *model.Course) (bool, error) {
	// 每次调用都重新读取，不跨请求缓存
	enrollments, err := c.repo.Enrollment.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	for i := range enrollments {
		enrolled := enrollments[i].Course
		if enrolled == nil {
			enrolled, err = c.repo.Course.GetByID(ctx, enrollments[i].CourseID)
			if err != nil {
				return false, err
			}
		}
		if candidate.ConflictsWith(enrolled) {
			return true, nil
		}
	}
	return false, nil
}
