package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school-enroll/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id uint) (*model.Course, error)
	// GetByIDForUpdate 使用 SELECT ... FOR UPDATE 锁定课程行，串行化对同一课程的容量检查与计数变更
	GetByIDForUpdate(ctx context.Context, id uint) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	UpdateCapacity(ctx context.Context, id uint, capacity int) error
	// IncrementStudents 选课人数 +1
	IncrementStudents(ctx context.Context, id uint) error
	// DecrementStudents 选课人数 -1，已为 0 时不变并返回 false
	DecrementStudents(ctx context.Context, id uint) (bool, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) UpdateCapacity(ctx context.Context, id uint, capacity int) error {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"capacity":   capacity,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *courseRepo) IncrementStudents(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"nofstudents": gorm.Expr("nofstudents + 1"),
			"updated_at":  gorm.Expr("NOW()"),
		}).Error
}

func (r *courseRepo) DecrementStudents(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ? AND nofstudents > 0", id).
		Updates(map[string]interface{}{
			"nofstudents": gorm.Expr("nofstudents - 1"),
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
