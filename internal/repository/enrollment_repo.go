package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school-enroll/internal/model"
)

// EnrollmentRepository 选课记录数据访问接口
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	GetByID(ctx context.Context, id uint) (*model.Enrollment, error)
	// GetByIDForUpdate 锁定选课记录行（成绩更新）
	GetByIDForUpdate(ctx context.Context, id uint) (*model.Enrollment, error)
	// GetByUserAndCourseForUpdate 锁定 (user, course) 对应的选课记录行（退课）
	GetByUserAndCourseForUpdate(ctx context.Context, userID, courseID uint) (*model.Enrollment, error)
	ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error)
	// ListWithRelations 全部选课记录，预加载用户与课程
	ListWithRelations(ctx context.Context) ([]model.Enrollment, error)
	// ListByUser 用户当前的选课记录，预加载课程
	ListByUser(ctx context.Context, userID uint) ([]model.Enrollment, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
	UpdateGrade(ctx context.Context, id uint, grade float64) error
	Delete(ctx context.Context, id uint) error
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(enrollment).Error
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepo) GetByUserAndCourseForUpdate(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepo) ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	return n > 0, err
}

func (r *enrollmentRepo) ListWithRelations(ctx context.Context) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *enrollmentRepo) ListByUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *enrollmentRepo) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&n).Error
	return n, err
}

func (r *enrollmentRepo) UpdateGrade(ctx context.Context, id uint, grade float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"grade":      grade,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *enrollmentRepo) Delete(ctx context.Context, id uint) error {
	// 硬删除：选课记录的存在即成员关系本身
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Enrollment{}).Error
}
