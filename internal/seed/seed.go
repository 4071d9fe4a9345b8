package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"school-enroll/internal/model"
	"school-enroll/internal/repository"
)

type seedCourse struct {
	name       string
	capacity   int
	start, end model.TimeOfDay
	teacher    string
}

type seedEnrollment struct {
	userIdx, courseIdx int
	grade              float64
}

var defaultUsers = []model.User{
	{Username: "jimmy", Password: "1", Role: model.RoleStudent},
	{Username: "Amon Hepworth", Password: "2", Role: model.RoleTeacher},
	{Username: "Stephanian Haik", Password: "2", Role: model.RoleTeacher},
	{Username: "Renato Farias", Password: "2", Role: model.RoleTeacher},
	{Username: "Borna Hlousek", Password: "2", Role: model.RoleTeacher},
	{Username: "Juan Meza", Password: "2", Role: model.RoleTeacher},
	{Username: "Jill Jim", Password: "2", Role: model.RoleTeacher},
	{Username: "jimbo", Password: "3", Role: model.RoleStudent},
	{Username: "admin", Password: "5", Role: model.RoleAdmin},
}

var defaultCourses = []seedCourse{
	{"Math 101", 30, model.NewTimeOfDay(16, 0), model.NewTimeOfDay(17, 0), "Amon Hepworth"},
	{"History 202", 25, model.NewTimeOfDay(15, 0), model.NewTimeOfDay(16, 0), "Stephanian Haik"},
	{"Math 133", 30, model.NewTimeOfDay(8, 0), model.NewTimeOfDay(9, 0), "Renato Farias"},
	{"CSE 234", 25, model.NewTimeOfDay(10, 0), model.NewTimeOfDay(11, 0), "Borna Hlousek"},
	{"EE 111", 30, model.NewTimeOfDay(16, 0), model.NewTimeOfDay(18, 0), "Juan Meza"},
	{"Philosophy 233", 25, model.NewTimeOfDay(15, 0), model.NewTimeOfDay(17, 0), "Jill Jim"},
}

// jimmy、jimbo 选 History 202
var defaultEnrollments = []seedEnrollment{
	{userIdx: 0, courseIdx: 1, grade: 93},
	{userIdx: 7, courseIdx: 1, grade: 21},
}

// CreateDefaultData 用户表为空时写入初始用户、课程与选课记录
//
// 全部写入在同一事务内完成；nofstudents 按写入的选课记录同步递增。
// 用户表非空时直接跳过，重复启动不会重复写入。
func CreateDefaultData(ctx context.Context, repo *repository.Repository, logger *zap.Logger) error {
	count, err := repo.User.Count(ctx)
	if err != nil {
		return fmt.Errorf("统计用户数失败: %w", err)
	}
	if count > 0 {
		logger.Info("已存在用户数据，跳过初始化", zap.Int64("users", count))
		return nil
	}

	err = repo.Transaction(ctx, func(tx *repository.Repository) error {
		users := make([]*model.User, 0, len(defaultUsers))
		for i := range defaultUsers {
			u := defaultUsers[i]
			if !model.ValidRole(u.Role) {
				return fmt.Errorf("用户 %s 角色非法: %q", u.Username, u.Role)
			}
			if err := tx.User.Create(ctx, &u); err != nil {
				return fmt.Errorf("创建用户 %s 失败: %w", u.Username, err)
			}
			users = append(users, &u)
		}

		courses := make([]*model.Course, 0, len(defaultCourses))
		for _, sc := range defaultCourses {
			c := &model.Course{
				Name:      sc.name,
				Capacity:  sc.capacity,
				StartTime: sc.start,
				EndTime:   sc.end,
				Teacher:   sc.teacher,
			}
			if err := tx.Course.Create(ctx, c); err != nil {
				return fmt.Errorf("创建课程 %s 失败: %w", sc.name, err)
			}
			courses = append(courses, c)
		}

		for _, se := range defaultEnrollments {
			grade := se.grade
			e := &model.Enrollment{
				UserID:   users[se.userIdx].ID,
				CourseID: courses[se.courseIdx].ID,
				Grade:    &grade,
			}
			if err := tx.Enrollment.Create(ctx, e); err != nil {
				return fmt.Errorf("创建选课记录失败: %w", err)
			}
			if err := tx.Course.IncrementStudents(ctx, e.CourseID); err != nil {
				return fmt.Errorf("更新课程人数失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("写入初始数据失败", zap.Error(err))
		return err
	}

	logger.Info("初始数据写入完成",
		zap.Int("users", len(defaultUsers)),
		zap.Int("courses", len(defaultCourses)),
		zap.Int("enrollments", len(defaultEnrollments)),
	)
	return nil
}
