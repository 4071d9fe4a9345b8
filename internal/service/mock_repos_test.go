package service

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"school-enroll/internal/model"
	"school-enroll/internal/repository"
)

// 所有 mock 都返回存储对象的副本，避免 service 修改返回值时误改"数据库"状态

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	listFn func() error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = uint(len(m.users) + 1)
	}
	u := *user
	m.users[u.ID] = &u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	if m.listFn != nil {
		if err := m.listFn(); err != nil {
			return nil, err
		}
	}
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses      map[uint]*model.Course
	incrementErr error
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[uint]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.ID == 0 {
		course.ID = uint(len(m.courses) + 1)
	}
	c := *course
	m.courses[c.ID] = &c
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id uint) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Course, error) {
	return m.GetByID(ctx, id)
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	result := make([]model.Course, 0, len(m.courses))
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCourseRepo) UpdateCapacity(_ context.Context, id uint, capacity int) error {
	c, ok := m.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Capacity = capacity
	return nil
}

func (m *mockCourseRepo) IncrementStudents(_ context.Context, id uint) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	c, ok := m.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.NofStudents++
	return nil
}

func (m *mockCourseRepo) DecrementStudents(_ context.Context, id uint) (bool, error) {
	c, ok := m.courses[id]
	if !ok || c.NofStudents <= 0 {
		return false, nil
	}
	c.NofStudents--
	return true, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[uint]*model.Enrollment
	nextID      uint
	users       *mockUserRepo
	courses     *mockCourseRepo
	listErr     error
}

func newMockEnrollmentRepo(users *mockUserRepo, courses *mockCourseRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{
		enrollments: make(map[uint]*model.Enrollment),
		nextID:      1,
		users:       users,
		courses:     courses,
	}
}

// withRelations 模拟 Preload("User").Preload("Course")
func (m *mockEnrollmentRepo) withRelations(e *model.Enrollment) model.Enrollment {
	cp := *e
	if u, ok := m.users.users[e.UserID]; ok {
		uc := *u
		cp.User = &uc
	}
	if c, ok := m.courses.courses[e.CourseID]; ok {
		cc := *c
		cp.Course = &cc
	}
	return cp
}

func (m *mockEnrollmentRepo) sorted() []*model.Enrollment {
	result := make([]*model.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.ID == 0 {
		enrollment.ID = m.nextID
	}
	if enrollment.ID >= m.nextID {
		m.nextID = enrollment.ID + 1
	}
	e := *enrollment
	e.User, e.Course = nil, nil
	m.enrollments[e.ID] = &e
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id uint) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		cp := m.withRelations(e)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByIDForUpdate(_ context.Context, id uint) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByUserAndCourseForUpdate(_ context.Context, userID, courseID uint) (*model.Enrollment, error) {
	for _, e := range m.sorted() {
		if e.UserID == userID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ExistsByUserAndCourse(_ context.Context, userID, courseID uint) (bool, error) {
	for _, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) ListWithRelations(_ context.Context) ([]model.Enrollment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Enrollment
	for _, e := range m.sorted() {
		result = append(result, m.withRelations(e))
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByUser(_ context.Context, userID uint) ([]model.Enrollment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Enrollment
	for _, e := range m.sorted() {
		if e.UserID != userID {
			continue
		}
		cp := m.withRelations(e)
		cp.User = nil
		result = append(result, cp)
	}
	return result, nil
}

func (m *mockEnrollmentRepo) CountByCourse(_ context.Context, courseID uint) (int64, error) {
	var n int64
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockEnrollmentRepo) UpdateGrade(_ context.Context, id uint, grade float64) error {
	e, ok := m.enrollments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	g := grade
	e.Grade = &g
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.enrollments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.enrollments, id)
	return nil
}

// ── 测试夹具 ──

type testStore struct {
	repo        *repository.Repository
	users       *mockUserRepo
	courses     *mockCourseRepo
	enrollments *mockEnrollmentRepo
}

var errDB = errors.New("db unavailable")

func newTestStore() *testStore {
	users := newMockUserRepo()
	courses := newMockCourseRepo()
	enrollments := newMockEnrollmentRepo(users, courses)
	return &testStore{
		repo: &repository.Repository{
			User:       users,
			Course:     courses,
			Enrollment: enrollments,
		},
		users:       users,
		courses:     courses,
		enrollments: enrollments,
	}
}

// newSeededStore 与初始数据一致的课程与用户：
// History 202 [15:00,16:00) 容量 25，已有用户 1、8 两条选课
func newSeededStore() *testStore {
	st := newTestStore()
	ctx := context.Background()
	at := model.NewTimeOfDay

	for _, u := range []model.User{
		{ID: 1, Username: "jimmy", Password: "1", Role: model.RoleStudent},
		{ID: 2, Username: "Amon Hepworth", Password: "2", Role: model.RoleTeacher},
		{ID: 8, Username: "jimbo", Password: "3", Role: model.RoleStudent},
		{ID: 9, Username: "admin", Password: "5", Role: model.RoleAdmin},
		{ID: 10, Username: "fresh", Password: "7", Role: model.RoleStudent},
	} {
		u := u
		_ = st.users.Create(ctx, &u)
	}

	for _, c := range []model.Course{
		{ID: 1, Name: "Math 101", Capacity: 30, StartTime: at(16, 0), EndTime: at(17, 0), Teacher: "Amon Hepworth"},
		{ID: 2, Name: "History 202", Capacity: 25, StartTime: at(15, 0), EndTime: at(16, 0), Teacher: "Stephanian Haik", NofStudents: 2},
		{ID: 3, Name: "Math 133", Capacity: 30, StartTime: at(8, 0), EndTime: at(9, 0), Teacher: "Renato Farias"},
		{ID: 4, Name: "CSE 234", Capacity: 25, StartTime: at(10, 0), EndTime: at(11, 0), Teacher: "Borna Hlousek"},
		{ID: 5, Name: "EE 111", Capacity: 30, StartTime: at(16, 0), EndTime: at(18, 0), Teacher: "Juan Meza"},
		{ID: 6, Name: "Philosophy 233", Capacity: 25, StartTime: at(15, 0), EndTime: at(17, 0), Teacher: "Jill Jim"},
	} {
		c := c
		_ = st.courses.Create(ctx, &c)
	}

	g1, g2 := 93.0, 21.0
	_ = st.enrollments.Create(ctx, &model.Enrollment{UserID: 1, CourseID: 2, Grade: &g1})
	_ = st.enrollments.Create(ctx, &model.Enrollment{UserID: 8, CourseID: 2, Grade: &g2})
	return st
}

// occupancyMismatch 找出 nofstudents 与选课记录数不一致的课程
func (st *testStore) occupancyMismatch() (uint, int, int64, bool) {
	for id, c := range st.courses.courses {
		n, _ := st.enrollments.CountByCourse(context.Background(), id)
		if int64(c.NofStudents) != n {
			return id, c.NofStudents, n, true
		}
	}
	return 0, 0, 0, false
}
