package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"school-enroll/internal/model"
	"school-enroll/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出全部选课记录（花名册 + 成绩）为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportEnrollments 导出选课花名册，返回内容与建议文件名
	ExportEnrollments(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const rosterSheet = "Enrollments"

var rosterHeaders = []string{"Enrollment ID", "User ID", "Username", "Course ID", "Course", "Teacher", "Start", "End", "Grade"}

// ═══════════════════════════════════════════════════════════
// ExportEnrollments — 导出选课花名册
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "Enrollments"
//   - 第 1 行表头，之后每条选课记录一行
//   - 未评分的成绩单元格写 "Not graded"

func (s *exportService) ExportEnrollments(ctx context.Context) (*bytes.Buffer, string, error) {
	enrollments, err := s.repo.Enrollment.ListWithRelations(ctx)
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(rosterSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for _, w := range []struct {
		from, to string
		width    float64
	}{
		{"A", "D", 14},
		{"C", "C", 20},
		{"E", "F", 22},
		{"G", "I", 12},
	} {
		if err := f.SetColWidth(rosterSheet, w.from, w.to, w.width); err != nil {
			s.logger.Error("设置列宽失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		s.logger.Error("创建表头样式失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	for i, h := range rosterHeaders {
		if err := f.SetCellValue(rosterSheet, cell(colName(i), 1), h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}
	if err := f.SetCellStyle(rosterSheet, "A1", cell(colName(len(rosterHeaders)-1), 1), headerStyle); err != nil {
		s.logger.Error("设置表头样式失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	if err := writeRosterRows(f, enrollments); err != nil {
		s.logger.Error("写入选课记录失败", zap.Int("rows", len(enrollments)), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("enrollments_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

// cellWriter 单元格写入，由 *excelize.File 实现
type cellWriter interface {
	SetCellValue(sheet, cell string, value interface{}) error
}

// writeRosterRows 从第 2 行起逐条写入选课记录，任一单元格失败即返回
func writeRosterRows(w cellWriter, enrollments []model.Enrollment) error {
	for i := range enrollments {
		r := toEnrollmentResponse(&enrollments[i])
		values := []interface{}{
			r.EnrollmentID, r.UserID, r.UserUsername,
			r.CourseID, r.CourseName, r.CourseTeacher,
			r.StartTime, r.EndTime, r.Grade,
		}
		row := i + 2
		for col, v := range values {
			if err := w.SetCellValue(rosterSheet, cell(colName(col), row), v); err != nil {
				return fmt.Errorf("写入 %s 失败: %w", cell(colName(col), row), err)
			}
		}
	}
	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
