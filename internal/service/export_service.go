package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-timetable/config"
	"campus-timetable/internal/model"
	"campus-timetable/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 班级课表导出为 Excel：行 = 节次，列 = 周一 ~ 周六
//   - 教师课表导出为单周 iCalendar：每个条目一个 VEVENT，不生成重复规则
//   - 数据来自 TimetableService 的视图，与页面展示一致
type ExportService interface {
	// ExportBatchTimetable 导出班级课表，返回 xlsx 内容与建议文件名
	ExportBatchTimetable(ctx context.Context, batchID string, academicYear, semester int) (*bytes.Buffer, string, error)
	// ExportTeacherCalendar 导出教师在 weekOf 所在周（周一起）的日历
	// weekOf 只取其日期部分；零值表示日历时区下的本周
	ExportTeacherCalendar(ctx context.Context, staffID string, academicYear, semester int, weekOf time.Time) ([]byte, string, error)
}

type exportService struct {
	repo      *repository.Repository
	timetable TimetableService
	location  *time.Location
	productID string
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, timetable TimetableService, cfg *config.TimetableConfig, logger *zap.Logger) ExportService {
	loc := time.UTC
	productID := "-//campus-timetable//timetable export//EN"
	if cfg != nil {
		if l, err := time.LoadLocation(cfg.CalendarTimezone); err == nil && cfg.CalendarTimezone != "" {
			loc = l
		}
		if cfg.CalendarProductID != "" {
			productID = cfg.CalendarProductID
		}
	}
	return &exportService{
		repo:      repo,
		timetable: timetable,
		location:  loc,
		productID: productID,
		logger:    logger,
		now:       time.Now,
	}
}

var dayNames = map[int]string{1: "周一", 2: "周二", 3: "周三", 4: "周四", 5: "周五", 6: "周六"}

// ═══════════════════════════════════════════════════════════
// ExportBatchTimetable：班级课表 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：班级名 学年 学期
//   - 表头：节次 | 时间 | 周一 ... 周六
//   - 单元格：课程名 / 教师 / 教室，空闲为 "-"

func (s *exportService) ExportBatchTimetable(ctx context.Context, batchID string, academicYear, semester int) (*bytes.Buffer, string, error) {
	batchID, ok := parseID(batchID)
	if !ok {
		return nil, "", ErrBatchNotFound
	}
	batch, err := s.repo.Batch.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBatchNotFound
		}
		s.logger.Error("查询班级失败", zap.String("batch_id", batchID), zap.Error(err))
		return nil, "", err
	}

	entries, err := s.timetable.GetBatchTimetable(ctx, batchID, academicYear, semester)
	if err != nil {
		return nil, "", err
	}

	slots, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("列出节次失败", zap.Error(err))
		return nil, "", err
	}

	// "dayOfWeek:timeSlotID" → 单元格文本
	cells := make(map[string]string, len(entries))
	for _, e := range entries {
		text := firstNonEmpty(e.SubjectName, e.SubjectCode)
		text += "\n" + firstNonEmpty(e.TeacherName, e.StaffID)
		if e.RoomNumber != nil {
			text += "\n" + *e.RoomNumber
		}
		cells[fmt.Sprintf("%d:%s", e.DayOfWeek, e.TimeSlotID)] = text
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, colName(2), colName(1+model.Saturday), 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})

	// 标题行
	title := fmt.Sprintf("%s %d 第%d学期 课表", batch.ClassName, academicYear, semester)
	f.SetCellValue(sheetName, "A1", title)
	lastCol := colName(1 + model.Saturday)
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", cell(lastCol, 1), headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "节次")
	f.SetCellValue(sheetName, cell("B", row), "时间")
	for day := model.Monday; day <= model.Saturday; day++ {
		f.SetCellValue(sheetName, cell(colName(1+day), row), dayNames[day])
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)

	// 数据行
	for _, slot := range slots {
		row++
		f.SetCellValue(sheetName, cell("A", row), slot.SlotName)
		f.SetCellValue(sheetName, cell("B", row),
			fmt.Sprintf("%s-%s", model.ClockHHMM(slot.StartTime), model.ClockHHMM(slot.EndTime)))
		for day := model.Monday; day <= model.Saturday; day++ {
			text, ok := cells[fmt.Sprintf("%d:%s", day, slot.TimeSlotID)]
			if !ok {
				text = "-"
			}
			f.SetCellValue(sheetName, cell(colName(1+day), row), text)
		}
		f.SetRowHeight(sheetName, row, 48)
	}
	if row > 2 {
		f.SetCellStyle(sheetName, cell("A", 3), cell(lastCol, row), cellStyle)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课表_%s_%d_%d.xlsx", batch.ClassName, academicYear, semester)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportTeacherCalendar：教师单周日历
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportTeacherCalendar(ctx context.Context, staffID string, academicYear, semester int, weekOf time.Time) ([]byte, string, error) {
	entries, err := s.timetable.GetTeacherTimetable(ctx, staffID, academicYear, semester)
	if err != nil {
		return nil, "", err
	}

	if weekOf.IsZero() {
		weekOf = s.now().In(s.location)
	}
	monday := weekStart(weekOf, s.location)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(s.productID)
	cal.SetName(fmt.Sprintf("%s 课表", staffID))
	cal.SetXWRTimezone(s.location.String())

	stamp := s.now().UTC()
	for _, e := range entries {
		start, err1 := clockOn(monday, e.DayOfWeek, e.StartTime, s.location)
		end, err2 := clockOn(monday, e.DayOfWeek, e.EndTime, s.location)
		if err1 != nil || err2 != nil {
			s.logger.Warn("跳过时间无效的课表条目", zap.String("entry_id", e.ID))
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s@campus-timetable", e.ID, start.Format("20060102")))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s · %s", firstNonEmpty(e.SubjectName, e.SubjectCode), firstNonEmpty(e.ClassName, e.BatchID)))
		event.SetDescription(fmt.Sprintf("%s %s (%s-%s)", e.SlotName, e.SubjectCode, e.StartTime, e.EndTime))
		if e.RoomNumber != nil {
			event.SetLocation(*e.RoomNumber)
		}
	}

	filename := fmt.Sprintf("timetable_%s_%s.ics", staffID, monday.Format("2006-01-02"))
	return []byte(cal.Serialize()), filename, nil
}

// ── 辅助函数 ──

// weekStart 返回日期 day 所在周的周一 00:00（loc 时区）
// day 按其自身的年月日解释，不做时区换算
func weekStart(day time.Time, loc *time.Location) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return time.Date(day.Year(), day.Month(), day.Day()-offset, 0, 0, 0, 0, loc)
}

// clockOn 计算 monday 起第 day 天的 HH:MM 时刻
func clockOn(monday time.Time, day int, hhmm string, loc *time.Location) (time.Time, error) {
	clk, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(monday.Year(), monday.Month(), monday.Day()+day-1, clk.Hour(), clk.Minute(), 0, 0, loc), nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
