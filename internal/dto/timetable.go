package dto

import (
	"time"

	"campus-timetable/internal/model"
)

// ── 课表模块 DTO ──

// EntryInput 课表条目的写入字段（创建、更新、冲突预检、批量共用）
type EntryInput struct {
	StaffID      string `json:"staff_id"      binding:"required,notblank,max=20"`
	SubjectCode  string `json:"subject_code"  binding:"required,notblank,max=20"`
	BatchID      string `json:"batch_id"      binding:"required,uuid"`
	DayOfWeek    int    `json:"day_of_week"   binding:"required,teaching_day"`
	TimeSlotID   string `json:"time_slot_id"  binding:"required,uuid"`
	RoomNumber   string `json:"room_number"   binding:"omitempty,max=20"`
	AcademicYear int    `json:"academic_year" binding:"omitempty,min=2000,max=2100"`
	Semester     int    `json:"semester"      binding:"omitempty,min=1,max=8"`
}

// ApplyDefaults 学年缺省为当前自然年，学期缺省为 1
func (in *EntryInput) ApplyDefaults(now time.Time) {
	if in.AcademicYear == 0 {
		in.AcademicYear = now.Year()
	}
	if in.Semester == 0 {
		in.Semester = 1
	}
}

// CheckConflictsRequest 冲突预检请求
type CheckConflictsRequest struct {
	EntryInput
	ExcludeEntryID string `json:"exclude_entry_id" binding:"omitempty,uuid"`
}

// CheckConflictsResponse 冲突预检响应
type CheckConflictsResponse struct {
	HasConflicts bool             `json:"has_conflicts"`
	Conflicts    []model.Conflict `json:"conflicts"`
}

// CreateEntryRequest 创建课表条目请求
type CreateEntryRequest struct {
	EntryInput
}

// UpdateEntryRequest 更新课表条目请求（整体替换可写字段）
type UpdateEntryRequest struct {
	EntryInput
}

// DeleteByClassRequest 按班级删除课表的查询参数
type DeleteByClassRequest struct {
	Department   string `form:"department"    binding:"required,notblank"`
	Year         int    `form:"year"          binding:"required,min=1,max=6"`
	Semester     int    `form:"semester"      binding:"required,min=1,max=8"`
	Section      string `form:"section"       binding:"required,notblank"`
	AcademicYear int    `form:"academic_year" binding:"omitempty,min=2000,max=2100"`
}

// DeleteByClassResponse 按班级删除结果
type DeleteByClassResponse struct {
	Deleted int64 `json:"deleted"`
}

// TimetableQuery 课表查询参数
type TimetableQuery struct {
	AcademicYear int `form:"academic_year" binding:"omitempty,min=2000,max=2100"`
	Semester     int `form:"semester"      binding:"omitempty,min=1,max=8"`
}

// ApplyDefaults 学年缺省为当前自然年，学期缺省为 1
func (q *TimetableQuery) ApplyDefaults(now time.Time) {
	if q.AcademicYear == 0 {
		q.AcademicYear = now.Year()
	}
	if q.Semester == 0 {
		q.Semester = 1
	}
}

// CalendarQuery 教师周日历导出参数
type CalendarQuery struct {
	TimetableQuery
	WeekOf string `form:"week_of" binding:"omitempty,datetime=2006-01-02"`
}

// EntryResponse 课表条目（带节次、课程、班级、教师信息）
type EntryResponse struct {
	ID           string  `json:"id"`
	StaffID      string  `json:"staff_id"`
	TeacherName  string  `json:"teacher_name,omitempty"`
	SubjectCode  string  `json:"subject_code"`
	SubjectName  string  `json:"subject_name,omitempty"`
	BatchID      string  `json:"batch_id"`
	ClassName    string  `json:"class_name,omitempty"`
	Department   string  `json:"department,omitempty"`
	Year         int     `json:"year,omitempty"`
	Section      string  `json:"section,omitempty"`
	DayOfWeek    int     `json:"day_of_week"`
	TimeSlotID   string  `json:"time_slot_id"`
	SlotName     string  `json:"slot_name,omitempty"`
	StartTime    string  `json:"start_time,omitempty"`
	EndTime      string  `json:"end_time,omitempty"`
	SlotOrder    int     `json:"slot_order,omitempty"`
	RoomNumber   *string `json:"room_number,omitempty"`
	AcademicYear int     `json:"academic_year"`
	Semester     int     `json:"semester"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// WorkloadResponse 教师工作量统计
type WorkloadResponse struct {
	StaffID      string   `json:"staff_id"`
	AcademicYear int      `json:"academic_year"`
	Semester     int      `json:"semester"`
	TotalPeriods int      `json:"total_periods"`
	SubjectCount int      `json:"subject_count"`
	BatchCount   int      `json:"batch_count"`
	Subjects     []string `json:"subjects"`
	Batches      []string `json:"batches"`
}

// BulkCreateRequest 批量创建请求
// 条目不在绑定阶段逐条校验，由 Service 逐条处理并报告结果
type BulkCreateRequest struct {
	Entries []EntryInput `json:"entries" binding:"required,min=1"`
}

// BulkItemResult 批量创建中单条的结果
type BulkItemResult struct {
	Index     int              `json:"index"`
	Created   bool             `json:"created"`
	Entry     *EntryResponse   `json:"entry,omitempty"`
	Error     string           `json:"error,omitempty"`
	Conflicts []model.Conflict `json:"conflicts,omitempty"`
}

// BulkCreateResponse 批量创建汇总
type BulkCreateResponse struct {
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Results []BulkItemResult `json:"results"`
}
